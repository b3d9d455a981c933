// Package authclient makes 401 responses transparent to callers: the
// transport refreshes the access token once and retries, coordinating
// concurrent failures through a single in-flight refresh.
package authclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/sync/singleflight"
)

// Paths that are never intercepted for retry; retrying the auth endpoints
// themselves would recurse.
var authPaths = []string{
	"/session/sign-in",
	"/session/refresh",
	"/session/sign-out",
}

type refreshEnvelope struct {
	Data struct {
		AccessToken string `json:"accessToken"`
		ExpiresIn   int64  `json:"expiresIn"`
	} `json:"data"`
}

// Transport is an http.RoundTripper that attaches the stored access token
// and, on a 401, refreshes through the session endpoint and retries once.
// Concurrent 401s share one refresh via singleflight; every waiter re-reads
// the token from the store once the shared refresh resolves.
type Transport struct {
	// Base performs the actual requests. Defaults to http.DefaultTransport.
	Base http.RoundTripper
	// Store holds the access token shared with the rest of the client.
	Store *TokenStore
	// RefreshURL is the absolute URL of the refresh endpoint.
	RefreshURL string
	// RefreshClient performs the refresh call; its cookie jar must carry the
	// refresh cookie. Defaults to http.DefaultClient.
	RefreshClient *http.Client
	// OnLogout is invoked once per failed refresh, after all waiters have
	// been notified of the failure. Optional.
	OnLogout func()

	group singleflight.Group
}

func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if isAuthPath(req.URL.Path) {
		return t.base().RoundTrip(req)
	}

	resp, err := t.roundTripWithToken(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	// Join (or start) the shared refresh. DoChan keeps the refresh running
	// even if this caller's context is cancelled; other waiters still get
	// its result.
	ch := t.group.DoChan("refresh", t.refresh)
	select {
	case res := <-ch:
		if res.Err != nil {
			// Refresh failed: every waiter sees the failure and the caller
			// gets its original 401 back.
			return resp, nil
		}
	case <-req.Context().Done():
		resp.Body.Close()
		return nil, req.Context().Err()
	}

	retry, ok := rewind(req)
	if !ok {
		return resp, nil
	}
	resp.Body.Close()

	return t.roundTripWithToken(retry)
}

func (t *Transport) roundTripWithToken(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	if token := t.Store.Get(); token != "" {
		clone.Header.Set("Authorization", "Bearer "+token)
	}
	return t.base().RoundTrip(clone)
}

// refresh executes exactly once per singleflight flight. Its result is
// broadcast to all currently waiting requests.
func (t *Transport) refresh() (any, error) {
	client := t.RefreshClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Post(t.RefreshURL, "application/json", nil)
	if err != nil {
		t.logout()
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.logout()
		return nil, fmt.Errorf("refresh failed with status %d", resp.StatusCode)
	}

	var envelope refreshEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.logout()
		return nil, fmt.Errorf("failed to decode refresh response: %w", err)
	}

	t.Store.Set(envelope.Data.AccessToken)

	return nil, nil
}

// logout runs inside the singleflight flight, so a failed refresh logs the
// client out exactly once no matter how many requests were waiting.
func (t *Transport) logout() {
	t.Store.Clear()
	if t.OnLogout != nil {
		t.OnLogout()
	}
}

// rewind prepares a request for its retry. Requests with a consumed body can
// only be retried when GetBody is available.
func rewind(req *http.Request) (*http.Request, bool) {
	retry := req.Clone(req.Context())
	if req.Body == nil {
		return retry, true
	}
	if req.GetBody == nil {
		return nil, false
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, false
	}
	retry.Body = body
	return retry, true
}

func isAuthPath(path string) bool {
	for _, p := range authPaths {
		if strings.HasSuffix(path, p) {
			return true
		}
	}
	return false
}
