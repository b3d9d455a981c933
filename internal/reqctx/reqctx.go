// Package reqctx carries request-scoped values (correlation id, actor,
// client address, user agent) on a context.Context so deeply nested code can
// recover who is making the request without threading parameters through
// every call boundary. Values live for the request only.
package reqctx

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const (
	ctxCorrelationID ctxKey = "correlation_id"
	ctxActorID       ctxKey = "actor_id"
	ctxClientInfo    ctxKey = "client_info"
)

type ClientInfo struct {
	IP        string
	UserAgent string
}

func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxCorrelationID, id)
}

func CorrelationID(ctx context.Context) string {
	v, _ := ctx.Value(ctxCorrelationID).(string)
	return v
}

// NewCorrelationID returns a fresh opaque id for a request.
func NewCorrelationID() string {
	return uuid.NewString()
}

func WithActorID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxActorID, userID)
}

func ActorID(ctx context.Context) string {
	v, _ := ctx.Value(ctxActorID).(string)
	return v
}

func WithClientInfo(ctx context.Context, info ClientInfo) context.Context {
	return context.WithValue(ctx, ctxClientInfo, info)
}

func Client(ctx context.Context) ClientInfo {
	v, _ := ctx.Value(ctxClientInfo).(ClientInfo)
	return v
}
