// Package audit appends immutable change records. Mutation audits join the
// caller's transaction so business write and audit row commit or roll back
// together; auth events are best-effort and never break the primary request.
package audit

import (
	"reflect"
	"time"
)

// Actions accepted by the audit_log table.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionAuth   = "auth"
)

// Auth event names recorded under ActionAuth.
const (
	EventSignInSuccess = "sign_in_success"
	EventSignInFail    = "sign_in_fail"
	EventTokenRefresh  = "token_refresh"
	EventTokenReuse    = "token_reuse"
	EventSignOut       = "sign_out"
)

// Entry is one append-only audit record. Diff is nil for auth events.
type Entry struct {
	ID            string
	Action        string
	Model         string // entity name or auth event name
	EntityID      string
	Diff          map[string]any
	ActorUserID   *string
	CorrelationID string
	IP            string
	UserAgent     string
	CreatedAt     time.Time
}

// Fields excluded from diffs: volatile timestamps and credential material.
var excludedDiffFields = map[string]struct{}{
	"created_at":    {},
	"updated_at":    {},
	"password":      {},
	"password_hash": {},
	"salt":          {},
}

// Diff returns the changed keys between two field maps as
// {field: [old, new]}, skipping volatile and sensitive fields. Keys present
// on only one side count as changed against nil.
func Diff(before, after map[string]any) map[string][2]any {
	changed := make(map[string][2]any)

	for key, oldVal := range before {
		if _, excluded := excludedDiffFields[key]; excluded {
			continue
		}
		newVal, ok := after[key]
		if !ok {
			changed[key] = [2]any{oldVal, nil}
			continue
		}
		// DeepEqual so map and slice field values diff instead of panicking.
		if !reflect.DeepEqual(oldVal, newVal) {
			changed[key] = [2]any{oldVal, newVal}
		}
	}

	for key, newVal := range after {
		if _, excluded := excludedDiffFields[key]; excluded {
			continue
		}
		if _, ok := before[key]; !ok {
			changed[key] = [2]any{nil, newVal}
		}
	}

	return changed
}

// FallbackEntityID picks the most specific identity available for an auth
// event: explicit id, then user id, then the submitted username, then the
// source IP, then "unknown".
func FallbackEntityID(explicit, userID, userName, ip string) string {
	switch {
	case explicit != "":
		return explicit
	case userID != "":
		return userID
	case userName != "":
		return userName
	case ip != "":
		return ip
	default:
		return "unknown"
	}
}
