package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/adminkit/session-service/internal/logging"
	"github.com/adminkit/session-service/internal/reqctx"
)

// Execer is the subset of pgx used for best-effort writes outside a
// transaction. Both *pgxpool.Pool and pgxmock pools satisfy it.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Writer struct {
	db  Execer
	log logging.Logger
}

func NewWriter(db Execer, log logging.Logger) *Writer {
	return &Writer{db: db, log: log}
}

const insertEntry = `
		INSERT INTO audit_log (id, action, model, entity_id, diff, actor_user_id, correlation_id, ip_address, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

// Record appends an entry on the caller's transaction handle. The row shares
// the transaction's fate: if the business mutation rolls back, so does the
// audit row.
func (w *Writer) Record(ctx context.Context, tx pgx.Tx, entry Entry) error {
	args, err := w.entryArgs(ctx, entry)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, insertEntry, args...); err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}
	return nil
}

// AuthEvent records an authentication event outside any transaction.
// Failures are swallowed after logging; an unreachable audit table must
// never fail a sign-in.
func (w *Writer) AuthEvent(ctx context.Context, event string, entityID string, actorUserID *string) {
	entry := Entry{
		Action:   ActionAuth,
		Model:    event,
		EntityID: entityID,
	}
	entry.ActorUserID = actorUserID

	args, err := w.entryArgs(ctx, entry)
	if err != nil {
		w.log.Warn(ctx, "audit auth event dropped", "event", event, "error", err)
		return
	}
	if _, err := w.db.Exec(ctx, insertEntry, args...); err != nil {
		w.log.Warn(ctx, "audit auth event dropped", "event", event, "error", err)
	}
}

// AuthFail records a failed sign-in, deriving the entity id from whatever
// identity survived: user id, submitted username, or source IP.
func (w *Writer) AuthFail(ctx context.Context, userID, userName string) {
	client := reqctx.Client(ctx)
	entityID := FallbackEntityID("", userID, userName, client.IP)
	var actor *string
	if userID != "" {
		actor = &userID
	}
	w.AuthEvent(ctx, EventSignInFail, entityID, actor)
}

func (w *Writer) entryArgs(ctx context.Context, entry Entry) ([]any, error) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if entry.CorrelationID == "" {
		entry.CorrelationID = reqctx.CorrelationID(ctx)
	}
	if entry.ActorUserID == nil {
		if actor := reqctx.ActorID(ctx); actor != "" {
			entry.ActorUserID = &actor
		}
	}
	client := reqctx.Client(ctx)
	if entry.IP == "" {
		entry.IP = client.IP
	}
	if entry.UserAgent == "" {
		entry.UserAgent = client.UserAgent
	}

	var diff []byte
	if entry.Diff != nil {
		var err error
		diff, err = json.Marshal(entry.Diff)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal audit diff: %w", err)
		}
	}

	return []any{
		entry.ID, entry.Action, entry.Model, entry.EntityID, diff,
		entry.ActorUserID, entry.CorrelationID, entry.IP, entry.UserAgent,
		entry.CreatedAt,
	}, nil
}
