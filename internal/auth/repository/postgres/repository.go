package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/adminkit/session-service/internal/auth/domain"
	autherror "github.com/adminkit/session-service/internal/errors"
)

// DB is the subset of pgxpool.Pool the repositories use. pgxmock pools
// implement it as well.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Repository struct {
	db DB
}

func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

const selectUser = `
		SELECT u.id, u.user_name, u.password_hash, u.first_name, u.last_name,
		       u.role_id, r.name AS role_name,
		       u.failed_login_count, u.locked_until, u.brute_window_start,
		       u.brute_strike_count, u.is_restricted, u.cause_of_restriction,
		       u.date_of_restriction, u.created_at, u.updated_at
		FROM users u
		JOIN roles r ON r.id = u.role_id`

func (r *Repository) GetByUserName(ctx context.Context, userName string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, selectUser+`
		WHERE lower(u.user_name) = lower($1)
		LIMIT 1`, userName)

	return scanUser(row)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, selectUser+`
		WHERE u.id = $1
		LIMIT 1`, id)

	return scanUser(row)
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(&user.ID, &user.UserName, &user.PasswordHash,
		&user.FirstName, &user.LastName, &user.RoleID, &user.RoleName,
		&user.FailedLoginCount, &user.LockedUntil, &user.BruteWindowStart,
		&user.BruteStrikeCount, &user.IsRestricted, &user.CauseOfRestriction,
		&user.DateOfRestriction, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// UpdateLoginState persists the lockout columns in one write, as required by
// the state machine's persist-once-per-call contract.
func (r *Repository) UpdateLoginState(ctx context.Context, u *domain.User) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users
		SET failed_login_count = $2,
		    locked_until = $3,
		    brute_window_start = $4,
		    brute_strike_count = $5,
		    is_restricted = $6,
		    cause_of_restriction = $7,
		    date_of_restriction = $8,
		    updated_at = now()
		WHERE id = $1`,
		u.ID, u.FailedLoginCount, u.LockedUntil, u.BruteWindowStart,
		u.BruteStrikeCount, u.IsRestricted, u.CauseOfRestriction,
		u.DateOfRestriction)
	if err != nil {
		return fmt.Errorf("failed to update login state: %w", err)
	}

	return nil
}

type TokenRepository struct {
	db DB
}

func NewTokenRepository(db DB) *TokenRepository {
	return &TokenRepository{db: db}
}

func (r *TokenRepository) Get(ctx context.Context, id string) (*domain.RefreshToken, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, user_id, user_agent, ip_address, expires_at, created_at,
		       revoked_at, rotated_at, replaced_by_token_id
		FROM refresh_tokens
		WHERE id = $1
		LIMIT 1`, id)

	var rt domain.RefreshToken
	err := row.Scan(&rt.ID, &rt.UserID, &rt.UserAgent, &rt.IPAddress,
		&rt.ExpiresAt, &rt.CreatedAt, &rt.RevokedAt, &rt.RotatedAt,
		&rt.ReplacedByTokenID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}

	return &rt, nil
}

const insertToken = `
		INSERT INTO refresh_tokens (id, user_id, user_agent, ip_address, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

func (r *TokenRepository) Store(ctx context.Context, rt *domain.RefreshToken) error {
	_, err := r.db.Exec(ctx, insertToken,
		rt.ID, rt.UserID, rt.UserAgent, rt.IPAddress, rt.ExpiresAt, rt.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}

	return nil
}

// Rotate retires the old row and installs its successor in one transaction.
// The rotate UPDATE is guarded by "not yet rotated or revoked" and must
// affect exactly one row; concurrent callers presenting the same token race
// on that guard and all but one observe zero rows and get
// ErrRefreshTokenRotated.
func (r *TokenRepository) Rotate(ctx context.Context, oldID string, successor *domain.RefreshToken) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin rotation: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
		UPDATE refresh_tokens
		SET rotated_at = $2
		WHERE id = $1 AND rotated_at IS NULL AND revoked_at IS NULL`,
		oldID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to mark token rotated: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return autherror.ErrRefreshTokenRotated
	}

	if _, err := tx.Exec(ctx, insertToken,
		successor.ID, successor.UserID, successor.UserAgent,
		successor.IPAddress, successor.ExpiresAt, successor.CreatedAt); err != nil {
		return fmt.Errorf("failed to store successor token: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		UPDATE refresh_tokens
		SET replaced_by_token_id = $2
		WHERE id = $1`, oldID, successor.ID); err != nil {
		return fmt.Errorf("failed to link successor token: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit rotation: %w", err)
	}

	return nil
}

// Revoke only transitions Active rows; Rotated and Revoked are terminal.
func (r *TokenRepository) Revoke(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE refresh_tokens
		SET revoked_at = now()
		WHERE id = $1 AND revoked_at IS NULL AND rotated_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return nil
}

// RevokeAllActiveByUserID terminates the user's whole active chain. Used on
// reuse/replay detection to force re-authentication everywhere.
func (r *TokenRepository) RevokeAllActiveByUserID(ctx context.Context, userID string) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE refresh_tokens
		SET revoked_at = now()
		WHERE user_id = $1 AND revoked_at IS NULL AND rotated_at IS NULL`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to revoke active tokens: %w", err)
	}

	return tag.RowsAffected(), nil
}
