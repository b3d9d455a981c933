package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adminkit/session-service/internal/auth/domain"
	"github.com/adminkit/session-service/internal/auth/repository/postgres"
	autherror "github.com/adminkit/session-service/internal/errors"
)

var userColumns = []string{
	"id", "user_name", "password_hash", "first_name", "last_name",
	"role_id", "role_name",
	"failed_login_count", "locked_until", "brute_window_start",
	"brute_strike_count", "is_restricted", "cause_of_restriction",
	"date_of_restriction", "created_at", "updated_at",
}

func userRow() *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows(userColumns).AddRow(
		"user-1", "jdoe", "$2a$10$hash", "Jane", "Doe",
		2, "coordinator",
		0, nil, nil,
		0, false, nil,
		nil, now, now)
}

func TestRepository_GetByUserName(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`FROM users u`).
		WithArgs("jdoe").
		WillReturnRows(userRow())

	repo := postgres.NewRepository(mock)
	user, err := repo.GetByUserName(context.Background(), "jdoe")

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "jdoe", user.UserName)
	assert.Equal(t, "coordinator", user.RoleName)
	assert.Nil(t, user.LockedUntil)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByUserName_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`FROM users u`).
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	repo := postgres.NewRepository(mock)
	user, err := repo.GetByUserName(context.Background(), "ghost")

	require.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByUserName_DBError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`FROM users u`).
		WithArgs("jdoe").
		WillReturnError(errors.New("connection refused"))

	repo := postgres.NewRepository(mock)
	user, err := repo.GetByUserName(context.Background(), "jdoe")

	assert.Error(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`FROM users u`).
		WithArgs("user-1").
		WillReturnRows(userRow())

	repo := postgres.NewRepository(mock)
	user, err := repo.GetByID(context.Background(), "user-1")

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "jdoe", user.UserName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateLoginState(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	lockedUntil := time.Now().Add(15 * time.Minute)
	windowStart := time.Now()
	user := &domain.User{
		ID:               "user-1",
		FailedLoginCount: 0,
		LockedUntil:      &lockedUntil,
		BruteWindowStart: &windowStart,
		BruteStrikeCount: 1,
	}

	mock.ExpectExec(`UPDATE users`).
		WithArgs("user-1", 0, &lockedUntil, &windowStart, 1, false,
			(*string)(nil), (*time.Time)(nil)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	repo := postgres.NewRepository(mock)
	require.NoError(t, repo.UpdateLoginState(context.Background(), user))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepository_Get(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	expires := time.Now().Add(time.Hour)
	created := time.Now()
	mock.ExpectQuery(`FROM refresh_tokens`).
		WithArgs("jti-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "user_id", "user_agent", "ip_address", "expires_at",
			"created_at", "revoked_at", "rotated_at", "replaced_by_token_id",
		}).AddRow("jti-1", "user-1", "agent", "203.0.113.7", expires,
			created, nil, nil, nil))

	repo := postgres.NewTokenRepository(mock)
	rt, err := repo.Get(context.Background(), "jti-1")

	require.NoError(t, err)
	require.NotNil(t, rt)
	assert.Equal(t, "user-1", rt.UserID)
	assert.True(t, rt.Active())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepository_Get_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`FROM refresh_tokens`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	repo := postgres.NewTokenRepository(mock)
	rt, err := repo.Get(context.Background(), "missing")

	require.NoError(t, err)
	assert.Nil(t, rt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepository_Store(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rt := &domain.RefreshToken{
		ID:        "jti-1",
		UserID:    "user-1",
		UserAgent: "agent",
		IPAddress: "203.0.113.7",
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}

	mock.ExpectExec(`INSERT INTO refresh_tokens`).
		WithArgs(rt.ID, rt.UserID, rt.UserAgent, rt.IPAddress, rt.ExpiresAt, rt.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := postgres.NewTokenRepository(mock)
	require.NoError(t, repo.Store(context.Background(), rt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepository_Rotate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	successor := &domain.RefreshToken{
		ID:        "new-jti",
		UserID:    "user-1",
		UserAgent: "agent",
		IPAddress: "203.0.113.7",
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}

	mock.ExpectBegin()
	mock.ExpectExec(`SET rotated_at`).
		WithArgs("old-jti", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`INSERT INTO refresh_tokens`).
		WithArgs(successor.ID, successor.UserID, successor.UserAgent,
			successor.IPAddress, successor.ExpiresAt, successor.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`SET replaced_by_token_id`).
		WithArgs("old-jti", "new-jti").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	repo := postgres.NewTokenRepository(mock)
	require.NoError(t, repo.Rotate(context.Background(), "old-jti", successor))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepository_Rotate_LostRace(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	// A concurrent rotation already claimed the row: the guarded UPDATE
	// matches nothing and the transaction must roll back.
	mock.ExpectBegin()
	mock.ExpectExec(`SET rotated_at`).
		WithArgs("old-jti", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	repo := postgres.NewTokenRepository(mock)
	err = repo.Rotate(context.Background(), "old-jti", &domain.RefreshToken{ID: "new-jti"})

	assert.ErrorIs(t, err, autherror.ErrRefreshTokenRotated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepository_Revoke(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	// The guard must exclude both terminal states, so a rotated row can
	// never be re-stamped as revoked.
	mock.ExpectExec(`SET revoked_at = now\(\)\s+WHERE id = \$1 AND revoked_at IS NULL AND rotated_at IS NULL`).
		WithArgs("jti-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	repo := postgres.NewTokenRepository(mock)
	require.NoError(t, repo.Revoke(context.Background(), "jti-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepository_RevokeAllActiveByUserID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`SET revoked_at`).
		WithArgs("user-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 3))

	repo := postgres.NewTokenRepository(mock)
	revoked, err := repo.RevokeAllActiveByUserID(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, int64(3), revoked)
	assert.NoError(t, mock.ExpectationsWereMet())
}
