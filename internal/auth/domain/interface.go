package domain

//go:generate mockgen -destination=../../mocks/mock_repositories.go -package=mocks github.com/adminkit/session-service/internal/auth/domain UserRepository,RefreshTokenStore

import "context"

type UserRepository interface {
	GetByUserName(ctx context.Context, userName string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	// UpdateLoginState persists the lockout-related columns of the user row
	// (failed count, lock, brute window, restriction) in a single write.
	UpdateLoginState(ctx context.Context, u *User) error
}

type RefreshTokenStore interface {
	Get(ctx context.Context, id string) (*RefreshToken, error)
	Store(ctx context.Context, rt *RefreshToken) error
	// Rotate atomically marks the row identified by oldID as rotated, stores
	// the successor and links it to the old row, all in one transaction.
	// Returns ErrRefreshTokenRotated when the row was already rotated or
	// revoked by a concurrent caller.
	Rotate(ctx context.Context, oldID string, successor *RefreshToken) error
	Revoke(ctx context.Context, id string) error
	// RevokeAllActiveByUserID terminates every active token of the user.
	// Called when a rotated or revoked token is presented again.
	RevokeAllActiveByUserID(ctx context.Context, userID string) (int64, error)
}
