package domain

import "time"

type User struct {
	ID           string
	UserName     string
	PasswordHash string
	FirstName    string
	LastName     string
	RoleID       int
	RoleName     string

	FailedLoginCount   int
	LockedUntil        *time.Time
	BruteWindowStart   *time.Time
	BruteStrikeCount   int
	IsRestricted       bool
	CauseOfRestriction *string
	DateOfRestriction  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Locked reports whether a temporary lock is still in effect.
func (u *User) Locked(now time.Time) bool {
	return u.LockedUntil != nil && u.LockedUntil.After(now)
}

// RefreshToken is one link in a user's rotation chain. A row is Active while
// both RevokedAt and RotatedAt are nil, Rotated once RotatedAt is set
// (ReplacedByTokenID points at the successor), and Revoked once RevokedAt is
// set. Rotated and Revoked are terminal.
type RefreshToken struct {
	ID                string // jti
	UserID            string
	UserAgent         string
	IPAddress         string
	ExpiresAt         time.Time
	CreatedAt         time.Time
	RevokedAt         *time.Time
	RotatedAt         *time.Time
	ReplacedByTokenID *string
}

func (rt *RefreshToken) Active() bool {
	return rt.RevokedAt == nil && rt.RotatedAt == nil
}

type Role struct {
	ID   int
	Name string
}
