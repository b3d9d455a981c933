package service

import (
	"time"

	"github.com/adminkit/session-service/internal/auth/domain"
)

// CauseDailyLockout is recorded when repeated lockouts inside the brute
// window escalate to a permanent restriction.
const CauseDailyLockout = "daily_lockout"

// LockoutConfig tunes the failed-login state machine.
type LockoutConfig struct {
	MaxFailedLogins   int           // failures that trigger a temporary lock
	LockDuration      time.Duration // length of the temporary lock
	BruteWindow       time.Duration // rolling window for counting lockouts
	MaxLockoutStrikes int           // lockouts inside the window before restriction
}

// FailedLoginOutcome describes what a failed attempt did to the user row.
type FailedLoginOutcome int

const (
	// OutcomeCounted means the failure only incremented the counter.
	OutcomeCounted FailedLoginOutcome = iota
	// OutcomeLocked means the failure triggered a temporary lock.
	OutcomeLocked
	// OutcomeRestricted means the lock was the final strike and the account
	// is now permanently restricted.
	OutcomeRestricted
)

// Lockout applies the failed-attempt state machine to user rows. It mutates
// the passed *domain.User in memory; the caller persists the row once per
// transition. The clock is always supplied by the service, never taken from
// request input.
type Lockout struct {
	cfg LockoutConfig
}

func NewLockout(cfg LockoutConfig) *Lockout {
	return &Lockout{cfg: cfg}
}

// RegisterFailedLogin increments the failed-attempt counter and, at the
// threshold, resets it, sets the temporary lock and evaluates the brute
// window: a stale or unset window restarts at one strike, otherwise the
// strike count grows and may tip the account into restriction.
func (l *Lockout) RegisterFailedLogin(u *domain.User, now time.Time) FailedLoginOutcome {
	u.FailedLoginCount++
	if u.FailedLoginCount < l.cfg.MaxFailedLogins {
		return OutcomeCounted
	}

	u.FailedLoginCount = 0
	lockedUntil := now.Add(l.cfg.LockDuration)
	u.LockedUntil = &lockedUntil

	if u.BruteWindowStart == nil || now.Sub(*u.BruteWindowStart) > l.cfg.BruteWindow {
		windowStart := now
		u.BruteWindowStart = &windowStart
		u.BruteStrikeCount = 1
	} else {
		u.BruteStrikeCount++
	}

	if u.BruteStrikeCount >= l.cfg.MaxLockoutStrikes {
		cause := CauseDailyLockout
		u.IsRestricted = true
		u.CauseOfRestriction = &cause
		u.DateOfRestriction = &now
		return OutcomeRestricted
	}

	return OutcomeLocked
}

// ResetAfterSuccess clears the failure counter and any lock after a
// successful sign-in. Strikes and the brute window are left untouched; a
// single success does not forgive earlier lockouts. Returns whether the row
// changed and needs persisting.
func (l *Lockout) ResetAfterSuccess(u *domain.User) bool {
	if u.FailedLoginCount == 0 && u.LockedUntil == nil {
		return false
	}
	u.FailedLoginCount = 0
	u.LockedUntil = nil
	return true
}
