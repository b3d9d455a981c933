package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/adminkit/session-service/internal/audit"
	"github.com/adminkit/session-service/internal/auth/domain"
	"github.com/adminkit/session-service/internal/auth/dto"
	autherror "github.com/adminkit/session-service/internal/errors"
	"github.com/adminkit/session-service/internal/logging"
	"github.com/adminkit/session-service/internal/ratelimit"
	"github.com/adminkit/session-service/internal/reqctx"
)

// dummyHash is compared when no user row exists so the response time does
// not reveal whether a username is taken.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// SignInLimiter gates sign-in attempts before any database access.
type SignInLimiter interface {
	Consume(ctx context.Context, ip, userName, userAgent string) error
	ResetUsername(ctx context.Context, userName string) error
}

// AuthAuditor records authentication events best-effort.
type AuthAuditor interface {
	AuthEvent(ctx context.Context, event string, entityID string, actorUserID *string)
	AuthFail(ctx context.Context, userID, userName string)
}

type SessionService struct {
	users   domain.UserRepository
	tokens  domain.RefreshTokenStore
	minter  TokenGenerator
	limiter SignInLimiter
	lockout *Lockout
	auditor AuthAuditor
	log     logging.Logger
	now     func() time.Time
}

func NewSessionService(users domain.UserRepository, tokens domain.RefreshTokenStore,
	minter TokenGenerator, limiter SignInLimiter, lockout *Lockout,
	auditor AuthAuditor, log logging.Logger) *SessionService {
	return &SessionService{
		users:   users,
		tokens:  tokens,
		minter:  minter,
		lockout: lockout,
		limiter: limiter,
		auditor: auditor,
		log:     log,
		now:     time.Now,
	}
}

// SignIn runs the full gauntlet: rate limits, restriction, lock, password,
// lockout bookkeeping, token minting and audit. The refresh token is
// returned separately so the handler can place it in the cookie and nowhere
// else.
func (s *SessionService) SignIn(ctx context.Context, input dto.SignInInput) (*dto.SignInResult, string, error) {
	client := reqctx.Client(ctx)

	if err := s.limiter.Consume(ctx, client.IP, input.UserName, client.UserAgent); err != nil {
		var rl *ratelimit.RateLimitError
		if errors.As(err, &rl) {
			return nil, "", autherror.RateLimited(rl.MsBeforeNext)
		}
		return nil, "", err
	}

	user, err := s.users.GetByUserName(ctx, input.UserName)
	if err != nil {
		return nil, "", err
	}

	if user == nil {
		// Burn the same bcrypt cost as the real comparison.
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(input.Password))
		s.auditor.AuthFail(ctx, "", input.UserName)
		return nil, "", autherror.Unauthorized("invalid credentials")
	}

	now := s.now()

	if user.IsRestricted {
		s.auditor.AuthFail(ctx, user.ID, input.UserName)
		return nil, "", autherror.Locked(autherror.CodeAccountRestricted)
	}

	if user.Locked(now) {
		s.auditor.AuthFail(ctx, user.ID, input.UserName)
		return nil, "", autherror.Locked(autherror.CodeAccountLocked)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return nil, "", s.registerFailure(ctx, user, input.UserName, now)
	}

	if s.lockout.ResetAfterSuccess(user) {
		if err := s.users.UpdateLoginState(ctx, user); err != nil {
			return nil, "", err
		}
	}

	if err := s.limiter.ResetUsername(ctx, input.UserName); err != nil {
		s.log.Warn(ctx, "failed to reset rate limit bucket", "error", err)
	}

	pair, err := s.minter.Generate(user)
	if err != nil {
		return nil, "", err
	}

	if err := s.tokens.Store(ctx, &domain.RefreshToken{
		ID:        pair.RefreshTokenID,
		UserID:    user.ID,
		UserAgent: client.UserAgent,
		IPAddress: client.IP,
		ExpiresAt: pair.RefreshExpiresAt,
		CreatedAt: now,
	}); err != nil {
		return nil, "", err
	}

	s.auditor.AuthEvent(ctx, audit.EventSignInSuccess, user.ID, &user.ID)

	return &dto.SignInResult{
		User:      toUserOutput(user),
		Token:     pair.AccessToken,
		ExpiresIn: int64(s.minter.AccessExpiry().Seconds()),
	}, pair.RefreshToken, nil
}

func (s *SessionService) registerFailure(ctx context.Context, user *domain.User, userName string, now time.Time) error {
	outcome := s.lockout.RegisterFailedLogin(user, now)
	if err := s.users.UpdateLoginState(ctx, user); err != nil {
		return err
	}

	s.auditor.AuthFail(ctx, user.ID, userName)

	switch outcome {
	case OutcomeRestricted:
		return autherror.Locked(autherror.CodeAccountRestricted)
	case OutcomeLocked:
		return autherror.Locked(autherror.CodeAccountLocked)
	default:
		return autherror.Unauthorized("invalid credentials")
	}
}

// Refresh rotates a presented refresh token. Presenting a rotated or revoked
// token is a reuse event: the user's whole active chain is revoked and the
// caller must re-authenticate. Benign retry and theft are deliberately not
// distinguished.
func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (*dto.RefreshResult, string, error) {
	claims, err := s.minter.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, "", autherror.Unauthorized("invalid refresh token")
	}

	row, err := s.tokens.Get(ctx, claims.ID)
	if err != nil {
		return nil, "", err
	}
	if row == nil {
		return nil, "", autherror.Unauthorized("invalid refresh token")
	}

	if !row.Active() {
		return nil, "", s.handleReuse(ctx, row)
	}

	if s.now().After(row.ExpiresAt) {
		return nil, "", autherror.Unauthorized("invalid refresh token")
	}

	user, err := s.users.GetByID(ctx, row.UserID)
	if err != nil {
		return nil, "", err
	}
	if user == nil || user.IsRestricted {
		return nil, "", autherror.Unauthorized("invalid refresh token")
	}

	pair, err := s.minter.Generate(user)
	if err != nil {
		return nil, "", err
	}

	client := reqctx.Client(ctx)
	err = s.tokens.Rotate(ctx, row.ID, &domain.RefreshToken{
		ID:        pair.RefreshTokenID,
		UserID:    user.ID,
		UserAgent: client.UserAgent,
		IPAddress: client.IP,
		ExpiresAt: pair.RefreshExpiresAt,
		CreatedAt: s.now(),
	})
	if err != nil {
		if errors.Is(err, autherror.ErrRefreshTokenRotated) {
			// Lost the rotation race: another caller already rotated this
			// token, so this presentation is reuse by definition.
			return nil, "", s.handleReuse(ctx, row)
		}
		return nil, "", err
	}

	s.auditor.AuthEvent(ctx, audit.EventTokenRefresh, user.ID, &user.ID)

	return &dto.RefreshResult{
		AccessToken: pair.AccessToken,
		ExpiresIn:   int64(s.minter.AccessExpiry().Seconds()),
	}, pair.RefreshToken, nil
}

func (s *SessionService) handleReuse(ctx context.Context, row *domain.RefreshToken) error {
	revoked, err := s.tokens.RevokeAllActiveByUserID(ctx, row.UserID)
	if err != nil {
		s.log.Error(ctx, "failed to revoke token chain after reuse", "user_id", row.UserID, "error", err)
	} else {
		s.log.Warn(ctx, "refresh token reuse detected, chain revoked",
			"user_id", row.UserID, "token_id", row.ID, "revoked", revoked)
	}

	s.auditor.AuthEvent(ctx, audit.EventTokenReuse, row.ID, &row.UserID)

	return autherror.Unauthorized("invalid refresh token")
}

// SignOut revokes the presented refresh row. Invalid or missing tokens are
// not an error; the cookie is cleared either way.
func (s *SessionService) SignOut(ctx context.Context, refreshToken string) error {
	claims, err := s.minter.VerifyRefresh(refreshToken)
	if err != nil {
		return nil
	}

	row, err := s.tokens.Get(ctx, claims.ID)
	if err != nil {
		return err
	}
	if row == nil {
		return nil
	}

	// Rotated and Revoked are terminal; a stale cookie (for example after a
	// lost rotation response) must not re-stamp the row.
	if !row.Active() {
		return nil
	}

	if err := s.tokens.Revoke(ctx, row.ID); err != nil {
		return err
	}

	s.auditor.AuthEvent(ctx, audit.EventSignOut, row.UserID, &row.UserID)

	return nil
}

// Me resolves the authenticated user behind verified access claims. A token
// whose user has vanished is treated as unauthorized.
func (s *SessionService) Me(ctx context.Context, userID string) (*dto.UserOutput, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, autherror.Unauthorized("unknown user")
	}

	out := toUserOutput(user)
	return &out, nil
}

func toUserOutput(u *domain.User) dto.UserOutput {
	return dto.UserOutput{
		ID:        u.ID,
		UserName:  u.UserName,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		RoleName:  u.RoleName,
		RoleID:    u.RoleID,
	}
}
