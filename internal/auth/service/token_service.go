package service

//go:generate mockgen -destination=../../mocks/mock_service.go -package=mocks github.com/adminkit/session-service/internal/auth/service TokenGenerator,SignInLimiter,AuthAuditor

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/adminkit/session-service/internal/auth/domain"
)

// RefreshCookieName is scoped to the session path and never readable by
// client script.
const (
	RefreshCookieName = "refresh_token"
	RefreshCookiePath = "/api/v1/session"
)

type TokenGenerator interface {
	Generate(user *domain.User) (*TokenPair, error)
	VerifyAccess(tokenString string) (*AccessClaims, error)
	VerifyRefresh(tokenString string) (*RefreshClaims, error)
	AccessExpiry() time.Duration
	RefreshExpiry() time.Duration
	SetRefreshCookie(c *fiber.Ctx, token string)
	ClearRefreshCookie(c *fiber.Ctx)
}

type TokenService struct {
	accessSecret  string
	refreshSecret string
	issuer        string
	audience      string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
	cookieSecure  bool
}

// AccessClaims are the stateless claims of a short-lived access token.
type AccessClaims struct {
	jwt.RegisteredClaims
	UserName string `json:"uname"`
	Role     string `json:"role"`
	RoleID   int    `json:"roleId"`
}

// RefreshClaims carry only a subject and a unique identifier; nothing else in
// a refresh token is trusted. The ID (jti) is the join key into the persisted
// token store.
type RefreshClaims struct {
	jwt.RegisteredClaims
}

// TokenPair is the result of minting both token classes for a user.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	RefreshTokenID   string // jti of the refresh token
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

func NewTokenService(accessSecret, refreshSecret, issuer, audience string,
	accessExpiry, refreshExpiry time.Duration, cookieSecure bool) *TokenService {
	return &TokenService{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		issuer:        issuer,
		audience:      audience,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
		cookieSecure:  cookieSecure,
	}
}

func (ts *TokenService) Generate(user *domain.User) (*TokenPair, error) {
	now := time.Now()
	jti := uuid.NewString()

	accessClaims := AccessClaims{
		UserName: user.UserName,
		Role:     user.RoleName,
		RoleID:   user.RoleID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    ts.issuer,
			Audience:  jwt.ClaimStrings{ts.audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.accessExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	refreshClaims := RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   user.ID,
			Issuer:    ts.issuer,
			Audience:  jwt.ClaimStrings{ts.audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.refreshExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).
		SignedString([]byte(ts.accessSecret))
	if err != nil {
		return nil, err
	}

	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).
		SignedString([]byte(ts.refreshSecret))
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		RefreshTokenID:   jti,
		AccessExpiresAt:  now.Add(ts.accessExpiry),
		RefreshExpiresAt: now.Add(ts.refreshExpiry),
	}, nil
}

func (ts *TokenService) AccessExpiry() time.Duration  { return ts.accessExpiry }
func (ts *TokenService) RefreshExpiry() time.Duration { return ts.refreshExpiry }

// VerifyAccess parses and validates an access token by signature, issuer and
// audience.
func (ts *TokenService) VerifyAccess(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := ts.verify(tokenString, claims, ts.accessSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

// VerifyRefresh validates a refresh token's signature and expiry and returns
// its claims. The persisted row behind the jti decides whether the token is
// still usable.
func (ts *TokenService) VerifyRefresh(tokenString string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := ts.verify(tokenString, claims, ts.refreshSecret); err != nil {
		return nil, err
	}
	if claims.ID == "" {
		return nil, fmt.Errorf("refresh token missing jti")
	}
	return claims, nil
}

func (ts *TokenService) verify(tokenString string, claims jwt.Claims, secret string) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(ts.issuer), jwt.WithAudience(ts.audience))
	if err != nil {
		return err
	}
	if !token.Valid {
		return fmt.Errorf("invalid token")
	}
	return nil
}

// SetRefreshCookie transports the refresh token exclusively via an httpOnly,
// path-scoped cookie; it must never appear in a response body.
func (ts *TokenService) SetRefreshCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     RefreshCookieName,
		Value:    token,
		Path:     RefreshCookiePath,
		MaxAge:   int(ts.refreshExpiry.Seconds()),
		Secure:   ts.cookieSecure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

func (ts *TokenService) ClearRefreshCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     RefreshCookieName,
		Value:    "",
		Path:     RefreshCookiePath,
		MaxAge:   -1,
		Secure:   ts.cookieSecure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}
