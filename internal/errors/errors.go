// Package errors defines the typed error taxonomy of the session service.
// Every layer returns an *Error carrying an HTTP status and a machine-readable
// code; the fiber error handler is the single place that renders them.
package errors

import (
	"errors"
	"fmt"
)

const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeAccountLocked     = "ACCOUNT_LOCKED"
	CodeAccountRestricted = "ACCOUNT_RESTRICTED"
	CodeRateLimited       = "RATE_LIMITED"
	CodeNotFound          = "NOT_FOUND"
	CodeInternal          = "INTERNAL"
)

type Error struct {
	Status  int
	Code    string
	Message string
	// RetryAfterMs is set only for rate-limited errors.
	RetryAfterMs int64
	Err          error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) *Error {
	return &Error{Status: 400, Code: CodeValidation, Message: msg}
}

// Unauthorized responses are uniform on purpose: the same status, code and
// message regardless of whether the user exists, the password mismatched or
// the token was invalid, reused or expired.
func Unauthorized(msg string) *Error {
	return &Error{Status: 401, Code: CodeUnauthorized, Message: msg}
}

func Locked(code string) *Error {
	return &Error{Status: 423, Code: code, Message: "account is not available for sign-in"}
}

func RateLimited(retryAfterMs int64) *Error {
	return &Error{
		Status:       429,
		Code:         CodeRateLimited,
		Message:      "too many requests",
		RetryAfterMs: retryAfterMs,
	}
}

func NotFound(msg string) *Error {
	return &Error{Status: 404, Code: CodeNotFound, Message: msg}
}

func Internal(err error) *Error {
	return &Error{Status: 500, Code: CodeInternal, Message: "internal error", Err: err}
}

// As extracts an *Error from an error chain.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
	ErrRefreshTokenRevoked  = errors.New("refresh token revoked")
	ErrRefreshTokenRotated  = errors.New("refresh token already rotated")
	ErrRefreshTokenExpired  = errors.New("refresh token expired")
	ErrUserNotFound         = errors.New("user not found")
)
