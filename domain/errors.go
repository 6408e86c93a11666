package domain

import "errors"

// Registration errors
var (
	ErrContactRequired   = errors.New("email or phone is required")
	ErrProfileNotFound   = errors.New("profile not found")
	ErrAlreadyRegistered = errors.New("an approved profile already exists for this contact")
)

// Verification errors. Wrong, consumed and expired codes are deliberately
// indistinguishable to callers.
var (
	ErrCodeInvalid     = errors.New("invalid or expired code")
	ErrResendThrottled = errors.New("code resend limit exceeded")
)

// Identity errors
var (
	ErrIdentityNotFound   = errors.New("identity not found")
	ErrIdentityExists     = errors.New("identity already exists")
	ErrIdentityTaken      = errors.New("identity already owned by another profile")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Session errors
var (
	ErrSessionNotFound     = errors.New("session not found")
	ErrSessionExpired      = errors.New("session has expired")
	ErrLoginSessionExpired = errors.New("login session expired")
)
