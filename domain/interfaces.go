package domain

import (
	"context"
	"time"
)

// ProfileRepository defines alumni profile data access operations
type ProfileRepository interface {
	Create(ctx context.Context, profile *Profile) error
	Update(ctx context.Context, profile *Profile) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*Profile, error)

	// FindLatestByContact returns the most recently created profile whose
	// email matches case-insensitively or whose phone matches exactly.
	// Empty arguments never match.
	FindLatestByContact(ctx context.Context, email, phone string) (*Profile, error)

	// FindApprovedByContact restricts the match to approved profiles and
	// prefers one already bound to an identity over newer unbound ones.
	FindApprovedByContact(ctx context.Context, contact string) (*Profile, error)

	FindByIdentity(ctx context.Context, identityID uint) (*Profile, error)

	// BindIdentity attempts to make the profile the owner of the identity.
	// The ownership uniqueness invariant is enforced by the storage layer:
	// a bind against an identity another profile owns reports
	// BindIdentityOwned instead of double-binding.
	BindIdentity(ctx context.Context, profileID, identityID uint) (BindOutcome, error)

	ListPending(ctx context.Context) ([]Profile, error)
	Search(ctx context.Context, filter DirectoryFilter) ([]Profile, error)
}

// CodeRepository defines verification code data access operations.
// The store is upsert-keyed by contact: at most one live code exists per
// contact at any time.
type CodeRepository interface {
	// Replace atomically removes any prior codes for the contact and
	// persists the new one.
	Replace(ctx context.Context, code *VerificationCode) error

	// FindLive returns the unconsumed, unexpired code matching contact and
	// value, or ErrCodeInvalid.
	FindLive(ctx context.Context, contact, code string, now time.Time) (*VerificationCode, error)

	MarkConsumed(ctx context.Context, id uint) error

	// HasConsumed reports whether a consumed code exists for the contact,
	// i.e. the channel was already confirmed since the last issue.
	HasConsumed(ctx context.Context, contact string) (bool, error)

	DeleteExpired(ctx context.Context, now time.Time) error
}

// IdentityRepository defines login identity data access operations
type IdentityRepository interface {
	Create(ctx context.Context, identity *Identity) error
	FindByID(ctx context.Context, id uint) (*Identity, error)
	FindByUsername(ctx context.Context, username string) (*Identity, error)
}

// LoginSessionRepository holds the short-lived context between requesting
// and confirming a login code.
type LoginSessionRepository interface {
	Create(ctx context.Context, session *LoginSession) error
	Find(ctx context.Context, token string) (*LoginSession, error)
	Delete(ctx context.Context, token string) error
}

// SessionRepository defines authenticated session data access operations
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	FindByID(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}

// NotificationService is the outbound delivery gateway. Sends are
// fire-and-forget from the core's perspective: failures are logged by the
// caller, never propagated as hard errors.
type NotificationService interface {
	SendSMS(to, message string) error
	SendEmail(to, subject, body string) error
}

// CodeService issues and confirms one-time verification codes
type CodeService interface {
	// Issue generates a code for the contact, replacing any prior live
	// code, and attempts delivery on the contact's channel. The returned
	// flag reports delivery success; the code stays usable either way.
	Issue(ctx context.Context, contact string) (*VerificationCode, bool, error)

	// Confirm consumes the live code matching contact and value, or
	// returns ErrCodeInvalid.
	Confirm(ctx context.Context, contact, code string) error

	// Confirmed reports whether the contact's channel was already
	// confirmed since the last issue.
	Confirmed(ctx context.Context, contact string) (bool, error)

	// CanResend reports whether the resend throttle window for the
	// contact has passed, and if not, how many seconds remain.
	CanResend(ctx context.Context, contact string) (bool, int64, error)
}

// RegistrationService defines the registration and verification workflow
type RegistrationService interface {
	// Submit reconciles the submission against existing profiles, persists
	// a pending profile and dispatches a code on each present channel.
	Submit(ctx context.Context, profile *Profile) (*SubmissionResult, error)

	// CompleteVerification flips the profile to verified once every
	// channel present on it has confirmed. The profile stays pending for
	// admin review regardless.
	CompleteVerification(ctx context.Context, profileID uint, phoneCode, emailCode string) error

	Resend(ctx context.Context, contact string, channel Channel) error
}

// LoginService defines the returning-user OTP authentication flow
type LoginService interface {
	RequestLogin(ctx context.Context, contact string) (*LoginSession, error)
	ConfirmLogin(ctx context.Context, token, code string) (*AuthResult, error)
	Logout(ctx context.Context, sessionID string) error
}

// AdminService defines the review workflow and admin authentication
type AdminService interface {
	Login(ctx context.Context, username, password string) (*AuthResult, error)
	Approve(ctx context.Context, profileID uint) error
	Reject(ctx context.Context, profileID uint) error
	Delete(ctx context.Context, profileID uint) error
	UpdateProfile(ctx context.Context, profile *Profile) error

	// PendingRequests lists pending profiles, deduplicated to the latest
	// row per (email, phone) pair.
	PendingRequests(ctx context.Context) ([]Profile, error)
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines token operations
type TokenService interface {
	GenerateAccessToken(identityID uint, role string, sessionID string) (string, error)
	GenerateRefreshToken(identityID uint, role string, sessionID string) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	ValidateRefreshToken(token string) (*TokenClaims, error)
}
