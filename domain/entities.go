package domain

import "time"

// ProfileStatus is the admin-review state of an alumni profile.
type ProfileStatus string

const (
	StatusPending  ProfileStatus = "pending"
	StatusApproved ProfileStatus = "approved"
	StatusRejected ProfileStatus = "rejected"
)

// Profile represents an alumni registration record
type Profile struct {
	ID    uint
	Name  string
	Email string
	Phone string

	AlternatePhone      string
	PhotoURL            string
	AcademicAssociation string
	JoiningYearUG       string
	JoiningYearPG       string
	Specialty           string
	Country             string
	State               string
	City                string
	WorkAssociation     string
	Designation         string
	Hospital            string

	Status   ProfileStatus
	Verified bool

	// IdentityID is set lazily on first successful login, never at
	// registration time. At most one profile may own a given identity.
	IdentityID *uint

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasContact reports whether the profile is reachable by at least one channel.
func (p *Profile) HasContact() bool {
	return p.Email != "" || p.Phone != ""
}

// VerificationCode is an outstanding one-time code for a contact.
// Codes are contact-centric, not profile-centric: a code for a contact
// applies to whichever profile currently holds that email or phone.
type VerificationCode struct {
	ID        uint
	Contact   string
	Code      string
	Consumed  bool
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Live reports whether the code can still be confirmed.
func (v *VerificationCode) Live(now time.Time) bool {
	return !v.Consumed && v.ExpiresAt.After(now)
}

// Identity is an authenticatable login identity. Alumni identities are
// created on first OTP login and carry no password; admin identities
// authenticate with a bcrypt hash.
type Identity struct {
	ID           uint
	Username     string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const (
	RoleAlumni = "alumni"
	RoleAdmin  = "admin"
)

// LoginSession is the short-lived context between requesting a login code
// and confirming it.
type LoginSession struct {
	Token     string
	Contact   string
	Channel   Channel
	ProfileID uint
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Session represents an authenticated session
type Session struct {
	ID         string
	IdentityID uint
	ProfileID  uint
	ExpiresAt  time.Time
	CreatedAt  time.Time
}

// SubmissionResult reports the outcome of a registration submission.
// Dispatch flags are tracked per channel; a failed send never fails the
// submission itself.
type SubmissionResult struct {
	ProfileID uint
	SMSSent   bool
	EmailSent bool
}

// AuthResult represents authentication outcome
type AuthResult struct {
	Identity     *Identity
	Profile      *Profile
	AccessToken  string
	RefreshToken string
	SessionID    string
	ExpiresIn    int64
}

// BindOutcome is the tagged result of an identity bind attempt.
type BindOutcome int

const (
	// BindBound means the profile now owns the identity.
	BindBound BindOutcome = iota
	// BindIdentityOwned means another profile already owns the identity.
	BindIdentityOwned
	// BindProfileBound means the profile already carries an identity.
	BindProfileBound
)

// DirectoryFilter narrows the approved-alumni directory search.
// An empty filter matches nothing; at least one field must be set.
type DirectoryFilter struct {
	Name            string
	JoiningYear     string
	WorkAssociation string
	Specialty       string
	Location        string
	Designation     string
}

// Empty reports whether no filter field is set.
func (f DirectoryFilter) Empty() bool {
	return f.Name == "" && f.JoiningYear == "" && f.WorkAssociation == "" &&
		f.Specialty == "" && f.Location == "" && f.Designation == ""
}

// TokenClaims represents JWT token claims
type TokenClaims struct {
	IdentityID uint   `json:"identity_id"`
	Role       string `json:"role"`
	SessionID  string `json:"session_id,omitempty"`
	IssuedAt   int64  `json:"iat"`
	ExpiresAt  int64  `json:"exp"`
}
