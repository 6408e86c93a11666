package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/praveshgrewal/UCMS/domain"
)

// LoginServiceImpl implements domain.LoginService
type LoginServiceImpl struct {
	profiles      domain.ProfileRepository
	identities    domain.IdentityRepository
	loginSessions domain.LoginSessionRepository
	sessions      domain.SessionRepository
	codes         domain.CodeService
	tokens        domain.TokenService
	logger        *zap.Logger

	loginSessionTTL time.Duration
	sessionTTL      time.Duration
	accessTTL       time.Duration
}

// NewLoginService creates a new login service
func NewLoginService(
	profiles domain.ProfileRepository,
	identities domain.IdentityRepository,
	loginSessions domain.LoginSessionRepository,
	sessions domain.SessionRepository,
	codes domain.CodeService,
	tokens domain.TokenService,
	logger *zap.Logger,
	loginSessionTTL, sessionTTL, accessTTL time.Duration,
) domain.LoginService {
	return &LoginServiceImpl{
		profiles:        profiles,
		identities:      identities,
		loginSessions:   loginSessions,
		sessions:        sessions,
		codes:           codes,
		tokens:          tokens,
		logger:          logger,
		loginSessionTTL: loginSessionTTL,
		sessionTTL:      sessionTTL,
		accessTTL:       accessTTL,
	}
}

// RequestLogin implements domain.LoginService. Only approved profiles can
// log in; anything else reports a generic not-found so the response leaks
// nothing about which channel matched.
func (s *LoginServiceImpl) RequestLogin(ctx context.Context, contact string) (*domain.LoginSession, error) {
	contact = strings.TrimSpace(contact)
	channel := domain.ClassifyContact(contact)
	if channel == domain.ChannelUnknown {
		return nil, domain.ErrContactRequired
	}

	profile, err := s.profiles.FindApprovedByContact(ctx, contact)
	if err != nil {
		return nil, err
	}

	if _, delivered, err := s.codes.Issue(ctx, contact); err != nil {
		return nil, fmt.Errorf("failed to issue login code: %w", err)
	} else if !delivered {
		s.logger.Warn("login code stored but delivery failed", zap.String("contact", contact))
	}

	now := time.Now()
	session := &domain.LoginSession{
		Token:     uuid.NewString(),
		Contact:   contact,
		Channel:   channel,
		ProfileID: profile.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.loginSessionTTL),
	}
	if err := s.loginSessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to store login session: %w", err)
	}

	return session, nil
}

// ConfirmLogin implements domain.LoginService. On the first successful
// login the resolved profile is bound to an identity; the uniqueness
// invariant is enforced by the storage layer, and a conflict falls back to
// the identity's existing owner rather than failing the login.
func (s *LoginServiceImpl) ConfirmLogin(ctx context.Context, token, code string) (*domain.AuthResult, error) {
	login, err := s.loginSessions.Find(ctx, token)
	if err != nil {
		return nil, err
	}

	if err := s.codes.Confirm(ctx, login.Contact, code); err != nil {
		return nil, err
	}

	profile, err := s.resolveProfile(ctx, login)
	if err != nil {
		return nil, err
	}

	identity, profile, err := s.resolveIdentity(ctx, profile, login.Contact)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &domain.Session{
		ID:         uuid.NewString(),
		IdentityID: identity.ID,
		ProfileID:  profile.ID,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.sessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	accessToken, err := s.tokens.GenerateAccessToken(identity.ID, identity.Role, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := s.tokens.GenerateRefreshToken(identity.ID, identity.Role, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := s.loginSessions.Delete(ctx, token); err != nil {
		s.logger.Warn("failed to clear login session", zap.String("token", token), zap.Error(err))
	}

	s.logger.Info("otp login succeeded",
		zap.Uint("profile_id", profile.ID),
		zap.Uint("identity_id", identity.ID))

	return &domain.AuthResult{
		Identity:     identity,
		Profile:      profile,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		SessionID:    session.ID,
		ExpiresIn:    int64(s.accessTTL.Seconds()),
	}, nil
}

// resolveProfile prefers an approved profile already bound to an identity
// over the one recorded at request time, so the same person never spawns a
// second identity across logins.
func (s *LoginServiceImpl) resolveProfile(ctx context.Context, login *domain.LoginSession) (*domain.Profile, error) {
	profile, err := s.profiles.FindApprovedByContact(ctx, login.Contact)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, domain.ErrProfileNotFound) {
		return nil, err
	}
	return s.profiles.FindByID(ctx, login.ProfileID)
}

func (s *LoginServiceImpl) resolveIdentity(ctx context.Context, profile *domain.Profile, contact string) (*domain.Identity, *domain.Profile, error) {
	if profile.IdentityID != nil {
		identity, err := s.identities.FindByID(ctx, *profile.IdentityID)
		if err != nil {
			return nil, nil, err
		}
		return identity, profile, nil
	}

	identity, err := s.findOrCreateIdentity(ctx, profile, contact)
	if err != nil {
		return nil, nil, err
	}

	outcome, err := s.profiles.BindIdentity(ctx, profile.ID, identity.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to bind identity: %w", err)
	}

	switch outcome {
	case domain.BindBound:
		profile.IdentityID = &identity.ID

	case domain.BindIdentityOwned:
		// Another profile already owns this identity. Reuse the existing
		// owner rather than double-binding; logged, never surfaced.
		s.logger.Warn("identity bind conflict, reusing existing owner",
			zap.Uint("profile_id", profile.ID),
			zap.Uint("identity_id", identity.ID))
		owner, err := s.profiles.FindByIdentity(ctx, identity.ID)
		if err != nil {
			return nil, nil, err
		}
		profile = owner

	case domain.BindProfileBound:
		// The profile was bound concurrently; re-read and use whatever
		// identity won.
		profile, err = s.profiles.FindByID(ctx, profile.ID)
		if err != nil {
			return nil, nil, err
		}
		if profile.IdentityID == nil {
			return nil, nil, domain.ErrIdentityNotFound
		}
		identity, err = s.identities.FindByID(ctx, *profile.IdentityID)
		if err != nil {
			return nil, nil, err
		}
	}

	return identity, profile, nil
}

// findOrCreateIdentity looks for an identity under the login contact or
// either of the profile's contact strings before minting a new one. A
// create that loses a concurrent race falls back to re-reading.
func (s *LoginServiceImpl) findOrCreateIdentity(ctx context.Context, profile *domain.Profile, contact string) (*domain.Identity, error) {
	usernames := []string{contact}
	if profile.Email != "" && !strings.EqualFold(profile.Email, contact) {
		usernames = append(usernames, profile.Email)
	}
	if profile.Phone != "" && profile.Phone != contact {
		usernames = append(usernames, profile.Phone)
	}

	for _, username := range usernames {
		identity, err := s.identities.FindByUsername(ctx, username)
		if err == nil {
			return identity, nil
		}
		if !errors.Is(err, domain.ErrIdentityNotFound) {
			return nil, err
		}
	}

	email := profile.Email
	if domain.ClassifyContact(contact) == domain.ChannelEmail {
		email = contact
	}

	identity := &domain.Identity{
		Username: contact,
		Email:    email,
		Role:     domain.RoleAlumni,
	}
	if err := s.identities.Create(ctx, identity); err != nil {
		if errors.Is(err, domain.ErrIdentityExists) {
			return s.identities.FindByUsername(ctx, contact)
		}
		return nil, fmt.Errorf("failed to create identity: %w", err)
	}
	return identity, nil
}

// Logout implements domain.LoginService
func (s *LoginServiceImpl) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}
