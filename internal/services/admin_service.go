package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/praveshgrewal/UCMS/domain"
)

// AdminServiceImpl implements domain.AdminService
type AdminServiceImpl struct {
	profiles   domain.ProfileRepository
	identities domain.IdentityRepository
	sessions   domain.SessionRepository
	passwords  domain.PasswordService
	tokens     domain.TokenService
	logger     *zap.Logger

	sessionTTL time.Duration
	accessTTL  time.Duration
}

// NewAdminService creates a new admin service
func NewAdminService(
	profiles domain.ProfileRepository,
	identities domain.IdentityRepository,
	sessions domain.SessionRepository,
	passwords domain.PasswordService,
	tokens domain.TokenService,
	logger *zap.Logger,
	sessionTTL, accessTTL time.Duration,
) domain.AdminService {
	return &AdminServiceImpl{
		profiles:   profiles,
		identities: identities,
		sessions:   sessions,
		passwords:  passwords,
		tokens:     tokens,
		logger:     logger,
		sessionTTL: sessionTTL,
		accessTTL:  accessTTL,
	}
}

// Login implements domain.AdminService. Only identities with the admin
// role and a password hash can authenticate here.
func (s *AdminServiceImpl) Login(ctx context.Context, username, password string) (*domain.AuthResult, error) {
	identity, err := s.identities.FindByUsername(ctx, username)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if identity.Role != domain.RoleAdmin || identity.PasswordHash == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if !s.passwords.Verify(identity.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now()
	session := &domain.Session{
		ID:         uuid.NewString(),
		IdentityID: identity.ID,
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

	return &domain.AuthResult{
		Identity:     identity,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		SessionID:    session.ID,
		ExpiresIn:    int64(s.accessTTL.Seconds()),
	}, nil
}

// Approve implements domain.AdminService. Approval also marks the profile
// verified: an admin vouching for a record outranks pending code checks.
func (s *AdminServiceImpl) Approve(ctx context.Context, profileID uint) error {
	profile, err := s.profiles.FindByID(ctx, profileID)
	if err != nil {
		return err
	}

	profile.Status = domain.StatusApproved
	profile.Verified = true
	if err := s.profiles.Update(ctx, profile); err != nil {
		return fmt.Errorf("failed to approve profile: %w", err)
	}

	s.logger.Info("profile approved", zap.Uint("profile_id", profileID))
	return nil
}

// Reject implements domain.AdminService
func (s *AdminServiceImpl) Reject(ctx context.Context, profileID uint) error {
	profile, err := s.profiles.FindByID(ctx, profileID)
	if err != nil {
		return err
	}

	profile.Status = domain.StatusRejected
	if err := s.profiles.Update(ctx, profile); err != nil {
		return fmt.Errorf("failed to reject profile: %w", err)
	}

	s.logger.Info("profile rejected", zap.Uint("profile_id", profileID))
	return nil
}

// Delete implements domain.AdminService
func (s *AdminServiceImpl) Delete(ctx context.Context, profileID uint) error {
	if err := s.profiles.Delete(ctx, profileID); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	s.logger.Info("profile deleted", zap.Uint("profile_id", profileID))
	return nil
}

// UpdateProfile implements domain.AdminService. Workflow state and the
// identity binding are not editable through here, only the data fields.
func (s *AdminServiceImpl) UpdateProfile(ctx context.Context, profile *domain.Profile) error {
	existing, err := s.profiles.FindByID(ctx, profile.ID)
	if err != nil {
		return err
	}

	profile.Status = existing.Status
	profile.Verified = existing.Verified
	profile.IdentityID = existing.IdentityID
	profile.CreatedAt = existing.CreatedAt

	if err := s.profiles.Update(ctx, profile); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	s.logger.Info("profile edited by admin", zap.Uint("profile_id", profile.ID))
	return nil
}

// PendingRequests implements domain.AdminService. Repeated submissions for
// the same contact pair collapse to the latest row so duplicate cards do
// not appear in review.
func (s *AdminServiceImpl) PendingRequests(ctx context.Context) ([]domain.Profile, error) {
	pending, err := s.profiles.ListPending(ctx)
	if err != nil {
		return nil, err
	}

	type contactKey struct {
		email string
		phone string
	}

	seen := make(map[contactKey]struct{}, len(pending))
	unique := make([]domain.Profile, 0, len(pending))
	for _, p := range pending {
		key := contactKey{
			email: strings.ToLower(strings.TrimSpace(p.Email)),
			phone: strings.TrimSpace(p.Phone),
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, p)
	}

	return unique, nil
}
