package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/praveshgrewal/UCMS/domain"
)

// RegistrationServiceImpl implements domain.RegistrationService
type RegistrationServiceImpl struct {
	profiles domain.ProfileRepository
	codes    domain.CodeService
	logger   *zap.Logger

	// blockApprovedDuplicates switches the reconciler from forking a new
	// pending row on an approved match to rejecting the submission.
	blockApprovedDuplicates bool
}

// NewRegistrationService creates a new registration service
func NewRegistrationService(profiles domain.ProfileRepository, codes domain.CodeService, logger *zap.Logger, blockApprovedDuplicates bool) domain.RegistrationService {
	return &RegistrationServiceImpl{
		profiles:                profiles,
		codes:                   codes,
		logger:                  logger,
		blockApprovedDuplicates: blockApprovedDuplicates,
	}
}

// Submit implements domain.RegistrationService.
//
// Reconciliation rules, against the most recent profile matching the
// submitted email (case-insensitive) or phone (exact):
//   - approved match: create a new pending row so admins re-review it; the
//     approved record is never touched
//   - pending or rejected match: update that row in place
//   - no match: create a new row
//
// The resulting profile is always pending and unverified, and a code is
// dispatched on each channel present on it.
func (s *RegistrationServiceImpl) Submit(ctx context.Context, profile *domain.Profile) (*domain.SubmissionResult, error) {
	profile.Email = strings.TrimSpace(profile.Email)
	profile.Phone = strings.TrimSpace(profile.Phone)
	if !profile.HasContact() {
		return nil, domain.ErrContactRequired
	}

	existing, err := s.profiles.FindLatestByContact(ctx, profile.Email, profile.Phone)
	if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
		return nil, fmt.Errorf("failed to match existing profile: %w", err)
	}

	profile.Status = domain.StatusPending
	profile.Verified = false

	switch {
	case existing != nil && existing.Status == domain.StatusApproved:
		if s.blockApprovedDuplicates {
			return nil, domain.ErrAlreadyRegistered
		}
		// Fork: a fresh pending row surfaces for admin re-review.
		profile.ID = 0
		profile.IdentityID = nil
		if err := s.profiles.Create(ctx, profile); err != nil {
			return nil, fmt.Errorf("failed to create duplicate pending profile: %w", err)
		}
		s.logger.Info("created pending duplicate of approved profile",
			zap.Uint("profile_id", profile.ID),
			zap.Uint("approved_id", existing.ID))

	case existing != nil:
		profile.ID = existing.ID
		profile.IdentityID = existing.IdentityID
		profile.CreatedAt = existing.CreatedAt
		if err := s.profiles.Update(ctx, profile); err != nil {
			return nil, fmt.Errorf("failed to update pending profile: %w", err)
		}
		s.logger.Info("updated existing profile from resubmission",
			zap.Uint("profile_id", profile.ID),
			zap.String("previous_status", string(existing.Status)))

	default:
		if err := s.profiles.Create(ctx, profile); err != nil {
			return nil, fmt.Errorf("failed to create profile: %w", err)
		}
		s.logger.Info("created pending profile", zap.Uint("profile_id", profile.ID))
	}

	result := &domain.SubmissionResult{ProfileID: profile.ID}
	if profile.Phone != "" {
		result.SMSSent = s.issue(ctx, profile.Phone)
	}
	if profile.Email != "" {
		result.EmailSent = s.issue(ctx, profile.Email)
	}

	return result, nil
}

// issue dispatches a code on one channel. A failure on either channel
// must not block the other, so errors are reduced to a flag here.
func (s *RegistrationServiceImpl) issue(ctx context.Context, contact string) bool {
	_, delivered, err := s.codes.Issue(ctx, contact)
	if err != nil {
		s.logger.Error("code issue failed", zap.String("contact", contact), zap.Error(err))
		return false
	}
	return delivered
}

// CompleteVerification implements domain.RegistrationService. Each channel
// present on the profile must confirm; a channel confirmed on an earlier
// attempt stays confirmed (its code stays consumed), so a retry only needs
// the failing channel's code.
func (s *RegistrationServiceImpl) CompleteVerification(ctx context.Context, profileID uint, phoneCode, emailCode string) error {
	profile, err := s.profiles.FindByID(ctx, profileID)
	if err != nil {
		return err
	}

	phoneOK, err := s.channelOK(ctx, profile.Phone, phoneCode)
	if err != nil {
		return err
	}
	emailOK, err := s.channelOK(ctx, profile.Email, emailCode)
	if err != nil {
		return err
	}

	if !phoneOK || !emailOK {
		return domain.ErrCodeInvalid
	}

	profile.Verified = true
	if err := s.profiles.Update(ctx, profile); err != nil {
		return fmt.Errorf("failed to mark profile verified: %w", err)
	}

	// Verification and admin approval are independent gates; the profile
	// stays pending until an admin acts.
	s.logger.Info("profile verified", zap.Uint("profile_id", profile.ID))
	return nil
}

func (s *RegistrationServiceImpl) channelOK(ctx context.Context, contact, code string) (bool, error) {
	if contact == "" {
		return true, nil
	}

	err := s.codes.Confirm(ctx, contact, code)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, domain.ErrCodeInvalid) {
		return false, err
	}

	// The submitted code did not match, but the channel may have been
	// confirmed on an earlier attempt.
	return s.codes.Confirmed(ctx, contact)
}

// Resend implements domain.RegistrationService
func (s *RegistrationServiceImpl) Resend(ctx context.Context, contact string, channel domain.Channel) error {
	contact = strings.TrimSpace(contact)
	if contact == "" || domain.ClassifyContact(contact) != channel {
		return domain.ErrContactRequired
	}

	ok, wait, err := s.codes.CanResend(ctx, contact)
	if err != nil {
		return err
	}
	if !ok {
		s.logger.Info("resend throttled", zap.String("contact", contact), zap.Int64("wait_seconds", wait))
		return domain.ErrResendThrottled
	}

	if _, delivered, err := s.codes.Issue(ctx, contact); err != nil {
		return err
	} else if !delivered {
		s.logger.Warn("resend dispatched but delivery failed", zap.String("contact", contact))
	}
	return nil
}
