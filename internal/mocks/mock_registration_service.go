package mocks

import (
	"context"

	"github.com/praveshgrewal/UCMS/domain"
)

// MockRegistrationService implements domain.RegistrationService for testing
type MockRegistrationService struct {
	SubmitFunc               func(ctx context.Context, profile *domain.Profile) (*domain.SubmissionResult, error)
	CompleteVerificationFunc func(ctx context.Context, profileID uint, phoneCode, emailCode string) error
	ResendFunc               func(ctx context.Context, contact string, channel domain.Channel) error
}

// NewMockRegistrationService creates a new MockRegistrationService with default behaviors
func NewMockRegistrationService() *MockRegistrationService {
	return &MockRegistrationService{}
}

func (m *MockRegistrationService) Submit(ctx context.Context, profile *domain.Profile) (*domain.SubmissionResult, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, profile)
	}
	return &domain.SubmissionResult{ProfileID: 1, SMSSent: true, EmailSent: true}, nil
}

func (m *MockRegistrationService) CompleteVerification(ctx context.Context, profileID uint, phoneCode, emailCode string) error {
	if m.CompleteVerificationFunc != nil {
		return m.CompleteVerificationFunc(ctx, profileID, phoneCode, emailCode)
	}
	return nil
}

func (m *MockRegistrationService) Resend(ctx context.Context, contact string, channel domain.Channel) error {
	if m.ResendFunc != nil {
		return m.ResendFunc(ctx, contact, channel)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.RegistrationService = (*MockRegistrationService)(nil)
