package mocks

import (
	"context"
	"time"

	"github.com/praveshgrewal/UCMS/domain"
)

// MockCodeService implements domain.CodeService for testing
type MockCodeService struct {
	IssueFunc     func(ctx context.Context, contact string) (*domain.VerificationCode, bool, error)
	ConfirmFunc   func(ctx context.Context, contact, code string) error
	ConfirmedFunc func(ctx context.Context, contact string) (bool, error)
	CanResendFunc func(ctx context.Context, contact string) (bool, int64, error)
}

// NewMockCodeService creates a new MockCodeService with default behaviors
func NewMockCodeService() *MockCodeService {
	return &MockCodeService{}
}

func (m *MockCodeService) Issue(ctx context.Context, contact string) (*domain.VerificationCode, bool, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx, contact)
	}
	return &domain.VerificationCode{
		Contact:   contact,
		Code:      "123456",
		ExpiresAt: time.Now().Add(5 * time.Minute),
	}, true, nil
}

func (m *MockCodeService) Confirm(ctx context.Context, contact, code string) error {
	if m.ConfirmFunc != nil {
		return m.ConfirmFunc(ctx, contact, code)
	}
	return nil
}

func (m *MockCodeService) Confirmed(ctx context.Context, contact string) (bool, error) {
	if m.ConfirmedFunc != nil {
		return m.ConfirmedFunc(ctx, contact)
	}
	return false, nil
}

func (m *MockCodeService) CanResend(ctx context.Context, contact string) (bool, int64, error) {
	if m.CanResendFunc != nil {
		return m.CanResendFunc(ctx, contact)
	}
	return true, 0, nil
}

// Compile-time interface compliance verification
var _ domain.CodeService = (*MockCodeService)(nil)
