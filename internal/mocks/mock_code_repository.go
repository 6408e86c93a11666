package mocks

import (
	"context"
	"time"

	"github.com/praveshgrewal/UCMS/domain"
)

// MockCodeRepository implements domain.CodeRepository for testing
type MockCodeRepository struct {
	ReplaceFunc       func(ctx context.Context, code *domain.VerificationCode) error
	FindLiveFunc      func(ctx context.Context, contact, code string, now time.Time) (*domain.VerificationCode, error)
	MarkConsumedFunc  func(ctx context.Context, id uint) error
	HasConsumedFunc   func(ctx context.Context, contact string) (bool, error)
	DeleteExpiredFunc func(ctx context.Context, now time.Time) error
}

// NewMockCodeRepository creates a new MockCodeRepository with default behaviors
func NewMockCodeRepository() *MockCodeRepository {
	return &MockCodeRepository{}
}

func (m *MockCodeRepository) Replace(ctx context.Context, code *domain.VerificationCode) error {
	if m.ReplaceFunc != nil {
		return m.ReplaceFunc(ctx, code)
	}
	code.ID = 1
	return nil
}

func (m *MockCodeRepository) FindLive(ctx context.Context, contact, code string, now time.Time) (*domain.VerificationCode, error) {
	if m.FindLiveFunc != nil {
		return m.FindLiveFunc(ctx, contact, code, now)
	}
	return nil, domain.ErrCodeInvalid
}

func (m *MockCodeRepository) MarkConsumed(ctx context.Context, id uint) error {
	if m.MarkConsumedFunc != nil {
		return m.MarkConsumedFunc(ctx, id)
	}
	return nil
}

func (m *MockCodeRepository) HasConsumed(ctx context.Context, contact string) (bool, error) {
	if m.HasConsumedFunc != nil {
		return m.HasConsumedFunc(ctx, contact)
	}
	return false, nil
}

func (m *MockCodeRepository) DeleteExpired(ctx context.Context, now time.Time) error {
	if m.DeleteExpiredFunc != nil {
		return m.DeleteExpiredFunc(ctx, now)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.CodeRepository = (*MockCodeRepository)(nil)
