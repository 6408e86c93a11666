package mocks

import (
	"context"

	"github.com/praveshgrewal/UCMS/domain"
)

// MockLoginSessionRepository implements domain.LoginSessionRepository for testing
type MockLoginSessionRepository struct {
	CreateFunc func(ctx context.Context, session *domain.LoginSession) error
	FindFunc   func(ctx context.Context, token string) (*domain.LoginSession, error)
	DeleteFunc func(ctx context.Context, token string) error
}

// NewMockLoginSessionRepository creates a new MockLoginSessionRepository with default behaviors
func NewMockLoginSessionRepository() *MockLoginSessionRepository {
	return &MockLoginSessionRepository{}
}

func (m *MockLoginSessionRepository) Create(ctx context.Context, session *domain.LoginSession) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, session)
	}
	return nil
}

func (m *MockLoginSessionRepository) Find(ctx context.Context, token string) (*domain.LoginSession, error) {
	if m.FindFunc != nil {
		return m.FindFunc(ctx, token)
	}
	return nil, domain.ErrLoginSessionExpired
}

func (m *MockLoginSessionRepository) Delete(ctx context.Context, token string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, token)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.LoginSessionRepository = (*MockLoginSessionRepository)(nil)
