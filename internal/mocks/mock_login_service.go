package mocks

import (
	"context"

	"github.com/praveshgrewal/UCMS/domain"
)

// MockLoginService implements domain.LoginService for testing
type MockLoginService struct {
	RequestLoginFunc func(ctx context.Context, contact string) (*domain.LoginSession, error)
	ConfirmLoginFunc func(ctx context.Context, token, code string) (*domain.AuthResult, error)
	LogoutFunc       func(ctx context.Context, sessionID string) error
}

// NewMockLoginService creates a new MockLoginService with default behaviors
func NewMockLoginService() *MockLoginService {
	return &MockLoginService{}
}

func (m *MockLoginService) RequestLogin(ctx context.Context, contact string) (*domain.LoginSession, error) {
	if m.RequestLoginFunc != nil {
		return m.RequestLoginFunc(ctx, contact)
	}
	return nil, domain.ErrProfileNotFound
}

func (m *MockLoginService) ConfirmLogin(ctx context.Context, token, code string) (*domain.AuthResult, error) {
	if m.ConfirmLoginFunc != nil {
		return m.ConfirmLoginFunc(ctx, token, code)
	}
	return nil, domain.ErrLoginSessionExpired
}

func (m *MockLoginService) Logout(ctx context.Context, sessionID string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, sessionID)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.LoginService = (*MockLoginService)(nil)
