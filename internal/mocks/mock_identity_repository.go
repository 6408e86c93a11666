package mocks

import (
	"context"

	"github.com/praveshgrewal/UCMS/domain"
)

// MockIdentityRepository implements domain.IdentityRepository for testing
type MockIdentityRepository struct {
	CreateFunc         func(ctx context.Context, identity *domain.Identity) error
	FindByIDFunc       func(ctx context.Context, id uint) (*domain.Identity, error)
	FindByUsernameFunc func(ctx context.Context, username string) (*domain.Identity, error)
}

// NewMockIdentityRepository creates a new MockIdentityRepository with default behaviors
func NewMockIdentityRepository() *MockIdentityRepository {
	return &MockIdentityRepository{}
}

func (m *MockIdentityRepository) Create(ctx context.Context, identity *domain.Identity) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, identity)
	}
	identity.ID = 1
	return nil
}

func (m *MockIdentityRepository) FindByID(ctx context.Context, id uint) (*domain.Identity, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrIdentityNotFound
}

func (m *MockIdentityRepository) FindByUsername(ctx context.Context, username string) (*domain.Identity, error) {
	if m.FindByUsernameFunc != nil {
		return m.FindByUsernameFunc(ctx, username)
	}
	return nil, domain.ErrIdentityNotFound
}

// Compile-time interface compliance verification
var _ domain.IdentityRepository = (*MockIdentityRepository)(nil)
