package mocks

import (
	"context"

	"github.com/praveshgrewal/UCMS/domain"
)

// MockProfileRepository implements domain.ProfileRepository for testing
type MockProfileRepository struct {
	CreateFunc                func(ctx context.Context, profile *domain.Profile) error
	UpdateFunc                func(ctx context.Context, profile *domain.Profile) error
	DeleteFunc                func(ctx context.Context, id uint) error
	FindByIDFunc              func(ctx context.Context, id uint) (*domain.Profile, error)
	FindLatestByContactFunc   func(ctx context.Context, email, phone string) (*domain.Profile, error)
	FindApprovedByContactFunc func(ctx context.Context, contact string) (*domain.Profile, error)
	FindByIdentityFunc        func(ctx context.Context, identityID uint) (*domain.Profile, error)
	BindIdentityFunc          func(ctx context.Context, profileID, identityID uint) (domain.BindOutcome, error)
	ListPendingFunc           func(ctx context.Context) ([]domain.Profile, error)
	SearchFunc                func(ctx context.Context, filter domain.DirectoryFilter) ([]domain.Profile, error)
}

// NewMockProfileRepository creates a new MockProfileRepository with default behaviors
func NewMockProfileRepository() *MockProfileRepository {
	return &MockProfileRepository{}
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, profile)
	}
	profile.ID = 1
	return nil
}

func (m *MockProfileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, profile)
	}
	return nil
}

func (m *MockProfileRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockProfileRepository) FindByID(ctx context.Context, id uint) (*domain.Profile, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrProfileNotFound
}

func (m *MockProfileRepository) FindLatestByContact(ctx context.Context, email, phone string) (*domain.Profile, error) {
	if m.FindLatestByContactFunc != nil {
		return m.FindLatestByContactFunc(ctx, email, phone)
	}
	return nil, domain.ErrProfileNotFound
}

func (m *MockProfileRepository) FindApprovedByContact(ctx context.Context, contact string) (*domain.Profile, error) {
	if m.FindApprovedByContactFunc != nil {
		return m.FindApprovedByContactFunc(ctx, contact)
	}
	return nil, domain.ErrProfileNotFound
}

func (m *MockProfileRepository) FindByIdentity(ctx context.Context, identityID uint) (*domain.Profile, error) {
	if m.FindByIdentityFunc != nil {
		return m.FindByIdentityFunc(ctx, identityID)
	}
	return nil, domain.ErrProfileNotFound
}

func (m *MockProfileRepository) BindIdentity(ctx context.Context, profileID, identityID uint) (domain.BindOutcome, error) {
	if m.BindIdentityFunc != nil {
		return m.BindIdentityFunc(ctx, profileID, identityID)
	}
	return domain.BindBound, nil
}

func (m *MockProfileRepository) ListPending(ctx context.Context) ([]domain.Profile, error) {
	if m.ListPendingFunc != nil {
		return m.ListPendingFunc(ctx)
	}
	return nil, nil
}

func (m *MockProfileRepository) Search(ctx context.Context, filter domain.DirectoryFilter) ([]domain.Profile, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, filter)
	}
	return nil, nil
}

// Compile-time interface compliance verification
var _ domain.ProfileRepository = (*MockProfileRepository)(nil)
