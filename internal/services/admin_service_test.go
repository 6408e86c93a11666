package services

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/praveshgrewal/UCMS/domain"
	"github.com/praveshgrewal/UCMS/internal/mocks"
)

type adminFixture struct {
	profiles   *mocks.MockProfileRepository
	identities *mocks.MockIdentityRepository
	sessions   *mocks.MockSessionRepository
	passwords  *mocks.MockPasswordService
	tokens     *mocks.MockTokenService
}

func newAdminFixture() *adminFixture {
	return &adminFixture{
		profiles:   mocks.NewMockProfileRepository(),
		identities: mocks.NewMockIdentityRepository(),
		sessions:   mocks.NewMockSessionRepository(),
		passwords:  mocks.NewMockPasswordService(),
		tokens:     mocks.NewMockTokenService(),
	}
}

func (f *adminFixture) service() domain.AdminService {
	return NewAdminService(
		f.profiles, f.identities, f.sessions,
		f.passwords, f.tokens, zap.NewNop(),
		24*time.Hour, 15*time.Minute,
	)
}

func TestAdminServiceImpl_Login(t *testing.T) {
	adminIdentity := &domain.Identity{
		ID:           1,
		Username:     "admin",
		PasswordHash: "hashed:secret",
		Role:         domain.RoleAdmin,
	}

	tests := []struct {
		name          string
		identity      *domain.Identity
		username      string
		password      string
		expectedError error
	}{
		{
			name:     "valid admin credentials",
			identity: adminIdentity,
			username: "admin",
			password: "secret",
		},
		{
			name:          "unknown username",
			identity:      nil,
			username:      "ghost",
			password:      "secret",
			expectedError: domain.ErrInvalidCredentials,
		},
		{
			name:          "wrong password",
			identity:      adminIdentity,
			username:      "admin",
			password:      "wrong",
			expectedError: domain.ErrInvalidCredentials,
		},
		{
			name: "alumni identity cannot use the admin door",
			identity: &domain.Identity{
				ID:           2,
				Username:     "alum@example.com",
				PasswordHash: "hashed:secret",
				Role:         domain.RoleAlumni,
			},
			username:      "alum@example.com",
			password:      "secret",
			expectedError: domain.ErrInvalidCredentials,
		},
		{
			name: "admin identity without a password hash",
			identity: &domain.Identity{
				ID:       3,
				Username: "nopass",
				Role:     domain.RoleAdmin,
			},
			username:      "nopass",
			password:      "secret",
			expectedError: domain.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAdminFixture()
			f.identities.FindByUsernameFunc = func(ctx context.Context, username string) (*domain.Identity, error) {
				if tt.identity != nil && username == tt.identity.Username {
					return tt.identity, nil
				}
				return nil, domain.ErrIdentityNotFound
			}

			result, err := f.service().Login(context.Background(), tt.username, tt.password)
			if tt.expectedError != nil {
				if err != tt.expectedError {
					t.Fatalf("expected error %v, got %v", tt.expectedError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.AccessToken == "" || result.SessionID == "" {
				t.Error("expected tokens and a session")
			}
			if result.Identity.Role != domain.RoleAdmin {
				t.Errorf("expected admin identity, got %s", result.Identity.Role)
			}
		})
	}
}

func TestAdminServiceImpl_Approve(t *testing.T) {
	f := newAdminFixture()
	f.profiles.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Profile, error) {
		return &domain.Profile{ID: id, Status: domain.StatusPending, Verified: false}, nil
	}
	var updated *domain.Profile
	f.profiles.UpdateFunc = func(ctx context.Context, p *domain.Profile) error {
		updated = p
		return nil
	}

	if err := f.service().Approve(context.Background(), 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated == nil || updated.Status != domain.StatusApproved {
		t.Fatal("expected profile to be approved")
	}
	if !updated.Verified {
		t.Error("approval must also mark the profile verified")
	}
}

func TestAdminServiceImpl_Reject(t *testing.T) {
	f := newAdminFixture()
	f.profiles.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Profile, error) {
		return &domain.Profile{ID: id, Status: domain.StatusPending, Verified: true}, nil
	}
	var updated *domain.Profile
	f.profiles.UpdateFunc = func(ctx context.Context, p *domain.Profile) error {
		updated = p
		return nil
	}

	if err := f.service().Reject(context.Background(), 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated == nil || updated.Status != domain.StatusRejected {
		t.Fatal("expected profile to be rejected")
	}
	if !updated.Verified {
		t.Error("rejection must not erase the verification flag")
	}
}

func TestAdminServiceImpl_UpdateProfile(t *testing.T) {
	identityID := uint(9)
	createdAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	f := newAdminFixture()
	f.profiles.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Profile, error) {
		return &domain.Profile{
			ID:         id,
			Name:       "Before",
			Status:     domain.StatusApproved,
			Verified:   true,
			IdentityID: &identityID,
			CreatedAt:  createdAt,
		}, nil
	}
	var updated *domain.Profile
	f.profiles.UpdateFunc = func(ctx context.Context, p *domain.Profile) error {
		updated = p
		return nil
	}

	edit := &domain.Profile{
		ID:   5,
		Name: "After",
		// An attempt to smuggle workflow state through the edit
		Status:   domain.StatusRejected,
		Verified: false,
	}
	if err := f.service().UpdateProfile(context.Background(), edit); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.Name != "After" {
		t.Errorf("expected data fields to change, got %q", updated.Name)
	}
	if updated.Status != domain.StatusApproved || !updated.Verified {
		t.Error("workflow state must be preserved across admin edits")
	}
	if updated.IdentityID == nil || *updated.IdentityID != 9 {
		t.Error("identity binding must be preserved across admin edits")
	}
	if !updated.CreatedAt.Equal(createdAt) {
		t.Error("creation time must be preserved across admin edits")
	}
}

func TestAdminServiceImpl_PendingRequests(t *testing.T) {
	f := newAdminFixture()
	f.profiles.ListPendingFunc = func(ctx context.Context) ([]domain.Profile, error) {
		// Newest first, as the repository returns them
		return []domain.Profile{
			{ID: 4, Email: "Dup@Example.com", Phone: "+15550001111"},
			{ID: 3, Email: "dup@example.com", Phone: "+15550001111"},
			{ID: 2, Email: "other@example.com"},
			{ID: 1, Phone: "+15550009999"},
		}, nil
	}

	requests, err := f.service().PendingRequests(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(requests) != 3 {
		t.Fatalf("expected 3 deduplicated requests, got %d", len(requests))
	}
	if requests[0].ID != 4 {
		t.Errorf("expected the newest duplicate to survive, got %d", requests[0].ID)
	}
	for _, r := range requests {
		if r.ID == 3 {
			t.Error("older duplicate must be collapsed")
		}
	}
}
