package repositories

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/praveshgrewal/UCMS/domain"
)

// setupTestDB creates an in-memory SQLite database for testing.
// TranslateError is on, matching production, so unique-constraint
// violations surface as gorm.ErrDuplicatedKey.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	if err := db.AutoMigrate(&DBProfile{}, &DBVerificationCode{}, &DBIdentity{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	return db
}

func uintPtr(v uint) *uint { return &v }

func TestProfileRepositoryImpl_FindLatestByContact(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		setupData     func(db *gorm.DB)
		email         string
		phone         string
		expectedID    uint
		expectedError error
	}{
		{
			name: "email matches case-insensitively",
			setupData: func(db *gorm.DB) {
				db.Create(&DBProfile{ID: 1, Name: "Asha", Email: "Asha@Example.com", Status: "pending", CreatedAt: base})
			},
			email:      "asha@example.com",
			expectedID: 1,
		},
		{
			name: "phone matches exactly",
			setupData: func(db *gorm.DB) {
				db.Create(&DBProfile{ID: 2, Name: "Ravi", Phone: "+919876543210", Status: "pending", CreatedAt: base})
			},
			phone:      "+919876543210",
			expectedID: 2,
		},
		{
			name: "most recent row wins when several match",
			setupData: func(db *gorm.DB) {
				db.Create(&DBProfile{ID: 3, Name: "Old", Email: "dup@example.com", Status: "approved", CreatedAt: base})
				db.Create(&DBProfile{ID: 4, Name: "New", Email: "dup@example.com", Status: "pending", CreatedAt: base.Add(time.Hour)})
			},
			email:      "dup@example.com",
			expectedID: 4,
		},
		{
			name: "either channel may match",
			setupData: func(db *gorm.DB) {
				db.Create(&DBProfile{ID: 5, Name: "Mina", Email: "mina@example.com", Phone: "+15550001111", Status: "pending", CreatedAt: base})
			},
			email:      "other@example.com",
			phone:      "+15550001111",
			expectedID: 5,
		},
		{
			name:          "no match",
			setupData:     func(db *gorm.DB) {},
			email:         "nobody@example.com",
			expectedError: domain.ErrProfileNotFound,
		},
		{
			name: "empty arguments never match",
			setupData: func(db *gorm.DB) {
				db.Create(&DBProfile{ID: 6, Name: "Blank", Status: "pending", CreatedAt: base})
			},
			expectedError: domain.ErrProfileNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)
			tt.setupData(db)
			repo := NewProfileRepository(db)

			profile, err := repo.FindLatestByContact(context.Background(), tt.email, tt.phone)

			if tt.expectedError != nil {
				if err != tt.expectedError {
					t.Fatalf("expected error %v, got %v", tt.expectedError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if profile.ID != tt.expectedID {
				t.Errorf("expected profile %d, got %d", tt.expectedID, profile.ID)
			}
		})
	}
}

func TestProfileRepositoryImpl_FindApprovedByContact(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("ignores pending and rejected rows", func(t *testing.T) {
		db := setupTestDB(t)
		db.Create(&DBProfile{ID: 1, Email: "p@example.com", Status: "pending", CreatedAt: base})
		db.Create(&DBProfile{ID: 2, Email: "p@example.com", Status: "rejected", CreatedAt: base.Add(time.Hour)})
		repo := NewProfileRepository(db)

		_, err := repo.FindApprovedByContact(context.Background(), "p@example.com")
		if err != domain.ErrProfileNotFound {
			t.Fatalf("expected ErrProfileNotFound, got %v", err)
		}
	})

	t.Run("bound profile wins over newer unbound one", func(t *testing.T) {
		db := setupTestDB(t)
		db.Create(&DBProfile{ID: 1, Email: "a@example.com", Status: "approved", IdentityID: uintPtr(9), CreatedAt: base})
		db.Create(&DBProfile{ID: 2, Email: "a@example.com", Status: "approved", CreatedAt: base.Add(time.Hour)})
		repo := NewProfileRepository(db)

		profile, err := repo.FindApprovedByContact(context.Background(), "a@example.com")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if profile.ID != 1 {
			t.Errorf("expected bound profile 1, got %d", profile.ID)
		}
	})

	t.Run("matches by phone", func(t *testing.T) {
		db := setupTestDB(t)
		db.Create(&DBProfile{ID: 3, Phone: "+15550002222", Status: "approved", CreatedAt: base})
		repo := NewProfileRepository(db)

		profile, err := repo.FindApprovedByContact(context.Background(), "+15550002222")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if profile.ID != 3 {
			t.Errorf("expected profile 3, got %d", profile.ID)
		}
	})
}

func TestProfileRepositoryImpl_BindIdentity(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("binds an unbound profile", func(t *testing.T) {
		db := setupTestDB(t)
		db.Create(&DBProfile{ID: 1, Email: "a@example.com", Status: "approved", CreatedAt: base})
		repo := NewProfileRepository(db)

		outcome, err := repo.BindIdentity(context.Background(), 1, 42)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if outcome != domain.BindBound {
			t.Fatalf("expected BindBound, got %v", outcome)
		}

		profile, err := repo.FindByID(context.Background(), 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if profile.IdentityID == nil || *profile.IdentityID != 42 {
			t.Errorf("expected identity 42 bound, got %v", profile.IdentityID)
		}
	})

	t.Run("reports identity owned by another profile", func(t *testing.T) {
		db := setupTestDB(t)
		db.Create(&DBProfile{ID: 1, Email: "owner@example.com", Status: "approved", IdentityID: uintPtr(42), CreatedAt: base})
		db.Create(&DBProfile{ID: 2, Email: "late@example.com", Status: "approved", CreatedAt: base})
		repo := NewProfileRepository(db)

		outcome, err := repo.BindIdentity(context.Background(), 2, 42)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if outcome != domain.BindIdentityOwned {
			t.Fatalf("expected BindIdentityOwned, got %v", outcome)
		}

		profile, _ := repo.FindByID(context.Background(), 2)
		if profile.IdentityID != nil {
			t.Error("losing profile must stay unbound")
		}
	})

	t.Run("reports profile already bound", func(t *testing.T) {
		db := setupTestDB(t)
		db.Create(&DBProfile{ID: 1, Email: "a@example.com", Status: "approved", IdentityID: uintPtr(7), CreatedAt: base})
		repo := NewProfileRepository(db)

		outcome, err := repo.BindIdentity(context.Background(), 1, 99)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if outcome != domain.BindProfileBound {
			t.Fatalf("expected BindProfileBound, got %v", outcome)
		}

		profile, _ := repo.FindByID(context.Background(), 1)
		if profile.IdentityID == nil || *profile.IdentityID != 7 {
			t.Error("existing bind must be untouched")
		}
	})

	t.Run("bind is idempotent-safe for missing profile", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewProfileRepository(db)

		outcome, err := repo.BindIdentity(context.Background(), 999, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if outcome != domain.BindProfileBound {
			t.Fatalf("expected BindProfileBound for missing profile, got %v", outcome)
		}
	})
}

func TestProfileRepositoryImpl_Search(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	seed := func(db *gorm.DB) {
		db.Create(&DBProfile{ID: 1, Name: "Dr Asha Rao", Specialty: "Cardiology", City: "Pune", State: "Maharashtra", Country: "India", JoiningYearUG: "2001", Designation: "Consultant", Status: "approved", CreatedAt: base})
		db.Create(&DBProfile{ID: 2, Name: "Dr Ravi Shah", Specialty: "Neurology", City: "Mumbai", State: "Maharashtra", Country: "India", JoiningYearPG: "2001", Designation: "Professor", Status: "approved", CreatedAt: base})
		db.Create(&DBProfile{ID: 3, Name: "Dr Pending", Specialty: "Cardiology", City: "Pune", Status: "pending", CreatedAt: base})
	}

	tests := []struct {
		name        string
		filter      domain.DirectoryFilter
		expectedIDs []uint
	}{
		{
			name:        "empty filter matches nothing",
			filter:      domain.DirectoryFilter{},
			expectedIDs: nil,
		},
		{
			name:        "name is a case-insensitive substring match",
			filter:      domain.DirectoryFilter{Name: "asha"},
			expectedIDs: []uint{1},
		},
		{
			name:        "specialty excludes non-approved profiles",
			filter:      domain.DirectoryFilter{Specialty: "cardiology"},
			expectedIDs: []uint{1},
		},
		{
			name:        "joining year matches UG or PG",
			filter:      domain.DirectoryFilter{JoiningYear: "2001"},
			expectedIDs: []uint{1, 2},
		},
		{
			name:        "location spans city state and country",
			filter:      domain.DirectoryFilter{Location: "maharashtra"},
			expectedIDs: []uint{1, 2},
		},
		{
			name:        "filters combine",
			filter:      domain.DirectoryFilter{Location: "maharashtra", Designation: "professor"},
			expectedIDs: []uint{2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)
			seed(db)
			repo := NewProfileRepository(db)

			profiles, err := repo.Search(context.Background(), tt.filter)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			got := make(map[uint]bool, len(profiles))
			for _, p := range profiles {
				got[p.ID] = true
			}
			if len(profiles) != len(tt.expectedIDs) {
				t.Fatalf("expected %d results, got %d", len(tt.expectedIDs), len(profiles))
			}
			for _, id := range tt.expectedIDs {
				if !got[id] {
					t.Errorf("expected profile %d in results", id)
				}
			}
		})
	}
}

func TestProfileRepositoryImpl_ListPending(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	db := setupTestDB(t)
	db.Create(&DBProfile{ID: 1, Name: "First", Status: "pending", CreatedAt: base})
	db.Create(&DBProfile{ID: 2, Name: "Approved", Status: "approved", CreatedAt: base})
	db.Create(&DBProfile{ID: 3, Name: "Second", Status: "pending", CreatedAt: base.Add(time.Hour)})
	repo := NewProfileRepository(db)

	profiles, err := repo.ListPending(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("expected 2 pending profiles, got %d", len(profiles))
	}
	if profiles[0].ID != 3 || profiles[1].ID != 1 {
		t.Errorf("expected newest-first order [3 1], got [%d %d]", profiles[0].ID, profiles[1].ID)
	}
}
