package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/praveshgrewal/UCMS/domain"
)

// ProfileRepositoryImpl implements domain.ProfileRepository using GORM
type ProfileRepositoryImpl struct {
	db *gorm.DB
}

// DBProfile represents the database model for Profile (with GORM tags)
type DBProfile struct {
	ID    uint   `gorm:"primaryKey"`
	Name  string `gorm:"size:255"`
	Email string `gorm:"index;size:255"`
	Phone string `gorm:"index;size:100"`

	AlternatePhone      string `gorm:"size:100"`
	PhotoURL            string `gorm:"size:512"`
	AcademicAssociation string `gorm:"size:255"`
	JoiningYearUG       string `gorm:"size:100"`
	JoiningYearPG       string `gorm:"size:100"`
	Specialty           string `gorm:"size:255"`
	Country             string `gorm:"size:100"`
	State               string `gorm:"size:100"`
	City                string `gorm:"size:100"`
	WorkAssociation     string `gorm:"size:255"`
	Designation         string `gorm:"size:255"`
	Hospital            string `gorm:"size:255"`

	Status   string `gorm:"index;size:20;default:pending"`
	Verified bool

	// The unique index is what enforces the one-profile-per-identity
	// invariant; BindIdentity depends on it.
	IdentityID *uint `gorm:"uniqueIndex"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBProfile) TableName() string {
	return "profiles"
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) domain.ProfileRepository {
	return &ProfileRepositoryImpl{db: db}
}

// Create implements domain.ProfileRepository
func (r *ProfileRepositoryImpl) Create(ctx context.Context, profile *domain.Profile) error {
	dbProfile := r.domainToDB(profile)
	if err := r.db.WithContext(ctx).Create(dbProfile).Error; err != nil {
		return err
	}
	profile.ID = dbProfile.ID
	profile.CreatedAt = dbProfile.CreatedAt
	profile.UpdatedAt = dbProfile.UpdatedAt
	return nil
}

// Update implements domain.ProfileRepository
func (r *ProfileRepositoryImpl) Update(ctx context.Context, profile *domain.Profile) error {
	dbProfile := r.domainToDB(profile)
	dbProfile.CreatedAt = profile.CreatedAt
	return r.db.WithContext(ctx).Save(dbProfile).Error
}

// Delete implements domain.ProfileRepository
func (r *ProfileRepositoryImpl) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&DBProfile{}, id).Error
}

// FindByID implements domain.ProfileRepository
func (r *ProfileRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Profile, error) {
	var dbProfile DBProfile
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbProfile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbProfile), nil
}

// FindLatestByContact implements domain.ProfileRepository. Email matches
// case-insensitively, phone exactly; ties go to the most recent row.
func (r *ProfileRepositoryImpl) FindLatestByContact(ctx context.Context, email, phone string) (*domain.Profile, error) {
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)
	if email == "" && phone == "" {
		return nil, domain.ErrProfileNotFound
	}

	query := r.db.WithContext(ctx)
	switch {
	case email != "" && phone != "":
		query = query.Where("LOWER(email) = LOWER(?) OR phone = ?", email, phone)
	case email != "":
		query = query.Where("LOWER(email) = LOWER(?)", email)
	default:
		query = query.Where("phone = ?", phone)
	}

	var dbProfile DBProfile
	err := query.Order("created_at DESC, id DESC").First(&dbProfile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbProfile), nil
}

// FindApprovedByContact implements domain.ProfileRepository. A profile
// already bound to an identity wins over newer unbound ones so that a
// returning user never spawns a second identity for the same person.
func (r *ProfileRepositoryImpl) FindApprovedByContact(ctx context.Context, contact string) (*domain.Profile, error) {
	contact = strings.TrimSpace(contact)
	if contact == "" {
		return nil, domain.ErrProfileNotFound
	}

	var dbProfile DBProfile
	err := r.db.WithContext(ctx).
		Where("status = ?", string(domain.StatusApproved)).
		Where("LOWER(email) = LOWER(?) OR phone = ?", contact, contact).
		Order("(identity_id IS NOT NULL) DESC, created_at DESC, id DESC").
		First(&dbProfile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbProfile), nil
}

// FindByIdentity implements domain.ProfileRepository
func (r *ProfileRepositoryImpl) FindByIdentity(ctx context.Context, identityID uint) (*domain.Profile, error) {
	var dbProfile DBProfile
	err := r.db.WithContext(ctx).Where("identity_id = ?", identityID).First(&dbProfile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbProfile), nil
}

// BindIdentity implements domain.ProfileRepository. The conditional update
// only touches an unbound profile; the unique index on identity_id rejects
// a bind against an identity another profile already owns, so two
// concurrent confirmations can never double-bind.
func (r *ProfileRepositoryImpl) BindIdentity(ctx context.Context, profileID, identityID uint) (domain.BindOutcome, error) {
	result := r.db.WithContext(ctx).
		Model(&DBProfile{}).
		Where("id = ? AND identity_id IS NULL", profileID).
		Update("identity_id", identityID)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domain.BindIdentityOwned, nil
		}
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return domain.BindProfileBound, nil
	}
	return domain.BindBound, nil
}

// ListPending implements domain.ProfileRepository
func (r *ProfileRepositoryImpl) ListPending(ctx context.Context) ([]domain.Profile, error) {
	var dbProfiles []DBProfile
	err := r.db.WithContext(ctx).
		Where("status = ?", string(domain.StatusPending)).
		Order("created_at DESC, id DESC").
		Find(&dbProfiles).Error
	if err != nil {
		return nil, err
	}

	profiles := make([]domain.Profile, 0, len(dbProfiles))
	for i := range dbProfiles {
		profiles = append(profiles, *r.dbToDomain(&dbProfiles[i]))
	}
	return profiles, nil
}

// Search implements domain.ProfileRepository. Only approved profiles are
// searchable, and an empty filter returns nothing rather than the whole
// directory.
func (r *ProfileRepositoryImpl) Search(ctx context.Context, filter domain.DirectoryFilter) ([]domain.Profile, error) {
	if filter.Empty() {
		return nil, nil
	}

	query := r.db.WithContext(ctx).Where("status = ?", string(domain.StatusApproved))

	if filter.Name != "" {
		query = query.Where("LOWER(name) LIKE ?", like(filter.Name))
	}
	if filter.JoiningYear != "" {
		query = query.Where("joining_year_ug = ? OR joining_year_pg = ?", filter.JoiningYear, filter.JoiningYear)
	}
	if filter.WorkAssociation != "" {
		query = query.Where("LOWER(work_association) LIKE ?", like(filter.WorkAssociation))
	}
	if filter.Specialty != "" {
		query = query.Where("LOWER(specialty) LIKE ?", like(filter.Specialty))
	}
	if filter.Location != "" {
		pattern := like(filter.Location)
		query = query.Where("LOWER(city) LIKE ? OR LOWER(state) LIKE ? OR LOWER(country) LIKE ?", pattern, pattern, pattern)
	}
	if filter.Designation != "" {
		query = query.Where("LOWER(designation) LIKE ?", like(filter.Designation))
	}

	var dbProfiles []DBProfile
	if err := query.Order("name ASC").Find(&dbProfiles).Error; err != nil {
		return nil, err
	}

	profiles := make([]domain.Profile, 0, len(dbProfiles))
	for i := range dbProfiles {
		profiles = append(profiles, *r.dbToDomain(&dbProfiles[i]))
	}
	return profiles, nil
}

func like(term string) string {
	return "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
}

// domainToDB converts domain profile to database profile
func (r *ProfileRepositoryImpl) domainToDB(profile *domain.Profile) *DBProfile {
	return &DBProfile{
		ID:                  profile.ID,
		Name:                profile.Name,
		Email:               profile.Email,
		Phone:               profile.Phone,
		AlternatePhone:      profile.AlternatePhone,
		PhotoURL:            profile.PhotoURL,
		AcademicAssociation: profile.AcademicAssociation,
		JoiningYearUG:       profile.JoiningYearUG,
		JoiningYearPG:       profile.JoiningYearPG,
		Specialty:           profile.Specialty,
		Country:             profile.Country,
		State:               profile.State,
		City:                profile.City,
		WorkAssociation:     profile.WorkAssociation,
		Designation:         profile.Designation,
		Hospital:            profile.Hospital,
		Status:              string(profile.Status),
		Verified:            profile.Verified,
		IdentityID:          profile.IdentityID,
	}
}

// dbToDomain converts database profile to domain profile
func (r *ProfileRepositoryImpl) dbToDomain(dbProfile *DBProfile) *domain.Profile {
	return &domain.Profile{
		ID:                  dbProfile.ID,
		Name:                dbProfile.Name,
		Email:               dbProfile.Email,
		Phone:               dbProfile.Phone,
		AlternatePhone:      dbProfile.AlternatePhone,
		PhotoURL:            dbProfile.PhotoURL,
		AcademicAssociation: dbProfile.AcademicAssociation,
		JoiningYearUG:       dbProfile.JoiningYearUG,
		JoiningYearPG:       dbProfile.JoiningYearPG,
		Specialty:           dbProfile.Specialty,
		Country:             dbProfile.Country,
		State:               dbProfile.State,
		City:                dbProfile.City,
		WorkAssociation:     dbProfile.WorkAssociation,
		Designation:         dbProfile.Designation,
		Hospital:            dbProfile.Hospital,
		Status:              domain.ProfileStatus(dbProfile.Status),
		Verified:            dbProfile.Verified,
		IdentityID:          dbProfile.IdentityID,
		CreatedAt:           dbProfile.CreatedAt,
		UpdatedAt:           dbProfile.UpdatedAt,
	}
}
