package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/praveshgrewal/UCMS/domain"
)

// IdentityRepositoryImpl implements domain.IdentityRepository using GORM
type IdentityRepositoryImpl struct {
	db *gorm.DB
}

// DBIdentity represents the database model for Identity
type DBIdentity struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;size:255"`
	Email        string `gorm:"size:255"`
	PasswordHash string `gorm:"column:password;size:255"`
	Role         string `gorm:"index;size:64"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for GORM
func (DBIdentity) TableName() string {
	return "identities"
}

// NewIdentityRepository creates a new identity repository
func NewIdentityRepository(db *gorm.DB) domain.IdentityRepository {
	return &IdentityRepositoryImpl{db: db}
}

// Create implements domain.IdentityRepository. A concurrent create for the
// same username surfaces gorm.ErrDuplicatedKey via the unique index; the
// caller re-reads instead of failing the login.
func (r *IdentityRepositoryImpl) Create(ctx context.Context, identity *domain.Identity) error {
	dbIdentity := r.domainToDB(identity)
	if err := r.db.WithContext(ctx).Create(dbIdentity).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrIdentityExists
		}
		return err
	}
	identity.ID = dbIdentity.ID
	identity.CreatedAt = dbIdentity.CreatedAt
	identity.UpdatedAt = dbIdentity.UpdatedAt
	return nil
}

// FindByID implements domain.IdentityRepository
func (r *IdentityRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Identity, error) {
	var dbIdentity DBIdentity
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbIdentity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbIdentity), nil
}

// FindByUsername implements domain.IdentityRepository
func (r *IdentityRepositoryImpl) FindByUsername(ctx context.Context, username string) (*domain.Identity, error) {
	var dbIdentity DBIdentity
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&dbIdentity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbIdentity), nil
}

func (r *IdentityRepositoryImpl) domainToDB(identity *domain.Identity) *DBIdentity {
	return &DBIdentity{
		ID:           identity.ID,
		Username:     identity.Username,
		Email:        identity.Email,
		PasswordHash: identity.PasswordHash,
		Role:         identity.Role,
	}
}

func (r *IdentityRepositoryImpl) dbToDomain(dbIdentity *DBIdentity) *domain.Identity {
	return &domain.Identity{
		ID:           dbIdentity.ID,
		Username:     dbIdentity.Username,
		Email:        dbIdentity.Email,
		PasswordHash: dbIdentity.PasswordHash,
		Role:         dbIdentity.Role,
		CreatedAt:    dbIdentity.CreatedAt,
		UpdatedAt:    dbIdentity.UpdatedAt,
	}
}
