package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/praveshgrewal/UCMS/domain"
)

// CodeRepositoryImpl implements domain.CodeRepository using GORM.
// The store is keyed by contact: the unique index plus delete-then-insert
// inside one transaction keeps at most one live code per contact, and
// confirmation always matches the latest-issued code.
type CodeRepositoryImpl struct {
	db *gorm.DB
}

// DBVerificationCode represents the database model for VerificationCode
type DBVerificationCode struct {
	ID        uint   `gorm:"primaryKey"`
	Contact   string `gorm:"uniqueIndex;size:255"`
	Code      string `gorm:"size:16"`
	Consumed  bool
	CreatedAt time.Time
	ExpiresAt time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBVerificationCode) TableName() string {
	return "verification_codes"
}

// NewCodeRepository creates a new verification code repository
func NewCodeRepository(db *gorm.DB) domain.CodeRepository {
	return &CodeRepositoryImpl{db: db}
}

// Replace implements domain.CodeRepository
func (r *CodeRepositoryImpl) Replace(ctx context.Context, code *domain.VerificationCode) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("contact = ?", code.Contact).Delete(&DBVerificationCode{}).Error; err != nil {
			return err
		}

		dbCode := &DBVerificationCode{
			Contact:   code.Contact,
			Code:      code.Code,
			Consumed:  code.Consumed,
			ExpiresAt: code.ExpiresAt,
		}
		if err := tx.Create(dbCode).Error; err != nil {
			return err
		}

		code.ID = dbCode.ID
		code.CreatedAt = dbCode.CreatedAt
		return nil
	})
}

// FindLive implements domain.CodeRepository. Expiry is checked here, at
// lookup time; expired rows are left for DeleteExpired to sweep.
func (r *CodeRepositoryImpl) FindLive(ctx context.Context, contact, code string, now time.Time) (*domain.VerificationCode, error) {
	var dbCode DBVerificationCode
	err := r.db.WithContext(ctx).
		Where("contact = ? AND code = ? AND consumed = ? AND expires_at > ?", contact, code, false, now).
		First(&dbCode).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCodeInvalid
		}
		return nil, err
	}
	return r.dbToDomain(&dbCode), nil
}

// MarkConsumed implements domain.CodeRepository
func (r *CodeRepositoryImpl) MarkConsumed(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&DBVerificationCode{}).
		Where("id = ?", id).
		Update("consumed", true).Error
}

// HasConsumed implements domain.CodeRepository
func (r *CodeRepositoryImpl) HasConsumed(ctx context.Context, contact string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&DBVerificationCode{}).
		Where("contact = ? AND consumed = ?", contact, true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteExpired implements domain.CodeRepository. Consumed rows stay until
// their expiry passes; they record which channels already confirmed.
func (r *CodeRepositoryImpl) DeleteExpired(ctx context.Context, now time.Time) error {
	return r.db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&DBVerificationCode{}).Error
}

func (r *CodeRepositoryImpl) dbToDomain(dbCode *DBVerificationCode) *domain.VerificationCode {
	return &domain.VerificationCode{
		ID:        dbCode.ID,
		Contact:   dbCode.Contact,
		Code:      dbCode.Code,
		Consumed:  dbCode.Consumed,
		CreatedAt: dbCode.CreatedAt,
		ExpiresAt: dbCode.ExpiresAt,
	}
}
