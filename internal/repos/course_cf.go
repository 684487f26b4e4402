package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vidyarthi-app/vidyarthi-backend/internal/logger"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/types"
)

// CourseCFRepo serves the legacy Cloudflare Stream tables. Read-only plus
// delete: no new cf courses are authored.
type CourseCFRepo interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.CourseCF, error)
	GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.CourseCF, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.CourseCF, error)
	SoftDeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type courseCFRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseCFRepo(db *gorm.DB, baseLog *logger.Logger) CourseCFRepo {
	return &courseCFRepo{db: db, log: baseLog.With("repo", "CourseCFRepo")}
}

func (r *courseCFRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.CourseCF, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var course types.CourseCF
	err := transaction.WithContext(ctx).Where("id = ?", id).First(&course).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseCFRepo) GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.CourseCF, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var course types.CourseCF
	err := transaction.WithContext(ctx).Where("slug = ?", slug).First(&course).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseCFRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.CourseCF, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.CourseCF
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *courseCFRepo) SoftDeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.CourseCF{}).Error
}
