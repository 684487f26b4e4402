package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vidyarthi-app/vidyarthi-backend/internal/logger"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/types"
)

type CourseMuxRepo interface {
	Create(ctx context.Context, tx *gorm.DB, course *types.CourseMux) (*types.CourseMux, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.CourseMux, error)
	GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.CourseMux, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.CourseMux, error)
	ListIDs(ctx context.Context, tx *gorm.DB) ([]uuid.UUID, error)
	ListSlugs(ctx context.Context, tx *gorm.DB) ([]string, error)
	ExistsByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error)
	Update(ctx context.Context, tx *gorm.DB, course *types.CourseMux) error
	SoftDeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type courseMuxRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseMuxRepo(db *gorm.DB, baseLog *logger.Logger) CourseMuxRepo {
	return &courseMuxRepo{db: db, log: baseLog.With("repo", "CourseMuxRepo")}
}

func (r *courseMuxRepo) Create(ctx context.Context, tx *gorm.DB, course *types.CourseMux) (*types.CourseMux, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if course.ID == uuid.Nil {
		course.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(course).Error; err != nil {
		return nil, err
	}
	return course, nil
}

func (r *courseMuxRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.CourseMux, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var course types.CourseMux
	err := transaction.WithContext(ctx).Where("id = ?", id).First(&course).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseMuxRepo) GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.CourseMux, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var course types.CourseMux
	err := transaction.WithContext(ctx).Where("slug = ?", slug).First(&course).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseMuxRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.CourseMux, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.CourseMux
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *courseMuxRepo) ListIDs(ctx context.Context, tx *gorm.DB) ([]uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var ids []uuid.UUID
	if err := transaction.WithContext(ctx).
		Model(&types.CourseMux{}).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *courseMuxRepo) ListSlugs(ctx context.Context, tx *gorm.DB) ([]string, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var slugs []string
	if err := transaction.WithContext(ctx).
		Model(&types.CourseMux{}).
		Pluck("slug", &slugs).Error; err != nil {
		return nil, err
	}
	return slugs, nil
}

func (r *courseMuxRepo) ExistsByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.CourseMux{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *courseMuxRepo) Update(ctx context.Context, tx *gorm.DB, course *types.CourseMux) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).Save(course).Error
}

func (r *courseMuxRepo) SoftDeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.CourseMux{}).Error
}
