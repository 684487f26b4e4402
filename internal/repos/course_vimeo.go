package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vidyarthi-app/vidyarthi-backend/internal/logger"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/types"
)

type CourseVimeoRepo interface {
	Create(ctx context.Context, tx *gorm.DB, course *types.CourseVimeo) (*types.CourseVimeo, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.CourseVimeo, error)
	GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.CourseVimeo, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.CourseVimeo, error)
	ListIDs(ctx context.Context, tx *gorm.DB) ([]uuid.UUID, error)
	ListSlugs(ctx context.Context, tx *gorm.DB) ([]string, error)
	ExistsByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error)
	Update(ctx context.Context, tx *gorm.DB, course *types.CourseVimeo) error
	SoftDeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type courseVimeoRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseVimeoRepo(db *gorm.DB, baseLog *logger.Logger) CourseVimeoRepo {
	return &courseVimeoRepo{db: db, log: baseLog.With("repo", "CourseVimeoRepo")}
}

func (r *courseVimeoRepo) Create(ctx context.Context, tx *gorm.DB, course *types.CourseVimeo) (*types.CourseVimeo, error) {
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

func (r *courseVimeoRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.CourseVimeo, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var course types.CourseVimeo
	err := transaction.WithContext(ctx).Where("id = ?", id).First(&course).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseVimeoRepo) GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.CourseVimeo, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var course types.CourseVimeo
	err := transaction.WithContext(ctx).Where("slug = ?", slug).First(&course).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseVimeoRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.CourseVimeo, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.CourseVimeo
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *courseVimeoRepo) ListIDs(ctx context.Context, tx *gorm.DB) ([]uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var ids []uuid.UUID
	if err := transaction.WithContext(ctx).
		Model(&types.CourseVimeo{}).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *courseVimeoRepo) ListSlugs(ctx context.Context, tx *gorm.DB) ([]string, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var slugs []string
	if err := transaction.WithContext(ctx).
		Model(&types.CourseVimeo{}).
		Pluck("slug", &slugs).Error; err != nil {
		return nil, err
	}
	return slugs, nil
}

func (r *courseVimeoRepo) ExistsByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.CourseVimeo{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *courseVimeoRepo) Update(ctx context.Context, tx *gorm.DB, course *types.CourseVimeo) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).Save(course).Error
}

func (r *courseVimeoRepo) SoftDeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.CourseVimeo{}).Error
}
