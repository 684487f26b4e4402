package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vidyarthi-app/vidyarthi-backend/internal/logger"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/types"
)

type LessonVimeoRepo interface {
	Create(ctx context.Context, tx *gorm.DB, lesson *types.CourseLessonVimeo) (*types.CourseLessonVimeo, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.CourseLessonVimeo, error)
	GetByCourseID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) ([]*types.CourseLessonVimeo, error)
	Update(ctx context.Context, tx *gorm.DB, lesson *types.CourseLessonVimeo) error
	UpdateOrder(ctx context.Context, tx *gorm.DB, id uuid.UUID, order int) (int64, error)
	SoftDeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	SoftDeleteByCourseID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) error
}

type lessonVimeoRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLessonVimeoRepo(db *gorm.DB, baseLog *logger.Logger) LessonVimeoRepo {
	return &lessonVimeoRepo{db: db, log: baseLog.With("repo", "LessonVimeoRepo")}
}

func (r *lessonVimeoRepo) Create(ctx context.Context, tx *gorm.DB, lesson *types.CourseLessonVimeo) (*types.CourseLessonVimeo, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if lesson.ID == uuid.Nil {
		lesson.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(lesson).Error; err != nil {
		return nil, err
	}
	return lesson, nil
}

func (r *lessonVimeoRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.CourseLessonVimeo, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var lesson types.CourseLessonVimeo
	err := transaction.WithContext(ctx).Where("id = ?", id).First(&lesson).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *lessonVimeoRepo) GetByCourseID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) ([]*types.CourseLessonVimeo, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.CourseLessonVimeo
	if err := transaction.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("lesson_order ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *lessonVimeoRepo) Update(ctx context.Context, tx *gorm.DB, lesson *types.CourseLessonVimeo) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).Save(lesson).Error
}

func (r *lessonVimeoRepo) UpdateOrder(ctx context.Context, tx *gorm.DB, id uuid.UUID, order int) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.CourseLessonVimeo{}).
		Where("id = ?", id).
		Update("lesson_order", order)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *lessonVimeoRepo) SoftDeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.CourseLessonVimeo{}).Error
}

func (r *lessonVimeoRepo) SoftDeleteByCourseID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Where("course_id = ?", courseID).
		Delete(&types.CourseLessonVimeo{}).Error
}
