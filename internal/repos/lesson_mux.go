package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vidyarthi-app/vidyarthi-backend/internal/logger"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/types"
)

type LessonMuxRepo interface {
	Create(ctx context.Context, tx *gorm.DB, lesson *types.CourseLessonMux) (*types.CourseLessonMux, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.CourseLessonMux, error)
	GetByCourseID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) ([]*types.CourseLessonMux, error)
	Update(ctx context.Context, tx *gorm.DB, lesson *types.CourseLessonMux) error
	// UpdateOrder returns the number of rows touched so callers can tell a
	// missing lesson id apart from a database failure.
	UpdateOrder(ctx context.Context, tx *gorm.DB, id uuid.UUID, order int) (int64, error)
	SoftDeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	SoftDeleteByCourseID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) error
}

type lessonMuxRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLessonMuxRepo(db *gorm.DB, baseLog *logger.Logger) LessonMuxRepo {
	return &lessonMuxRepo{db: db, log: baseLog.With("repo", "LessonMuxRepo")}
}

func (r *lessonMuxRepo) Create(ctx context.Context, tx *gorm.DB, lesson *types.CourseLessonMux) (*types.CourseLessonMux, error) {
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

func (r *lessonMuxRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.CourseLessonMux, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var lesson types.CourseLessonMux
	err := transaction.WithContext(ctx).Where("id = ?", id).First(&lesson).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *lessonMuxRepo) GetByCourseID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) ([]*types.CourseLessonMux, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.CourseLessonMux
	if err := transaction.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("lesson_order ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *lessonMuxRepo) Update(ctx context.Context, tx *gorm.DB, lesson *types.CourseLessonMux) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).Save(lesson).Error
}

func (r *lessonMuxRepo) UpdateOrder(ctx context.Context, tx *gorm.DB, id uuid.UUID, order int) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.CourseLessonMux{}).
		Where("id = ?", id).
		Update("lesson_order", order)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *lessonMuxRepo) SoftDeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.CourseLessonMux{}).Error
}

func (r *lessonMuxRepo) SoftDeleteByCourseID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Where("course_id = ?", courseID).
		Delete(&types.CourseLessonMux{}).Error
}
