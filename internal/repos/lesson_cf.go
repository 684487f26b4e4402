package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vidyarthi-app/vidyarthi-backend/internal/logger"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/types"
)

type LessonCFRepo interface {
	GetByCourseID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) ([]*types.CourseLessonCF, error)
	SoftDeleteByCourseID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) error
}

type lessonCFRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLessonCFRepo(db *gorm.DB, baseLog *logger.Logger) LessonCFRepo {
	return &lessonCFRepo{db: db, log: baseLog.With("repo", "LessonCFRepo")}
}

func (r *lessonCFRepo) GetByCourseID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) ([]*types.CourseLessonCF, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.CourseLessonCF
	if err := transaction.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("lesson_order ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *lessonCFRepo) SoftDeleteByCourseID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Where("course_id = ?", courseID).
		Delete(&types.CourseLessonCF{}).Error
}
