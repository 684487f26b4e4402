package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vidyarthi-app/vidyarthi-backend/internal/logger"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/types"
)

type HeroSlideRepo interface {
	List(ctx context.Context, tx *gorm.DB) ([]*types.HeroSlide, error)
	Create(ctx context.Context, tx *gorm.DB, slide *types.HeroSlide) (*types.HeroSlide, error)
	// UpdateByID updates an existing slide in place; returns rows affected so
	// the curator can fall back to insert when the id is unknown.
	UpdateByID(ctx context.Context, tx *gorm.DB, slide *types.HeroSlide) (int64, error)
}

type heroSlideRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewHeroSlideRepo(db *gorm.DB, baseLog *logger.Logger) HeroSlideRepo {
	return &heroSlideRepo{db: db, log: baseLog.With("repo", "HeroSlideRepo")}
}

func (r *heroSlideRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.HeroSlide, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.HeroSlide
	if err := transaction.WithContext(ctx).
		Order("position ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *heroSlideRepo) Create(ctx context.Context, tx *gorm.DB, slide *types.HeroSlide) (*types.HeroSlide, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if slide.ID == uuid.Nil {
		slide.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(slide).Error; err != nil {
		return nil, err
	}
	return slide, nil
}

func (r *heroSlideRepo) UpdateByID(ctx context.Context, tx *gorm.DB, slide *types.HeroSlide) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if slide.ID == uuid.Nil {
		return 0, errors.New("slide id required for update")
	}
	res := transaction.WithContext(ctx).
		Model(&types.HeroSlide{}).
		Where("id = ?", slide.ID).
		Updates(map[string]interface{}{
			"heading":          slide.Heading,
			"subheading":       slide.Subheading,
			"button_text":      slide.ButtonText,
			"image_url":        slide.ImageURL,
			"linked_course_id": slide.LinkedCourseID,
			"position":         slide.Position,
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
