package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vidyarthi-app/vidyarthi-backend/internal/apierr"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/logger"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/repos"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/types"
)

// HeroSlideInput is one slide as submitted by the admin UI. ID is a string on
// purpose: the UI sends client-generated placeholders for new slides, and
// anything that does not parse as a UUID means "insert".
type HeroSlideInput struct {
	ID             string `json:"id"`
	Heading        string `json:"heading"`
	Subheading     string `json:"subheading"`
	ButtonText     string `json:"button_text"`
	ImageURL       string `json:"image_url"`
	LinkedCourseID string `json:"linked_course_id"`
}

type HeroSlideService interface {
	ListSlides(ctx context.Context, tx *gorm.DB) ([]*types.HeroSlide, error)
	// SaveSlides upserts the submitted batch: known ids update in place,
	// unknown or non-UUID ids insert. Slides absent from the batch are left
	// untouched. Position follows batch order.
	SaveSlides(ctx context.Context, tx *gorm.DB, inputs []HeroSlideInput) ([]*types.HeroSlide, error)
}

type heroSlideService struct {
	db              *gorm.DB
	log             *logger.Logger
	heroSlideRepo   repos.HeroSlideRepo
	courseMuxRepo   repos.CourseMuxRepo
	courseVimeoRepo repos.CourseVimeoRepo
}

func NewHeroSlideService(
	db *gorm.DB,
	baseLog *logger.Logger,
	heroSlideRepo repos.HeroSlideRepo,
	courseMuxRepo repos.CourseMuxRepo,
	courseVimeoRepo repos.CourseVimeoRepo,
) HeroSlideService {
	return &heroSlideService{
		db:              db,
		log:             baseLog.With("service", "HeroSlideService"),
		heroSlideRepo:   heroSlideRepo,
		courseMuxRepo:   courseMuxRepo,
		courseVimeoRepo: courseVimeoRepo,
	}
}

func (hs *heroSlideService) ListSlides(ctx context.Context, tx *gorm.DB) ([]*types.HeroSlide, error) {
	slides, err := hs.heroSlideRepo.List(ctx, tx)
	if err != nil {
		return nil, apierr.Store(fmt.Errorf("list hero slides: %w", err))
	}
	return slides, nil
}

func (hs *heroSlideService) SaveSlides(ctx context.Context, tx *gorm.DB, inputs []HeroSlideInput) ([]*types.HeroSlide, error) {
	for i, in := range inputs {
		if in.Heading == "" {
			return nil, apierr.Validation("slide %d: heading is required", i)
		}
	}

	// Linked-course ids are checked against a fresh union of the live course
	// tables on every save; anything stale is nulled, never rejected.
	liveCourses, err := hs.liveCourseIDs(ctx, tx)
	if err != nil {
		return nil, apierr.Store(fmt.Errorf("load course ids: %w", err))
	}

	var saved []*types.HeroSlide
	err = hs.runInTx(tx, func(txn *gorm.DB) error {
		for position, in := range inputs {
			slide := &types.HeroSlide{
				Heading:        in.Heading,
				Subheading:     in.Subheading,
				ButtonText:     in.ButtonText,
				ImageURL:       in.ImageURL,
				LinkedCourseID: hs.validatedCourseID(in.LinkedCourseID, liveCourses),
				Position:       position,
			}

			id, parseErr := uuid.Parse(in.ID)
			if parseErr != nil || id == uuid.Nil {
				// Client placeholder id: insert with a server-assigned one.
				created, err := hs.heroSlideRepo.Create(ctx, txn, slide)
				if err != nil {
					return fmt.Errorf("insert slide %q: %w", in.Heading, err)
				}
				saved = append(saved, created)
				continue
			}

			slide.ID = id
			rows, err := hs.heroSlideRepo.UpdateByID(ctx, txn, slide)
			if err != nil {
				return fmt.Errorf("update slide %s: %w", id, err)
			}
			if rows == 0 {
				created, err := hs.heroSlideRepo.Create(ctx, txn, slide)
				if err != nil {
					return fmt.Errorf("insert slide %s: %w", id, err)
				}
				slide = created
			}
			saved = append(saved, slide)
		}
		return nil
	})
	if err != nil {
		return nil, apierr.Store(err)
	}
	return saved, nil
}

func (hs *heroSlideService) runInTx(tx *gorm.DB, fn func(*gorm.DB) error) error {
	if tx != nil {
		return fn(tx)
	}
	return hs.db.Transaction(fn)
}

func (hs *heroSlideService) liveCourseIDs(ctx context.Context, tx *gorm.DB) (map[uuid.UUID]bool, error) {
	out := map[uuid.UUID]bool{}

	muxIDs, err := hs.courseMuxRepo.ListIDs(ctx, tx)
	if err != nil {
		return nil, err
	}
	vimeoIDs, err := hs.courseVimeoRepo.ListIDs(ctx, tx)
	if err != nil {
		return nil, err
	}
	for _, id := range muxIDs {
		out[id] = true
	}
	for _, id := range vimeoIDs {
		out[id] = true
	}
	return out, nil
}

// validatedCourseID returns a pointer to the linked course id only when it
// refers to a live course; otherwise nil. The batch never fails over a stale
// link.
func (hs *heroSlideService) validatedCourseID(raw string, live map[uuid.UUID]bool) *uuid.UUID {
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return nil
	}
	if !live[id] {
		hs.log.Warn("hero slide links missing course, nulling", "linked_course_id", id)
		return nil
	}
	return &id
}
