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

// ResolverService answers "which backend table owns this course". The course
// entity is physically split across courses_vimeo, courses_mux and the legacy
// course_cf; callers that only hold a slug or a bare uuid go through here.
//
// Probe order is vimeo, then mux, then cf, short-circuiting on the first
// match, for BOTH entry points. A database failure is never reported as
// not-found.
type ResolverService interface {
	ResolveBySlug(ctx context.Context, tx *gorm.DB, slug string) (types.CourseRef, error)
	ResolveByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (types.CourseRef, error)
}

type resolverService struct {
	db              *gorm.DB
	log             *logger.Logger
	courseVimeoRepo repos.CourseVimeoRepo
	courseMuxRepo   repos.CourseMuxRepo
	courseCFRepo    repos.CourseCFRepo
}

func NewResolverService(
	db *gorm.DB,
	baseLog *logger.Logger,
	courseVimeoRepo repos.CourseVimeoRepo,
	courseMuxRepo repos.CourseMuxRepo,
	courseCFRepo repos.CourseCFRepo,
) ResolverService {
	return &resolverService{
		db:              db,
		log:             baseLog.With("service", "ResolverService"),
		courseVimeoRepo: courseVimeoRepo,
		courseMuxRepo:   courseMuxRepo,
		courseCFRepo:    courseCFRepo,
	}
}

func (rs *resolverService) ResolveBySlug(ctx context.Context, tx *gorm.DB, slug string) (types.CourseRef, error) {
	if slug == "" {
		return types.CourseRef{}, apierr.Validation("slug is required")
	}

	vimeo, err := rs.courseVimeoRepo.GetBySlug(ctx, tx, slug)
	if err != nil {
		return types.CourseRef{}, apierr.Store(fmt.Errorf("resolve slug %q in vimeo courses: %w", slug, err))
	}
	if vimeo != nil {
		return types.CourseRef{Source: types.SourceVimeo, ID: vimeo.ID}, nil
	}

	mux, err := rs.courseMuxRepo.GetBySlug(ctx, tx, slug)
	if err != nil {
		return types.CourseRef{}, apierr.Store(fmt.Errorf("resolve slug %q in mux courses: %w", slug, err))
	}
	if mux != nil {
		return types.CourseRef{Source: types.SourceMux, ID: mux.ID}, nil
	}

	cf, err := rs.courseCFRepo.GetBySlug(ctx, tx, slug)
	if err != nil {
		return types.CourseRef{}, apierr.Store(fmt.Errorf("resolve slug %q in cf courses: %w", slug, err))
	}
	if cf != nil {
		return types.CourseRef{Source: types.SourceCF, ID: cf.ID}, nil
	}

	return types.CourseRef{}, apierr.NotFound("no course with slug %q", slug)
}

func (rs *resolverService) ResolveByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (types.CourseRef, error) {
	if id == uuid.Nil {
		return types.CourseRef{}, apierr.Validation("course id is required")
	}

	vimeo, err := rs.courseVimeoRepo.GetByID(ctx, tx, id)
	if err != nil {
		return types.CourseRef{}, apierr.Store(fmt.Errorf("resolve id %s in vimeo courses: %w", id, err))
	}
	if vimeo != nil {
		return types.CourseRef{Source: types.SourceVimeo, ID: id}, nil
	}

	mux, err := rs.courseMuxRepo.GetByID(ctx, tx, id)
	if err != nil {
		return types.CourseRef{}, apierr.Store(fmt.Errorf("resolve id %s in mux courses: %w", id, err))
	}
	if mux != nil {
		return types.CourseRef{Source: types.SourceMux, ID: id}, nil
	}

	cf, err := rs.courseCFRepo.GetByID(ctx, tx, id)
	if err != nil {
		return types.CourseRef{}, apierr.Store(fmt.Errorf("resolve id %s in cf courses: %w", id, err))
	}
	if cf != nil {
		return types.CourseRef{Source: types.SourceCF, ID: id}, nil
	}

	return types.CourseRef{}, apierr.NotFound("no course with id %s", id)
}
