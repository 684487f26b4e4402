package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/vidyarthi-app/vidyarthi-backend/internal/apierr"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/clients/gcs"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/clients/video"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/clients/vimeo"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/logger"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/repos"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/slug"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/types"
)

// CourseSummary is the unified read model over the per-backend course tables.
type CourseSummary struct {
	ID           uuid.UUID          `json:"id"`
	Source       types.CourseSource `json:"source"`
	Title        string             `json:"title"`
	Slug         string             `json:"slug"`
	Description  string             `json:"description"`
	Category     string             `json:"category"`
	Price        int64              `json:"price"`
	ThumbnailURL string             `json:"thumbnail_url"`
	CreatedAt    time.Time          `json:"created_at"`
}

// LessonView is the unified read model over the per-backend lesson tables.
// PlaybackURL is derived from the stored backend-specific video reference.
type LessonView struct {
	ID          uuid.UUID `json:"id"`
	CourseID    uuid.UUID `json:"course_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	LessonOrder int       `json:"lesson_order"`
	PlaybackURL string    `json:"playback_url"`
	DocumentURL string    `json:"document_url,omitempty"`
}

type CourseDetail struct {
	CourseSummary
	Lessons []LessonView `json:"lessons"`
}

type CreateCourseInput struct {
	Source      types.CourseSource
	Title       string
	Description string
	Category    string
	Price       int64
	// Raw thumbnail image; when empty a default initials card is rendered.
	Thumbnail []byte
}

type UpdateCourseInput struct {
	Title       *string
	Description *string
	Category    *string
	Price       *int64
	Thumbnail   []byte
}

type CourseService interface {
	CreateCourse(ctx context.Context, tx *gorm.DB, in CreateCourseInput) (*CourseSummary, error)
	ListCourses(ctx context.Context, tx *gorm.DB, source types.CourseSource) ([]CourseSummary, error)
	GetCourse(ctx context.Context, tx *gorm.DB, ref types.CourseRef) (*CourseDetail, error)
	GetCourseBySlug(ctx context.Context, tx *gorm.DB, slug string) (*CourseDetail, error)
	UpdateCourse(ctx context.Context, tx *gorm.DB, ref types.CourseRef, in UpdateCourseInput) (*CourseSummary, error)
	// DeleteCourse soft-deletes the course and its lessons, then cleans up the
	// remote video assets best-effort. Remote failures come back as warnings,
	// never as an error: the database rows are already gone.
	DeleteCourse(ctx context.Context, ref types.CourseRef) ([]string, error)
}

type courseService struct {
	db               *gorm.DB
	log              *logger.Logger
	courseMuxRepo    repos.CourseMuxRepo
	courseVimeoRepo  repos.CourseVimeoRepo
	courseCFRepo     repos.CourseCFRepo
	lessonMuxRepo    repos.LessonMuxRepo
	lessonVimeoRepo  repos.LessonVimeoRepo
	lessonCFRepo     repos.LessonCFRepo
	resolver         ResolverService
	muxBackend       video.Backend
	vimeoBackend     video.Backend
	cfBackend        video.Backend
	vimeoFolders     *vimeo.Client
	thumbnailService ThumbnailService
	bucketService    gcs.BucketService
}

func NewCourseService(
	db *gorm.DB,
	baseLog *logger.Logger,
	courseMuxRepo repos.CourseMuxRepo,
	courseVimeoRepo repos.CourseVimeoRepo,
	courseCFRepo repos.CourseCFRepo,
	lessonMuxRepo repos.LessonMuxRepo,
	lessonVimeoRepo repos.LessonVimeoRepo,
	lessonCFRepo repos.LessonCFRepo,
	resolver ResolverService,
	muxBackend video.Backend,
	vimeoBackend video.Backend,
	cfBackend video.Backend,
	vimeoFolders *vimeo.Client,
	thumbnailService ThumbnailService,
	bucketService gcs.BucketService,
) CourseService {
	return &courseService{
		db:               db,
		log:              baseLog.With("service", "CourseService"),
		courseMuxRepo:    courseMuxRepo,
		courseVimeoRepo:  courseVimeoRepo,
		courseCFRepo:     courseCFRepo,
		lessonMuxRepo:    lessonMuxRepo,
		lessonVimeoRepo:  lessonVimeoRepo,
		lessonCFRepo:     lessonCFRepo,
		resolver:         resolver,
		muxBackend:       muxBackend,
		vimeoBackend:     vimeoBackend,
		cfBackend:        cfBackend,
		vimeoFolders:     vimeoFolders,
		thumbnailService: thumbnailService,
		bucketService:    bucketService,
	}
}

func (cs *courseService) CreateCourse(ctx context.Context, tx *gorm.DB, in CreateCourseInput) (*CourseSummary, error) {
	if in.Title == "" {
		return nil, apierr.Validation("title is required")
	}
	if in.Source != types.SourceMux && in.Source != types.SourceVimeo {
		return nil, apierr.Validation("source must be mux or vimeo, got %q", in.Source)
	}
	if in.Price < 0 {
		return nil, apierr.Validation("price cannot be negative")
	}

	base := slug.Generate(in.Title)
	if base == "" {
		return nil, apierr.Validation("title %q yields an empty slug", in.Title)
	}

	existing, err := cs.allSlugs(ctx, tx)
	if err != nil {
		return nil, apierr.Store(fmt.Errorf("load existing slugs: %w", err))
	}
	courseSlug := slug.EnsureUnique(base, existing)

	courseID := uuid.New()

	thumbnailURL, err := cs.resolveThumbnail(ctx, courseID, in.Title, in.Thumbnail)
	if err != nil {
		// A course without a thumbnail is still a course.
		cs.log.Warn("thumbnail generation failed", "course_id", courseID, "error", err)
	}

	switch in.Source {
	case types.SourceMux:
		course := &types.CourseMux{
			ID:           courseID,
			Title:        in.Title,
			Slug:         courseSlug,
			Description:  in.Description,
			Category:     in.Category,
			Price:        in.Price,
			ThumbnailURL: thumbnailURL,
		}
		if _, err := cs.courseMuxRepo.Create(ctx, tx, course); err != nil {
			return nil, apierr.Store(fmt.Errorf("create mux course: %w", err))
		}
		return summaryFromMux(course), nil

	default: // vimeo
		course := &types.CourseVimeo{
			ID:           courseID,
			Title:        in.Title,
			Slug:         courseSlug,
			Description:  in.Description,
			Category:     in.Category,
			Price:        in.Price,
			ThumbnailURL: thumbnailURL,
		}
		if cs.vimeoFolders != nil {
			folder, err := cs.vimeoFolders.CreateFolder(ctx, in.Title)
			if err != nil {
				cs.log.Warn("vimeo folder creation failed", "course_title", in.Title, "error", err)
			} else {
				course.FolderURI = folder.URI
			}
		}
		if _, err := cs.courseVimeoRepo.Create(ctx, tx, course); err != nil {
			return nil, apierr.Store(fmt.Errorf("create vimeo course: %w", err))
		}
		return summaryFromVimeo(course), nil
	}
}

func (cs *courseService) resolveThumbnail(ctx context.Context, courseID uuid.UUID, title string, raw []byte) (string, error) {
	if cs.thumbnailService == nil {
		return "", nil
	}
	if len(raw) > 0 {
		return cs.thumbnailService.ProcessAndUpload(ctx, courseID, raw)
	}
	return cs.thumbnailService.GenerateAndUpload(ctx, courseID, title)
}

// allSlugs collects slugs across every course table so EnsureUnique can see
// collisions regardless of backend.
func (cs *courseService) allSlugs(ctx context.Context, tx *gorm.DB) (map[string]bool, error) {
	out := map[string]bool{}

	muxSlugs, err := cs.courseMuxRepo.ListSlugs(ctx, tx)
	if err != nil {
		return nil, err
	}
	vimeoSlugs, err := cs.courseVimeoRepo.ListSlugs(ctx, tx)
	if err != nil {
		return nil, err
	}
	cfCourses, err := cs.courseCFRepo.List(ctx, tx)
	if err != nil {
		return nil, err
	}

	for _, s := range muxSlugs {
		out[s] = true
	}
	for _, s := range vimeoSlugs {
		out[s] = true
	}
	for _, c := range cfCourses {
		out[c.Slug] = true
	}
	return out, nil
}

func (cs *courseService) ListCourses(ctx context.Context, tx *gorm.DB, source types.CourseSource) ([]CourseSummary, error) {
	if source != "" && !source.Valid() {
		return nil, apierr.Validation("unknown backend %q", source)
	}

	out := []CourseSummary{}

	if source == "" || source == types.SourceMux {
		courses, err := cs.courseMuxRepo.List(ctx, tx)
		if err != nil {
			return nil, apierr.Store(fmt.Errorf("list mux courses: %w", err))
		}
		for _, c := range courses {
			out = append(out, *summaryFromMux(c))
		}
	}
	if source == "" || source == types.SourceVimeo {
		courses, err := cs.courseVimeoRepo.List(ctx, tx)
		if err != nil {
			return nil, apierr.Store(fmt.Errorf("list vimeo courses: %w", err))
		}
		for _, c := range courses {
			out = append(out, *summaryFromVimeo(c))
		}
	}
	if source == "" || source == types.SourceCF {
		courses, err := cs.courseCFRepo.List(ctx, tx)
		if err != nil {
			return nil, apierr.Store(fmt.Errorf("list cf courses: %w", err))
		}
		for _, c := range courses {
			out = append(out, *summaryFromCF(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (cs *courseService) GetCourse(ctx context.Context, tx *gorm.DB, ref types.CourseRef) (*CourseDetail, error) {
	switch ref.Source {
	case types.SourceMux:
		course, err := cs.courseMuxRepo.GetByID(ctx, tx, ref.ID)
		if err != nil {
			return nil, apierr.Store(fmt.Errorf("get mux course: %w", err))
		}
		if course == nil {
			return nil, apierr.NotFound("no mux course with id %s", ref.ID)
		}
		lessons, err := cs.lessonMuxRepo.GetByCourseID(ctx, tx, ref.ID)
		if err != nil {
			return nil, apierr.Store(fmt.Errorf("get mux lessons: %w", err))
		}
		detail := &CourseDetail{CourseSummary: *summaryFromMux(course)}
		for _, l := range lessons {
			detail.Lessons = append(detail.Lessons, lessonViewFromMux(l))
		}
		return detail, nil

	case types.SourceVimeo:
		course, err := cs.courseVimeoRepo.GetByID(ctx, tx, ref.ID)
		if err != nil {
			return nil, apierr.Store(fmt.Errorf("get vimeo course: %w", err))
		}
		if course == nil {
			return nil, apierr.NotFound("no vimeo course with id %s", ref.ID)
		}
		lessons, err := cs.lessonVimeoRepo.GetByCourseID(ctx, tx, ref.ID)
		if err != nil {
			return nil, apierr.Store(fmt.Errorf("get vimeo lessons: %w", err))
		}
		detail := &CourseDetail{CourseSummary: *summaryFromVimeo(course)}
		for _, l := range lessons {
			detail.Lessons = append(detail.Lessons, lessonViewFromVimeo(l))
		}
		return detail, nil

	case types.SourceCF:
		course, err := cs.courseCFRepo.GetByID(ctx, tx, ref.ID)
		if err != nil {
			return nil, apierr.Store(fmt.Errorf("get cf course: %w", err))
		}
		if course == nil {
			return nil, apierr.NotFound("no cf course with id %s", ref.ID)
		}
		lessons, err := cs.lessonCFRepo.GetByCourseID(ctx, tx, ref.ID)
		if err != nil {
			return nil, apierr.Store(fmt.Errorf("get cf lessons: %w", err))
		}
		detail := &CourseDetail{CourseSummary: *summaryFromCF(course)}
		for _, l := range lessons {
			detail.Lessons = append(detail.Lessons, lessonViewFromCF(l))
		}
		return detail, nil

	default:
		return nil, apierr.Validation("unknown backend %q", ref.Source)
	}
}

func (cs *courseService) GetCourseBySlug(ctx context.Context, tx *gorm.DB, courseSlug string) (*CourseDetail, error) {
	ref, err := cs.resolver.ResolveBySlug(ctx, tx, courseSlug)
	if err != nil {
		return nil, err
	}
	return cs.GetCourse(ctx, tx, ref)
}

func (cs *courseService) UpdateCourse(ctx context.Context, tx *gorm.DB, ref types.CourseRef, in UpdateCourseInput) (*CourseSummary, error) {
	if in.Title != nil && *in.Title == "" {
		return nil, apierr.Validation("title cannot be empty")
	}
	if in.Price != nil && *in.Price < 0 {
		return nil, apierr.Validation("price cannot be negative")
	}

	switch ref.Source {
	case types.SourceMux:
		course, err := cs.courseMuxRepo.GetByID(ctx, tx, ref.ID)
		if err != nil {
			return nil, apierr.Store(fmt.Errorf("get mux course: %w", err))
		}
		if course == nil {
			return nil, apierr.NotFound("no mux course with id %s", ref.ID)
		}
		applyCourseUpdates(&course.Title, &course.Description, &course.Category, &course.Price, in)
		if url, err := cs.updatedThumbnail(ctx, ref.ID, in.Thumbnail); err == nil && url != "" {
			course.ThumbnailURL = url
		}
		if err := cs.courseMuxRepo.Update(ctx, tx, course); err != nil {
			return nil, apierr.Store(fmt.Errorf("update mux course: %w", err))
		}
		return summaryFromMux(course), nil

	case types.SourceVimeo:
		course, err := cs.courseVimeoRepo.GetByID(ctx, tx, ref.ID)
		if err != nil {
			return nil, apierr.Store(fmt.Errorf("get vimeo course: %w", err))
		}
		if course == nil {
			return nil, apierr.NotFound("no vimeo course with id %s", ref.ID)
		}
		applyCourseUpdates(&course.Title, &course.Description, &course.Category, &course.Price, in)
		if url, err := cs.updatedThumbnail(ctx, ref.ID, in.Thumbnail); err == nil && url != "" {
			course.ThumbnailURL = url
		}
		if err := cs.courseVimeoRepo.Update(ctx, tx, course); err != nil {
			return nil, apierr.Store(fmt.Errorf("update vimeo course: %w", err))
		}
		return summaryFromVimeo(course), nil

	default:
		return nil, apierr.Validation("courses on backend %q are read-only", ref.Source)
	}
}

func (cs *courseService) updatedThumbnail(ctx context.Context, courseID uuid.UUID, raw []byte) (string, error) {
	if len(raw) == 0 || cs.thumbnailService == nil {
		return "", nil
	}
	url, err := cs.thumbnailService.ProcessAndUpload(ctx, courseID, raw)
	if err != nil {
		cs.log.Warn("thumbnail update failed", "course_id", courseID, "error", err)
		return "", err
	}
	return url, nil
}

// applyCourseUpdates mutates the shared scalar fields of either course type.
func applyCourseUpdates(title, description, category *string, price *int64, in UpdateCourseInput) {
	if in.Title != nil {
		*title = *in.Title
	}
	if in.Description != nil {
		*description = *in.Description
	}
	if in.Category != nil {
		*category = *in.Category
	}
	if in.Price != nil {
		*price = *in.Price
	}
}

func (cs *courseService) DeleteCourse(ctx context.Context, ref types.CourseRef) ([]string, error) {
	type remoteAsset struct {
		backend video.Backend
		videoID string
	}
	var assets []remoteAsset

	// Phase 1: soft-delete the rows transactionally. The remote cleanup that
	// follows is best-effort; a half-cleaned provider is acceptable, a course
	// that is half-deleted in the database is not.
	err := cs.db.Transaction(func(tx *gorm.DB) error {
		switch ref.Source {
		case types.SourceMux:
			course, err := cs.courseMuxRepo.GetByID(ctx, tx, ref.ID)
			if err != nil {
				return apierr.Store(fmt.Errorf("get mux course: %w", err))
			}
			if course == nil {
				return apierr.NotFound("no mux course with id %s", ref.ID)
			}
			lessons, err := cs.lessonMuxRepo.GetByCourseID(ctx, tx, ref.ID)
			if err != nil {
				return apierr.Store(fmt.Errorf("get mux lessons: %w", err))
			}
			for _, l := range lessons {
				assets = append(assets, remoteAsset{backend: cs.muxBackend, videoID: l.VideoUID})
			}
			if err := cs.lessonMuxRepo.SoftDeleteByCourseID(ctx, tx, ref.ID); err != nil {
				return apierr.Store(fmt.Errorf("delete mux lessons: %w", err))
			}
			if err := cs.courseMuxRepo.SoftDeleteByID(ctx, tx, ref.ID); err != nil {
				return apierr.Store(fmt.Errorf("delete mux course: %w", err))
			}

		case types.SourceVimeo:
			course, err := cs.courseVimeoRepo.GetByID(ctx, tx, ref.ID)
			if err != nil {
				return apierr.Store(fmt.Errorf("get vimeo course: %w", err))
			}
			if course == nil {
				return apierr.NotFound("no vimeo course with id %s", ref.ID)
			}
			lessons, err := cs.lessonVimeoRepo.GetByCourseID(ctx, tx, ref.ID)
			if err != nil {
				return apierr.Store(fmt.Errorf("get vimeo lessons: %w", err))
			}
			for _, l := range lessons {
				assets = append(assets, remoteAsset{backend: cs.vimeoBackend, videoID: l.VideoURI})
			}
			if err := cs.lessonVimeoRepo.SoftDeleteByCourseID(ctx, tx, ref.ID); err != nil {
				return apierr.Store(fmt.Errorf("delete vimeo lessons: %w", err))
			}
			if err := cs.courseVimeoRepo.SoftDeleteByID(ctx, tx, ref.ID); err != nil {
				return apierr.Store(fmt.Errorf("delete vimeo course: %w", err))
			}

		case types.SourceCF:
			course, err := cs.courseCFRepo.GetByID(ctx, tx, ref.ID)
			if err != nil {
				return apierr.Store(fmt.Errorf("get cf course: %w", err))
			}
			if course == nil {
				return apierr.NotFound("no cf course with id %s", ref.ID)
			}
			lessons, err := cs.lessonCFRepo.GetByCourseID(ctx, tx, ref.ID)
			if err != nil {
				return apierr.Store(fmt.Errorf("get cf lessons: %w", err))
			}
			for _, l := range lessons {
				assets = append(assets, remoteAsset{backend: cs.cfBackend, videoID: l.VideoUID})
			}
			if err := cs.lessonCFRepo.SoftDeleteByCourseID(ctx, tx, ref.ID); err != nil {
				return apierr.Store(fmt.Errorf("delete cf lessons: %w", err))
			}
			if err := cs.courseCFRepo.SoftDeleteByID(ctx, tx, ref.ID); err != nil {
				return apierr.Store(fmt.Errorf("delete cf course: %w", err))
			}

		default:
			return apierr.Validation("unknown backend %q", ref.Source)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Phase 2: best-effort remote cleanup, fanned out. Failures are collected
	// as warnings; every goroutine returns nil so the group never cancels.
	var warnings []string
	warningCh := make(chan string, len(assets)+1)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, a := range assets {
		a := a
		if a.backend == nil || a.videoID == "" {
			continue
		}
		g.Go(func() error {
			if err := a.backend.DeleteAsset(gctx, a.videoID); err != nil {
				warningCh <- fmt.Sprintf("delete remote asset %s: %v", a.videoID, err)
			}
			return nil
		})
	}
	if cs.bucketService != nil {
		g.Go(func() error {
			prefix := fmt.Sprintf("courses/%s/", ref.ID.String())
			if err := cs.bucketService.DeletePrefix(gctx, gcs.BucketCategoryDocument, prefix); err != nil {
				warningCh <- fmt.Sprintf("delete documents under %s: %v", prefix, err)
			}
			return nil
		})
	}
	_ = g.Wait()
	close(warningCh)
	for w := range warningCh {
		cs.log.Warn("course delete cleanup", "course_id", ref.ID, "warning", w)
		warnings = append(warnings, w)
	}

	return warnings, nil
}

func summaryFromMux(c *types.CourseMux) *CourseSummary {
	return &CourseSummary{
		ID:           c.ID,
		Source:       types.SourceMux,
		Title:        c.Title,
		Slug:         c.Slug,
		Description:  c.Description,
		Category:     c.Category,
		Price:        c.Price,
		ThumbnailURL: c.ThumbnailURL,
		CreatedAt:    c.CreatedAt,
	}
}

func summaryFromVimeo(c *types.CourseVimeo) *CourseSummary {
	return &CourseSummary{
		ID:           c.ID,
		Source:       types.SourceVimeo,
		Title:        c.Title,
		Slug:         c.Slug,
		Description:  c.Description,
		Category:     c.Category,
		Price:        c.Price,
		ThumbnailURL: c.ThumbnailURL,
		CreatedAt:    c.CreatedAt,
	}
}

func summaryFromCF(c *types.CourseCF) *CourseSummary {
	return &CourseSummary{
		ID:           c.ID,
		Source:       types.SourceCF,
		Title:        c.Title,
		Slug:         c.Slug,
		Description:  c.Description,
		Category:     c.Category,
		Price:        c.Price,
		ThumbnailURL: c.ThumbnailURL,
		CreatedAt:    c.CreatedAt,
	}
}

func lessonViewFromMux(l *types.CourseLessonMux) LessonView {
	return LessonView{
		ID:          l.ID,
		CourseID:    l.CourseID,
		Title:       l.Title,
		Description: l.Description,
		LessonOrder: l.LessonOrder,
		PlaybackURL: MuxPlaybackURL(l.VideoUID),
		DocumentURL: l.DocumentURL,
	}
}

func lessonViewFromVimeo(l *types.CourseLessonVimeo) LessonView {
	return LessonView{
		ID:          l.ID,
		CourseID:    l.CourseID,
		Title:       l.Title,
		Description: l.Description,
		LessonOrder: l.LessonOrder,
		PlaybackURL: VimeoPlayerURL(l.VideoURI),
		DocumentURL: l.DocumentURL,
	}
}

func lessonViewFromCF(l *types.CourseLessonCF) LessonView {
	return LessonView{
		ID:          l.ID,
		CourseID:    l.CourseID,
		Title:       l.Title,
		Description: l.Description,
		LessonOrder: l.LessonOrder,
		PlaybackURL: CFPlaybackURL(l.VideoUID),
		DocumentURL: l.DocumentURL,
	}
}
