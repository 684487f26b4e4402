package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vidyarthi-app/vidyarthi-backend/internal/apierr"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/clients/gcs"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/clients/video"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/logger"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/repos"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/types"
)

type CreateLessonInput struct {
	CourseID    uuid.UUID
	Source      types.CourseSource
	Title       string
	Description string
	// Mux playback id or Vimeo video URI depending on Source.
	VideoRef string
}

type UpdateLessonInput struct {
	Title       *string
	Description *string
	VideoRef    *string
}

type LessonService interface {
	CreateLesson(ctx context.Context, tx *gorm.DB, in CreateLessonInput) (*LessonView, error)
	UpdateLesson(ctx context.Context, tx *gorm.DB, source types.CourseSource, lessonID uuid.UUID, in UpdateLessonInput) (*LessonView, error)
	// DeleteLesson removes the row, then tries to delete the remote asset.
	// A remote failure is returned as a warning string, not an error.
	DeleteLesson(ctx context.Context, tx *gorm.DB, source types.CourseSource, lessonID uuid.UUID) (string, error)
	// AttachDocument uploads a supporting file to object storage and stores
	// its public URL on the lesson.
	AttachDocument(ctx context.Context, tx *gorm.DB, source types.CourseSource, lessonID uuid.UUID, fileName string, file io.Reader) (*LessonView, error)
}

type lessonService struct {
	db              *gorm.DB
	log             *logger.Logger
	courseMuxRepo   repos.CourseMuxRepo
	courseVimeoRepo repos.CourseVimeoRepo
	lessonMuxRepo   repos.LessonMuxRepo
	lessonVimeoRepo repos.LessonVimeoRepo
	muxBackend      video.Backend
	vimeoBackend    video.Backend
	bucketService   gcs.BucketService
}

func NewLessonService(
	db *gorm.DB,
	baseLog *logger.Logger,
	courseMuxRepo repos.CourseMuxRepo,
	courseVimeoRepo repos.CourseVimeoRepo,
	lessonMuxRepo repos.LessonMuxRepo,
	lessonVimeoRepo repos.LessonVimeoRepo,
	muxBackend video.Backend,
	vimeoBackend video.Backend,
	bucketService gcs.BucketService,
) LessonService {
	return &lessonService{
		db:              db,
		log:             baseLog.With("service", "LessonService"),
		courseMuxRepo:   courseMuxRepo,
		courseVimeoRepo: courseVimeoRepo,
		lessonMuxRepo:   lessonMuxRepo,
		lessonVimeoRepo: lessonVimeoRepo,
		muxBackend:      muxBackend,
		vimeoBackend:    vimeoBackend,
		bucketService:   bucketService,
	}
}

func (ls *lessonService) CreateLesson(ctx context.Context, tx *gorm.DB, in CreateLessonInput) (*LessonView, error) {
	if in.Title == "" {
		return nil, apierr.Validation("title is required")
	}
	if in.VideoRef == "" {
		return nil, apierr.Validation("video reference is required")
	}
	if in.CourseID == uuid.Nil {
		return nil, apierr.Validation("course id is required")
	}

	switch in.Source {
	case types.SourceMux:
		// Course existence is enforced here, not by a database constraint.
		exists, err := ls.courseMuxRepo.ExistsByID(ctx, tx, in.CourseID)
		if err != nil {
			return nil, apierr.Store(fmt.Errorf("check mux course: %w", err))
		}
		if !exists {
			return nil, apierr.NotFound("no mux course with id %s", in.CourseID)
		}
		order, err := ls.nextMuxOrder(ctx, tx, in.CourseID)
		if err != nil {
			return nil, err
		}
		lesson := &types.CourseLessonMux{
			CourseID:    in.CourseID,
			Title:       in.Title,
			Description: in.Description,
			VideoUID:    in.VideoRef,
			LessonOrder: order,
		}
		if _, err := ls.lessonMuxRepo.Create(ctx, tx, lesson); err != nil {
			return nil, apierr.Store(fmt.Errorf("create mux lesson: %w", err))
		}
		v := lessonViewFromMux(lesson)
		return &v, nil

	case types.SourceVimeo:
		exists, err := ls.courseVimeoRepo.ExistsByID(ctx, tx, in.CourseID)
		if err != nil {
			return nil, apierr.Store(fmt.Errorf("check vimeo course: %w", err))
		}
		if !exists {
			return nil, apierr.NotFound("no vimeo course with id %s", in.CourseID)
		}
		order, err := ls.nextVimeoOrder(ctx, tx, in.CourseID)
		if err != nil {
			return nil, err
		}
		lesson := &types.CourseLessonVimeo{
			CourseID:    in.CourseID,
			Title:       in.Title,
			Description: in.Description,
			VideoURI:    in.VideoRef,
			LessonOrder: order,
		}
		if _, err := ls.lessonVimeoRepo.Create(ctx, tx, lesson); err != nil {
			return nil, apierr.Store(fmt.Errorf("create vimeo lesson: %w", err))
		}
		v := lessonViewFromVimeo(lesson)
		return &v, nil

	default:
		return nil, apierr.Validation("lessons can only be created on mux or vimeo, got %q", in.Source)
	}
}

func (ls *lessonService) nextMuxOrder(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (int, error) {
	lessons, err := ls.lessonMuxRepo.GetByCourseID(ctx, tx, courseID)
	if err != nil {
		return 0, apierr.Store(fmt.Errorf("load mux lessons: %w", err))
	}
	max := 0
	for _, l := range lessons {
		if l.LessonOrder > max {
			max = l.LessonOrder
		}
	}
	return max + 1, nil
}

func (ls *lessonService) nextVimeoOrder(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (int, error) {
	lessons, err := ls.lessonVimeoRepo.GetByCourseID(ctx, tx, courseID)
	if err != nil {
		return 0, apierr.Store(fmt.Errorf("load vimeo lessons: %w", err))
	}
	max := 0
	for _, l := range lessons {
		if l.LessonOrder > max {
			max = l.LessonOrder
		}
	}
	return max + 1, nil
}

func (ls *lessonService) UpdateLesson(ctx context.Context, tx *gorm.DB, source types.CourseSource, lessonID uuid.UUID, in UpdateLessonInput) (*LessonView, error) {
	if in.Title != nil && *in.Title == "" {
		return nil, apierr.Validation("title cannot be empty")
	}
	if in.VideoRef != nil && *in.VideoRef == "" {
		return nil, apierr.Validation("video reference cannot be empty")
	}

	switch source {
	case types.SourceMux:
		lesson, err := ls.lessonMuxRepo.GetByID(ctx, tx, lessonID)
		if err != nil {
			return nil, apierr.Store(fmt.Errorf("get mux lesson: %w", err))
		}
		if lesson == nil {
			return nil, apierr.NotFound("no mux lesson with id %s", lessonID)
		}
		if in.Title != nil {
			lesson.Title = *in.Title
		}
		if in.Description != nil {
			lesson.Description = *in.Description
		}
		if in.VideoRef != nil {
			lesson.VideoUID = *in.VideoRef
		}
		if err := ls.lessonMuxRepo.Update(ctx, tx, lesson); err != nil {
			return nil, apierr.Store(fmt.Errorf("update mux lesson: %w", err))
		}
		v := lessonViewFromMux(lesson)
		return &v, nil

	case types.SourceVimeo:
		lesson, err := ls.lessonVimeoRepo.GetByID(ctx, tx, lessonID)
		if err != nil {
			return nil, apierr.Store(fmt.Errorf("get vimeo lesson: %w", err))
		}
		if lesson == nil {
			return nil, apierr.NotFound("no vimeo lesson with id %s", lessonID)
		}
		if in.Title != nil {
			lesson.Title = *in.Title
		}
		if in.Description != nil {
			lesson.Description = *in.Description
		}
		if in.VideoRef != nil {
			lesson.VideoURI = *in.VideoRef
		}
		if err := ls.lessonVimeoRepo.Update(ctx, tx, lesson); err != nil {
			return nil, apierr.Store(fmt.Errorf("update vimeo lesson: %w", err))
		}
		v := lessonViewFromVimeo(lesson)
		return &v, nil

	default:
		return nil, apierr.Validation("lessons on backend %q are read-only", source)
	}
}

func (ls *lessonService) DeleteLesson(ctx context.Context, tx *gorm.DB, source types.CourseSource, lessonID uuid.UUID) (string, error) {
	var backend video.Backend
	var videoRef string

	switch source {
	case types.SourceMux:
		lesson, err := ls.lessonMuxRepo.GetByID(ctx, tx, lessonID)
		if err != nil {
			return "", apierr.Store(fmt.Errorf("get mux lesson: %w", err))
		}
		if lesson == nil {
			return "", apierr.NotFound("no mux lesson with id %s", lessonID)
		}
		if err := ls.lessonMuxRepo.SoftDeleteByID(ctx, tx, lessonID); err != nil {
			return "", apierr.Store(fmt.Errorf("delete mux lesson: %w", err))
		}
		backend, videoRef = ls.muxBackend, lesson.VideoUID

	case types.SourceVimeo:
		lesson, err := ls.lessonVimeoRepo.GetByID(ctx, tx, lessonID)
		if err != nil {
			return "", apierr.Store(fmt.Errorf("get vimeo lesson: %w", err))
		}
		if lesson == nil {
			return "", apierr.NotFound("no vimeo lesson with id %s", lessonID)
		}
		if err := ls.lessonVimeoRepo.SoftDeleteByID(ctx, tx, lessonID); err != nil {
			return "", apierr.Store(fmt.Errorf("delete vimeo lesson: %w", err))
		}
		backend, videoRef = ls.vimeoBackend, lesson.VideoURI

	default:
		return "", apierr.Validation("lessons on backend %q are read-only", source)
	}

	if backend == nil || videoRef == "" {
		return "", nil
	}
	if err := backend.DeleteAsset(ctx, videoRef); err != nil && !errors.Is(err, video.ErrNotFound) {
		warning := fmt.Sprintf("remote asset %s not deleted: %v", videoRef, err)
		ls.log.Warn("lesson delete cleanup", "lesson_id", lessonID, "warning", warning)
		return warning, nil
	}
	return "", nil
}

func (ls *lessonService) AttachDocument(ctx context.Context, tx *gorm.DB, source types.CourseSource, lessonID uuid.UUID, fileName string, file io.Reader) (*LessonView, error) {
	if fileName == "" || file == nil {
		return nil, apierr.Validation("a document file is required")
	}

	switch source {
	case types.SourceMux:
		lesson, err := ls.lessonMuxRepo.GetByID(ctx, tx, lessonID)
		if err != nil {
			return nil, apierr.Store(fmt.Errorf("get mux lesson: %w", err))
		}
		if lesson == nil {
			return nil, apierr.NotFound("no mux lesson with id %s", lessonID)
		}
		url, err := ls.uploadDocument(ctx, lesson.CourseID, lessonID, fileName, file)
		if err != nil {
			return nil, err
		}
		lesson.DocumentURL = url
		if err := ls.lessonMuxRepo.Update(ctx, tx, lesson); err != nil {
			return nil, apierr.Store(fmt.Errorf("update mux lesson: %w", err))
		}
		v := lessonViewFromMux(lesson)
		return &v, nil

	case types.SourceVimeo:
		lesson, err := ls.lessonVimeoRepo.GetByID(ctx, tx, lessonID)
		if err != nil {
			return nil, apierr.Store(fmt.Errorf("get vimeo lesson: %w", err))
		}
		if lesson == nil {
			return nil, apierr.NotFound("no vimeo lesson with id %s", lessonID)
		}
		url, err := ls.uploadDocument(ctx, lesson.CourseID, lessonID, fileName, file)
		if err != nil {
			return nil, err
		}
		lesson.DocumentURL = url
		if err := ls.lessonVimeoRepo.Update(ctx, tx, lesson); err != nil {
			return nil, apierr.Store(fmt.Errorf("update vimeo lesson: %w", err))
		}
		v := lessonViewFromVimeo(lesson)
		return &v, nil

	default:
		return nil, apierr.Validation("lessons on backend %q are read-only", source)
	}
}

func (ls *lessonService) uploadDocument(ctx context.Context, courseID, lessonID uuid.UUID, fileName string, file io.Reader) (string, error) {
	safeName := strings.ReplaceAll(path.Base(fileName), " ", "_")
	key := fmt.Sprintf("courses/%s/lessons/%s/%d-%s", courseID, lessonID, time.Now().UnixNano(), safeName)
	if err := ls.bucketService.UploadFile(ctx, gcs.BucketCategoryDocument, key, file); err != nil {
		return "", apierr.BackendUnavailable("storage", err)
	}
	return ls.bucketService.GetPublicURL(gcs.BucketCategoryDocument, key), nil
}
