package services

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/vidyarthi-app/vidyarthi-backend/internal/apierr"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/logger"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/repos"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/types"
)

const lessonOrderWorkers = 8

type LessonOrderEntry struct {
	ID          uuid.UUID `json:"id"`
	LessonOrder int       `json:"lesson_order"`
}

// LessonOrderService applies a batch of display-position updates. The batch is
// best-effort: each entry succeeds or fails on its own, successes stay
// applied, and the caller gets the full failure list back. Re-issuing the same
// batch is safe.
type LessonOrderService interface {
	UpdateOrder(ctx context.Context, backend types.CourseSource, entries []LessonOrderEntry) (int, error)
}

type lessonOrderService struct {
	log             *logger.Logger
	lessonMuxRepo   repos.LessonMuxRepo
	lessonVimeoRepo repos.LessonVimeoRepo
}

func NewLessonOrderService(
	baseLog *logger.Logger,
	lessonMuxRepo repos.LessonMuxRepo,
	lessonVimeoRepo repos.LessonVimeoRepo,
) LessonOrderService {
	return &lessonOrderService{
		log:             baseLog.With("service", "LessonOrderService"),
		lessonMuxRepo:   lessonMuxRepo,
		lessonVimeoRepo: lessonVimeoRepo,
	}
}

func (los *lessonOrderService) UpdateOrder(ctx context.Context, backend types.CourseSource, entries []LessonOrderEntry) (int, error) {
	if len(entries) == 0 {
		return 0, apierr.Validation("lessons list cannot be empty")
	}
	for _, e := range entries {
		if e.ID == uuid.Nil {
			return 0, apierr.Validation("every lesson entry needs an id")
		}
	}

	var update func(ctx context.Context, id uuid.UUID, order int) (int64, error)
	switch backend {
	case types.SourceMux:
		update = func(ctx context.Context, id uuid.UUID, order int) (int64, error) {
			return los.lessonMuxRepo.UpdateOrder(ctx, nil, id, order)
		}
	case types.SourceVimeo:
		update = func(ctx context.Context, id uuid.UUID, order int) (int64, error) {
			return los.lessonVimeoRepo.UpdateOrder(ctx, nil, id, order)
		}
	case "":
		// Clients that predate the backend field send bare entry lists.
		// Probe mux first, then vimeo; lesson ids are unique across both.
		update = func(ctx context.Context, id uuid.UUID, order int) (int64, error) {
			rows, err := los.lessonMuxRepo.UpdateOrder(ctx, nil, id, order)
			if err != nil || rows > 0 {
				return rows, err
			}
			return los.lessonVimeoRepo.UpdateOrder(ctx, nil, id, order)
		}
	default:
		return 0, apierr.Validation("backend must be mux or vimeo, got %q", backend)
	}

	// Fan the entries out over a fixed worker pool and join before returning.
	// No cancellation on failure: one bad entry must not abort its siblings.
	type result struct {
		idx     int
		failure *apierr.ItemFailure
	}

	jobs := make(chan int)
	results := make(chan result, len(entries))

	var wg sync.WaitGroup
	workers := lessonOrderWorkers
	if len(entries) < workers {
		workers = len(entries)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				e := entries[idx]
				rows, err := update(ctx, e.ID, e.LessonOrder)
				switch {
				case err != nil:
					results <- result{idx: idx, failure: &apierr.ItemFailure{
						ID:     e.ID.String(),
						Reason: err.Error(),
					}}
				case rows == 0:
					results <- result{idx: idx, failure: &apierr.ItemFailure{
						ID:     e.ID.String(),
						Reason: "lesson not found",
					}}
				default:
					results <- result{idx: idx}
				}
			}
		}()
	}

	for idx := range entries {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()
	close(results)

	updated := 0
	var failures []apierr.ItemFailure
	for r := range results {
		if r.failure == nil {
			updated++
			continue
		}
		failures = append(failures, *r.failure)
	}

	if len(failures) > 0 {
		// Stable order for the response regardless of worker scheduling.
		sort.Slice(failures, func(i, j int) bool { return failures[i].ID < failures[j].ID })
		los.log.Warn("lesson order batch had failures",
			"backend", backend, "updated", updated, "failed", len(failures))
		return updated, apierr.Partial(nil, failures)
	}
	return updated, nil
}
