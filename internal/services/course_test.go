package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/vidyarthi-app/vidyarthi-backend/internal/apierr"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/types"
)

type courseFixture struct {
	svc        CourseService
	muxRepo    *fakeCourseMuxRepo
	vimeoRepo  *fakeCourseVimeoRepo
	cfRepo     *fakeCourseCFRepo
	lessonMux  *fakeLessonMuxRepo
	muxBackend *fakeBackend
	bucket     *fakeBucketService
	thumbs     *fakeThumbnailService
}

func newCourseFixture(t *testing.T) *courseFixture {
	t.Helper()
	f := &courseFixture{
		muxRepo:    newFakeCourseMuxRepo(),
		vimeoRepo:  newFakeCourseVimeoRepo(),
		cfRepo:     newFakeCourseCFRepo(),
		lessonMux:  newFakeLessonMuxRepo(),
		muxBackend: &fakeBackend{},
		bucket:     newFakeBucketService(),
		thumbs:     &fakeThumbnailService{},
	}
	db := openTestDB(t)
	resolver := NewResolverService(db, testLogger(), f.vimeoRepo, f.muxRepo, f.cfRepo)
	f.svc = NewCourseService(
		db, testLogger(),
		f.muxRepo, f.vimeoRepo, f.cfRepo,
		f.lessonMux, newFakeLessonVimeoRepo(), newFakeLessonCFRepo(),
		resolver,
		f.muxBackend, &fakeBackend{}, &fakeBackend{},
		nil, // no vimeo folder client in tests
		f.thumbs, f.bucket,
	)
	return f
}

func TestCreateCourseGeneratesUniqueSlug(t *testing.T) {
	f := newCourseFixture(t)
	ctx := context.Background()

	// Occupy the natural slug on the OTHER backend's table.
	takenID := uuid.New()
	f.vimeoRepo.rows[takenID] = &types.CourseVimeo{ID: takenID, Title: "Go Basics", Slug: "go-basics"}

	created, err := f.svc.CreateCourse(ctx, nil, CreateCourseInput{
		Source: types.SourceMux,
		Title:  "Go Basics",
		Price:  49900,
	})
	if err != nil {
		t.Fatalf("CreateCourse: %v", err)
	}
	if created.Slug != "go-basics-2" {
		t.Fatalf("slug = %q, want go-basics-2", created.Slug)
	}
	if created.Source != types.SourceMux {
		t.Fatalf("source = %q", created.Source)
	}
	if created.ThumbnailURL == "" {
		t.Fatal("default thumbnail was not generated")
	}
	if f.thumbs.generated != 1 {
		t.Fatalf("generated %d thumbnails, want 1", f.thumbs.generated)
	}
}

func TestCreateCourseValidation(t *testing.T) {
	f := newCourseFixture(t)
	ctx := context.Background()

	cases := []CreateCourseInput{
		{Source: types.SourceMux, Title: ""},
		{Source: types.SourceCF, Title: "Legacy"},
		{Source: "youtube", Title: "Nope"},
		{Source: types.SourceMux, Title: "Neg", Price: -1},
		{Source: types.SourceMux, Title: "!!!"},
	}
	for i, in := range cases {
		if _, err := f.svc.CreateCourse(ctx, nil, in); !apierr.IsCode(err, apierr.CodeValidation) {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
	}
}

func TestCreateCourseSurvivesThumbnailFailure(t *testing.T) {
	f := newCourseFixture(t)
	f.thumbs.err = errors.New("font missing")

	created, err := f.svc.CreateCourse(context.Background(), nil, CreateCourseInput{
		Source: types.SourceMux,
		Title:  "No Art",
	})
	if err != nil {
		t.Fatalf("CreateCourse must not fail on thumbnail error: %v", err)
	}
	if created.ThumbnailURL != "" {
		t.Fatalf("unexpected thumbnail %q", created.ThumbnailURL)
	}
}

func TestGetCourseBySlugReturnsLessonsInOrder(t *testing.T) {
	f := newCourseFixture(t)
	ctx := context.Background()

	courseID := uuid.New()
	f.muxRepo.rows[courseID] = &types.CourseMux{ID: courseID, Title: "Go", Slug: "go"}
	for i, uid := range []string{"pb-b", "pb-a"} {
		l := &types.CourseLessonMux{ID: uuid.New(), CourseID: courseID, Title: uid, VideoUID: uid, LessonOrder: 2 - i}
		f.lessonMux.rows[l.ID] = l
	}

	detail, err := f.svc.GetCourseBySlug(ctx, nil, "go")
	if err != nil {
		t.Fatalf("GetCourseBySlug: %v", err)
	}
	if len(detail.Lessons) != 2 {
		t.Fatalf("expected 2 lessons, got %d", len(detail.Lessons))
	}
	if detail.Lessons[0].LessonOrder > detail.Lessons[1].LessonOrder {
		t.Fatal("lessons not ordered by lesson_order")
	}
	if !strings.HasPrefix(detail.Lessons[0].PlaybackURL, "https://stream.mux.com/") {
		t.Fatalf("playback url %q", detail.Lessons[0].PlaybackURL)
	}
}

func TestDeleteCourseRemovesRowsThenCleansRemote(t *testing.T) {
	f := newCourseFixture(t)
	ctx := context.Background()

	courseID := uuid.New()
	f.muxRepo.rows[courseID] = &types.CourseMux{ID: courseID, Slug: "doomed"}
	for _, uid := range []string{"pb-1", "pb-2"} {
		l := &types.CourseLessonMux{ID: uuid.New(), CourseID: courseID, VideoUID: uid}
		f.lessonMux.rows[l.ID] = l
	}

	warnings, err := f.svc.DeleteCourse(ctx, types.CourseRef{Source: types.SourceMux, ID: courseID})
	if err != nil {
		t.Fatalf("DeleteCourse: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if _, ok := f.muxRepo.rows[courseID]; ok {
		t.Fatal("course row still present")
	}
	if len(f.lessonMux.rows) != 0 {
		t.Fatalf("%d lesson rows still present", len(f.lessonMux.rows))
	}
	if len(f.muxBackend.deleted) != 2 {
		t.Fatalf("remote deletes = %v, want 2 entries", f.muxBackend.deleted)
	}
}

func TestDeleteCourseRemoteFailureIsAWarning(t *testing.T) {
	f := newCourseFixture(t)
	ctx := context.Background()

	courseID := uuid.New()
	f.muxRepo.rows[courseID] = &types.CourseMux{ID: courseID, Slug: "doomed"}
	l := &types.CourseLessonMux{ID: uuid.New(), CourseID: courseID, VideoUID: "pb-1"}
	f.lessonMux.rows[l.ID] = l
	f.muxBackend.deleteErr = errors.New("mux 503")

	warnings, err := f.svc.DeleteCourse(ctx, types.CourseRef{Source: types.SourceMux, ID: courseID})
	if err != nil {
		t.Fatalf("remote failure must not fail the delete: %v", err)
	}
	if len(warnings) == 0 {
		t.Fatal("expected a cleanup warning")
	}
	if _, ok := f.muxRepo.rows[courseID]; ok {
		t.Fatal("rows must be gone even when remote cleanup fails")
	}
}

func TestDeleteCourseNotFound(t *testing.T) {
	f := newCourseFixture(t)

	_, err := f.svc.DeleteCourse(context.Background(), types.CourseRef{Source: types.SourceMux, ID: uuid.New()})
	if !apierr.IsCode(err, apierr.CodeNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestListCoursesMergesBackends(t *testing.T) {
	f := newCourseFixture(t)
	ctx := context.Background()

	muxID, vimeoID, cfID := uuid.New(), uuid.New(), uuid.New()
	f.muxRepo.rows[muxID] = &types.CourseMux{ID: muxID, Slug: "m"}
	f.vimeoRepo.rows[vimeoID] = &types.CourseVimeo{ID: vimeoID, Slug: "v"}
	f.cfRepo.rows[cfID] = &types.CourseCF{ID: cfID, Slug: "c"}

	all, err := f.svc.ListCourses(ctx, nil, "")
	if err != nil {
		t.Fatalf("ListCourses: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 courses, got %d", len(all))
	}

	muxOnly, err := f.svc.ListCourses(ctx, nil, types.SourceMux)
	if err != nil {
		t.Fatalf("ListCourses(mux): %v", err)
	}
	if len(muxOnly) != 1 || muxOnly[0].ID != muxID {
		t.Fatalf("mux filter returned %+v", muxOnly)
	}

	if _, err := f.svc.ListCourses(ctx, nil, "youtube"); !apierr.IsCode(err, apierr.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
