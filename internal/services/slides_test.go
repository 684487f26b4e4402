package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/vidyarthi-app/vidyarthi-backend/internal/apierr"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/types"
)

func newSlidesFixture(t *testing.T) (HeroSlideService, *fakeHeroSlideRepo, *fakeCourseMuxRepo, *fakeCourseVimeoRepo) {
	t.Helper()
	slideRepo := newFakeHeroSlideRepo()
	muxRepo := newFakeCourseMuxRepo()
	vimeoRepo := newFakeCourseVimeoRepo()
	hs := NewHeroSlideService(openTestDB(t), testLogger(), slideRepo, muxRepo, vimeoRepo)
	return hs, slideRepo, muxRepo, vimeoRepo
}

func TestSaveSlidesInsertsPlaceholderIDs(t *testing.T) {
	hs, slideRepo, _, _ := newSlidesFixture(t)

	saved, err := hs.SaveSlides(context.Background(), nil, []HeroSlideInput{
		{ID: "tmp-1", Heading: "New Batch"},
		{ID: "", Heading: "Second"},
	})
	if err != nil {
		t.Fatalf("SaveSlides: %v", err)
	}
	if len(saved) != 2 {
		t.Fatalf("expected 2 slides, got %d", len(saved))
	}
	for _, s := range saved {
		if s.ID == uuid.Nil {
			t.Fatal("inserted slide has no server-assigned id")
		}
	}
	if len(slideRepo.rows) != 2 {
		t.Fatalf("repo holds %d slides, want 2", len(slideRepo.rows))
	}
}

func TestSaveSlidesUpsertsAndPositions(t *testing.T) {
	hs, slideRepo, _, _ := newSlidesFixture(t)
	ctx := context.Background()

	existing := &types.HeroSlide{ID: uuid.New(), Heading: "Old", Position: 0}
	slideRepo.rows[existing.ID] = existing

	saved, err := hs.SaveSlides(ctx, nil, []HeroSlideInput{
		{ID: "fresh", Heading: "First"},
		{ID: existing.ID.String(), Heading: "Renamed"},
	})
	if err != nil {
		t.Fatalf("SaveSlides: %v", err)
	}
	if saved[0].Position != 0 || saved[1].Position != 1 {
		t.Fatalf("positions %d,%d do not follow batch order", saved[0].Position, saved[1].Position)
	}
	if got := slideRepo.rows[existing.ID]; got == nil || got.Heading != "Renamed" {
		t.Fatalf("existing slide not updated in place: %+v", got)
	}
}

func TestSaveSlidesUnknownUUIDInserts(t *testing.T) {
	hs, slideRepo, _, _ := newSlidesFixture(t)

	ghost := uuid.New()
	saved, err := hs.SaveSlides(context.Background(), nil, []HeroSlideInput{
		{ID: ghost.String(), Heading: "Revived"},
	})
	if err != nil {
		t.Fatalf("SaveSlides: %v", err)
	}
	if len(saved) != 1 || len(slideRepo.rows) != 1 {
		t.Fatalf("expected exactly one slide, got saved=%d rows=%d", len(saved), len(slideRepo.rows))
	}
}

func TestSaveSlidesLeavesOmittedSlidesAlone(t *testing.T) {
	hs, slideRepo, _, _ := newSlidesFixture(t)

	submitted := &types.HeroSlide{ID: uuid.New(), Heading: "Submitted"}
	omitted := &types.HeroSlide{ID: uuid.New(), Heading: "Omitted", Position: 3}
	slideRepo.rows[submitted.ID] = submitted
	slideRepo.rows[omitted.ID] = omitted

	_, err := hs.SaveSlides(context.Background(), nil, []HeroSlideInput{
		{ID: submitted.ID.String(), Heading: "Submitted v2"},
	})
	if err != nil {
		t.Fatalf("SaveSlides: %v", err)
	}
	got, ok := slideRepo.rows[omitted.ID]
	if !ok {
		t.Fatal("slide missing from the batch was deleted")
	}
	if got.Heading != "Omitted" || got.Position != 3 {
		t.Fatalf("slide missing from the batch was modified: %+v", got)
	}
	if slideRepo.rows[submitted.ID].Heading != "Submitted v2" {
		t.Fatal("submitted slide was not updated")
	}
}

func TestSaveSlidesNullsStaleCourseLink(t *testing.T) {
	hs, slideRepo, muxRepo, vimeoRepo := newSlidesFixture(t)

	liveMux := uuid.New()
	muxRepo.rows[liveMux] = &types.CourseMux{ID: liveMux, Slug: "live-mux"}
	liveVimeo := uuid.New()
	vimeoRepo.rows[liveVimeo] = &types.CourseVimeo{ID: liveVimeo, Slug: "live-vimeo"}

	saved, err := hs.SaveSlides(context.Background(), nil, []HeroSlideInput{
		{ID: "a", Heading: "A", LinkedCourseID: liveMux.String()},
		{ID: "b", Heading: "B", LinkedCourseID: liveVimeo.String()},
		{ID: "c", Heading: "C", LinkedCourseID: uuid.New().String()},
		{ID: "d", Heading: "D", LinkedCourseID: "not-a-uuid"},
	})
	if err != nil {
		t.Fatalf("SaveSlides must not fail over a stale link: %v", err)
	}

	byHeading := map[string]*types.HeroSlide{}
	for _, s := range saved {
		byHeading[s.Heading] = s
	}
	if byHeading["A"].LinkedCourseID == nil || *byHeading["A"].LinkedCourseID != liveMux {
		t.Fatal("live mux link was dropped")
	}
	if byHeading["B"].LinkedCourseID == nil || *byHeading["B"].LinkedCourseID != liveVimeo {
		t.Fatal("live vimeo link was dropped")
	}
	if byHeading["C"].LinkedCourseID != nil {
		t.Fatal("stale link was not nulled")
	}
	if byHeading["D"].LinkedCourseID != nil {
		t.Fatal("unparseable link was not nulled")
	}
	_ = slideRepo
}

func TestSaveSlidesRequiresHeading(t *testing.T) {
	hs, _, _, _ := newSlidesFixture(t)

	_, err := hs.SaveSlides(context.Background(), nil, []HeroSlideInput{{ID: "x"}})
	if !apierr.IsCode(err, apierr.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
