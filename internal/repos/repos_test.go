package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vidyarthi-app/vidyarthi-backend/internal/logger"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/types"
)

// Tables are created by hand: the production DDL uses uuid_generate_v4()
// defaults that sqlite cannot parse, and repos assign ids client-side anyway.
const testSchema = `
CREATE TABLE courses_mux (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	slug TEXT NOT NULL UNIQUE,
	description TEXT,
	category TEXT,
	price INTEGER NOT NULL DEFAULT 0,
	thumbnail_url TEXT,
	created_at DATETIME,
	updated_at DATETIME,
	deleted_at DATETIME
);
CREATE TABLE courses_vimeo (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	slug TEXT NOT NULL UNIQUE,
	description TEXT,
	category TEXT,
	price INTEGER NOT NULL DEFAULT 0,
	thumbnail_url TEXT,
	folder_uri TEXT,
	created_at DATETIME,
	updated_at DATETIME,
	deleted_at DATETIME
);
CREATE TABLE course_lessons_mux (
	id TEXT PRIMARY KEY,
	course_id TEXT NOT NULL,
	title TEXT NOT NULL,
	description TEXT,
	video_uid TEXT NOT NULL,
	lesson_order INTEGER NOT NULL DEFAULT 0,
	document_url TEXT,
	created_at DATETIME,
	updated_at DATETIME,
	deleted_at DATETIME
);
CREATE TABLE hero_slides_new (
	id TEXT PRIMARY KEY,
	heading TEXT NOT NULL,
	subheading TEXT,
	button_text TEXT,
	image_url TEXT,
	linked_course_id TEXT,
	position INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME,
	updated_at DATETIME,
	deleted_at DATETIME
);
`

func newTestDB(t *testing.T) (*gorm.DB, *logger.Logger) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Exec(testSchema).Error; err != nil {
		t.Fatalf("create schema: %v", err)
	}
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return db, log
}

func TestCourseMuxRepoCreateAssignsID(t *testing.T) {
	db, log := newTestDB(t)
	repo := NewCourseMuxRepo(db, log)
	ctx := context.Background()

	created, err := repo.Create(ctx, nil, &types.CourseMux{Title: "IoT 101", Slug: "iot-101"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatalf("expected server-assigned id")
	}

	got, err := repo.GetBySlug(ctx, nil, "iot-101")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if got == nil || got.ID != created.ID {
		t.Fatalf("GetBySlug: want=%v got=%v", created.ID, got)
	}
}

func TestCourseMuxRepoGetMissingIsNilNotError(t *testing.T) {
	db, log := newTestDB(t)
	repo := NewCourseMuxRepo(db, log)
	ctx := context.Background()

	got, err := repo.GetByID(ctx, nil, uuid.New())
	if err != nil {
		t.Fatalf("GetByID on empty table must not error: %v", err)
	}
	if got != nil {
		t.Fatalf("GetByID: want=nil got=%+v", got)
	}

	exists, err := repo.ExistsByID(ctx, nil, uuid.New())
	if err != nil {
		t.Fatalf("ExistsByID: %v", err)
	}
	if exists {
		t.Fatalf("ExistsByID on empty table: want=false got=true")
	}
}

func TestCourseMuxRepoSoftDeleteHidesRow(t *testing.T) {
	db, log := newTestDB(t)
	repo := NewCourseMuxRepo(db, log)
	ctx := context.Background()

	created, err := repo.Create(ctx, nil, &types.CourseMux{Title: "Drone Dev", Slug: "drone-dev"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.SoftDeleteByID(ctx, nil, created.ID); err != nil {
		t.Fatalf("SoftDeleteByID: %v", err)
	}

	got, err := repo.GetByID(ctx, nil, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got != nil {
		t.Fatalf("soft-deleted course still visible: %+v", got)
	}

	// Row survives for recovery until a manual purge.
	var count int64
	if err := db.Unscoped().Model(&types.CourseMux{}).Where("id = ?", created.ID).Count(&count).Error; err != nil {
		t.Fatalf("unscoped count: %v", err)
	}
	if count != 1 {
		t.Fatalf("unscoped count: want=1 got=%d", count)
	}
}

func TestLessonMuxRepoUpdateOrderReportsMissing(t *testing.T) {
	db, log := newTestDB(t)
	repo := NewLessonMuxRepo(db, log)
	ctx := context.Background()
	courseID := uuid.New()

	lesson, err := repo.Create(ctx, nil, &types.CourseLessonMux{
		CourseID: courseID,
		Title:    "Setup",
		VideoUID: "pb123",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	rows, err := repo.UpdateOrder(ctx, nil, lesson.ID, 4)
	if err != nil {
		t.Fatalf("UpdateOrder: %v", err)
	}
	if rows != 1 {
		t.Fatalf("UpdateOrder rows: want=1 got=%d", rows)
	}

	rows, err = repo.UpdateOrder(ctx, nil, uuid.New(), 9)
	if err != nil {
		t.Fatalf("UpdateOrder missing id must not error: %v", err)
	}
	if rows != 0 {
		t.Fatalf("UpdateOrder missing id rows: want=0 got=%d", rows)
	}
}

func TestLessonMuxRepoOrdersByLessonOrder(t *testing.T) {
	db, log := newTestDB(t)
	repo := NewLessonMuxRepo(db, log)
	ctx := context.Background()
	courseID := uuid.New()

	for i, title := range []string{"c", "a", "b"} {
		if _, err := repo.Create(ctx, nil, &types.CourseLessonMux{
			CourseID:    courseID,
			Title:       title,
			VideoUID:    "pb",
			LessonOrder: 3 - i,
		}); err != nil {
			t.Fatalf("Create %s: %v", title, err)
		}
	}

	lessons, err := repo.GetByCourseID(ctx, nil, courseID)
	if err != nil {
		t.Fatalf("GetByCourseID: %v", err)
	}
	if len(lessons) != 3 {
		t.Fatalf("lesson count: want=3 got=%d", len(lessons))
	}
	for i := 1; i < len(lessons); i++ {
		if lessons[i-1].LessonOrder > lessons[i].LessonOrder {
			t.Fatalf("lessons not ordered: %d before %d", lessons[i-1].LessonOrder, lessons[i].LessonOrder)
		}
	}
}

func TestHeroSlideRepoUpdateByIDFallsThroughForUnknown(t *testing.T) {
	db, log := newTestDB(t)
	repo := NewHeroSlideRepo(db, log)
	ctx := context.Background()

	created, err := repo.Create(ctx, nil, &types.HeroSlide{Heading: "New batch"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	created.Heading = "New batch open"
	rows, err := repo.UpdateByID(ctx, nil, created)
	if err != nil {
		t.Fatalf("UpdateByID: %v", err)
	}
	if rows != 1 {
		t.Fatalf("UpdateByID rows: want=1 got=%d", rows)
	}

	unknown := &types.HeroSlide{ID: uuid.New(), Heading: "ghost"}
	rows, err = repo.UpdateByID(ctx, nil, unknown)
	if err != nil {
		t.Fatalf("UpdateByID unknown id must not error: %v", err)
	}
	if rows != 0 {
		t.Fatalf("UpdateByID unknown rows: want=0 got=%d", rows)
	}
}
