package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourseLessonMux struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CourseID    uuid.UUID `gorm:"type:uuid;not null;index" json:"course_id"`
	Title       string    `gorm:"column:title;not null" json:"title"`
	Description string    `gorm:"column:description" json:"description"`
	// Mux playback id; the HLS URL is derived as https://stream.mux.com/<uid>.m3u8.
	VideoUID string `gorm:"column:video_uid;not null" json:"video_uid"`
	// Display position among sibling lessons of the same course. Dense but
	// gap-tolerant; only relative order matters.
	LessonOrder int            `gorm:"column:lesson_order;not null;default:0;index" json:"lesson_order"`
	DocumentURL string         `gorm:"column:document_url" json:"document_url,omitempty"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (CourseLessonMux) TableName() string { return "course_lessons_mux" }
