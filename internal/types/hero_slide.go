package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HeroSlide is a promotional banner on the landing page. LinkedCourseID is
// validated in code against the live course tables, not by a foreign key: the
// two backend course tables are logically one entity split across stores.
type HeroSlide struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Heading        string         `gorm:"column:heading;not null" json:"heading"`
	Subheading     string         `gorm:"column:subheading" json:"subheading"`
	ButtonText     string         `gorm:"column:button_text" json:"button_text"`
	ImageURL       string         `gorm:"column:image_url" json:"image_url"`
	LinkedCourseID *uuid.UUID     `gorm:"type:uuid;column:linked_course_id" json:"linked_course_id,omitempty"`
	Position       int            `gorm:"column:position;not null;default:0;index" json:"position"`
	CreatedAt      time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (HeroSlide) TableName() string { return "hero_slides_new" }
