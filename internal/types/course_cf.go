package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CourseCF is the legacy Cloudflare Stream course table. No new courses are
// created here; it stays readable so old purchases keep playing.
type CourseCF struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title        string         `gorm:"column:title;not null" json:"title"`
	Slug         string         `gorm:"column:slug;not null;uniqueIndex" json:"slug"`
	Description  string         `gorm:"column:description" json:"description"`
	Category     string         `gorm:"column:category;index" json:"category"`
	Price        int64          `gorm:"column:price;not null;default:0" json:"price"`
	ThumbnailURL string         `gorm:"column:thumbnail_url" json:"thumbnail_url"`
	CreatedAt    time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (CourseCF) TableName() string { return "course_cf" }
