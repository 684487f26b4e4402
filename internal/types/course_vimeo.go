package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourseVimeo struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title        string         `gorm:"column:title;not null" json:"title"`
	Slug         string         `gorm:"column:slug;not null;uniqueIndex" json:"slug"`
	Description  string         `gorm:"column:description" json:"description"`
	Category     string         `gorm:"column:category;index" json:"category"`
	Price        int64          `gorm:"column:price;not null;default:0" json:"price"`
	ThumbnailURL string         `gorm:"column:thumbnail_url" json:"thumbnail_url"`
	// Vimeo folder holding this course's lesson videos, e.g. "/users/x/projects/y".
	FolderURI string         `gorm:"column:folder_uri" json:"folder_uri,omitempty"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (CourseVimeo) TableName() string { return "courses_vimeo" }
