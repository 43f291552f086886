package model

import (
	"time"

	"github.com/google/uuid"
)

// CourseModel mirrors the columns of 'courses' that user profiles display.
// The course catalogue owns the table; this service only reads it.
type CourseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title     string    `gorm:"type:varchar(200);not null"`
	Thumbnail string    `gorm:"type:varchar(255);not null;default:''"`
	Progress  int       `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CourseModel) TableName() string {
	return "courses"
}
