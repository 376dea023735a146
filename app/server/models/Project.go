package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Project struct {
	gorm.Model

	// Project basic info
	Title       string    `gorm:"column:title"`
	Description string    `gorm:"column:description"`
	StartDate   time.Time `gorm:"column:start_date"`
	Status      string    `gorm:"column:status"` // Planned / Active / Completed

	// Presentation
	ImageURL *string        `gorm:"column:image_url"`
	Tags     pq.StringArray `gorm:"column:tags;type:text[]"`

	// Ownership
	CreatedBy uint `gorm:"column:created_by;index"`

	Creator User `gorm:"foreignKey:CreatedBy"`
}
