package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Mission struct {
	gorm.Model

	// Mission basic info
	Title       string    `gorm:"column:title"`
	Description string    `gorm:"column:description"`
	LaunchDate  time.Time `gorm:"column:launch_date"`
	Status      string    `gorm:"column:status"` // Planned / Active / Completed

	// Presentation
	ImageURL *string        `gorm:"column:image_url"`          // NULL when no image has been attached
	Crew     pq.StringArray `gorm:"column:crew;type:text[]"`   // crew member names, may be empty

	// Ownership
	CreatedBy uint `gorm:"column:created_by;index"` // user who created the record

	Creator User `gorm:"foreignKey:CreatedBy"`
}
