package constants

// Lifecycle states for missions and projects.
const (
	StatusPlanned   = "Planned"
	StatusActive    = "Active"
	StatusCompleted = "Completed"
)

var ContentStatuses = []string{StatusPlanned, StatusActive, StatusCompleted}
