package models

import "time"

// Issue statuses. "Critical" exists as a status value in stored data even though
// the summary counts only break out the four regular buckets.
const (
	StatusOpen       = "Open"
	StatusInProgress = "In Progress"
	StatusResolved   = "Resolved"
	StatusClosed     = "Closed"
	StatusCritical   = "Critical"
)

// Issue priorities.
const (
	PriorityLow      = "Low"
	PriorityMedium   = "Medium"
	PriorityHigh     = "High"
	PriorityCritical = "Critical"
)

// Issue represents a trackable unit of work (bug/feature/task).
// Timestamps are stamped by the store through its clock, not by GORM, so that a
// no-op status update leaves updated_at and status_changed_at untouched.
type Issue struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"size:500;not null" json:"title"`
	Description     string    `gorm:"type:text" json:"description"`
	Status          string    `gorm:"size:50;index;default:Open" json:"status"`
	Priority        string    `gorm:"size:50;default:Medium" json:"priority"`
	AssigneeID      *uint     `json:"assignee_id"`
	ProjectID       *uint     `gorm:"index" json:"project_id"`
	Tags            string    `gorm:"size:1000" json:"tags"` // comma-separated: ui,login,auth
	CreatedAt       time.Time `gorm:"index;autoCreateTime:false" json:"created_at"`
	UpdatedAt       time.Time `gorm:"index;autoUpdateTime:false" json:"updated_at"`
	StatusChangedAt time.Time `gorm:"autoUpdateTime:false" json:"status_changed_at"`
}

func (Issue) TableName() string { return "issues" }

// KnownStatus reports whether s is one of the recognized status values.
func KnownStatus(s string) bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved, StatusClosed, StatusCritical:
		return true
	}
	return false
}

// KnownPriority reports whether p is one of the recognized priority values.
func KnownPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}
