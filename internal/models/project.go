package models

import "time"

// Project groups issues and carries its team roster. Projects are owned by an
// external collaborator and are read-only from this service's perspective.
type Project struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	TeamMembers string    `gorm:"size:1000" json:"team_members"` // comma-separated user ids: 1,4,7
	CreatedAt   time.Time `json:"created_at"`
}

func (Project) TableName() string { return "projects" }
