package models

// User represents a team member. Users are owned by an external directory and
// are read-only from this service's perspective.
type User struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"size:200;not null" json:"name"`
	Role   string `gorm:"size:100" json:"role"`
	Avatar string `gorm:"size:500" json:"avatar"`
	Email  string `gorm:"size:255" json:"email"`
}

func (User) TableName() string { return "users" }
