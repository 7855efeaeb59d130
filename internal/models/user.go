package models

import (
	"time"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password;type:varchar(255);not null" json:"-"`
	FirstName    string    `gorm:"type:varchar(255);not null" json:"first_name"`
	LastName     string    `gorm:"type:varchar(255);not null" json:"last_name"`
	Role         Role      `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	CreatedTasks     []Task    `gorm:"foreignKey:CreatedByID" json:"-"`
	AssignedTasks    []Task    `gorm:"foreignKey:AssignedToID" json:"-"`
	Projects         []Project `gorm:"foreignKey:CreatedByID" json:"-"`
	AssignedProjects []Project `gorm:"many2many:project_users;constraint:OnDelete:CASCADE" json:"-"`
	Logworks         []Logwork `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
