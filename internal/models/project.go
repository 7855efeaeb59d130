package models

import "time"

type Project struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description *string   `gorm:"type:text" json:"description"`
	CreatedByID uint64    `gorm:"not null;index" json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	CreatedBy     User   `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	AssignedUsers []User `gorm:"many2many:project_users;constraint:OnDelete:CASCADE" json:"assigned_users,omitempty"`
	Tasks         []Task `gorm:"foreignKey:ProjectID;constraint:OnDelete:SET NULL" json:"tasks,omitempty"`
}
