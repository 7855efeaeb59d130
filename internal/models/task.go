package models

import (
	"time"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

type Task struct {
	ID           uint64       `gorm:"primarykey" json:"id"`
	Title        string       `gorm:"type:varchar(200);not null" json:"title"`
	Description  *string      `gorm:"type:text" json:"description"`
	Status       TaskStatus   `gorm:"type:varchar(20);not null;default:'todo'" json:"status"`
	Priority     TaskPriority `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	Deadline     *time.Time   `json:"deadline"`
	AssignedToID uint64       `gorm:"not null;index" json:"assigned_to_id"`
	CreatedByID  uint64       `gorm:"not null;index" json:"created_by_id"`
	ProjectID    *uint64      `gorm:"index" json:"project_id"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`

	// Relations
	AssignedTo User      `gorm:"foreignKey:AssignedToID" json:"assigned_to,omitempty"`
	CreatedBy  User      `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	Project    *Project  `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Tickets    []Ticket  `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"-"`
	Logworks   []Logwork `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"-"`
}
