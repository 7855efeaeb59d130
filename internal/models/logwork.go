package models

import "time"

type Logwork struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Description string    `gorm:"type:text;not null" json:"description"`
	HoursWorked float64   `gorm:"not null" json:"hours_worked"`
	WorkDate    time.Time `gorm:"not null" json:"work_date"`
	UserID      uint64    `gorm:"not null;index" json:"user_id"`
	TaskID      uint64    `gorm:"not null;index" json:"task_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Task Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
}
