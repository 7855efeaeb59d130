package models

import "time"

type TicketStatus string

const (
	TicketStatusPending    TicketStatus = "pending"
	TicketStatusApproved   TicketStatus = "approved"
	TicketStatusRejected   TicketStatus = "rejected"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// Ticket is a change request raised against a task. It follows a review
// workflow: pending until an admin approves or rejects it.
type Ticket struct {
	ID           uint64        `gorm:"primarykey" json:"id"`
	Title        string        `gorm:"type:varchar(255);not null" json:"title"`
	Description  *string       `gorm:"type:text" json:"description"`
	Status       TicketStatus  `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Priority     *TaskPriority `gorm:"type:varchar(20)" json:"priority"`
	Notes        *string       `gorm:"type:text" json:"notes"`
	TaskID       uint64        `gorm:"not null;index" json:"task_id"`
	RequestByID  uint64        `gorm:"not null;index" json:"request_by_id"`
	ApprovedByID *uint64       `json:"approved_by_id"`
	RequestedAt  *time.Time    `json:"requested_at"`
	ApprovedAt   *time.Time    `json:"approved_at"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`

	// Relations
	Task       Task  `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	RequestBy  User  `gorm:"foreignKey:RequestByID" json:"request_by,omitempty"`
	ApprovedBy *User `gorm:"foreignKey:ApprovedByID" json:"approved_by,omitempty"`
}
