package dto

import (
	"time"

	"github.com/yukikurage/taskhub-api/internal/models"
)

type CreateTicketRequest struct {
	Title       string               `json:"title" binding:"required,min=1,max=255"`
	Description *string              `json:"description" binding:"omitempty,max=1000"`
	Priority    *models.TaskPriority `json:"priority" binding:"omitempty,oneof=low medium high"`
	Notes       *string              `json:"notes" binding:"omitempty,max=1000"`
	TaskID      uint64               `json:"taskId" binding:"required,gt=0"`
}

type UpdateTicketRequest struct {
	Title        *string              `json:"title" binding:"omitempty,min=1,max=255"`
	Description  *string              `json:"description" binding:"omitempty,max=1000"`
	Status       *models.TicketStatus `json:"status" binding:"omitempty,oneof=pending approved rejected in_progress resolved closed"`
	Priority     *models.TaskPriority `json:"priority" binding:"omitempty,oneof=low medium high"`
	Notes        *string              `json:"notes" binding:"omitempty,max=1000"`
	TaskID       *uint64              `json:"taskId" binding:"omitempty,gt=0"`
	ApprovedByID *uint64              `json:"approvedById" binding:"omitempty,gt=0"`
}

type TicketDTO struct {
	ID           uint64               `json:"id"`
	Title        string               `json:"title"`
	Description  *string              `json:"description"`
	Status       models.TicketStatus  `json:"status"`
	Priority     *models.TaskPriority `json:"priority"`
	Notes        *string              `json:"notes"`
	TaskID       uint64               `json:"taskId"`
	RequestByID  uint64               `json:"requestById"`
	ApprovedByID *uint64              `json:"approvedById"`
	RequestedAt  *time.Time           `json:"requestedAt"`
	ApprovedAt   *time.Time           `json:"approvedAt"`
	Task         *TaskSummaryDTO      `json:"task,omitempty"`
	RequestBy    *UserSummaryDTO      `json:"requestBy,omitempty"`
	ApprovedBy   *UserSummaryDTO      `json:"approvedBy,omitempty"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

func ToTicketDTO(ticket models.Ticket) TicketDTO {
	dto := TicketDTO{
		ID:           ticket.ID,
		Title:        ticket.Title,
		Description:  ticket.Description,
		Status:       ticket.Status,
		Priority:     ticket.Priority,
		Notes:        ticket.Notes,
		TaskID:       ticket.TaskID,
		RequestByID:  ticket.RequestByID,
		ApprovedByID: ticket.ApprovedByID,
		RequestedAt:  ticket.RequestedAt,
		ApprovedAt:   ticket.ApprovedAt,
		Task:         toTaskSummary(ticket.Task),
		RequestBy:    toUserSummary(ticket.RequestBy),
		CreatedAt:    ticket.CreatedAt,
		UpdatedAt:    ticket.UpdatedAt,
	}
	if ticket.ApprovedBy != nil {
		dto.ApprovedBy = toUserSummary(*ticket.ApprovedBy)
	}
	return dto
}

func ToTicketDTOs(tickets []models.Ticket) []TicketDTO {
	items := make([]TicketDTO, len(tickets))
	for i, ticket := range tickets {
		items[i] = ToTicketDTO(ticket)
	}
	return items
}
