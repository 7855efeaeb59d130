package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/taskhub-api/internal/models"
	"github.com/yukikurage/taskhub-api/internal/repository"
	"github.com/yukikurage/taskhub-api/internal/utils"
)

var ticketPreloads = []string{"Task", "RequestBy", "ApprovedBy"}

// TicketService handles change requests raised against tasks.
type TicketService struct {
	tickets repository.TicketRepository
	tasks   repository.TaskRepository
	users   repository.UserRepository
	now     func() time.Time
}

// NewTicketService creates a new TicketService
func NewTicketService(tickets repository.TicketRepository, tasks repository.TaskRepository, users repository.UserRepository) *TicketService {
	return &TicketService{
		tickets: tickets,
		tasks:   tasks,
		users:   users,
		now:     time.Now,
	}
}

// ListTicketsInput represents filters for listing tickets
type ListTicketsInput struct {
	TaskID *uint64
	Status *models.TicketStatus
	Page   utils.PaginationParams
}

// CreateTicketInput represents input for creating a ticket
type CreateTicketInput struct {
	Title       string
	Description *string
	Priority    *models.TaskPriority
	Notes       *string
	TaskID      uint64
}

// UpdateTicketInput represents input for updating a ticket
type UpdateTicketInput struct {
	Title        *string
	Description  *string
	Status       *models.TicketStatus
	Priority     *models.TaskPriority
	Notes        *string
	TaskID       *uint64
	ApprovedByID *uint64
}

func (s *TicketService) List(ctx context.Context, _ Caller, input ListTicketsInput) ([]models.Ticket, int64, error) {
	tickets, total, err := s.tickets.List(ctx, repository.TicketFilter{
		TaskID: input.TaskID,
		Status: input.Status,
		Page:   input.Page,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tickets: %w", err)
	}
	return tickets, total, nil
}

func (s *TicketService) Get(ctx context.Context, _ Caller, id uint64) (*models.Ticket, error) {
	ticket, err := s.tickets.FindByID(ctx, id, ticketPreloads...)
	if err != nil {
		return nil, notFound(err, ErrTicketNotFound, "find ticket")
	}
	return ticket, nil
}

// Create opens a pending ticket requested by the caller.
func (s *TicketService) Create(ctx context.Context, caller Caller, input CreateTicketInput) (*models.Ticket, error) {
	if _, err := findTaskReference(ctx, s.tasks, input.TaskID); err != nil {
		return nil, err
	}
	if err := ensureUser(ctx, s.users, caller.UserID, ErrCreatorNotFound); err != nil {
		return nil, err
	}

	requestedAt := s.now()
	ticket := &models.Ticket{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Status:      models.TicketStatusPending,
		Priority:    input.Priority,
		Notes:       input.Notes,
		TaskID:      input.TaskID,
		RequestByID: caller.UserID,
		RequestedAt: &requestedAt,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}

	return s.Get(ctx, caller, ticket.ID)
}

// Update applies a partial update. Setting an approver stamps ApprovedAt.
func (s *TicketService) Update(ctx context.Context, caller Caller, id uint64, input UpdateTicketInput) (*models.Ticket, error) {
	ticket, err := s.tickets.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrTicketNotFound, "find ticket")
	}

	if input.TaskID != nil && *input.TaskID != ticket.TaskID {
		if _, err := findTaskReference(ctx, s.tasks, *input.TaskID); err != nil {
			return nil, err
		}
		ticket.TaskID = *input.TaskID
	}
	if input.ApprovedByID != nil {
		if err := ensureUser(ctx, s.users, *input.ApprovedByID, ErrApproverNotFound); err != nil {
			return nil, err
		}
		approvedAt := s.now()
		ticket.ApprovedByID = input.ApprovedByID
		ticket.ApprovedAt = &approvedAt
	}

	if input.Title != nil {
		ticket.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		ticket.Description = input.Description
	}
	if input.Status != nil {
		ticket.Status = *input.Status
	}
	if input.Priority != nil {
		ticket.Priority = input.Priority
	}
	if input.Notes != nil {
		ticket.Notes = input.Notes
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, fmt.Errorf("failed to update ticket: %w", err)
	}
	return s.Get(ctx, caller, ticket.ID)
}

func (s *TicketService) Delete(ctx context.Context, _ Caller, id uint64) error {
	if err := s.tickets.Delete(ctx, id); err != nil {
		return notFound(err, ErrTicketNotFound, "delete ticket")
	}
	return nil
}
