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

var logworkPreloads = []string{"User", "Task"}

// LogworkService handles time entries. Non-admin callers only ever see and
// change their own entries.
type LogworkService struct {
	logworks repository.LogworkRepository
	tasks    repository.TaskRepository
}

// NewLogworkService creates a new LogworkService
func NewLogworkService(logworks repository.LogworkRepository, tasks repository.TaskRepository) *LogworkService {
	return &LogworkService{logworks: logworks, tasks: tasks}
}

// ListLogworkInput represents filters for listing logwork entries
type ListLogworkInput struct {
	TaskID *uint64
	Page   utils.PaginationParams
}

// CreateLogworkInput represents input for logging work
type CreateLogworkInput struct {
	Description string
	HoursWorked float64
	WorkDate    time.Time
	TaskID      uint64
}

// UpdateLogworkInput represents input for updating a logwork entry
type UpdateLogworkInput struct {
	Description *string
	HoursWorked *float64
	WorkDate    *time.Time
}

func (s *LogworkService) List(ctx context.Context, caller Caller, input ListLogworkInput) ([]models.Logwork, int64, error) {
	logworks, total, err := s.logworks.List(ctx, repository.LogworkFilter{
		UserID: caller.ownerScope(),
		TaskID: input.TaskID,
		Page:   input.Page,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list logwork: %w", err)
	}
	return logworks, total, nil
}

func (s *LogworkService) Get(ctx context.Context, caller Caller, id uint64) (*models.Logwork, error) {
	logwork, err := s.logworks.FindByID(ctx, id, logworkPreloads...)
	if err != nil {
		return nil, notFound(err, ErrLogworkNotFound, "find logwork")
	}
	if !caller.CanAccess(logwork.UserID) {
		return nil, ErrAccessDenied
	}
	return logwork, nil
}

// Create logs work for the caller. The task must be assigned to the caller,
// admins included.
func (s *LogworkService) Create(ctx context.Context, caller Caller, input CreateLogworkInput) (*models.Logwork, error) {
	task, err := findTaskReference(ctx, s.tasks, input.TaskID)
	if err != nil {
		return nil, err
	}
	if task.AssignedToID != caller.UserID {
		return nil, ErrNotAssigned
	}

	logwork := &models.Logwork{
		Description: strings.TrimSpace(input.Description),
		HoursWorked: input.HoursWorked,
		WorkDate:    input.WorkDate,
		UserID:      caller.UserID,
		TaskID:      task.ID,
	}
	if err := s.logworks.Create(ctx, logwork); err != nil {
		return nil, fmt.Errorf("failed to create logwork: %w", err)
	}

	return s.Get(ctx, caller, logwork.ID)
}

func (s *LogworkService) Update(ctx context.Context, caller Caller, id uint64, input UpdateLogworkInput) (*models.Logwork, error) {
	logwork, err := s.logworks.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrLogworkNotFound, "find logwork")
	}
	if !caller.CanAccess(logwork.UserID) {
		return nil, ErrAccessDenied
	}

	if input.Description != nil {
		logwork.Description = strings.TrimSpace(*input.Description)
	}
	if input.HoursWorked != nil {
		logwork.HoursWorked = *input.HoursWorked
	}
	if input.WorkDate != nil {
		logwork.WorkDate = *input.WorkDate
	}

	if err := s.logworks.Update(ctx, logwork); err != nil {
		return nil, fmt.Errorf("failed to update logwork: %w", err)
	}
	return s.Get(ctx, caller, logwork.ID)
}

func (s *LogworkService) Delete(ctx context.Context, caller Caller, id uint64) error {
	logwork, err := s.logworks.FindByID(ctx, id)
	if err != nil {
		return notFound(err, ErrLogworkNotFound, "find logwork")
	}
	if !caller.CanAccess(logwork.UserID) {
		return ErrAccessDenied
	}

	if err := s.logworks.Delete(ctx, id); err != nil {
		return notFound(err, ErrLogworkNotFound, "delete logwork")
	}
	return nil
}
