package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/yukikurage/taskhub-api/internal/constants"
	"github.com/yukikurage/taskhub-api/internal/events"
	"github.com/yukikurage/taskhub-api/internal/models"
	"github.com/yukikurage/taskhub-api/internal/repository"
	"github.com/yukikurage/taskhub-api/internal/utils"
)

var taskPreloads = []string{"AssignedTo", "CreatedBy", "Project"}

// TaskService handles task business logic
type TaskService struct {
	tasks     repository.TaskRepository
	users     repository.UserRepository
	projects  repository.ProjectRepository
	publisher events.Publisher
	aiService *AIService
	log       *zap.Logger
}

// NewTaskService creates a new TaskService. aiService may be nil when no
// OpenAI key is configured.
func NewTaskService(
	tasks repository.TaskRepository,
	users repository.UserRepository,
	projects repository.ProjectRepository,
	publisher events.Publisher,
	aiService *AIService,
	log *zap.Logger,
) *TaskService {
	return &TaskService{
		tasks:     tasks,
		users:     users,
		projects:  projects,
		publisher: publisher,
		aiService: aiService,
		log:       log,
	}
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	ProjectID *uint64
	Status    *models.TaskStatus
	Page      utils.PaginationParams
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title        string
	Description  *string
	Status       models.TaskStatus
	Priority     models.TaskPriority
	Deadline     *time.Time
	AssignedToID uint64
	ProjectID    *uint64
}

// UpdateTaskInput represents input for updating a task. Nil fields are left
// unchanged; ClearDeadline and ClearProject remove the optional links.
type UpdateTaskInput struct {
	Title         *string
	Description   *string
	Status        *models.TaskStatus
	Priority      *models.TaskPriority
	Deadline      *time.Time
	ClearDeadline bool
	AssignedToID  *uint64
	ProjectID     *uint64
	ClearProject  bool
}

// List returns every task for admins and only the caller's assigned tasks otherwise.
func (s *TaskService) List(ctx context.Context, caller Caller, input ListTasksInput) ([]models.Task, int64, error) {
	tasks, total, err := s.tasks.List(ctx, repository.TaskFilter{
		AssignedToID: caller.ownerScope(),
		ProjectID:    input.ProjectID,
		Status:       input.Status,
		Page:         input.Page,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// ListByUser returns the tasks assigned to userID. Non-admin callers always
// receive their own tasks, whatever userID they ask for.
func (s *TaskService) ListByUser(ctx context.Context, caller Caller, userID uint64, page utils.PaginationParams) ([]models.Task, int64, error) {
	if !caller.IsAdmin() {
		userID = caller.UserID
	}

	tasks, total, err := s.tasks.List(ctx, repository.TaskFilter{AssignedToID: &userID, Page: page})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// Get returns a task with related data
func (s *TaskService) Get(ctx context.Context, caller Caller, id uint64) (*models.Task, error) {
	task, err := s.tasks.FindByID(ctx, id, taskPreloads...)
	if err != nil {
		return nil, notFound(err, ErrTaskNotFound, "find task")
	}
	if !caller.CanAccess(task.AssignedToID) {
		return nil, ErrAccessDenied
	}
	return task, nil
}

// Create validates every referenced row before inserting the task.
func (s *TaskService) Create(ctx context.Context, caller Caller, input CreateTaskInput) (*models.Task, error) {
	if err := ensureUser(ctx, s.users, input.AssignedToID, ErrAssigneeNotFound); err != nil {
		return nil, err
	}
	if err := ensureUser(ctx, s.users, caller.UserID, ErrCreatorNotFound); err != nil {
		return nil, err
	}
	if input.ProjectID != nil {
		if err := ensureProject(ctx, s.projects, *input.ProjectID); err != nil {
			return nil, err
		}
	}

	if input.Status == "" {
		input.Status = models.TaskStatusTodo
	}
	if input.Priority == "" {
		input.Priority = models.TaskPriorityMedium
	}

	task := &models.Task{
		Title:        strings.TrimSpace(input.Title),
		Description:  input.Description,
		Status:       input.Status,
		Priority:     input.Priority,
		Deadline:     input.Deadline,
		AssignedToID: input.AssignedToID,
		CreatedByID:  caller.UserID,
		ProjectID:    input.ProjectID,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.publishAssigned(ctx, task, caller.UserID)

	return s.reload(ctx, task.ID)
}

// Update applies a partial update, re-validating any changed references.
func (s *TaskService) Update(ctx context.Context, caller Caller, id uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrTaskNotFound, "find task")
	}
	if !caller.CanAccess(task.AssignedToID) {
		return nil, ErrAccessDenied
	}

	reassigned := false
	if input.AssignedToID != nil && *input.AssignedToID != task.AssignedToID {
		if err := ensureUser(ctx, s.users, *input.AssignedToID, ErrAssigneeNotFound); err != nil {
			return nil, err
		}
		task.AssignedToID = *input.AssignedToID
		reassigned = true
	}

	switch {
	case input.ClearProject:
		task.ProjectID = nil
	case input.ProjectID != nil:
		if task.ProjectID == nil || *task.ProjectID != *input.ProjectID {
			if err := ensureProject(ctx, s.projects, *input.ProjectID); err != nil {
				return nil, err
			}
		}
		task.ProjectID = input.ProjectID
	}

	if input.Title != nil {
		task.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		task.Description = input.Description
	}
	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.ClearDeadline {
		task.Deadline = nil
	} else if input.Deadline != nil {
		task.Deadline = input.Deadline
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	if reassigned {
		s.publishAssigned(ctx, task, caller.UserID)
	}

	return s.reload(ctx, task.ID)
}

// Delete removes a task with its tickets and logwork.
func (s *TaskService) Delete(ctx context.Context, caller Caller, id uint64) error {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return notFound(err, ErrTaskNotFound, "find task")
	}
	if !caller.CanAccess(task.AssignedToID) {
		return ErrAccessDenied
	}

	if err := s.tasks.Delete(ctx, id); err != nil {
		return notFound(err, ErrTaskNotFound, "delete task")
	}
	return nil
}

// GenerateDrafts uses AI to suggest tasks from text. Nothing is persisted.
func (s *TaskService) GenerateDrafts(ctx context.Context, text string) ([]TaskDraft, error) {
	if s.aiService == nil {
		return nil, ErrAIServiceNotConfigured
	}

	drafts, err := s.aiService.DraftTasksFromText(ctx, text)
	if err != nil {
		return nil, err
	}
	if len(drafts) > constants.MaxAIGeneratedTasks {
		drafts = drafts[:constants.MaxAIGeneratedTasks]
	}

	valid := make([]TaskDraft, 0, len(drafts))
	cutoff := time.Now().Add(-24 * time.Hour)
	for _, draft := range drafts {
		draft.Title = strings.TrimSpace(draft.Title)
		if draft.Title == "" {
			continue
		}
		draft.Title = truncateRunes(draft.Title, constants.MaxTitleLength)
		switch draft.Priority {
		case models.TaskPriorityLow, models.TaskPriorityMedium, models.TaskPriorityHigh:
		default:
			draft.Priority = models.TaskPriorityMedium
		}
		if draft.Deadline != nil && draft.Deadline.Before(cutoff) {
			draft.Deadline = nil
		}
		valid = append(valid, draft)
	}

	if len(valid) == 0 {
		return nil, ErrAINoTasksGenerated
	}
	return valid, nil
}

// truncateRunes cuts s to at most max characters without splitting one.
func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}

func (s *TaskService) reload(ctx context.Context, id uint64) (*models.Task, error) {
	task, err := s.tasks.FindByID(ctx, id, taskPreloads...)
	if err != nil {
		return nil, notFound(err, ErrTaskNotFound, "reload task")
	}
	return task, nil
}

// publishAssigned announces the assignment. The task is already committed,
// so a failure is logged and the request still succeeds.
func (s *TaskService) publishAssigned(ctx context.Context, task *models.Task, actorID uint64) {
	err := s.publisher.PublishTaskAssigned(ctx, events.TaskAssignedEvent{
		TaskID:       task.ID,
		Title:        task.Title,
		AssigneeID:   task.AssignedToID,
		AssignedByID: actorID,
		Deadline:     task.Deadline,
	})
	if err != nil {
		s.log.Warn("Failed to publish task assignment",
			zap.Uint64("task_id", task.ID),
			zap.Error(err),
		)
	}
}
