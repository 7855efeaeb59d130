package dto

import (
	"time"

	"github.com/yukikurage/taskhub-api/internal/models"
)

// CreateTaskRequest is the body of POST /tasks
type CreateTaskRequest struct {
	Title        string              `json:"title" binding:"required,min=1,max=200"`
	Description  *string             `json:"description" binding:"omitempty,max=1000"`
	Status       models.TaskStatus   `json:"status" binding:"omitempty,oneof=todo in_progress done"`
	Priority     models.TaskPriority `json:"priority" binding:"omitempty,oneof=low medium high"`
	Deadline     *string             `json:"deadline" binding:"omitempty,rfc3339"`
	AssignedToID uint64              `json:"assignedToId" binding:"required,gt=0"`
	ProjectID    *uint64             `json:"projectId" binding:"omitempty,gt=0"`
}

// UpdateTaskRequest is the body of PUT /tasks/:id. Sending null for deadline
// or projectId clears it.
type UpdateTaskRequest struct {
	Title        *string              `json:"title" binding:"omitempty,min=1,max=200"`
	Description  *string              `json:"description" binding:"omitempty,max=1000"`
	Status       *models.TaskStatus   `json:"status" binding:"omitempty,oneof=todo in_progress done"`
	Priority     *models.TaskPriority `json:"priority" binding:"omitempty,oneof=low medium high"`
	Deadline     Nullable[string]     `json:"deadline" binding:"omitempty,rfc3339"`
	AssignedToID *uint64              `json:"assignedToId" binding:"omitempty,gt=0"`
	ProjectID    Nullable[uint64]     `json:"projectId" binding:"omitempty,gt=0"`
}

// GenerateTasksRequest is the body of POST /tasks/generate
type GenerateTasksRequest struct {
	Text string `json:"text" binding:"required,min=1,max=10000"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID           uint64              `json:"id"`
	Title        string              `json:"title"`
	Description  *string             `json:"description"`
	Status       models.TaskStatus   `json:"status"`
	Priority     models.TaskPriority `json:"priority"`
	Deadline     *time.Time          `json:"deadline"`
	AssignedToID uint64              `json:"assignedToId"`
	CreatedByID  uint64              `json:"createdById"`
	ProjectID    *uint64             `json:"projectId"`
	AssignedTo   *UserSummaryDTO     `json:"assignedTo,omitempty"`
	CreatedBy    *UserSummaryDTO     `json:"createdBy,omitempty"`
	Project      *ProjectSummaryDTO  `json:"project,omitempty"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

// TaskSummaryDTO is the short form embedded in tickets and logwork
type TaskSummaryDTO struct {
	ID     uint64            `json:"id"`
	Title  string            `json:"title"`
	Status models.TaskStatus `json:"status"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:           task.ID,
		Title:        task.Title,
		Description:  task.Description,
		Status:       task.Status,
		Priority:     task.Priority,
		Deadline:     task.Deadline,
		AssignedToID: task.AssignedToID,
		CreatedByID:  task.CreatedByID,
		ProjectID:    task.ProjectID,
		CreatedAt:    task.CreatedAt,
		UpdatedAt:    task.UpdatedAt,
	}

	// Include relations if preloaded
	dto.AssignedTo = toUserSummary(task.AssignedTo)
	dto.CreatedBy = toUserSummary(task.CreatedBy)
	if task.Project != nil && task.Project.ID != 0 {
		dto.Project = &ProjectSummaryDTO{ID: task.Project.ID, Name: task.Project.Name}
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}
	return items
}

func toTaskSummary(task models.Task) *TaskSummaryDTO {
	if task.ID == 0 {
		return nil
	}
	return &TaskSummaryDTO{ID: task.ID, Title: task.Title, Status: task.Status}
}
