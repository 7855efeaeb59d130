package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yukikurage/taskhub-api/internal/dto"
	apierrors "github.com/yukikurage/taskhub-api/internal/errors"
	"github.com/yukikurage/taskhub-api/internal/middleware"
	"github.com/yukikurage/taskhub-api/internal/models"
	"github.com/yukikurage/taskhub-api/internal/services"
	"github.com/yukikurage/taskhub-api/internal/utils"
)

var taskStatuses = []models.TaskStatus{
	models.TaskStatusTodo,
	models.TaskStatusInProgress,
	models.TaskStatusDone,
}

type TaskHandler struct {
	tasks *services.TaskService
}

func NewTaskHandler(tasks *services.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// List returns the tasks visible to the caller.
// Optional filters: projectId, status.
func (h *TaskHandler) List(c *gin.Context) {
	projectID, err := queryID(c, "projectId")
	if err != nil {
		fail(c, err)
		return
	}
	status, err := queryEnum(c, "status", taskStatuses...)
	if err != nil {
		fail(c, err)
		return
	}

	tasks, total, err := h.tasks.List(c.Request.Context(), caller(c), services.ListTasksInput{
		ProjectID: projectID,
		Status:    status,
		Page:      utils.GetPaginationParams(c),
	})
	if err != nil {
		fail(c, err)
		return
	}
	list(c, "Tasks retrieved successfully", dto.ToTaskDTOs(tasks), total)
}

func (h *TaskHandler) ListByUser(c *gin.Context) {
	tasks, total, err := h.tasks.ListByUser(c.Request.Context(), caller(c), middleware.IDParam(c, "userId"), utils.GetPaginationParams(c))
	if err != nil {
		fail(c, err)
		return
	}
	list(c, "Tasks retrieved successfully", dto.ToTaskDTOs(tasks), total)
}

func (h *TaskHandler) Get(c *gin.Context) {
	task, err := h.tasks.Get(c.Request.Context(), caller(c), middleware.IDParam(c, "id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "Task retrieved successfully", dto.ToTaskDTO(*task))
}

func (h *TaskHandler) Create(c *gin.Context) {
	req := middleware.Body[dto.CreateTaskRequest](c)

	deadline, err := dto.ParseOptionalTime(req.Deadline)
	if err != nil {
		fail(c, apierrors.ErrValidationFailed.WithDetails("deadline: must be an RFC3339 date-time"))
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), caller(c), services.CreateTaskInput{
		Title:        req.Title,
		Description:  req.Description,
		Status:       req.Status,
		Priority:     req.Priority,
		Deadline:     deadline,
		AssignedToID: req.AssignedToID,
		ProjectID:    req.ProjectID,
	})
	if err != nil {
		fail(c, err)
		return
	}
	created(c, "Task created successfully", dto.ToTaskDTO(*task))
}

// Update applies a partial update. A null deadline or projectId clears it.
func (h *TaskHandler) Update(c *gin.Context) {
	req := middleware.Body[dto.UpdateTaskRequest](c)

	deadline, err := dto.ParseOptionalTime(req.Deadline.Ptr())
	if err != nil {
		fail(c, apierrors.ErrValidationFailed.WithDetails("deadline: must be an RFC3339 date-time"))
		return
	}

	task, err := h.tasks.Update(c.Request.Context(), caller(c), middleware.IDParam(c, "id"), services.UpdateTaskInput{
		Title:         req.Title,
		Description:   req.Description,
		Status:        req.Status,
		Priority:      req.Priority,
		Deadline:      deadline,
		ClearDeadline: req.Deadline.IsNull(),
		AssignedToID:  req.AssignedToID,
		ProjectID:     req.ProjectID.Ptr(),
		ClearProject:  req.ProjectID.IsNull(),
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "Task updated successfully", dto.ToTaskDTO(*task))
}

func (h *TaskHandler) Delete(c *gin.Context) {
	if err := h.tasks.Delete(c.Request.Context(), caller(c), middleware.IDParam(c, "id")); err != nil {
		fail(c, err)
		return
	}
	ok(c, "Task deleted successfully", nil)
}

// Generate asks the AI service for task drafts. Nothing is saved.
func (h *TaskHandler) Generate(c *gin.Context) {
	req := middleware.Body[dto.GenerateTasksRequest](c)

	drafts, err := h.tasks.GenerateDrafts(c.Request.Context(), req.Text)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "Task drafts generated successfully", drafts)
}
