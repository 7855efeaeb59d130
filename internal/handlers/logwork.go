package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yukikurage/taskhub-api/internal/dto"
	apierrors "github.com/yukikurage/taskhub-api/internal/errors"
	"github.com/yukikurage/taskhub-api/internal/middleware"
	"github.com/yukikurage/taskhub-api/internal/services"
	"github.com/yukikurage/taskhub-api/internal/utils"
)

type LogworkHandler struct {
	logworks *services.LogworkService
}

func NewLogworkHandler(logworks *services.LogworkService) *LogworkHandler {
	return &LogworkHandler{logworks: logworks}
}

// List returns logwork entries; non-admins only see their own.
func (h *LogworkHandler) List(c *gin.Context) {
	taskID, err := queryID(c, "taskId")
	if err != nil {
		fail(c, err)
		return
	}

	logworks, total, err := h.logworks.List(c.Request.Context(), caller(c), services.ListLogworkInput{
		TaskID: taskID,
		Page:   utils.GetPaginationParams(c),
	})
	if err != nil {
		fail(c, err)
		return
	}
	list(c, "Logwork entries retrieved successfully", dto.ToLogworkDTOs(logworks), total)
}

func (h *LogworkHandler) Get(c *gin.Context) {
	logwork, err := h.logworks.Get(c.Request.Context(), caller(c), middleware.IDParam(c, "id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "Logwork entry retrieved successfully", dto.ToLogworkDTO(*logwork))
}

func (h *LogworkHandler) Create(c *gin.Context) {
	req := middleware.Body[dto.CreateLogworkRequest](c)

	workDate, err := dto.ParseTime(req.WorkDate)
	if err != nil {
		fail(c, apierrors.ErrValidationFailed.WithDetails("workDate: must be an RFC3339 date-time"))
		return
	}

	logwork, err := h.logworks.Create(c.Request.Context(), caller(c), services.CreateLogworkInput{
		Description: req.Description,
		HoursWorked: req.HoursWorked,
		WorkDate:    workDate,
		TaskID:      req.TaskID,
	})
	if err != nil {
		fail(c, err)
		return
	}
	created(c, "Logwork entry created successfully", dto.ToLogworkDTO(*logwork))
}

func (h *LogworkHandler) Update(c *gin.Context) {
	req := middleware.Body[dto.UpdateLogworkRequest](c)

	workDate, err := dto.ParseOptionalTime(req.WorkDate)
	if err != nil {
		fail(c, apierrors.ErrValidationFailed.WithDetails("workDate: must be an RFC3339 date-time"))
		return
	}

	logwork, err := h.logworks.Update(c.Request.Context(), caller(c), middleware.IDParam(c, "id"), services.UpdateLogworkInput{
		Description: req.Description,
		HoursWorked: req.HoursWorked,
		WorkDate:    workDate,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "Logwork entry updated successfully", dto.ToLogworkDTO(*logwork))
}

func (h *LogworkHandler) Delete(c *gin.Context) {
	if err := h.logworks.Delete(c.Request.Context(), caller(c), middleware.IDParam(c, "id")); err != nil {
		fail(c, err)
		return
	}
	ok(c, "Logwork entry deleted successfully", nil)
}
