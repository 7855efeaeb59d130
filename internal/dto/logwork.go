package dto

import (
	"time"

	"github.com/yukikurage/taskhub-api/internal/models"
)

type CreateLogworkRequest struct {
	Description string  `json:"description" binding:"required,min=1,max=1000"`
	HoursWorked float64 `json:"hoursWorked" binding:"required,gt=0,lte=24"`
	WorkDate    string  `json:"workDate" binding:"required,rfc3339"`
	TaskID      uint64  `json:"taskId" binding:"required,gt=0"`
}

type UpdateLogworkRequest struct {
	Description *string  `json:"description" binding:"omitempty,min=1,max=1000"`
	HoursWorked *float64 `json:"hoursWorked" binding:"omitempty,gt=0,lte=24"`
	WorkDate    *string  `json:"workDate" binding:"omitempty,rfc3339"`
}

type LogworkDTO struct {
	ID          uint64          `json:"id"`
	Description string          `json:"description"`
	HoursWorked float64         `json:"hoursWorked"`
	WorkDate    time.Time       `json:"workDate"`
	UserID      uint64          `json:"userId"`
	TaskID      uint64          `json:"taskId"`
	User        *UserSummaryDTO `json:"user,omitempty"`
	Task        *TaskSummaryDTO `json:"task,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func ToLogworkDTO(logwork models.Logwork) LogworkDTO {
	return LogworkDTO{
		ID:          logwork.ID,
		Description: logwork.Description,
		HoursWorked: logwork.HoursWorked,
		WorkDate:    logwork.WorkDate,
		UserID:      logwork.UserID,
		TaskID:      logwork.TaskID,
		User:        toUserSummary(logwork.User),
		Task:        toTaskSummary(logwork.Task),
		CreatedAt:   logwork.CreatedAt,
		UpdatedAt:   logwork.UpdatedAt,
	}
}

func ToLogworkDTOs(logworks []models.Logwork) []LogworkDTO {
	items := make([]LogworkDTO, len(logworks))
	for i, logwork := range logworks {
		items[i] = ToLogworkDTO(logwork)
	}
	return items
}
