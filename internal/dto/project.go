package dto

import (
	"time"

	"github.com/yukikurage/taskhub-api/internal/models"
)

type CreateProjectRequest struct {
	Name            string   `json:"name" binding:"required,min=1,max=255"`
	Description     *string  `json:"description" binding:"omitempty,max=1000"`
	AssignedUserIDs []uint64 `json:"assignedUserIds" binding:"omitempty,dive,gt=0"`
}

// UpdateProjectRequest replaces the member list when assignedUserIds is present.
type UpdateProjectRequest struct {
	Name            *string   `json:"name" binding:"omitempty,min=1,max=255"`
	Description     *string   `json:"description" binding:"omitempty,max=1000"`
	AssignedUserIDs *[]uint64 `json:"assignedUserIds" binding:"omitempty,dive,gt=0"`
}

type AssignUserRequest struct {
	UserID uint64 `json:"userId" binding:"required,gt=0"`
}

type ProjectDTO struct {
	ID            uint64           `json:"id"`
	Name          string           `json:"name"`
	Description   *string          `json:"description"`
	CreatedByID   uint64           `json:"createdById"`
	CreatedBy     *UserSummaryDTO  `json:"createdBy,omitempty"`
	AssignedUsers []UserSummaryDTO `json:"assignedUsers"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

type ProjectSummaryDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

func ToProjectDTO(project models.Project) ProjectDTO {
	members := make([]UserSummaryDTO, 0, len(project.AssignedUsers))
	for _, user := range project.AssignedUsers {
		if summary := toUserSummary(user); summary != nil {
			members = append(members, *summary)
		}
	}

	return ProjectDTO{
		ID:            project.ID,
		Name:          project.Name,
		Description:   project.Description,
		CreatedByID:   project.CreatedByID,
		CreatedBy:     toUserSummary(project.CreatedBy),
		AssignedUsers: members,
		CreatedAt:     project.CreatedAt,
		UpdatedAt:     project.UpdatedAt,
	}
}

func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	items := make([]ProjectDTO, len(projects))
	for i, project := range projects {
		items[i] = ToProjectDTO(project)
	}
	return items
}
