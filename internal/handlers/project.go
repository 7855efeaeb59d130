package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yukikurage/taskhub-api/internal/dto"
	"github.com/yukikurage/taskhub-api/internal/middleware"
	"github.com/yukikurage/taskhub-api/internal/services"
	"github.com/yukikurage/taskhub-api/internal/utils"
)

type ProjectHandler struct {
	projects *services.ProjectService
}

func NewProjectHandler(projects *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

func (h *ProjectHandler) List(c *gin.Context) {
	projects, total, err := h.projects.List(c.Request.Context(), caller(c), utils.GetPaginationParams(c))
	if err != nil {
		fail(c, err)
		return
	}
	list(c, "Projects retrieved successfully", dto.ToProjectDTOs(projects), total)
}

func (h *ProjectHandler) Get(c *gin.Context) {
	project, err := h.projects.Get(c.Request.Context(), caller(c), middleware.IDParam(c, "id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "Project retrieved successfully", dto.ToProjectDTO(*project))
}

func (h *ProjectHandler) Create(c *gin.Context) {
	req := middleware.Body[dto.CreateProjectRequest](c)

	project, err := h.projects.Create(c.Request.Context(), caller(c), services.CreateProjectInput{
		Name:            req.Name,
		Description:     req.Description,
		AssignedUserIDs: req.AssignedUserIDs,
	})
	if err != nil {
		fail(c, err)
		return
	}
	created(c, "Project created successfully", dto.ToProjectDTO(*project))
}

func (h *ProjectHandler) Update(c *gin.Context) {
	req := middleware.Body[dto.UpdateProjectRequest](c)

	project, err := h.projects.Update(c.Request.Context(), caller(c), middleware.IDParam(c, "id"), services.UpdateProjectInput{
		Name:            req.Name,
		Description:     req.Description,
		AssignedUserIDs: req.AssignedUserIDs,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "Project updated successfully", dto.ToProjectDTO(*project))
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	if err := h.projects.Delete(c.Request.Context(), caller(c), middleware.IDParam(c, "id")); err != nil {
		fail(c, err)
		return
	}
	ok(c, "Project deleted successfully", nil)
}

// AssignUser adds a member; assigning an existing member is a no-op.
func (h *ProjectHandler) AssignUser(c *gin.Context) {
	req := middleware.Body[dto.AssignUserRequest](c)

	project, err := h.projects.AssignUser(c.Request.Context(), caller(c), middleware.IDParam(c, "id"), req.UserID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "User assigned to project successfully", dto.ToProjectDTO(*project))
}
