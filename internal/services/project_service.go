package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yukikurage/taskhub-api/internal/models"
	"github.com/yukikurage/taskhub-api/internal/repository"
	"github.com/yukikurage/taskhub-api/internal/utils"
)

var projectPreloads = []string{"CreatedBy", "AssignedUsers"}

// ProjectService handles project business logic. Reads are open to every
// authenticated caller; writes are gated to admins by route.
type ProjectService struct {
	projects repository.ProjectRepository
	users    repository.UserRepository
}

// NewProjectService creates a new ProjectService
func NewProjectService(projects repository.ProjectRepository, users repository.UserRepository) *ProjectService {
	return &ProjectService{projects: projects, users: users}
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	Name            string
	Description     *string
	AssignedUserIDs []uint64
}

// UpdateProjectInput represents input for updating a project. A non-nil
// AssignedUserIDs replaces the member list, an empty one clears it.
type UpdateProjectInput struct {
	Name            *string
	Description     *string
	AssignedUserIDs *[]uint64
}

func (s *ProjectService) List(ctx context.Context, _ Caller, page utils.PaginationParams) ([]models.Project, int64, error) {
	projects, total, err := s.projects.List(ctx, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, total, nil
}

func (s *ProjectService) Get(ctx context.Context, _ Caller, id uint64) (*models.Project, error) {
	project, err := s.projects.FindByID(ctx, id, projectPreloads...)
	if err != nil {
		return nil, notFound(err, ErrProjectNotFound, "find project")
	}
	return project, nil
}

func (s *ProjectService) Create(ctx context.Context, caller Caller, input CreateProjectInput) (*models.Project, error) {
	memberIDs := uniqueUint64(input.AssignedUserIDs)
	if err := ensureUsers(ctx, s.users, memberIDs); err != nil {
		return nil, err
	}
	if err := ensureUser(ctx, s.users, caller.UserID, ErrCreatorNotFound); err != nil {
		return nil, err
	}

	project := &models.Project{
		Name:          strings.TrimSpace(input.Name),
		Description:   input.Description,
		CreatedByID:   caller.UserID,
		AssignedUsers: repository.UsersByID(memberIDs),
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return s.Get(ctx, caller, project.ID)
}

func (s *ProjectService) Update(ctx context.Context, caller Caller, id uint64, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrProjectNotFound, "find project")
	}

	var memberIDs []uint64
	if input.AssignedUserIDs != nil {
		memberIDs = uniqueUint64(*input.AssignedUserIDs)
		if err := ensureUsers(ctx, s.users, memberIDs); err != nil {
			return nil, err
		}
	}

	if input.Name != nil {
		project.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		project.Description = input.Description
	}

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	if input.AssignedUserIDs != nil {
		if err := s.projects.ReplaceAssignedUsers(ctx, project.ID, memberIDs); err != nil {
			return nil, fmt.Errorf("failed to update project members: %w", err)
		}
	}

	return s.Get(ctx, caller, project.ID)
}

func (s *ProjectService) Delete(ctx context.Context, _ Caller, id uint64) error {
	if err := s.projects.Delete(ctx, id); err != nil {
		return notFound(err, ErrProjectNotFound, "delete project")
	}
	return nil
}

// AssignUser adds userID to the project's members. Assigning a current
// member succeeds without change.
func (s *ProjectService) AssignUser(ctx context.Context, caller Caller, projectID, userID uint64) (*models.Project, error) {
	exists, err := s.projects.Exists(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	if !exists {
		return nil, ErrProjectNotFound
	}
	if err := ensureUser(ctx, s.users, userID, ErrAssigneeNotFound); err != nil {
		return nil, err
	}

	if err := s.projects.AddAssignedUser(ctx, projectID, userID); err != nil {
		return nil, fmt.Errorf("failed to assign user: %w", err)
	}
	return s.Get(ctx, caller, projectID)
}
