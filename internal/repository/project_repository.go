package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yukikurage/taskhub-api/internal/models"
	"github.com/yukikurage/taskhub-api/internal/utils"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project. Users already present in
// project.AssignedUsers are linked through the join table only.
func (r *GormProjectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Omit("AssignedUsers.*", "CreatedBy").Create(project).Error
}

// FindByID finds a project by ID with optional preloading
func (r *GormProjectRepository) FindByID(ctx context.Context, id uint64, preload ...string) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).Scopes(Preload(preload...)).First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// List retrieves projects with their creator and assigned users
func (r *GormProjectRepository) List(ctx context.Context, page utils.PaginationParams) ([]models.Project, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Project{}).Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	projects := []models.Project{}
	if err := query.
		Scopes(Paginate(page), Preload("CreatedBy", "AssignedUsers")).
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

// Update persists the project's columns
func (r *GormProjectRepository) Update(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(project).Error
}

// ReplaceAssignedUsers replaces the project's members with userIDs
func (r *GormProjectRepository) ReplaceAssignedUsers(ctx context.Context, projectID uint64, userIDs []uint64) error {
	users := UsersByID(userIDs)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		project := &models.Project{ID: projectID}
		if len(users) == 0 {
			return tx.Model(project).Association("AssignedUsers").Clear()
		}
		return tx.Omit("AssignedUsers.*").Model(project).Association("AssignedUsers").Replace(users)
	})
}

// AddAssignedUser adds a member; adding an existing member is a no-op
func (r *GormProjectRepository) AddAssignedUser(ctx context.Context, projectID, userID uint64) error {
	return r.db.WithContext(ctx).
		Omit("AssignedUsers.*").
		Model(&models.Project{ID: projectID}).
		Association("AssignedUsers").
		Append(&models.User{ID: userID})
}

// Delete removes a project, its memberships, and detaches its tasks
func (r *GormProjectRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM project_users WHERE project_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Task{}).Where("project_id = ?", id).Update("project_id", nil).Error; err != nil {
			return err
		}
		return deleteByID(tx, &models.Project{}, id)
	})
}

// Exists reports whether a project with the ID exists
func (r *GormProjectRepository) Exists(ctx context.Context, id uint64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// UsersByID builds ID-only user references for association writes.
func UsersByID(ids []uint64) []models.User {
	users := make([]models.User, len(ids))
	for i, id := range ids {
		users[i] = models.User{ID: id}
	}
	return users
}
