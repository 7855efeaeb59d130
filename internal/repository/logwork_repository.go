package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yukikurage/taskhub-api/internal/models"
)

// GormLogworkRepository is a GORM implementation of LogworkRepository
type GormLogworkRepository struct {
	db *gorm.DB
}

// NewLogworkRepository creates a new LogworkRepository
func NewLogworkRepository(db *gorm.DB) LogworkRepository {
	return &GormLogworkRepository{db: db}
}

// Create creates a new logwork entry
func (r *GormLogworkRepository) Create(ctx context.Context, logwork *models.Logwork) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(logwork).Error
}

// FindByID finds a logwork entry by ID with optional preloading
func (r *GormLogworkRepository) FindByID(ctx context.Context, id uint64, preload ...string) (*models.Logwork, error) {
	var logwork models.Logwork
	if err := r.db.WithContext(ctx).Scopes(Preload(preload...)).First(&logwork, id).Error; err != nil {
		return nil, err
	}
	return &logwork, nil
}

// List retrieves logwork entries, newest work date first
func (r *GormLogworkRepository) List(ctx context.Context, filter LogworkFilter) ([]models.Logwork, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Logwork{})
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.TaskID != nil {
		query = query.Where("task_id = ?", *filter.TaskID)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	logworks := []models.Logwork{}
	if err := query.
		Scopes(Paginate(filter.Page), Preload("User", "Task")).
		Order("work_date DESC").
		Order("id DESC").
		Find(&logworks).Error; err != nil {
		return nil, 0, err
	}
	return logworks, total, nil
}

// Update persists the entry's columns
func (r *GormLogworkRepository) Update(ctx context.Context, logwork *models.Logwork) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(logwork).Error
}

// Delete removes a logwork entry
func (r *GormLogworkRepository) Delete(ctx context.Context, id uint64) error {
	return deleteByID(r.db.WithContext(ctx), &models.Logwork{}, id)
}
