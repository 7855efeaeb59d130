package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yukikurage/taskhub-api/internal/models"
)

// GormTicketRepository is a GORM implementation of TicketRepository
type GormTicketRepository struct {
	db *gorm.DB
}

// NewTicketRepository creates a new TicketRepository
func NewTicketRepository(db *gorm.DB) TicketRepository {
	return &GormTicketRepository{db: db}
}

// Create creates a new ticket
func (r *GormTicketRepository) Create(ctx context.Context, ticket *models.Ticket) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(ticket).Error
}

// FindByID finds a ticket by ID with optional preloading
func (r *GormTicketRepository) FindByID(ctx context.Context, id uint64, preload ...string) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := r.db.WithContext(ctx).Scopes(Preload(preload...)).First(&ticket, id).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

// List retrieves tickets with filtering and pagination
func (r *GormTicketRepository) List(ctx context.Context, filter TicketFilter) ([]models.Ticket, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Ticket{})
	if filter.TaskID != nil {
		query = query.Where("task_id = ?", *filter.TaskID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	tickets := []models.Ticket{}
	if err := query.
		Scopes(Paginate(filter.Page), Preload("Task", "RequestBy", "ApprovedBy")).
		Order("created_at DESC").
		Find(&tickets).Error; err != nil {
		return nil, 0, err
	}
	return tickets, total, nil
}

// Update persists the ticket's columns
func (r *GormTicketRepository) Update(ctx context.Context, ticket *models.Ticket) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(ticket).Error
}

// Delete removes a ticket
func (r *GormTicketRepository) Delete(ctx context.Context, id uint64) error {
	return deleteByID(r.db.WithContext(ctx), &models.Ticket{}, id)
}
