package repository

import (
	"context"

	"github.com/yukikurage/taskhub-api/internal/models"
	"github.com/yukikurage/taskhub-api/internal/utils"
)

// Every repository method takes the request context. Implementations derive
// a request-scoped session from it, so a cancelled request stops its queries.
// Lookups return gorm.ErrRecordNotFound when the row is absent, and Delete
// returns it when nothing was removed.

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// List retrieves users ordered by ID
	List(ctx context.Context, page utils.PaginationParams) ([]models.User, int64, error)

	// Update persists the user's columns
	Update(ctx context.Context, user *models.User) error

	// Delete removes a user along with their project memberships and logwork
	Delete(ctx context.Context, id uint64) error

	// CountByIDs counts how many of the given user IDs exist
	CountByIDs(ctx context.Context, ids []uint64) (int64, error)

	// CountOwnedRecords counts tasks, projects and tickets that still point at the user
	CountOwnedRecords(ctx context.Context, id uint64) (int64, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project and links its assigned users
	Create(ctx context.Context, project *models.Project) error

	// FindByID finds a project by ID with optional preloading
	FindByID(ctx context.Context, id uint64, preload ...string) (*models.Project, error)

	// List retrieves projects with their creator and assigned users
	List(ctx context.Context, page utils.PaginationParams) ([]models.Project, int64, error)

	// Update persists the project's columns
	Update(ctx context.Context, project *models.Project) error

	// ReplaceAssignedUsers replaces the project's members with userIDs
	ReplaceAssignedUsers(ctx context.Context, projectID uint64, userIDs []uint64) error

	// AddAssignedUser adds a member; adding an existing member is a no-op
	AddAssignedUser(ctx context.Context, projectID, userID uint64) error

	// Delete removes a project, its memberships, and detaches its tasks
	Delete(ctx context.Context, id uint64) error

	// Exists reports whether a project with the ID exists
	Exists(ctx context.Context, id uint64) (bool, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(ctx context.Context, id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(ctx context.Context, filter TaskFilter) ([]models.Task, int64, error)

	// Update persists the task's columns
	Update(ctx context.Context, task *models.Task) error

	// Delete removes a task together with its tickets and logwork
	Delete(ctx context.Context, id uint64) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	AssignedToID *uint64
	ProjectID    *uint64
	Status       *models.TaskStatus
	Page         utils.PaginationParams
}

// TicketRepository defines the interface for ticket data access
type TicketRepository interface {
	// Create creates a new ticket
	Create(ctx context.Context, ticket *models.Ticket) error

	// FindByID finds a ticket by ID with optional preloading
	FindByID(ctx context.Context, id uint64, preload ...string) (*models.Ticket, error)

	// List retrieves tickets with filtering and pagination
	List(ctx context.Context, filter TicketFilter) ([]models.Ticket, int64, error)

	// Update persists the ticket's columns
	Update(ctx context.Context, ticket *models.Ticket) error

	// Delete removes a ticket
	Delete(ctx context.Context, id uint64) error
}

// TicketFilter holds filtering options for listing tickets
type TicketFilter struct {
	TaskID *uint64
	Status *models.TicketStatus
	Page   utils.PaginationParams
}

// LogworkRepository defines the interface for logwork data access
type LogworkRepository interface {
	// Create creates a new logwork entry
	Create(ctx context.Context, logwork *models.Logwork) error

	// FindByID finds a logwork entry by ID with optional preloading
	FindByID(ctx context.Context, id uint64, preload ...string) (*models.Logwork, error)

	// List retrieves logwork entries with filtering and pagination
	List(ctx context.Context, filter LogworkFilter) ([]models.Logwork, int64, error)

	// Update persists the entry's columns
	Update(ctx context.Context, logwork *models.Logwork) error

	// Delete removes a logwork entry
	Delete(ctx context.Context, id uint64) error
}

// LogworkFilter holds filtering options for listing logwork entries
type LogworkFilter struct {
	UserID *uint64
	TaskID *uint64
	Page   utils.PaginationParams
}

// Repositories bundles every repository built on one database handle.
type Repositories struct {
	Users    UserRepository
	Projects ProjectRepository
	Tasks    TaskRepository
	Tickets  TicketRepository
	Logworks LogworkRepository
}
