package services

import (
	"go.uber.org/zap"

	"github.com/yukikurage/taskhub-api/internal/events"
	"github.com/yukikurage/taskhub-api/internal/repository"
	"github.com/yukikurage/taskhub-api/internal/token"
)

// Services bundles every service the HTTP layer depends on.
type Services struct {
	Auth     *AuthService
	Users    *UserService
	Tasks    *TaskService
	Projects *ProjectService
	Tickets  *TicketService
	Logworks *LogworkService
}

// New wires the services on top of repos. ai may be nil.
func New(repos *repository.Repositories, tokens *token.Manager, publisher events.Publisher, ai *AIService, log *zap.Logger) *Services {
	return &Services{
		Auth:     NewAuthService(repos.Users, tokens),
		Users:    NewUserService(repos.Users),
		Tasks:    NewTaskService(repos.Tasks, repos.Users, repos.Projects, publisher, ai, log),
		Projects: NewProjectService(repos.Projects, repos.Users),
		Tickets:  NewTicketService(repos.Tickets, repos.Tasks, repos.Users),
		Logworks: NewLogworkService(repos.Logworks, repos.Tasks),
	}
}
