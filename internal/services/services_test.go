package services

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yukikurage/taskhub-api/internal/events"
	"github.com/yukikurage/taskhub-api/internal/models"
	"github.com/yukikurage/taskhub-api/internal/repository"
	"github.com/yukikurage/taskhub-api/internal/testutil"
	"github.com/yukikurage/taskhub-api/internal/token"
)

// recordingPublisher keeps published events in memory.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.TaskAssignedEvent
	err    error
}

func (p *recordingPublisher) PublishTaskAssigned(_ context.Context, event events.TaskAssignedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() {}

// ServiceTestSuite runs services against a migrated in-memory database.
type ServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	db        *gorm.DB
	tokens    *token.Manager
	publisher *recordingPublisher
	svc       *Services

	admin     *models.User
	user      *models.User
	other     *models.User
	adminCall Caller
	userCall  Caller
	otherCall Caller
}

func (s *ServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = testutil.NewDB(s.T())
	s.tokens = token.NewManager([]byte("test-secret"), 7*24*time.Hour)
	s.publisher = &recordingPublisher{}
	s.svc = New(repository.New(s.db), s.tokens, s.publisher, nil, zap.NewNop())

	s.admin = testutil.CreateUser(s.T(), s.db, "admin@example.com", models.RoleAdmin)
	s.user = testutil.CreateUser(s.T(), s.db, "user@example.com", models.RoleUser)
	s.other = testutil.CreateUser(s.T(), s.db, "other@example.com", models.RoleUser)

	s.adminCall = Caller{UserID: s.admin.ID, Role: models.RoleAdmin}
	s.userCall = Caller{UserID: s.user.ID, Role: models.RoleUser}
	s.otherCall = Caller{UserID: s.other.ID, Role: models.RoleUser}
}

func (s *ServiceTestSuite) count(model interface{}) int64 {
	var n int64
	s.Require().NoError(s.db.Model(model).Count(&n).Error)
	return n
}
