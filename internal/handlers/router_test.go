package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yukikurage/taskhub-api/internal/config"
	"github.com/yukikurage/taskhub-api/internal/constants"
	"github.com/yukikurage/taskhub-api/internal/events"
	"github.com/yukikurage/taskhub-api/internal/models"
	"github.com/yukikurage/taskhub-api/internal/repository"
	"github.com/yukikurage/taskhub-api/internal/services"
	"github.com/yukikurage/taskhub-api/internal/testutil"
	"github.com/yukikurage/taskhub-api/internal/token"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type APITestSuite struct {
	suite.Suite
	db     *gorm.DB
	tokens *token.Manager
	router *gin.Engine

	admin      *models.User
	adminToken string
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}

func (s *APITestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
}

func (s *APITestSuite) SetupTest() {
	cfg := &config.Config{
		GinMode:      gin.TestMode,
		CORSOrigin:   "http://localhost:3000",
		RateLimitMax: 1000,
		RateLimitWin: 15 * time.Minute,
	}

	s.db = testutil.NewDB(s.T())
	s.tokens = token.NewManager([]byte("test-secret"), time.Hour)
	svc := services.New(repository.New(s.db), s.tokens, events.NoopPublisher{}, nil, zap.NewNop())

	s.router = NewRouter(RouterDeps{
		Config:   cfg,
		DB:       s.db,
		Services: svc,
		Sessions: cookie.NewStore([]byte("session-secret")),
		Log:      zap.NewNop(),
	})

	s.admin = testutil.CreateUser(s.T(), s.db, "admin@example.com", models.RoleAdmin)
	s.adminToken = s.login("admin@example.com", "password")
}

func (s *APITestSuite) request(method, path, bearer string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *APITestSuite) decode(w *httptest.ResponseRecorder, data any) envelope {
	var env envelope
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if data != nil {
		s.Require().NoError(json.Unmarshal(env.Data, data))
	}
	return env
}

func (s *APITestSuite) login(email, password string) string {
	w := s.request(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": email, "password": password})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var data struct {
		Token string `json:"token"`
	}
	s.decode(w, &data)
	s.Require().NotEmpty(data.Token)
	return data.Token
}

func (s *APITestSuite) createUser(email string) uint64 {
	w := s.request(http.MethodPost, "/api/v1/users", s.adminToken, gin.H{
		"email":     email,
		"password":  "secret1",
		"firstName": "Ada",
		"lastName":  "Lovelace",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var data struct {
		ID uint64 `json:"id"`
	}
	s.decode(w, &data)
	return data.ID
}

func (s *APITestSuite) createTask(title string, assigneeID uint64) uint64 {
	w := s.request(http.MethodPost, "/api/v1/tasks", s.adminToken, gin.H{
		"title":        title,
		"assignedToId": assigneeID,
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var data struct {
		ID uint64 `json:"id"`
	}
	s.decode(w, &data)
	return data.ID
}

func (s *APITestSuite) TestUserOnlySeesAssignedTasks() {
	w := s.request(http.MethodPost, "/api/v1/users", s.adminToken, gin.H{
		"email":     "a@x.com",
		"password":  "secret1",
		"firstName": "A",
		"lastName":  "X",
		"role":      "user",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	s.NotContains(w.Body.String(), "password")

	var created struct {
		ID   uint64 `json:"id"`
		Role string `json:"role"`
	}
	env := s.decode(w, &created)
	s.True(env.Success)
	s.Equal("user", created.Role)

	s.createTask("Mine", created.ID)
	s.createTask("Admin's", s.admin.ID)

	userToken := s.login("a@x.com", "secret1")
	w = s.request(http.MethodGet, "/api/v1/tasks", userToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var tasks []struct {
		Title        string `json:"title"`
		AssignedToID uint64 `json:"assignedToId"`
	}
	s.decode(w, &tasks)
	s.Require().Len(tasks, 1)
	s.Equal("Mine", tasks[0].Title)
	s.Equal(created.ID, tasks[0].AssignedToID)

	w = s.request(http.MethodGet, "/api/v1/tasks", s.adminToken, nil)
	s.decode(w, &tasks)
	s.Len(tasks, 2)
	s.Equal("2", w.Header().Get(constants.HeaderTotalCount))
}

func (s *APITestSuite) TestNonAdminCannotManageUsers() {
	s.createUser("u@x.com")
	userToken := s.login("u@x.com", "secret1")

	w := s.request(http.MethodDelete, fmt.Sprintf("/api/v1/users/%d", s.admin.ID), userToken, nil)
	s.Equal(http.StatusForbidden, w.Code)
	env := s.decode(w, nil)
	s.False(env.Success)

	var count int64
	s.Require().NoError(s.db.Model(&models.User{}).Count(&count).Error)
	s.Equal(int64(2), count)

	w = s.request(http.MethodGet, "/api/v1/tickets", userToken, nil)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.request(http.MethodPost, "/api/v1/auth/register", userToken, gin.H{
		"email": "z@x.com", "password": "secret1", "firstName": "Z", "lastName": "Z",
	})
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *APITestSuite) TestAdminCannotDeleteSelf() {
	w := s.request(http.MethodDelete, fmt.Sprintf("/api/v1/users/%d", s.admin.ID), s.adminToken, nil)
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *APITestSuite) TestRoleChangesOnlyThroughRoleEndpoint() {
	id := s.createUser("promote@x.com")
	path := fmt.Sprintf("/api/v1/users/%d", id)

	var user struct {
		FirstName string      `json:"firstName"`
		Role      models.Role `json:"role"`
	}

	w := s.request(http.MethodPut, path, s.adminToken, gin.H{"firstName": "Grace", "role": "admin"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.decode(w, &user)
	s.Equal("Grace", user.FirstName)
	s.Equal(models.RoleUser, user.Role)

	var stored models.User
	s.Require().NoError(s.db.First(&stored, id).Error)
	s.Equal(models.RoleUser, stored.Role)

	w = s.request(http.MethodPatch, path+"/role", s.adminToken, gin.H{"role": "admin"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.decode(w, &user)
	s.Equal(models.RoleAdmin, user.Role)

	s.Require().NoError(s.db.First(&stored, id).Error)
	s.Equal(models.RoleAdmin, stored.Role)
}

func (s *APITestSuite) TestAuthFailuresAreDistinct() {
	w := s.request(http.MethodGet, "/api/v1/tasks", "", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
	missing := s.decode(w, nil).Message

	w = s.request(http.MethodGet, "/api/v1/tasks", "not-a-token", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
	invalid := s.decode(w, nil).Message

	past := s.tokens.WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) })
	expiredToken, _, err := past.Issue(s.admin)
	s.Require().NoError(err)
	w = s.request(http.MethodGet, "/api/v1/tasks", expiredToken, nil)
	s.Equal(http.StatusUnauthorized, w.Code)
	expired := s.decode(w, nil).Message

	s.NotEqual(missing, invalid)
	s.NotEqual(invalid, expired)
	s.NotEqual(missing, expired)

	w = s.request(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": "admin@example.com", "password": "wrong"})
	s.Equal(http.StatusUnauthorized, w.Code)
	wrongPassword := s.decode(w, nil).Message

	w = s.request(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": "nobody@example.com", "password": "wrong"})
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal(wrongPassword, s.decode(w, nil).Message)
}

func (s *APITestSuite) TestSessionCookieLogin() {
	w := s.request(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": "admin@example.com", "password": "password"})
	s.Require().Equal(http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	s.Require().NotEmpty(cookies)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var me struct {
		Email string `json:"email"`
	}
	s.decode(w, &me)
	s.Equal("admin@example.com", me.Email)

	w = s.request(http.MethodPost, "/api/v1/auth/logout", "", nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *APITestSuite) TestValidationErrorsAreAggregated() {
	w := s.request(http.MethodPost, "/api/v1/tasks", s.adminToken, gin.H{
		"priority": "urgent",
	})
	s.Require().Equal(http.StatusBadRequest, w.Code)

	env := s.decode(w, nil)
	s.Contains(env.Error, "title: is required")
	s.Contains(env.Error, "priority: must be one of low medium high")
	s.Contains(env.Error, "assignedToId: is required")

	var count int64
	s.Require().NoError(s.db.Model(&models.Task{}).Count(&count).Error)
	s.Zero(count)

	w = s.request(http.MethodGet, "/api/v1/tasks/abc", s.adminToken, nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *APITestSuite) TestCreateTaskWithMissingReference() {
	w := s.request(http.MethodPost, "/api/v1/tasks", s.adminToken, gin.H{
		"title":        "Orphan",
		"assignedToId": 999,
	})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal(services.ErrAssigneeNotFound.Message, s.decode(w, nil).Message)

	w = s.request(http.MethodPost, "/api/v1/tasks", s.adminToken, gin.H{
		"title":        "Orphan",
		"assignedToId": s.admin.ID,
		"projectId":    999,
	})
	s.Equal(http.StatusBadRequest, w.Code)

	var count int64
	s.Require().NoError(s.db.Model(&models.Task{}).Count(&count).Error)
	s.Zero(count)
}

func (s *APITestSuite) TestUpdateTaskClearsDeadlineWithNull() {
	w := s.request(http.MethodPost, "/api/v1/tasks", s.adminToken, gin.H{
		"title":        "Ship",
		"assignedToId": s.admin.ID,
		"deadline":     "2026-12-01T10:00:00Z",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var task struct {
		ID       uint64     `json:"id"`
		Deadline *time.Time `json:"deadline"`
		Status   string     `json:"status"`
	}
	s.decode(w, &task)
	s.Require().NotNil(task.Deadline)

	path := fmt.Sprintf("/api/v1/tasks/%d", task.ID)
	w = s.request(http.MethodPut, path, s.adminToken, `{"status":"in_progress"}`)
	s.Require().Equal(http.StatusOK, w.Code)
	s.decode(w, &task)
	s.NotNil(task.Deadline, "absent deadline leaves it untouched")
	s.Equal("in_progress", task.Status)

	w = s.request(http.MethodPut, path, s.adminToken, `{"deadline":null}`)
	s.Require().Equal(http.StatusOK, w.Code)
	task.Deadline = nil
	s.decode(w, &task)
	s.Nil(task.Deadline)
}

func (s *APITestSuite) TestDeleteTwiceReturnsNotFound() {
	id := s.createTask("Temp", s.admin.ID)
	path := fmt.Sprintf("/api/v1/tasks/%d", id)

	s.Equal(http.StatusOK, s.request(http.MethodDelete, path, s.adminToken, nil).Code)
	s.Equal(http.StatusNotFound, s.request(http.MethodDelete, path, s.adminToken, nil).Code)
	s.Equal(http.StatusNotFound, s.request(http.MethodGet, path, s.adminToken, nil).Code)
}

func (s *APITestSuite) TestDuplicateEmailConflicts() {
	s.createUser("dup@x.com")
	w := s.request(http.MethodPost, "/api/v1/users", s.adminToken, gin.H{
		"email": "DUP@x.com", "password": "secret1", "firstName": "D", "lastName": "D",
	})
	s.Equal(http.StatusConflict, w.Code)
}

func (s *APITestSuite) TestLogworkRequiresAssignment() {
	userID := s.createUser("worker@x.com")
	userToken := s.login("worker@x.com", "secret1")
	mine := s.createTask("Mine", userID)
	theirs := s.createTask("Theirs", s.admin.ID)

	body := func(taskID uint64) gin.H {
		return gin.H{
			"description": "Investigated",
			"hoursWorked": 1.5,
			"workDate":    "2026-03-01T09:00:00Z",
			"taskId":      taskID,
		}
	}

	w := s.request(http.MethodPost, "/api/v1/logwork", userToken, body(theirs))
	s.Equal(http.StatusForbidden, w.Code)
	s.Equal(services.ErrNotAssigned.Message, s.decode(w, nil).Message)

	w = s.request(http.MethodPost, "/api/v1/logwork", userToken, body(999))
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.request(http.MethodPost, "/api/v1/logwork", userToken, body(mine))
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var entry struct {
		ID          uint64  `json:"id"`
		HoursWorked float64 `json:"hoursWorked"`
		UserID      uint64  `json:"userId"`
	}
	s.decode(w, &entry)
	s.Equal(1.5, entry.HoursWorked)
	s.Equal(userID, entry.UserID)

	w = s.request(http.MethodPost, "/api/v1/logwork", userToken, gin.H{
		"description": "x", "hoursWorked": 0, "workDate": "yesterday", "taskId": mine,
	})
	s.Equal(http.StatusBadRequest, w.Code)

	otherID := s.createUser("other@x.com")
	s.Require().NotZero(otherID)
	otherToken := s.login("other@x.com", "secret1")
	w = s.request(http.MethodGet, fmt.Sprintf("/api/v1/logwork/%d", entry.ID), otherToken, nil)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.request(http.MethodGet, "/api/v1/logwork", otherToken, nil)
	var entries []json.RawMessage
	s.decode(w, &entries)
	s.Empty(entries)
}

func (s *APITestSuite) TestProjectAssignUserIsIdempotent() {
	userID := s.createUser("member@x.com")

	w := s.request(http.MethodPost, "/api/v1/projects", s.adminToken, gin.H{"name": "Apollo"})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var project struct {
		ID            uint64 `json:"id"`
		AssignedUsers []struct {
			ID uint64 `json:"id"`
		} `json:"assignedUsers"`
	}
	s.decode(w, &project)

	path := fmt.Sprintf("/api/v1/projects/%d/assign-user", project.ID)
	for i := 0; i < 2; i++ {
		w = s.request(http.MethodPost, path, s.adminToken, gin.H{"userId": userID})
		s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	}
	s.decode(w, &project)
	s.Require().Len(project.AssignedUsers, 1)
	s.Equal(userID, project.AssignedUsers[0].ID)

	w = s.request(http.MethodPost, path, s.adminToken, gin.H{"userId": 999})
	s.Equal(http.StatusBadRequest, w.Code)

	memberToken := s.login("member@x.com", "secret1")
	s.Equal(http.StatusOK, s.request(http.MethodGet, "/api/v1/projects", memberToken, nil).Code)
	s.Equal(http.StatusForbidden, s.request(http.MethodPost, "/api/v1/projects", memberToken, gin.H{"name": "No"}).Code)
}

func (s *APITestSuite) TestTicketWorkflow() {
	taskID := s.createTask("Needs review", s.admin.ID)

	w := s.request(http.MethodPost, "/api/v1/tickets", s.adminToken, gin.H{
		"title":  "Extend deadline",
		"taskId": taskID,
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var ticket struct {
		ID          uint64     `json:"id"`
		Status      string     `json:"status"`
		RequestByID uint64     `json:"requestById"`
		ApprovedAt  *time.Time `json:"approvedAt"`
	}
	s.decode(w, &ticket)
	s.Equal("pending", ticket.Status)
	s.Equal(s.admin.ID, ticket.RequestByID)

	w = s.request(http.MethodPut, fmt.Sprintf("/api/v1/tickets/%d", ticket.ID), s.adminToken, gin.H{
		"status":       "approved",
		"approvedById": s.admin.ID,
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.decode(w, &ticket)
	s.Equal("approved", ticket.Status)
	s.NotNil(ticket.ApprovedAt)

	w = s.request(http.MethodGet, "/api/v1/tickets?status=bogus", s.adminToken, nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *APITestSuite) TestGenerateWithoutAIIsUnavailable() {
	w := s.request(http.MethodPost, "/api/v1/tasks/generate", s.adminToken, gin.H{"text": "Plan the launch"})
	s.Equal(http.StatusServiceUnavailable, w.Code)
}

func (s *APITestSuite) TestPaginationAndHealth() {
	for i := 0; i < 3; i++ {
		s.createTask(fmt.Sprintf("Task %d", i), s.admin.ID)
	}

	w := s.request(http.MethodGet, "/api/v1/tasks?page=2&limit=2", s.adminToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var tasks []json.RawMessage
	s.decode(w, &tasks)
	s.Len(tasks, 1)
	s.Equal("3", w.Header().Get(constants.HeaderTotalCount))

	w = s.request(http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusOK, w.Code)
	s.True(s.decode(w, nil).Success)

	w = s.request(http.MethodGet, "/metrics", "", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "http_requests_total")

	w = s.request(http.MethodGet, "/api/v1/nowhere", "", nil)
	s.Equal(http.StatusNotFound, w.Code)
}
