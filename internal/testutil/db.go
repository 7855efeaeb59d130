// Package testutil provides database fixtures shared by package tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yukikurage/taskhub-api/internal/config"
	"github.com/yukikurage/taskhub-api/internal/database"
	"github.com/yukikurage/taskhub-api/internal/models"
)

// NewDB opens a migrated in-memory SQLite database that is closed when the
// test ends. The pool holds a single connection, so every query sees the
// same in-memory database.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	cfg := &config.Config{
		GinMode:    "release",
		DBDriver:   config.DriverSQLite,
		SQLitePath: ":memory:",
	}
	db, err := database.Open(cfg, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, zap.NewNop()))

	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}

// CreateUser inserts a user whose password is "password".
func CreateUser(t testing.TB, db *gorm.DB, email string, role models.Role) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    "Test",
		LastName:     "User",
		Role:         role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateTask inserts a task assigned to assignee and created by creator.
func CreateTask(t testing.TB, db *gorm.DB, title string, assigneeID, creatorID uint64) *models.Task {
	t.Helper()

	task := &models.Task{
		Title:        title,
		Status:       models.TaskStatusTodo,
		Priority:     models.TaskPriorityMedium,
		AssignedToID: assigneeID,
		CreatedByID:  creatorID,
	}
	require.NoError(t, db.Create(task).Error)
	return task
}

// CreateProject inserts a project created by creatorID.
func CreateProject(t testing.TB, db *gorm.DB, name string, creatorID uint64) *models.Project {
	t.Helper()

	project := &models.Project{Name: name, CreatedByID: creatorID}
	require.NoError(t, db.Create(project).Error)
	return project
}
