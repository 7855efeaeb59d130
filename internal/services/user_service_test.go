package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/yukikurage/taskhub-api/internal/models"
	"github.com/yukikurage/taskhub-api/internal/testutil"
	"github.com/yukikurage/taskhub-api/internal/utils"
)

type UserServiceTestSuite struct {
	ServiceTestSuite
}

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func (s *UserServiceTestSuite) TestList() {
	users, total, err := s.svc.Users.List(s.ctx, s.adminCall, utils.PaginationParams{})
	s.Require().NoError(err)
	s.Equal(int64(3), total)
	s.Len(users, 3)
}

func (s *UserServiceTestSuite) TestUpdate() {
	email := "renamed@example.com"
	password := "newpassword"
	first := " Ren "

	updated, err := s.svc.Users.Update(s.ctx, s.adminCall, s.user.ID, UpdateUserInput{
		Email:     &email,
		Password:  &password,
		FirstName: &first,
	})
	s.Require().NoError(err)
	s.Equal(email, updated.Email)
	s.Equal("Ren", updated.FirstName)
	s.Equal(models.RoleUser, updated.Role)
	s.NoError(bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte(password)))
}

func (s *UserServiceTestSuite) TestUpdate_EmailConflict() {
	email := "other@example.com"
	_, err := s.svc.Users.Update(s.ctx, s.adminCall, s.user.ID, UpdateUserInput{Email: &email})
	s.ErrorIs(err, ErrEmailTaken)

	// Keeping one's own email is not a conflict.
	own := "user@example.com"
	_, err = s.svc.Users.Update(s.ctx, s.adminCall, s.user.ID, UpdateUserInput{Email: &own})
	s.NoError(err)
}

func (s *UserServiceTestSuite) TestChangeRole() {
	updated, err := s.svc.Users.ChangeRole(s.ctx, s.adminCall, s.user.ID, models.RoleAdmin)
	s.Require().NoError(err)
	s.Equal(models.RoleAdmin, updated.Role)

	_, err = s.svc.Users.ChangeRole(s.ctx, s.adminCall, 9999, models.RoleAdmin)
	s.ErrorIs(err, ErrUserNotFound)
}

func (s *UserServiceTestSuite) TestDelete_TwiceIsNotFound() {
	s.Require().NoError(s.svc.Users.Delete(s.ctx, s.adminCall, s.other.ID))
	s.ErrorIs(s.svc.Users.Delete(s.ctx, s.adminCall, s.other.ID), ErrUserNotFound)
}

func (s *UserServiceTestSuite) TestDelete_Self() {
	s.ErrorIs(s.svc.Users.Delete(s.ctx, s.adminCall, s.admin.ID), ErrCannotDeleteSelf)
}

func (s *UserServiceTestSuite) TestDelete_UserWithTasks() {
	testutil.CreateTask(s.T(), s.db, "Owned", s.user.ID, s.admin.ID)

	s.ErrorIs(s.svc.Users.Delete(s.ctx, s.adminCall, s.user.ID), ErrUserInUse)
	s.Equal(int64(3), s.count(&models.User{}))
}

func (s *UserServiceTestSuite) TestEnsureAdmin() {
	seeded, created, err := s.svc.Users.EnsureAdmin(s.ctx, "root@example.com", "admin123")
	s.Require().NoError(err)
	s.True(created)
	s.Equal(models.RoleAdmin, seeded.Role)

	again, created, err := s.svc.Users.EnsureAdmin(s.ctx, "root@example.com", "admin123")
	s.Require().NoError(err)
	s.False(created)
	s.Equal(seeded.ID, again.ID)
}
