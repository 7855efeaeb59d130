package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yukikurage/taskhub-api/internal/models"
	"github.com/yukikurage/taskhub-api/internal/repository"
	"github.com/yukikurage/taskhub-api/internal/utils"
)

// UserService manages accounts. Routes restrict it to admins.
type UserService struct {
	users repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// UpdateUserInput is a partial update; nil fields are left unchanged.
// Role is not part of it: roles change only through ChangeRole.
type UpdateUserInput struct {
	Email     *string
	Password  *string
	FirstName *string
	LastName  *string
}

func (s *UserService) List(ctx context.Context, _ Caller, page utils.PaginationParams) ([]models.User, int64, error) {
	users, total, err := s.users.List(ctx, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

func (s *UserService) Get(ctx context.Context, _ Caller, id uint64) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound, "find user")
	}
	return user, nil
}

func (s *UserService) Create(ctx context.Context, _ Caller, input RegisterInput) (*models.User, error) {
	return createUser(ctx, s.users, input)
}

func (s *UserService) Update(ctx context.Context, _ Caller, id uint64, input UpdateUserInput) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound, "find user")
	}

	if input.Email != nil {
		email := normalizeEmail(*input.Email)
		if email != user.Email {
			if err := ensureEmailFree(ctx, s.users, email, user.ID); err != nil {
				return nil, err
			}
			user.Email = email
		}
	}
	if input.Password != nil {
		hash, err := hashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if input.FirstName != nil {
		user.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		user.LastName = strings.TrimSpace(*input.LastName)
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// Delete removes a user. Users still referenced by tasks, projects or
// tickets are kept so those rows never point at a missing account.
func (s *UserService) Delete(ctx context.Context, caller Caller, id uint64) error {
	if caller.UserID == id {
		return ErrCannotDeleteSelf
	}

	if _, err := s.users.FindByID(ctx, id); err != nil {
		return notFound(err, ErrUserNotFound, "find user")
	}

	owned, err := s.users.CountOwnedRecords(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check user references: %w", err)
	}
	if owned > 0 {
		return ErrUserInUse
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return notFound(err, ErrUserNotFound, "delete user")
	}
	return nil
}

// ChangeRole is the only way to change a user's role.
func (s *UserService) ChangeRole(ctx context.Context, _ Caller, id uint64, role models.Role) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound, "find user")
	}

	user.Role = role
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	return user, nil
}

// EnsureAdmin creates the seed admin account when no user has its email.
// It reports whether an account was created.
func (s *UserService) EnsureAdmin(ctx context.Context, email, password string) (*models.User, bool, error) {
	existing, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to look up admin: %w", err)
	}

	user, err := createUser(ctx, s.users, RegisterInput{
		Email:     email,
		Password:  password,
		FirstName: "Admin",
		LastName:  "User",
		Role:      models.RoleAdmin,
	})
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}
