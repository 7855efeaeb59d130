package dto

import (
	"time"

	"github.com/yukikurage/taskhub-api/internal/models"
)

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CreateUserRequest is the body of POST /users and POST /auth/register
type CreateUserRequest struct {
	Email     string      `json:"email" binding:"required,email,max=255"`
	Password  string      `json:"password" binding:"required,min=6,max=72"`
	FirstName string      `json:"firstName" binding:"required,min=1,max=255"`
	LastName  string      `json:"lastName" binding:"required,min=1,max=255"`
	Role      models.Role `json:"role" binding:"omitempty,oneof=admin user"`
}

// UpdateUserRequest is the body of PUT /users/:id. A role sent here is
// ignored; PATCH /users/:id/role is the only way to change it.
type UpdateUserRequest struct {
	Email     *string `json:"email" binding:"omitempty,email,max=255"`
	Password  *string `json:"password" binding:"omitempty,min=6,max=72"`
	FirstName *string `json:"firstName" binding:"omitempty,min=1,max=255"`
	LastName  *string `json:"lastName" binding:"omitempty,min=1,max=255"`
}

// ChangeRoleRequest is the body of PATCH /users/:id/role
type ChangeRoleRequest struct {
	Role models.Role `json:"role" binding:"required,oneof=admin user"`
}

// UserDTO is the public projection of a user. It never carries the password.
type UserDTO struct {
	ID        uint64      `json:"id"`
	Email     string      `json:"email"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Role      models.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// UserSummaryDTO is the short form embedded in other resources
type UserSummaryDTO struct {
	ID        uint64 `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// LoginResponse is returned by a successful login
type LoginResponse struct {
	User      UserDTO   `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []models.User) []UserDTO {
	items := make([]UserDTO, len(users))
	for i, user := range users {
		items[i] = ToUserDTO(user)
	}
	return items
}

func toUserSummary(user models.User) *UserSummaryDTO {
	if user.ID == 0 {
		return nil
	}
	return &UserSummaryDTO{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}
