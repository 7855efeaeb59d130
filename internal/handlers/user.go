package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yukikurage/taskhub-api/internal/dto"
	"github.com/yukikurage/taskhub-api/internal/middleware"
	"github.com/yukikurage/taskhub-api/internal/services"
	"github.com/yukikurage/taskhub-api/internal/utils"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) List(c *gin.Context) {
	users, total, err := h.users.List(c.Request.Context(), caller(c), utils.GetPaginationParams(c))
	if err != nil {
		fail(c, err)
		return
	}
	list(c, "Users retrieved successfully", dto.ToUserDTOs(users), total)
}

func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), caller(c), middleware.IDParam(c, "id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "User retrieved successfully", dto.ToUserDTO(*user))
}

func (h *UserHandler) Create(c *gin.Context) {
	req := middleware.Body[dto.CreateUserRequest](c)

	user, err := h.users.Create(c.Request.Context(), caller(c), registerInput(req))
	if err != nil {
		fail(c, err)
		return
	}
	created(c, "User created successfully", dto.ToUserDTO(*user))
}

func (h *UserHandler) Update(c *gin.Context) {
	req := middleware.Body[dto.UpdateUserRequest](c)

	user, err := h.users.Update(c.Request.Context(), caller(c), middleware.IDParam(c, "id"), services.UpdateUserInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "User updated successfully", dto.ToUserDTO(*user))
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), caller(c), middleware.IDParam(c, "id")); err != nil {
		fail(c, err)
		return
	}
	ok(c, "User deleted successfully", nil)
}

// ChangeRole promotes or demotes a user.
func (h *UserHandler) ChangeRole(c *gin.Context) {
	req := middleware.Body[dto.ChangeRoleRequest](c)

	user, err := h.users.ChangeRole(c.Request.Context(), caller(c), middleware.IDParam(c, "id"), req.Role)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "User role updated successfully", dto.ToUserDTO(*user))
}
