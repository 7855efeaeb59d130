package handlers

import (
	"fmt"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/yukikurage/taskhub-api/internal/constants"
	"github.com/yukikurage/taskhub-api/internal/dto"
	"github.com/yukikurage/taskhub-api/internal/middleware"
	"github.com/yukikurage/taskhub-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login checks credentials and returns a bearer token. The same token is
// kept in the session cookie for browser clients.
func (h *AuthHandler) Login(c *gin.Context) {
	req := middleware.Body[dto.LoginRequest](c)

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	if session := sessionOf(c); session != nil {
		session.Set(constants.SessionKeyToken, result.Token)
		if err := session.Save(); err != nil {
			fail(c, fmt.Errorf("failed to save session: %w", err))
			return
		}
	}

	ok(c, "Login successful", dto.LoginResponse{
		User:      dto.ToUserDTO(*result.User),
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
	})
}

// Register creates an account on behalf of an admin.
func (h *AuthHandler) Register(c *gin.Context) {
	req := middleware.Body[dto.CreateUserRequest](c)

	user, err := h.authService.Register(c.Request.Context(), registerInput(req))
	if err != nil {
		fail(c, err)
		return
	}

	created(c, "User registered successfully", dto.ToUserDTO(*user))
}

// Logout removes the session cookie. Bearer tokens stay valid until they expire.
func (h *AuthHandler) Logout(c *gin.Context) {
	if session := sessionOf(c); session != nil {
		session.Clear()
		session.Options(sessions.Options{Path: "/", MaxAge: -1})
		if err := session.Save(); err != nil {
			fail(c, fmt.Errorf("failed to clear session: %w", err))
			return
		}
	}

	ok(c, "Logout successful", nil)
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authService.CurrentUser(c.Request.Context(), caller(c).UserID)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, "User retrieved successfully", dto.ToUserDTO(*user))
}

func registerInput(req *dto.CreateUserRequest) services.RegisterInput {
	return services.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
	}
}

// sessionOf is nil when the router runs without a session store.
func sessionOf(c *gin.Context) sessions.Session {
	if _, exists := c.Get(sessions.DefaultKey); !exists {
		return nil
	}
	return sessions.Default(c)
}
