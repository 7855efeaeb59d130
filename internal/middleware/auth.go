package middleware

import (
	"errors"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/yukikurage/taskhub-api/internal/constants"
	apierrors "github.com/yukikurage/taskhub-api/internal/errors"
	"github.com/yukikurage/taskhub-api/internal/services"
	"github.com/yukikurage/taskhub-api/internal/token"
)

// TokenVerifier checks a signed token and returns its claims.
type TokenVerifier interface {
	Verify(tokenString string) (*token.Claims, error)
}

// RequireAuth accepts a bearer token, falling back to the token stored in the
// session cookie by login.
func RequireAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			raw = sessionToken(c)
		}
		if raw == "" {
			apierrors.RespondWithError(c, apierrors.ErrUnauthorized)
			return
		}

		claims, err := verifier.Verify(raw)
		if err != nil {
			if errors.Is(err, token.ErrTokenExpired) {
				apierrors.RespondWithError(c, apierrors.ErrTokenExpired)
				return
			}
			apierrors.RespondWithError(c, apierrors.ErrInvalidToken)
			return
		}

		// Store user ID in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, claims.UserID)
		c.Set(constants.ContextKeyClaims, claims)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	scheme, value, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(value)
}

// sessionToken is empty when no session middleware is installed.
func sessionToken(c *gin.Context) string {
	if _, ok := c.Get(sessions.DefaultKey); !ok {
		return ""
	}
	value, _ := sessions.Default(c).Get(constants.SessionKeyToken).(string)
	return value
}

// GetClaims returns the verified claims of the current request.
func GetClaims(c *gin.Context) (*token.Claims, bool) {
	value, exists := c.Get(constants.ContextKeyClaims)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*token.Claims)
	return claims, ok
}

// GetCaller builds the identity passed to services.
func GetCaller(c *gin.Context) (services.Caller, bool) {
	claims, ok := GetClaims(c)
	if !ok {
		return services.Caller{}, false
	}
	return services.Caller{UserID: claims.UserID, Role: claims.Role}, true
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	id, ok := userID.(uint64)
	return id, ok
}
