package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/yukikurage/taskhub-api/internal/authz"
	apierrors "github.com/yukikurage/taskhub-api/internal/errors"
)

// Require rejects callers whose role is not granted action. It must run
// after RequireAuth.
func Require(policy authz.Policy, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			apierrors.RespondWithError(c, apierrors.ErrUnauthorized)
			return
		}
		if !policy.Allows(claims.Role, action) {
			apierrors.RespondWithError(c, apierrors.ErrForbidden)
			return
		}
		c.Next()
	}
}
