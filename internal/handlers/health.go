package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yukikurage/taskhub-api/internal/database"
	apierrors "github.com/yukikurage/taskhub-api/internal/errors"
)

type healthStatus struct {
	Status   string    `json:"status"`
	Database string    `json:"database"`
	Time     time.Time `json:"time"`
}

// Health reports whether the API and its database are reachable.
func Health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := healthStatus{Status: "ok", Database: "up", Time: time.Now().UTC()}
		if err := database.Ping(ctx, db); err != nil {
			status.Status = "degraded"
			status.Database = "down"
			c.JSON(http.StatusServiceUnavailable, apierrors.Envelope{
				Success: false,
				Message: "Database unavailable",
				Data:    status,
			})
			return
		}

		apierrors.RespondWithSuccess(c, http.StatusOK, "Task Management API is running", status)
	}
}
