package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/taskhub-api/internal/constants"
	apierrors "github.com/yukikurage/taskhub-api/internal/errors"
	"github.com/yukikurage/taskhub-api/internal/middleware"
	"github.com/yukikurage/taskhub-api/internal/services"
)

// fail hands err to middleware.ErrorHandler.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// caller is only called behind RequireAuth.
func caller(c *gin.Context) services.Caller {
	identity, _ := middleware.GetCaller(c)
	return identity
}

func ok(c *gin.Context, message string, data any) {
	apierrors.RespondWithSuccess(c, http.StatusOK, message, data)
}

func created(c *gin.Context, message string, data any) {
	apierrors.RespondWithSuccess(c, http.StatusCreated, message, data)
}

// list writes items and reports the unpaginated total in X-Total-Count.
func list(c *gin.Context, message string, items any, total int64) {
	c.Header(constants.HeaderTotalCount, strconv.FormatInt(total, 10))
	ok(c, message, items)
}

// queryID parses an optional positive integer filter from the query string.
func queryID(c *gin.Context, name string) (*uint64, error) {
	raw, present := c.GetQuery(name)
	if !present || raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return nil, apierrors.ErrValidationFailed.WithDetails(name + ": must be a positive integer")
	}
	return &id, nil
}

// queryEnum parses an optional enum filter, rejecting values outside allowed.
func queryEnum[T ~string](c *gin.Context, name string, allowed ...T) (*T, error) {
	raw, present := c.GetQuery(name)
	if !present || raw == "" {
		return nil, nil
	}
	for _, value := range allowed {
		if string(value) == raw {
			return &value, nil
		}
	}
	options := make([]string, len(allowed))
	for i, value := range allowed {
		options[i] = string(value)
	}
	return nil, apierrors.ErrValidationFailed.WithDetails(name + ": must be one of " + strings.Join(options, " "))
}
