package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/taskhub-api/internal/constants"
)

// PaginationParams holds the pagination parameters. The zero value means
// "no pagination": list endpoints return every row unless the client asks
// for a page.
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// Enabled reports whether the request asked for a page.
func (p PaginationParams) Enabled() bool {
	return p.Limit > 0
}

// NewPaginationParams normalizes page and limit.
func NewPaginationParams(page, limit int) PaginationParams {
	if page < constants.MinPageSize {
		page = constants.MinPageSize
	}
	if limit < constants.MinPageSize || limit > constants.MaxPageSize {
		limit = constants.DefaultPageSize
	}

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// GetPaginationParams extracts pagination parameters from the query string.
// Out-of-range values fall back to defaults instead of failing the request.
func GetPaginationParams(c *gin.Context) PaginationParams {
	pageStr, hasPage := c.GetQuery("page")
	limitStr, hasLimit := c.GetQuery("limit")
	if !hasPage && !hasLimit {
		return PaginationParams{}
	}

	page, _ := strconv.Atoi(pageStr)
	limit, _ := strconv.Atoi(limitStr)
	return NewPaginationParams(page, limit)
}
