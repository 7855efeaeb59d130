package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/yukikurage/taskhub-api/internal/constants"
)

func paginationFor(rawQuery string) PaginationParams {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/items?"+rawQuery, nil)
	return GetPaginationParams(c)
}

func TestGetPaginationParams_AbsentMeansAll(t *testing.T) {
	p := paginationFor("")
	assert.False(t, p.Enabled())
	assert.Equal(t, PaginationParams{}, p)
}

func TestGetPaginationParams(t *testing.T) {
	p := paginationFor("page=3&limit=10")
	assert.True(t, p.Enabled())
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, 20, p.Offset)
}

func TestGetPaginationParams_Clamps(t *testing.T) {
	p := paginationFor("page=-1&limit=5000")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, constants.DefaultPageSize, p.Limit)
	assert.Equal(t, 0, p.Offset)

	p = paginationFor("page=2")
	assert.Equal(t, constants.DefaultPageSize, p.Limit)
	assert.Equal(t, constants.DefaultPageSize, p.Offset)
}
