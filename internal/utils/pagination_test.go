// internal/utils/pagination_test.go
package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paramsForQuery(query string) PaginationParams {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/"+query, nil)
	return GetPaginationParams(c)
}

func TestGetPaginationParams(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		params := paramsForQuery("")
		assert.Equal(t, 1, params.Page)
		assert.Equal(t, 50, params.Limit)
		assert.Equal(t, "created_at", params.Sort)
		assert.Equal(t, "desc", params.Order)
	})

	t.Run("explicit values", func(t *testing.T) {
		params := paramsForQuery("?page=3&limit=20&sort=status&order=asc")
		assert.Equal(t, 3, params.Page)
		assert.Equal(t, 20, params.Limit)
		assert.Equal(t, "status", params.Sort)
		assert.Equal(t, "asc", params.Order)
	})

	t.Run("out of range values clamped", func(t *testing.T) {
		params := paramsForQuery("?page=0&limit=9999&order=sideways")
		assert.Equal(t, 1, params.Page)
		assert.Equal(t, 50, params.Limit)
		assert.Equal(t, "desc", params.Order)
	})
}

func TestCreatePaginationResult(t *testing.T) {
	result := CreatePaginationResult([]string{"a", "b"}, 101, PaginationParams{Page: 2, Limit: 50})

	assert.Equal(t, 2, result.Page)
	assert.Equal(t, int64(101), result.Total)
	assert.Equal(t, 3, result.TotalPages)
}
