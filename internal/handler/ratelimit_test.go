package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNewRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("Rejects after limit", func(t *testing.T) {
		router := gin.New()
		router.POST("/generate", NewRateLimiter(2, time.Minute), func(c *gin.Context) { c.Status(http.StatusOK) })

		codes := make([]int, 0, 3)
		for i := 0; i < 3; i++ {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/generate", nil))
			codes = append(codes, w.Code)
		}
		assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	})

	t.Run("Zero limit disables", func(t *testing.T) {
		router := gin.New()
		router.POST("/generate", NewRateLimiter(0, time.Minute), func(c *gin.Context) { c.Status(http.StatusOK) })
		for i := 0; i < 5; i++ {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/generate", nil))
			assert.Equal(t, http.StatusOK, w.Code)
		}
	})
}
