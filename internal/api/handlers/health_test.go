package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/nba-gm-sim/matchengine/internal/api/handlers"
)

func TestGetReadyReportsUnavailableWhenRedisDown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := openTestDB(t)
	// Nothing listens on this address, so the readiness ping fails fast.
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 200 * time.Millisecond})

	h := handlers.NewHealthHandler(db, client)
	router := gin.New()
	router.GET("/readyz", h.GetReady)

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
