package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHealthHandler_Healthcheck(t *testing.T) {
	handler := NewHealthHandler(map[string]Pinger{"database": stubPinger{}, "pending_store": stubPinger{}})
	router := gin.New()
	router.GET("/healthcheck", handler.Healthcheck)

	w := serve(router, httptest.NewRequest(http.MethodGet, "/healthcheck", http.NoBody))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-cache, no-store, max-age=0, must-revalidate", w.Header().Get("Cache-Control"))
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHealthHandler_DependencyDown(t *testing.T) {
	handler := NewHealthHandler(map[string]Pinger{"database": stubPinger{err: errors.New("connection refused")}})
	router := gin.New()
	router.GET("/healthcheck", handler.Healthcheck)

	w := serve(router, httptest.NewRequest(http.MethodGet, "/healthcheck", http.NoBody))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"unavailable","reason":"database unreachable"}`, w.Body.String())
}
