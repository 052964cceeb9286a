package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubPinger struct {
	err error
}

func (s *stubPinger) Ping() error { return s.err }

func newSystemRouter(db Pinger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	h := NewSystemHandler(db)
	engine.GET("/health", h.Health)
	engine.GET("/ready", h.Ready)
	return engine
}

func TestSystemHandler_Health(t *testing.T) {
	engine := newSystemRouter(&stubPinger{})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestSystemHandler_Ready(t *testing.T) {
	engine := newSystemRouter(&stubPinger{})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ready"`)
}

func TestSystemHandler_ReadyDatabaseDown(t *testing.T) {
	engine := newSystemRouter(&stubPinger{err: errors.New("connection refused")})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
