package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/JustJay7/court-scheduler/internal/cache"
	"github.com/JustJay7/court-scheduler/internal/config"
	"github.com/JustJay7/court-scheduler/internal/database"
	"github.com/JustJay7/court-scheduler/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, c cache.Cache) *Server {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)

	cfg := &config.Config{
		LogLevel:         "error",
		JudgeHeader:      "X-Judge-Id",
		StoreTimeout:     time.Second,
		ImportMaxRecords: 10,
	}
	return New(cfg, db, c, logger.Nop())
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodOptions, "/api/assigned-cases", nil)
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "X-Judge-Id")
}

func TestServerServesDashboardThroughCache(t *testing.T) {
	c := cache.NewCache(10, time.Minute)
	s := newTestServer(t, c)

	feed := `[{"judgeId":5,"appearanceId":"Z-1","reason":"dec","restrictionCode":"S"}]`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/cases/import", strings.NewReader(feed))
	req.Header.Set("Content-Type", "application/json")
	s.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	for i := 0; i < 2; i++ {
		w = httptest.NewRecorder()
		req, _ = http.NewRequest(http.MethodGet, "/api/assigned-cases", nil)
		req.Header.Set("X-Judge-Id", "5")
		s.Handler().ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"appearanceId":"Z-1"`)
	}

	assert.EqualValues(t, 1, c.Stats().Hits)
}
