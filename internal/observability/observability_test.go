package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/music-library/internal/config"
)

func TestNewLoggerFallsBackToInfo(t *testing.T) {
	logger, err := NewLogger(config.LoggerConfig{Level: "chatty"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.InfoLevel))
	assert.False(t, logger.Core().Enabled(zap.DebugLevel))
}

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/api/v1/artists", http.MethodGet, 200, 10*time.Millisecond)
	m.RecordRequest("/api/v1/artists", http.MethodGet, 200, 30*time.Millisecond)
	m.RecordError("/api/v1/artists", http.MethodGet, "NOT_FOUND")
	m.RecordEvent("favorite_added")

	snap := m.Snapshot()
	stats := snap.Requests["/api/v1/artists|GET|200"]
	assert.Equal(t, int64(2), stats.Count)
	assert.InDelta(t, 20.0, stats.AvgMillis, 0.001)
	assert.Equal(t, int64(1), snap.Errors["/api/v1/artists|GET|NOT_FOUND"])
	assert.Equal(t, int64(1), snap.Events["favorite_added"])

	var nilMetrics *Metrics
	nilMetrics.RecordRequest("/", http.MethodGet, 200, time.Millisecond)
	assert.Empty(t, nilMetrics.Snapshot().Requests)
}

func TestRequestLoggerRecordsRoutePattern(t *testing.T) {
	m := NewMetrics()
	app := fiber.New()
	app.Use(RequestLogger(zap.NewNop(), m))
	app.Get("/artists/:id", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusNoContent) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/artists/42", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	assert.Equal(t, int64(1), m.Snapshot().Requests["/artists/:id|GET|204"].Count)
}
