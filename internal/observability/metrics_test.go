package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSimulation(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics("test", reg)

	m.RecordSimulation("ok", 500, 0.01)
	m.RecordSimulation("invalid", 0, 0)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SimulationsTotal.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SimulationsTotal.WithLabelValues("invalid")))
	assert.Equal(t, 500.0, testutil.ToFloat64(m.SimulatedCells))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordSimulation("ok", 1, 1)
		m.RecordKellySolve()
		m.RecordRunStored()
		m.RecordHTTP("GET", "/health", "200", 0.1)
	})
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics("test", reg)
	m.RecordKellySolve()

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "test_kelly_solves_total 1"))
}
