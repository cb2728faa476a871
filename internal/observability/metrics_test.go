package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Observe(t *testing.T) {
	m := NewMetrics("test")
	m.ObserveSimulation("portfolio", time.Now(), 500)
	m.ObserveSimulation("property", time.Now(), 0)
	m.ObserveCache(true)
	m.ObserveCache(false)
	m.ObserveCache(false)
	m.ObserveUndefinedIRR()
	m.SetPortfolioSize(3)
	m.ObserveRequest("/simulate/property", http.MethodPost, http.StatusOK, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SimulationsRun.WithLabelValues("portfolio")))
	assert.Equal(t, 500.0, testutil.ToFloat64(m.TrialsSimulated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheHits.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheHits.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UndefinedIRR))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.PortfolioStoreSize))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("/simulate/property", "POST", "OK")))
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	a := NewMetrics("")
	b := NewMetrics("")
	a.ObserveUndefinedIRR()
	assert.Equal(t, 0.0, testutil.ToFloat64(b.UndefinedIRR))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.ObserveSimulation("property", time.Now(), 1)
	m.ObserveCache(true)
	m.ObserveUndefinedIRR()
	m.SetPortfolioSize(1)
	m.ObserveRequest("/", "GET", 200, 0)
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics("test")
	m.ObserveSimulation("property", time.Now(), 0)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "test_simulation_runs_total"))
}
