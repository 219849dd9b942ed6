package metrics

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveStageDuration("render", 150*time.Millisecond)
	pr.ObserveBuildDuration(500 * time.Millisecond)
	pr.IncStageResult("render", ResultSuccess)
	pr.IncBuildOutcome(BuildOutcomeSuccess)
	pr.AddItems("post", 3)

	// Basic scrape to ensure metrics encode without panic
	mfs, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, mfs)
	require.Same(t, reg, pr.Registry())
}

func TestNilPrometheusRecorderIsSafe(t *testing.T) {
	var pr *PrometheusRecorder
	pr.ObserveStageDuration("render", time.Second)
	pr.ObserveBuildDuration(time.Second)
	pr.IncStageResult("render", ResultFatal)
	pr.IncBuildOutcome(BuildOutcomeFailed)
	pr.AddItems("static", 1)
	pr.SetLiveReloadClients(2)
	pr.IncLiveReloadBroadcasts()
}

func TestWriteTextfile(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.IncBuildOutcome(BuildOutcomeSuccess)
	pr.AddItems("post", 2)

	path := filepath.Join(t.TempDir(), "kssg.prom")
	require.NoError(t, WriteTextfile(reg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `kssg_build_outcomes_total{outcome="success"} 1`)
	require.Contains(t, string(data), `kssg_items_total{kind="post"} 2`)
}

func TestLiveReloadMetrics(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.SetLiveReloadClients(3)
	pr.IncLiveReloadBroadcasts()

	path := filepath.Join(t.TempDir(), "kssg.prom")
	require.NoError(t, WriteTextfile(reg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "kssg_livereload_clients 3")
	require.Contains(t, string(data), "kssg_livereload_broadcasts_total 1")
}

func TestHTTPHandler(t *testing.T) {
	reg := prom.NewRegistry()
	NewPrometheusRecorder(reg).IncStageResult("discover", ResultSuccess)

	rec := httptest.NewRecorder()
	HTTPHandler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, strings.Contains(rec.Body.String(), "kssg_stage_results_total"))
}
