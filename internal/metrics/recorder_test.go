package metrics

import (
	"testing"
	"time"
)

var (
	_ Recorder = NoopRecorder{}
	_ Recorder = (*PrometheusRecorder)(nil)

	_ LiveReloadRecorder = NoopRecorder{}
	_ LiveReloadRecorder = (*PrometheusRecorder)(nil)
)

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveStageDuration("discover", time.Millisecond)
	r.ObserveBuildDuration(time.Millisecond)
	r.IncStageResult("discover", ResultSuccess)
	r.IncBuildOutcome(BuildOutcomeSuccess)
	r.AddItems("template", 1)
}
