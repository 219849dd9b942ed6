// Package metrics provides build metrics for kssg.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics cost nothing unless enabled:
//
//	recorder := metrics.NewPrometheusRecorder(registry)
//	gen := generator.New(cfg).WithRecorder(recorder)
//
// The preview server exposes the registry over HTTP and builds can export it
// as a node exporter textfile (metricsFile in kssg.json).
package metrics
