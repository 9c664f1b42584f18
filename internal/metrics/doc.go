// Package metrics provides the observability hooks for compiler and build metrics.
//
// All components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics collection needs no nil checks at call sites:
//
//	opts := markdown.Options{Recorder: metrics.NoopRecorder{}}
//
// To enable metrics, swap NoopRecorder for a PrometheusRecorder registered on the
// registry served by HTTPHandler:
//
//	reg := prometheus.NewRegistry()
//	recorder := metrics.NewPrometheusRecorder(reg)
//	mux.Handle("/metrics", metrics.HTTPHandler(reg))
package metrics
