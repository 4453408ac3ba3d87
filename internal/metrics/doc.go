// Package metrics records rebuild metrics.
//
// Components depend on the Recorder interface. NoopRecorder is the default so nothing needs a
// nil check; PrometheusRecorder is swapped in when a metrics textfile is configured:
//
//	reg := prom.NewRegistry()
//	rec := metrics.NewPrometheusRecorder(reg)
//	reporter := events.Multi(console, metrics.NewReporter(rec))
//	// ... run the pipeline with reporter ...
//	_ = metrics.WriteTextfile(path, reg)
//
// The textfile format is the one read by the node_exporter textfile collector, which suits a
// tool that runs and exits rather than serving a scrape endpoint.
package metrics
