// Package metrics exposes Prometheus instrumentation for the HTTP API,
// the search path, the search index and the document pipelines.
//
// Collectors register with the default registry at init. Services stay
// free of metrics code: wrap them with the Instrument* decorators.
package metrics
