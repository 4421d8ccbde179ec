// Package observability sets up the tracing provider and the Prometheus
// registry used by the stock advice and the diagnostics server.
package observability
