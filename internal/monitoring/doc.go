// Package monitoring provides Prometheus metrics for the backend.
//
// Covered surfaces:
//   - Task engine: submissions, terminal outcomes by kind, queue depth,
//     busy workers, per-operation duration
//   - HTTP: request counts, durations, and sizes via Gin middleware
//
// Metrics are registered on a dedicated registry so tests can create
// multiple collectors without duplicate-registration panics.
package monitoring
