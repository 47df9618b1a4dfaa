// Package logging provides structured logging using uber/zap.
//
// Two modes are supported:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	logger.Info("Manager starting", zap.Int("workers", 4))
//	logger.Error("Copy failed", zap.Error(err))
package logging
