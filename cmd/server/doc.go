// Package main is the entry point for the filedeck backend server.
//
// The server fronts two subsystems: the asynchronous filesystem operation
// manager and the bookmark store. The frontend submits operation
// descriptors over REST and polls or waits on task handles; all disk work
// runs on the manager's worker pool.
//
// Configuration:
//   - Environment variables (12-factor)
//   - Optional TOML file (FILEDECK_CONFIG or ~/.config/filedeck.toml)
//   - Defaults for development
//
// Usage:
//
//	# Production mode
//	./server
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown (HTTP drain, then worker drain)
package main
