// Package server exposes the operation manager and the bookmark store over
// HTTP.
//
// The surface is deliberately thin: the frontend submits descriptors, polls
// or waits on task IDs, and manages bookmark entries. All filesystem work
// happens on the manager's worker pool; a request handler never touches the
// disk directly, so a slow copy can never stall the router.
//
// Routes:
//   - POST   /tasks             submit a descriptor
//   - GET    /tasks/:id         poll a task
//   - GET    /tasks/:id/wait    block until terminal (client disconnect aborts the wait)
//   - POST   /tasks/:id/cancel  request cancellation
//   - CRUD   /bookmarks         entry management
//   - POST   /bookmarks/verify  batch existence check
//   - GET    /health, /metrics
package server
