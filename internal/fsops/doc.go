// Package fsops provides the blocking filesystem primitives used by the
// async operation manager.
//
// Every function is a plain synchronous call taking path arguments and
// returning a typed value or an error. None of them keep state between
// calls, so all are safe to invoke concurrently from multiple workers.
//
// Operations that can traverse large trees (Copy, DirSize) accept a
// context and check it between entries; everything else is a single
// metadata or rename call and completes in one step.
package fsops
