// Package bookmarks implements the entry model and its JSON-file store.
//
// Entries point at files, directories, web links, or collections of other
// entries. The store keeps everything in memory behind a mutex and persists
// the whole set in one write; at this scale a database would be ceremony.
// Verification of filesystem-backed entries goes through the operation
// manager as a single batch, so the caller never blocks on disk itself.
package bookmarks
