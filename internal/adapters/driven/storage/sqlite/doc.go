// Package sqlite provides SQLite-backed implementations of the storage ports.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It provides two stores:
//
//   - Store: the document catalog (driven.DocumentStore), caching the last
//     ingested corpus so an index can be rebuilt offline
//   - IndexFile: the persisted embedding index (driven.IndexStore), one
//     self-contained database file per index
//
// # Schema
//
// The catalog schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// Index files carry their own fixed schema and a format_version row in the
// meta table. A file with any other version is treated as absent.
//
// # Atomicity
//
// IndexFile.Save writes to a temporary file beside the target and renames it
// into place, so a reader never observes a partially written index.
package sqlite
