// Package registry holds the ordered, in-memory collection of tasks and its
// CRUD and persistence operations.
//
// Tasks are kept in insertion order, which is also display order and the
// order written to disk. Names are not unique: every by-name operation acts
// on the first task whose name matches exactly.
//
// Operations report their outcome as a user-facing message plus an error.
// On failure the error's text is the message to show; see package
// [github.com/Iron-Ham/tasker/internal/errors] for the error types.
//
// Persistence uses one JSON array per file. The caller supplies a bare file
// name and ".json" is always appended. Save never overwrites an existing
// file, and a failed Load leaves the in-memory tasks untouched. Files are not
// locked, so concurrent modification by another process is not detected.
package registry
