// Package cache loads, merges, and persists documentation trees.
//
// One cache file lives at the root of a documented project; subdirectories
// may own independently generated cache files with the identical schema.
// This package is responsible for the content-addressed store around them:
// loading trees (falling back to an empty tree on a missing or corrupt
// file), flattening trees into path-keyed indexes, folding independently
// generated subtrees into a parent run, merging fresh and cached entries
// with deterministic precedence, and writing the result atomically.
//
// # Merge Precedence
//
// For any given path, layered lowest to highest:
//
//  1. the parent tree's previous entry
//  2. an entry from a subdirectory's own cache tree, rebased onto the parent
//  3. a clean entry carried forward by the diff engine
//  4. a freshly enriched entry produced this run
//
// Entries whose path is no longer present among the live candidates are
// dropped, never tombstoned. Merging an already-merged tree with itself and
// no fresh input reproduces the same tree.
//
// # Atomicity
//
// WriteTree stages the serialized tree in a temporary file in the target
// directory, syncs it, and renames it over the previous version. A reader or
// a crash mid-write never observes a partially written file; a failed write
// leaves the previous tree as the effective state.
package cache
