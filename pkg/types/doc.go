// Package types provides shared type definitions for the dirdocs engine.
//
// This package defines the persisted data model: the documentation tree, its
// file and directory entries, and the documentation record attached to each
// file, along with the domain errors shared across components.
//
// # Core Types
//
// Entry is a node in the persisted tree, tagged by kind:
//
//	entry := types.NewFileEntry("internal/cache/store.go", hash, doc, time.Now().UTC())
//
// Tree is the root of one persisted cache file:
//
//	tree := types.NewTree(".")
//	tree.Entries = append(tree.Entries, entry)
//
// Doc is the enrichment output for one file: a description, a bounded joy
// score, and a short emoji tag. The cache and merge layers never inspect it
// beyond presence.
//
// # Persisted Schema
//
// Trees serialize to JSON with a recursive ordered entry list. Each entry
// carries name, path, kind, update timestamp, and, for files, the content
// hash and documentation record. Subdirectory cache files use the identical
// schema scoped to their subtree.
//
// # Error Classification
//
// ErrTransient and ErrPermanent partition enrichment failures: transient
// failures are retried with exponential backoff, permanent failures abort a
// file's enrichment immediately. Both are matched with errors.Is.
package types
