// Package generator orchestrates documentation runs.
//
// A run walks the root, classifies every file against the loaded cache,
// enriches only the dirty files under bounded concurrency, merges the
// results with everything already known, and persists the tree
// atomically. Two properties shape all of it:
//
//   - A run over an unchanged tree performs zero enrichment calls and
//     rewrites an equivalent tree.
//   - A failed enrichment keeps the file's previous entry. Failures are
//     counted and logged, never propagated into the persisted cache.
package generator
