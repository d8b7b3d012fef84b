// Package mcp exposes dirdocs over the Model Context Protocol.
//
// The server speaks MCP on stdio and registers three tools:
//
//   - generate_docs: run incremental documentation generation for a
//     directory tree. Equivalent to `dirdocs generate`.
//   - get_docs: read the persisted documentation tree, optionally
//     narrowed to a subpath, as flat path/description entries.
//   - get_status: report coverage without calling a backend — how many
//     files are documented, stale, or gone.
//
// # Tool Semantics
//
// generate_docs is incremental by default: only files whose content
// hash changed since the last run reach the model. Passing force
// rebuilds everything. The call returns run statistics:
//
//	{
//	  "generated": true,
//	  "files_total": 120,
//	  "regenerated": 7,
//	  "unchanged": 113,
//	  "failed": 0,
//	  "removed": 2,
//	  "duration_ms": 5120
//	}
//
// get_docs returns entries in deterministic tree order (directories
// first, then by name), so repeated calls paginate stably under
// max_entries truncation.
//
// # Errors
//
// Tool failures use JSON-RPC error codes: -32602 for invalid
// parameters, -32603 for internal failures, and server-specific codes
// for domain conditions (no cache present, run already active, unknown
// subpath). A generation run that merely had per-file enrichment
// failures is not an error; the failures appear in the statistics.
package mcp
