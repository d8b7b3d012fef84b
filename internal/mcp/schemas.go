package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// generateDocsTool returns the tool definition for generate_docs
func generateDocsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "generate_docs",
		Description: "Generate or refresh per-file documentation for a directory tree. Only new or changed files are sent to the model.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the directory to document",
				},
				"force": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, regenerate every file ignoring content hashes (full rebuild)",
					"default":     false,
				},
				"ignore": map[string]interface{}{
					"type":        "array",
					"description": "Extra directory names or glob patterns to skip",
					"items": map[string]interface{}{
						"type": "string",
					},
				},
			},
			Required: []string{"path"},
		},
	}
}

// getDocsTool returns the tool definition for get_docs
func getDocsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_docs",
		Description: "Read the generated documentation tree for a directory, optionally narrowed to a subpath",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to a documented directory",
				},
				"subpath": map[string]interface{}{
					"type":        "string",
					"description": "Relative path inside the tree; only matching entries are returned",
				},
				"max_entries": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of file entries to return (1-1000)",
					"default":     200,
					"minimum":     1,
					"maximum":     1000,
				},
			},
			Required: []string{"path"},
		},
	}
}

// getStatusTool returns the tool definition for get_status
func getStatusTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_status",
		Description: "Report documentation coverage for a directory: how many files are documented, stale, or missing",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the directory",
				},
			},
			Required: []string{"path"},
		},
	}
}
