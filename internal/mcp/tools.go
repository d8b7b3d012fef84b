package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dshills/dirdocs/internal/cache"
	"github.com/dshills/dirdocs/internal/generator"
	"github.com/dshills/dirdocs/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams  = -32602 // Invalid method parameters
	ErrorCodeInternalError  = -32603 // Internal JSON-RPC error
	ErrorCodeNotDocumented  = -32001 // No documentation cache for the path
	ErrorCodeRunInProgress  = -32002 // Another generation run is already active
	ErrorCodeSubpathUnknown = -32003 // Subpath not present in the tree
)

// handleGenerateDocs handles the generate_docs tool invocation
func (s *Server) handleGenerateDocs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path, err := requirePath(args)
	if err != nil {
		return nil, err
	}

	force, _ := args["force"].(bool)
	ignore := getStringSlice(args, "ignore")

	opts := generator.Options{
		Root:         path,
		Force:        force,
		Ignore:       append(ignore, s.cfg.Generate.Ignore...),
		Concurrency:  s.cfg.Generate.Concurrency,
		TokenBudget:  s.cfg.Generate.TokenBudget,
		MaxFileBytes: s.cfg.Generate.MaxFileBytes,
		MaxChunks:    s.cfg.Generate.MaxChunks,
	}

	stats, err := s.gen.Run(ctx, opts)
	if errors.Is(err, types.ErrRunInProgress) {
		return nil, newMCPError(ErrorCodeRunInProgress, "a generation run is already active", nil)
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "generation failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"generated":   true,
		"files_total": stats.FilesTotal,
		"regenerated": stats.Regenerated,
		"unchanged":   stats.Unchanged,
		"failed":      stats.Failed,
		"removed":     stats.Removed,
		"cache_path":  stats.CachePath,
		"duration_ms": stats.Duration.Milliseconds(),
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetDocs handles the get_docs tool invocation
func (s *Server) handleGetDocs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path, err := requirePath(args)
	if err != nil {
		return nil, err
	}

	maxEntries := getIntDefault(args, "max_entries", 200)
	if maxEntries < 1 || maxEntries > 1000 {
		return nil, newMCPError(ErrorCodeInvalidParams, "max_entries must be between 1 and 1000", map[string]interface{}{
			"param": "max_entries",
			"value": maxEntries,
		})
	}

	cachePath, ok := cache.Find(path)
	if !ok {
		return nil, newMCPError(ErrorCodeNotDocumented, "no documentation cache found. Use generate_docs first.", map[string]interface{}{
			"path": path,
		})
	}

	tree, err := cache.Load(cachePath)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to load documentation cache", map[string]interface{}{
			"error": err.Error(),
		})
	}

	subpath := getStringDefault(args, "subpath", "")
	entries := collectEntries(tree, subpath, maxEntries)
	if subpath != "" && len(entries) == 0 {
		return nil, newMCPError(ErrorCodeSubpathUnknown, "subpath has no documented entries", map[string]interface{}{
			"subpath": subpath,
		})
	}

	response := map[string]interface{}{
		"root":       tree.Root,
		"updated_at": tree.UpdatedAt,
		"count":      len(entries),
		"entries":    entries,
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetStatus handles the get_status tool invocation
func (s *Server) handleGetStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path, err := requirePath(args)
	if err != nil {
		return nil, err
	}

	status, err := generator.Inspect(path, s.cfg.Generate.Ignore)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to inspect directory", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"documented": status.Exists,
		"path":       status.Root,
		"statistics": map[string]interface{}{
			"files_total": status.FilesTotal,
			"documented":  status.Documented,
			"stale":       status.Stale,
			"removed":     status.Removed,
		},
	}
	if status.Exists {
		response["cache_path"] = status.CachePath
		response["updated_at"] = status.UpdatedAt
	} else {
		response["message"] = "Directory not documented. Use generate_docs tool to document it."
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// docEntry is the flattened wire shape for one documented file
type docEntry struct {
	Path        string  `json:"path"`
	Description string  `json:"description"`
	JoyScore    float64 `json:"joy_score"`
	Emoji       string  `json:"emoji,omitempty"`
}

// collectEntries flattens a tree into wire entries, optionally filtered
// to a subpath prefix. Traversal order is the tree's deterministic
// sibling order, so truncation at maxEntries is stable.
func collectEntries(tree *types.Tree, subpath string, maxEntries int) []docEntry {
	prefix := strings.Trim(filepath.ToSlash(subpath), "/")

	entries := make([]docEntry, 0)
	tree.WalkFiles(func(e *types.Entry) {
		if len(entries) >= maxEntries {
			return
		}
		if prefix != "" && e.Path != prefix && !strings.HasPrefix(e.Path, prefix+"/") {
			return
		}
		de := docEntry{Path: e.Path}
		if e.Doc != nil {
			de.Description = e.Doc.Description
			de.JoyScore = e.Doc.JoyScore
			de.Emoji = e.Doc.Emoji
		}
		entries = append(entries, de)
	})
	return entries
}

// Helper functions

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// requirePath extracts and validates the mandatory path argument
func requirePath(args map[string]interface{}) (string, error) {
	path, ok := args["path"].(string)
	if !ok || path == "" {
		return "", newMCPError(ErrorCodeInvalidParams, "path parameter is required", map[string]interface{}{
			"param":  "path",
			"reason": "missing or empty",
		})
	}
	if err := validatePath(path); err != nil {
		return "", newMCPError(ErrorCodeInvalidParams, "invalid path", map[string]interface{}{
			"param":  "path",
			"reason": err.Error(),
		})
	}
	return path, nil
}

// validatePath checks if a path is an accessible directory
func validatePath(path string) error {
	if !filepath.IsAbs(path) {
		return ErrPathNotAbsolute
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return ErrPathNotFound
	}
	if err != nil {
		return ErrPathNotReadable
	}
	if !info.IsDir() {
		return ErrNotDirectory
	}

	f, err := os.Open(path)
	if err != nil {
		return ErrPathNotReadable
	}
	_ = f.Close()
	return nil
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}

// getStringSlice extracts a string array parameter
func getStringSlice(args map[string]interface{}, key string) []string {
	raw, ok := args[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Validation helpers

var (
	ErrPathNotAbsolute = errors.New("path must be absolute")
	ErrPathNotFound    = errors.New("path does not exist")
	ErrPathNotReadable = errors.New("path is not readable")
	ErrNotDirectory    = errors.New("path is not a directory")
)
