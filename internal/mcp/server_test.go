package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/dirdocs/internal/config"
	"github.com/dshills/dirdocs/internal/enricher"
)

// newTestServer builds a server backed by the offline provider.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.Default()
	cfg.Provider.Name = enricher.ProviderLocal

	s, err := NewServer(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.enr.Close() })
	return s
}

// makeReq builds a mcp.CallToolRequest with the given arguments.
func makeReq(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// resultJSON decodes the text content of a tool result.
func resultJSON(t *testing.T, r *mcp.CallToolResult) map[string]interface{} {
	t.Helper()
	require.NotNil(t, r)
	require.NotEmpty(t, r.Content)
	tc, ok := r.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(tc.Text), &out))
	return out
}

func seedProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"main.go":       "package main\n",
		"lib/helper.go": "package lib\n",
	}
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func TestHandleGenerateDocs(t *testing.T) {
	s := newTestServer(t)
	root := seedProject(t)
	ctx := context.Background()

	result, err := s.handleGenerateDocs(ctx, makeReq(map[string]interface{}{"path": root}))
	require.NoError(t, err)

	resp := resultJSON(t, result)
	assert.Equal(t, true, resp["generated"])
	assert.Equal(t, float64(2), resp["files_total"])
	assert.Equal(t, float64(2), resp["regenerated"])
	assert.FileExists(t, filepath.Join(root, ".dirdocs.json"))

	// Second run is incremental
	result, err = s.handleGenerateDocs(ctx, makeReq(map[string]interface{}{"path": root}))
	require.NoError(t, err)
	resp = resultJSON(t, result)
	assert.Equal(t, float64(0), resp["regenerated"])
	assert.Equal(t, float64(2), resp["unchanged"])

	// Force rebuilds everything
	result, err = s.handleGenerateDocs(ctx, makeReq(map[string]interface{}{"path": root, "force": true}))
	require.NoError(t, err)
	resp = resultJSON(t, result)
	assert.Equal(t, float64(2), resp["regenerated"])
}

func TestHandleGenerateDocs_InvalidParams(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, err := s.handleGenerateDocs(ctx, makeReq(map[string]interface{}{}))
	require.Error(t, err)
	var mcpErr *MCPError
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, ErrorCodeInvalidParams, mcpErr.Code)

	_, err = s.handleGenerateDocs(ctx, makeReq(map[string]interface{}{"path": "relative/path"}))
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, ErrorCodeInvalidParams, mcpErr.Code)

	_, err = s.handleGenerateDocs(ctx, makeReq(map[string]interface{}{"path": filepath.Join(t.TempDir(), "gone")}))
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, ErrorCodeInvalidParams, mcpErr.Code)
}

func TestHandleGetDocs(t *testing.T) {
	s := newTestServer(t)
	root := seedProject(t)
	ctx := context.Background()

	// Not documented yet
	_, err := s.handleGetDocs(ctx, makeReq(map[string]interface{}{"path": root}))
	var mcpErr *MCPError
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, ErrorCodeNotDocumented, mcpErr.Code)

	_, err = s.handleGenerateDocs(ctx, makeReq(map[string]interface{}{"path": root}))
	require.NoError(t, err)

	result, err := s.handleGetDocs(ctx, makeReq(map[string]interface{}{"path": root}))
	require.NoError(t, err)
	resp := resultJSON(t, result)
	assert.Equal(t, float64(2), resp["count"])

	entries, ok := resp["entries"].([]interface{})
	require.True(t, ok)
	require.Len(t, entries, 2)
	first := entries[0].(map[string]interface{})
	assert.NotEmpty(t, first["path"])
	assert.NotEmpty(t, first["description"])

	// Subpath filter
	result, err = s.handleGetDocs(ctx, makeReq(map[string]interface{}{"path": root, "subpath": "lib"}))
	require.NoError(t, err)
	resp = resultJSON(t, result)
	assert.Equal(t, float64(1), resp["count"])

	// Unknown subpath
	_, err = s.handleGetDocs(ctx, makeReq(map[string]interface{}{"path": root, "subpath": "no/such/dir"}))
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, ErrorCodeSubpathUnknown, mcpErr.Code)

	// max_entries bounds
	_, err = s.handleGetDocs(ctx, makeReq(map[string]interface{}{"path": root, "max_entries": float64(0)}))
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, ErrorCodeInvalidParams, mcpErr.Code)

	result, err = s.handleGetDocs(ctx, makeReq(map[string]interface{}{"path": root, "max_entries": float64(1)}))
	require.NoError(t, err)
	resp = resultJSON(t, result)
	assert.Equal(t, float64(1), resp["count"])
}

func TestHandleGetStatus(t *testing.T) {
	s := newTestServer(t)
	root := seedProject(t)
	ctx := context.Background()

	result, err := s.handleGetStatus(ctx, makeReq(map[string]interface{}{"path": root}))
	require.NoError(t, err)
	resp := resultJSON(t, result)
	assert.Equal(t, false, resp["documented"])
	stats := resp["statistics"].(map[string]interface{})
	assert.Equal(t, float64(2), stats["files_total"])
	assert.Equal(t, float64(2), stats["stale"])

	_, err = s.handleGenerateDocs(ctx, makeReq(map[string]interface{}{"path": root}))
	require.NoError(t, err)

	result, err = s.handleGetStatus(ctx, makeReq(map[string]interface{}{"path": root}))
	require.NoError(t, err)
	resp = resultJSON(t, result)
	assert.Equal(t, true, resp["documented"])
	stats = resp["statistics"].(map[string]interface{})
	assert.Equal(t, float64(2), stats["documented"])
	assert.Equal(t, float64(0), stats["stale"])
}

func TestNewServer_Defaults(t *testing.T) {
	t.Setenv(enricher.EnvProvider, "local")
	s, err := NewServer(nil, nil)
	require.NoError(t, err)
	defer s.enr.Close()

	assert.NotNil(t, s.mcp)
	assert.NotNil(t, s.gen)
	assert.Equal(t, enricher.ProviderLocal, s.enr.Provider())
}
