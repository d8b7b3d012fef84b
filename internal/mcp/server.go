package mcp

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/dshills/dirdocs/internal/config"
	"github.com/dshills/dirdocs/internal/enricher"
	"github.com/dshills/dirdocs/internal/generator"
)

const (
	// ServerName is the MCP server name
	ServerName = "dirdocs"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
)

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp    *server.MCPServer
	gen    *generator.Generator
	enr    enricher.Enricher
	cfg    *config.Config
	logger *slog.Logger
}

// NewServer creates an MCP server around the configured enrichment
// backend. A nil logger falls back to slog.Default.
func NewServer(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}

	enr, err := enricher.New(cfg.Enricher())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize enricher: %w", err)
	}

	s := &Server{
		mcp:    server.NewMCPServer(ServerName, ServerVersion),
		gen:    generator.New(enr, logger),
		enr:    enr,
		cfg:    cfg,
		logger: logger,
	}
	s.registerTools()
	return s, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown
func (s *Server) Serve(ctx context.Context) error {
	defer func() { _ = s.enr.Close() }()
	s.logger.Info("mcp server starting", "name", ServerName, "provider", s.enr.Provider())
	return server.ServeStdio(s.mcp)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcp.AddTool(generateDocsTool(), s.handleGenerateDocs)
	s.mcp.AddTool(getDocsTool(), s.handleGetDocs)
	s.mcp.AddTool(getStatusTool(), s.handleGetStatus)
}
