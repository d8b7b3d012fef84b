package cli

import (
	"github.com/spf13/cobra"

	"github.com/dshills/dirdocs/internal/mcp"
)

func RunServe(cmd *cobra.Command, args []string) error {
	logger := setupLogger(cmd)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	server, err := mcp.NewServer(cfg, logger)
	if err != nil {
		return err
	}
	return server.Serve(cmd.Context())
}
