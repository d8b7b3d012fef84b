package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/dirdocs/internal/config"
)

// NewRootCommand builds the dirdocs command tree.
func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "dirdocs",
		Version: version,
		Short:   "Generate per-file documentation for a directory tree",
		Long: `Dirdocs walks a directory, asks a model to describe each file, and
persists the results in a .dirdocs.json cache at the root.

Runs are incremental: a file is only re-described when its content
changes, so repeated runs over a stable tree cost nothing. Results from
previously documented subdirectories are reused by parent runs.`,
	}

	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.dirdocs/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug|info|warn|error")

	generateCmd := &cobra.Command{
		Use:   "generate [path]",
		Short: "Generate or refresh documentation for a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunGenerate,
	}
	generateCmd.Flags().BoolP("force", "f", false, "Regenerate every file, even if unchanged")
	generateCmd.Flags().StringSliceP("ignore", "i", nil, "Extra directory names or glob patterns to skip")
	generateCmd.Flags().Int("concurrency", 0, "Simultaneous model calls (default from config)")
	generateCmd.Flags().Bool("json", false, "Print machine-readable run summary")

	statusCmd := &cobra.Command{
		Use:   "status [path]",
		Short: "Show documentation coverage without calling a model",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunStatus,
	}
	statusCmd.Flags().Bool("json", false, "Print machine-readable status output")

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Install the default config and prompt template",
		Args:  cobra.NoArgs,
		RunE:  RunInit,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve dirdocs tools over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE:  RunServe,
	}

	rootCmd.AddCommand(generateCmd, statusCmd, initCmd, serveCmd)
	return rootCmd
}

// setupLogger builds the stderr logger from the --log-level flag.
// Stdout stays clean for command output and the MCP transport.
func setupLogger(cmd *cobra.Command) *slog.Logger {
	levelName, _ := cmd.Flags().GetString("log-level")

	var level slog.Level
	switch levelName {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadConfig loads the config named by --config, or the default.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		return config.Load(path)
	}
	return config.LoadDefault()
}
