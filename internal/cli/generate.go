package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/dirdocs/internal/enricher"
	"github.com/dshills/dirdocs/internal/generator"
)

func RunGenerate(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}

	force, _ := cmd.Flags().GetBool("force")
	ignore, _ := cmd.Flags().GetStringSlice("ignore")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	asJSON, _ := cmd.Flags().GetBool("json")

	logger := setupLogger(cmd)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if concurrency <= 0 {
		concurrency = cfg.Generate.Concurrency
	}

	enr, err := enricher.New(cfg.Enricher())
	if err != nil {
		return fmt.Errorf("failed to initialize enricher: %w", err)
	}
	defer func() { _ = enr.Close() }()

	gen := generator.New(enr, logger)
	stats, err := gen.Run(cmd.Context(), generator.Options{
		Root:         path,
		Force:        force,
		Ignore:       append(ignore, cfg.Generate.Ignore...),
		Concurrency:  concurrency,
		TokenBudget:  cfg.Generate.TokenBudget,
		MaxFileBytes: cfg.Generate.MaxFileBytes,
		MaxChunks:    cfg.Generate.MaxChunks,
	})
	if err != nil {
		return err
	}

	if asJSON {
		return json.NewEncoder(os.Stdout).Encode(stats)
	}

	fmt.Printf("documented %d files (%d regenerated, %d unchanged", stats.FilesTotal, stats.Regenerated, stats.Unchanged)
	if stats.Failed > 0 {
		fmt.Printf(", %d failed", stats.Failed)
	}
	if stats.Removed > 0 {
		fmt.Printf(", %d removed", stats.Removed)
	}
	fmt.Printf(") in %s\n", stats.Duration.Round(time.Millisecond))
	fmt.Printf("cache: %s\n", stats.CachePath)
	return nil
}
