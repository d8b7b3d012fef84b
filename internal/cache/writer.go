package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dshills/dirdocs/pkg/types"
)

// WriteTree persists a tree to path with failure-atomic semantics. The
// serialized tree is staged in a temporary file in the same directory,
// synced, then renamed over the previous version, so a concurrent reader or
// a crash mid-write never observes a truncated file. On any failure the
// previous file remains the effective state.
func WriteTree(path string, tree *types.Tree) error {
	data, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return fmt.Errorf("encode tree: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(path), ".dirdocs-tmp-*")
	if err != nil {
		return fmt.Errorf("stage tree: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("stage tree: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync tree: %w", err)
	}
	if err := tmp.Chmod(0644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("stage tree: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("stage tree: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace tree: %w", err)
	}
	return nil
}
