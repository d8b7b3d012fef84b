package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/dshills/dirdocs/pkg/types"
)

// FileName is the cache file written at the documented root
const FileName = ".dirdocs.json"

// cacheNames are accepted when reading; earlier names win. The .nu variant
// is the legacy format written before the JSON rename.
var cacheNames = []string{FileName, ".dirdocs.nu"}

// PathIn returns the canonical cache file path for a directory
func PathIn(dir string) string {
	return filepath.Join(dir, FileName)
}

// Find locates an existing cache file in a directory, accepting legacy names
func Find(dir string) (string, bool) {
	for _, name := range cacheNames {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			return p, true
		}
	}
	return "", false
}

// Load reads and parses a persisted tree. Callers treat any error as "no
// usable cache" and fall back to an empty tree; a corrupt cache file costs a
// full regeneration for that scope, never a failed run.
func Load(path string) (*types.Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cache %s: %w", path, err)
	}
	var tree types.Tree
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("parse cache %s: %w", path, err)
	}
	return &tree, nil
}

// LoadOrEmpty loads the cache file in dir, returning an empty tree labeled
// with rootLabel when the file is missing or unreadable.
func LoadOrEmpty(dir, rootLabel string) *types.Tree {
	if path, ok := Find(dir); ok {
		if tree, err := Load(path); err == nil {
			return tree
		}
	}
	return types.NewTree(rootLabel)
}

// FindChildCacheDirs scans below root for directories owning their own cache
// file. Traversal does not descend into a directory once it is found to own
// a cache; its subtree belongs to that cache. The root itself is excluded.
// Returned paths are relative to root, slash-separated, sorted.
func FindChildCacheDirs(root string) []string {
	var out []string
	stack := []string{root}

	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if dir != root {
			if _, ok := Find(dir); ok {
				if rel, err := filepath.Rel(root, dir); err == nil {
					out = append(out, filepath.ToSlash(rel))
				}
				continue
			}
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() {
				stack = append(stack, filepath.Join(dir, e.Name()))
			}
		}
	}

	sort.Strings(out)
	return out
}

// Subtree is an independently generated cache tree owned by a subdirectory,
// identified by its path relative to the parent root.
type Subtree struct {
	Rel  string
	Tree *types.Tree
}

// LoadSubtrees loads every child cache below root
func LoadSubtrees(root string) []Subtree {
	var out []Subtree
	for _, rel := range FindChildCacheDirs(root) {
		dir := filepath.Join(root, filepath.FromSlash(rel))
		path, ok := Find(dir)
		if !ok {
			continue
		}
		tree, err := Load(path)
		if err != nil {
			continue
		}
		out = append(out, Subtree{Rel: rel, Tree: tree})
	}
	return out
}
