// Package walker enumerates candidate files for documentation generation.
//
// The cache engine treats the walker as a black-box sequence producer: it
// consumes the Walker interface and never inspects ignore rules itself. FS is
// the default implementation, skipping hidden directories, cache files, and
// any names or glob patterns the caller excludes.
package walker

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// File is one candidate produced by a walk
type File struct {
	// Path is relative to the walk root, slash-separated, stable across runs
	Path string
	// Abs is the absolute filesystem path
	Abs string
}

// Walker yields candidate files under a root, honoring ignore rules
type Walker interface {
	Walk(root string) ([]File, error)
}

// FS walks the real filesystem with ignore rules applied
type FS struct {
	matcher *Matcher
}

// NewFS creates a filesystem walker. Rules are glob-style ignore patterns;
// bare names match a file or directory anywhere in the tree.
func NewFS(rules []string) *FS {
	return &FS{matcher: NewMatcher(rules)}
}

// Walk enumerates regular files under root. Hidden directories and ignored
// paths are pruned; unreadable subtrees are skipped rather than failing the
// whole walk.
func (w *FS) Walk(root string) ([]File, error) {
	var files []File

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") || w.matcher.Ignored(rel, true) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") || w.matcher.Ignored(rel, false) {
			return nil
		}

		files = append(files, File{Path: rel, Abs: path})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// Stat reports whether a walked file still exists on disk
func Stat(abs string) bool {
	info, err := os.Stat(abs)
	return err == nil && info.Mode().IsRegular()
}
