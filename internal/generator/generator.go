package generator

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dshills/dirdocs/internal/cache"
	"github.com/dshills/dirdocs/internal/chunker"
	"github.com/dshills/dirdocs/internal/diff"
	"github.com/dshills/dirdocs/internal/enricher"
	"github.com/dshills/dirdocs/internal/hasher"
	"github.com/dshills/dirdocs/internal/walker"
	"github.com/dshills/dirdocs/pkg/types"
)

// Defaults applied when options leave fields zero
const (
	DefaultConcurrency  = 4
	DefaultMaxFileBytes = 2 * 1024 * 1024
	DefaultMaxChunks    = 3
)

// Options configures a generation run
type Options struct {
	// Root is the directory to document; resolved to an absolute path
	Root string
	// Force regenerates every file regardless of cache state
	Force bool
	// Ignore holds extra ignore patterns beyond the built-in set
	Ignore []string
	// Concurrency bounds simultaneous enrichment calls
	Concurrency int
	// TokenBudget is the per-chunk token budget for file content
	TokenBudget int
	// MaxFileBytes caps how much of a file is read for enrichment
	MaxFileBytes int64
	// MaxChunks caps how many chunks of a large file reach the prompt;
	// negative keeps every chunk
	MaxChunks int
}

// Stats summarizes what a run did
type Stats struct {
	FilesTotal  int           `json:"files_total"`
	Unchanged   int           `json:"unchanged"`
	Regenerated int           `json:"regenerated"`
	Failed      int           `json:"failed"`
	Removed     int           `json:"removed"`
	Skipped     int           `json:"skipped"`
	CachePath   string        `json:"cache_path"`
	Duration    time.Duration `json:"duration"`
}

// Generator orchestrates a documentation run: walk, classify, enrich
// under bounded concurrency, merge, and persist atomically.
type Generator struct {
	enr    enricher.Enricher
	walk   walker.Walker
	logger *slog.Logger
	lock   RunLock
}

// New creates a generator around an enrichment backend. A nil logger
// falls back to slog.Default.
func New(enr enricher.Enricher, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		enr:    enr,
		logger: logger,
	}
}

// Run executes one generation pass over opts.Root. Only one run may be
// active per Generator; concurrent callers get types.ErrRunInProgress.
//
// Enrichment failures never fail the run: the affected files keep their
// previous entries and are retried next time. The run errors only when
// the root cannot be walked or the result cannot be persisted.
func (g *Generator) Run(ctx context.Context, opts Options) (*Stats, error) {
	if !g.lock.TryAcquire() {
		return nil, types.ErrRunInProgress
	}
	defer g.lock.Release()

	start := time.Now()
	applyDefaults(&opts)

	root, label, err := resolveRoot(opts.Root)
	if err != nil {
		return nil, err
	}
	g.logger.Info("generation starting", "root", root, "force", opts.Force)

	// Previous state: the root cache plus any caches owned by nested
	// directories, rebased into root-relative paths.
	prev := loadPrevious(root, label)
	parentIdx := cache.Index(prev)
	subtrees := cache.LoadSubtrees(root)

	// Dirtiness decisions see the freshest cached entry for each path,
	// so a newer subtree cache shadows a stale parent entry.
	diffIdx := make(map[string]*types.Entry, len(parentIdx))
	for p, e := range parentIdx {
		diffIdx[p] = e
	}
	for _, sub := range subtrees {
		for p, e := range cache.Rebase(sub) {
			diffIdx[p] = e
		}
	}

	w := g.walk
	if w == nil {
		w = walker.NewFS(opts.Ignore)
	}
	files, err := w.Walk(root)
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	cls := diff.Classify(files, diffIdx, opts.Force, hasher.HashFile)
	for _, path := range cls.Skipped {
		g.logger.Warn("file unreadable, keeping previous entry", "path", path)
	}
	g.logger.Info("classified files",
		"total", len(files), "clean", len(cls.Clean), "dirty", len(cls.Dirty),
		"removed", len(cls.Removed), "skipped", len(cls.Skipped))

	produced := make(map[string]*types.Entry, len(cls.Dirty))
	var mu sync.Mutex
	failed := 0

	sem := make(chan struct{}, opts.Concurrency)
	eg, gctx := errgroup.WithContext(ctx)
	now := time.Now().UTC()

	for _, cand := range cls.Dirty {
		eg.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case sem <- struct{}{}:
			}
			defer func() { <-sem }()

			doc, err := g.describe(gctx, cand, opts)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				g.logger.Warn("enrichment failed, keeping previous entry",
					"path", cand.File.Path, "reason", cand.Reason, "error", err)
				mu.Lock()
				failed++
				mu.Unlock()
				return nil
			}

			mu.Lock()
			produced[cand.File.Path] = types.NewFileEntry(cand.File.Path, cand.Hash, doc, now)
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	live := make(map[string]bool, len(files))
	for _, f := range files {
		live[f.Path] = true
	}

	merged := cache.Merge(parentIdx, subtrees, cls.Clean, produced, live)
	tree := cache.BuildTree(label, merged, now)

	cachePath := cache.PathIn(root)
	if err := cache.WriteTree(cachePath, tree); err != nil {
		return nil, fmt.Errorf("persist cache: %w", err)
	}

	stats := &Stats{
		FilesTotal:  len(files),
		Unchanged:   len(cls.Clean),
		Regenerated: len(produced),
		Failed:      failed,
		Removed:     len(cls.Removed),
		Skipped:     len(cls.Skipped),
		CachePath:   cachePath,
		Duration:    time.Since(start),
	}
	g.logger.Info("generation finished",
		"regenerated", stats.Regenerated, "unchanged", stats.Unchanged,
		"failed", stats.Failed, "removed", stats.Removed,
		"duration", stats.Duration.Round(time.Millisecond))
	return stats, nil
}

// describe reads one dirty file and asks the backend for a record.
func (g *Generator) describe(ctx context.Context, cand diff.Candidate, opts Options) (*types.Doc, error) {
	info, err := os.Stat(cand.File.Abs)
	if err != nil {
		return nil, fmt.Errorf("stat: %w", err)
	}

	content, err := readHead(cand.File.Abs, opts.MaxFileBytes)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	req := enricher.Request{
		Path:     cand.File.Path,
		Filename: filepath.Base(cand.File.Path),
		Filetype: filetypeOf(cand.File.Path),
		MimeType: mimeOf(cand.File.Path),
		Size:     info.Size(),
		Hash:     cand.Hash,
	}

	if len(content) == 0 || !hasher.IsProbablyText(content) {
		req.Binary = true
	} else {
		chunks := chunker.New(opts.TokenBudget).Chunk(string(content))
		for _, c := range chunker.Excerpt(chunks, opts.MaxChunks) {
			req.Excerpt = append(req.Excerpt, c.Content)
		}
	}

	return g.enr.Describe(ctx, req)
}

// Status reports the cache state for a root without touching a backend.
type Status struct {
	Root       string    `json:"root"`
	CachePath  string    `json:"cache_path,omitempty"`
	Exists     bool      `json:"exists"`
	UpdatedAt  time.Time `json:"updated_at,omitempty"`
	FilesTotal int       `json:"files_total"`
	Documented int       `json:"documented"`
	Stale      int       `json:"stale"`
	Removed    int       `json:"removed"`
}

// Inspect classifies the tree under root against its cache and reports
// how much of it is documented and current. No enrichment happens.
func Inspect(root string, ignore []string) (*Status, error) {
	abs, label, err := resolveRoot(root)
	if err != nil {
		return nil, err
	}

	st := &Status{Root: abs}
	if path, ok := cache.Find(abs); ok {
		st.Exists = true
		st.CachePath = path
	}

	prev := loadPrevious(abs, label)
	st.UpdatedAt = prev.UpdatedAt

	files, err := walker.NewFS(ignore).Walk(abs)
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", abs, err)
	}

	cls := diff.Classify(files, cache.Index(prev), false, hasher.HashFile)
	st.FilesTotal = len(files)
	st.Documented = len(cls.Clean)
	st.Stale = len(cls.Dirty)
	st.Removed = len(cls.Removed)
	return st, nil
}

func applyDefaults(opts *Options) {
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.MaxFileBytes <= 0 {
		opts.MaxFileBytes = DefaultMaxFileBytes
	}
	if opts.TokenBudget <= 0 {
		opts.TokenBudget = chunker.DefaultBudget
	}
	if opts.MaxChunks == 0 {
		opts.MaxChunks = DefaultMaxChunks
	}
}

// resolveRoot returns the absolute root and its display label, the
// root's path relative to the working directory when that is shorter.
func resolveRoot(root string) (abs, label string, err error) {
	if root == "" {
		root = "."
	}
	abs, err = filepath.Abs(root)
	if err != nil {
		return "", "", fmt.Errorf("resolve root %s: %w", root, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	label = "."
	if cwd, err := os.Getwd(); err == nil {
		if rel, err := filepath.Rel(cwd, abs); err == nil && rel != "" {
			label = filepath.ToSlash(rel)
		}
	}
	return abs, label, nil
}

func loadPrevious(root, label string) *types.Tree {
	if path, ok := cache.Find(root); ok {
		if tree, err := cache.Load(path); err == nil {
			return tree
		}
	}
	return types.NewTree(label)
}

// readHead reads up to limit bytes of a file. Content beyond the limit
// never reaches chunking; the hash still covers the whole file.
func readHead(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	return io.ReadAll(io.LimitReader(f, limit))
}

func filetypeOf(path string) string {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "none"
	}
	return strings.ToLower(ext)
}

func mimeOf(path string) string {
	if mt := mime.TypeByExtension(filepath.Ext(path)); mt != "" {
		return mt
	}
	return "application/octet-stream"
}
