package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/dirdocs/pkg/types"
)

func sampleTree(root string, paths ...string) *types.Tree {
	_ = types.NewTree(root)
	flat := make(map[string]*types.Entry, len(paths))
	for _, p := range paths {
		flat[p] = types.NewFileEntry(p, "hash-"+p, &types.Doc{Description: "doc for " + p, JoyScore: 5, Emoji: "📄"}, time.Now().UTC())
	}
	return BuildTree(root, flat, time.Now().UTC())
}

func TestWriteAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := PathIn(dir)
	tree := sampleTree(".", "a.go", "sub/b.go", "sub/deep/c.go")

	require.NoError(t, WriteTree(path, tree))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, tree.Root, loaded.Root)
	assert.Equal(t, 3, loaded.FileCount())

	idx := Index(loaded)
	require.Contains(t, idx, "sub/deep/c.go")
	assert.Equal(t, "hash-sub/deep/c.go", idx["sub/deep/c.go"].Hash)
	assert.Equal(t, "doc for sub/b.go", idx["sub/b.go"].Doc.Description)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), FileName))
	assert.Error(t, err)
}

func TestLoad_Corrupt(t *testing.T) {
	dir := t.TempDir()
	path := PathIn(dir)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadOrEmpty_FallsBack(t *testing.T) {
	dir := t.TempDir()

	tree := LoadOrEmpty(dir, "myroot")
	assert.Equal(t, "myroot", tree.Root)
	assert.Empty(t, tree.Entries)

	// Corrupt files also fall back to an empty tree
	require.NoError(t, os.WriteFile(PathIn(dir), []byte("garbage"), 0644))
	tree = LoadOrEmpty(dir, "myroot")
	assert.Empty(t, tree.Entries)
}

func TestFind_AcceptsLegacyName(t *testing.T) {
	dir := t.TempDir()
	legacy := filepath.Join(dir, ".dirdocs.nu")
	require.NoError(t, os.WriteFile(legacy, []byte("{}"), 0644))

	found, ok := Find(dir)
	require.True(t, ok)
	assert.Equal(t, legacy, found)

	// Canonical name wins over legacy when both exist
	require.NoError(t, os.WriteFile(PathIn(dir), []byte("{}"), 0644))
	found, ok = Find(dir)
	require.True(t, ok)
	assert.Equal(t, PathIn(dir), found)
}

func TestFindChildCacheDirs(t *testing.T) {
	root := t.TempDir()
	mk := func(rel string, withCache bool) {
		dir := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(dir, 0755))
		if withCache {
			require.NoError(t, WriteTree(PathIn(dir), sampleTree(".", "x.go")))
		}
	}

	mk("plain", false)
	mk("lib", true)
	mk("lib/nested", true) // shadowed: traversal stops at lib
	mk("tools/gen", true)

	// Root's own cache file must not be reported as a child
	require.NoError(t, WriteTree(PathIn(root), sampleTree(".", "root.go")))

	dirs := FindChildCacheDirs(root)
	assert.Equal(t, []string{"lib", "tools/gen"}, dirs)
}

func TestLoadSubtrees(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "svc")
	require.NoError(t, os.MkdirAll(sub, 0755))
	require.NoError(t, WriteTree(PathIn(sub), sampleTree(".", "handler.go")))

	subs := LoadSubtrees(root)
	require.Len(t, subs, 1)
	assert.Equal(t, "svc", subs[0].Rel)

	rebased := Rebase(subs[0])
	require.Contains(t, rebased, "svc/handler.go")
	assert.Equal(t, "svc/handler.go", rebased["svc/handler.go"].Path)
}
