package diff

import (
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/dirdocs/internal/hasher"
	"github.com/dshills/dirdocs/internal/walker"
	"github.com/dshills/dirdocs/pkg/types"
)

// fakeHash hashes by path name so tests control digests without touching disk
func fakeHash(contents map[string]string) HashFunc {
	return func(abs string) (string, error) {
		content, ok := contents[abs]
		if !ok {
			return "", errors.New("unreadable")
		}
		return hasher.HashBytes([]byte(content)), nil
	}
}

func entry(path, content, desc string) *types.Entry {
	return types.NewFileEntry(path, hasher.HashBytes([]byte(content)), &types.Doc{Description: desc}, time.Now().UTC())
}

func dirtyPaths(c *Classification) []string {
	out := make([]string, 0, len(c.Dirty))
	for _, d := range c.Dirty {
		out = append(out, d.File.Path)
	}
	sort.Strings(out)
	return out
}

func TestClassify_NewFile(t *testing.T) {
	files := []walker.File{{Path: "a.go", Abs: "/p/a.go"}}
	hash := fakeHash(map[string]string{"/p/a.go": "package a"})

	c := Classify(files, map[string]*types.Entry{}, false, hash)

	require.Len(t, c.Dirty, 1)
	assert.Equal(t, ReasonNew, c.Dirty[0].Reason)
	assert.Empty(t, c.Clean)
	assert.Empty(t, c.Removed)
}

func TestClassify_CleanReusedVerbatim(t *testing.T) {
	files := []walker.File{{Path: "a.go", Abs: "/p/a.go"}}
	hash := fakeHash(map[string]string{"/p/a.go": "package a"})
	index := map[string]*types.Entry{"a.go": entry("a.go", "package a", "does things")}

	c := Classify(files, index, false, hash)

	assert.Empty(t, c.Dirty)
	require.Len(t, c.Clean, 1)
	assert.Equal(t, "does things", c.Clean[0].Doc.Description)
	assert.Equal(t, index["a.go"].Hash, c.Clean[0].Hash)
}

func TestClassify_ModifiedFile(t *testing.T) {
	files := []walker.File{{Path: "a.go", Abs: "/p/a.go"}}
	hash := fakeHash(map[string]string{"/p/a.go": "package a // edited"})
	index := map[string]*types.Entry{"a.go": entry("a.go", "package a", "does things")}

	c := Classify(files, index, false, hash)

	require.Len(t, c.Dirty, 1)
	assert.Equal(t, ReasonModified, c.Dirty[0].Reason)
}

func TestClassify_EmptyDocIsDirty(t *testing.T) {
	files := []walker.File{{Path: "a.go", Abs: "/p/a.go"}}
	hash := fakeHash(map[string]string{"/p/a.go": "package a"})
	index := map[string]*types.Entry{"a.go": entry("a.go", "package a", "")}

	c := Classify(files, index, false, hash)

	require.Len(t, c.Dirty, 1)
	assert.Equal(t, ReasonEmptyDoc, c.Dirty[0].Reason)
}

func TestClassify_ForceMarksEverythingDirty(t *testing.T) {
	files := []walker.File{
		{Path: "a.go", Abs: "/p/a.go"},
		{Path: "b.go", Abs: "/p/b.go"},
	}
	hash := fakeHash(map[string]string{"/p/a.go": "package a", "/p/b.go": "package b"})
	index := map[string]*types.Entry{
		"a.go": entry("a.go", "package a", "cached"),
		"b.go": entry("b.go", "package b", "cached"),
	}

	c := Classify(files, index, true, hash)

	assert.Empty(t, c.Clean)
	assert.Equal(t, []string{"a.go", "b.go"}, dirtyPaths(c))
	for _, d := range c.Dirty {
		assert.Equal(t, ReasonForced, d.Reason)
	}
}

func TestClassify_RemovedPaths(t *testing.T) {
	files := []walker.File{{Path: "kept.go", Abs: "/p/kept.go"}}
	hash := fakeHash(map[string]string{"/p/kept.go": "package kept"})
	index := map[string]*types.Entry{
		"kept.go": entry("kept.go", "package kept", "desc"),
		"gone.go": entry("gone.go", "package gone", "desc"),
	}

	c := Classify(files, index, false, hash)

	assert.Equal(t, []string{"gone.go"}, c.Removed)
	require.Len(t, c.Clean, 1)
	assert.Equal(t, "kept.go", c.Clean[0].Path)
}

func TestClassify_UnreadableSkipped(t *testing.T) {
	files := []walker.File{{Path: "locked.go", Abs: "/p/locked.go"}}
	hash := fakeHash(map[string]string{})

	c := Classify(files, map[string]*types.Entry{}, false, hash)

	assert.Empty(t, c.Dirty)
	assert.Equal(t, []string{"locked.go"}, c.Skipped)
}

func TestClassify_ExactlyOneAttemptPerChange(t *testing.T) {
	// A changed file appears exactly once in the dirty set
	files := []walker.File{{Path: "a.go", Abs: "/p/a.go"}}
	hash := fakeHash(map[string]string{"/p/a.go": "v2"})
	index := map[string]*types.Entry{"a.go": entry("a.go", "v1", "old")}

	c := Classify(files, index, false, hash)
	assert.Equal(t, []string{"a.go"}, dirtyPaths(c))
}
