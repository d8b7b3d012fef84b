package walker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel string) {
	t.Helper()
	abs := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0755))
	require.NoError(t, os.WriteFile(abs, []byte("content of "+rel), 0644))
}

func paths(files []File) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Path)
	}
	return out
}

func TestWalk_SkipsHiddenAndIgnored(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.go")
	writeFile(t, root, "docs/readme.md")
	writeFile(t, root, ".git/config")
	writeFile(t, root, ".dirdocs.json")
	writeFile(t, root, "node_modules/pkg/index.js")
	writeFile(t, root, "target/out.bin")

	w := NewFS(nil)
	files, err := w.Walk(root)
	require.NoError(t, err)

	got := paths(files)
	assert.ElementsMatch(t, []string{"main.go", "docs/readme.md"}, got)
}

func TestWalk_ExtraRules(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "keep.go")
	writeFile(t, root, "gen/out.go")
	writeFile(t, root, "notes.log")

	w := NewFS([]string{"gen", "*.log"})
	files, err := w.Walk(root)
	require.NoError(t, err)

	assert.Equal(t, []string{"keep.go"}, paths(files))
}

func TestWalk_RelativePathsAreSlashed(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a/b/c.txt")

	files, err := NewFS(nil).Walk(root)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "a/b/c.txt", files[0].Path)
	assert.Equal(t, filepath.Join(root, "a", "b", "c.txt"), files[0].Abs)
}

func TestWalk_MissingRoot(t *testing.T) {
	_, err := NewFS(nil).Walk(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestMatcher_PathPatterns(t *testing.T) {
	m := NewMatcher([]string{"internal/*/testdata"})
	assert.True(t, m.Ignored("internal/cache/testdata", true))
	assert.False(t, m.Ignored("internal/cache/store.go", false))
	assert.True(t, m.Ignored("vendor/lib.go", false))
}
