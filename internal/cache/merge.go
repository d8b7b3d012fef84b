package cache

import (
	"sort"
	"strings"
	"time"

	"github.com/dshills/dirdocs/pkg/types"
)

// Merge combines the previous parent tree, independently generated subtrees,
// clean carried entries, and freshly produced entries into one flat
// path-keyed map. Layering, lowest precedence first: parent, subtrees,
// carried, produced. Paths absent from the live set are dropped.
//
// Because the parent layer sits underneath, a live file whose enrichment
// failed this run keeps its previous entry untouched; a file that was never
// enriched simply has no entry. The operation is idempotent: merging a
// merged tree with itself and no fresh input reproduces the same map.
func Merge(parent map[string]*types.Entry, subtrees []Subtree, carried []*types.Entry, produced map[string]*types.Entry, live map[string]bool) map[string]*types.Entry {
	out := make(map[string]*types.Entry)

	for p, e := range parent {
		if live[p] {
			out[p] = e.Clone()
		}
	}
	for _, sub := range subtrees {
		for p, e := range Rebase(sub) {
			if live[p] {
				out[p] = e
			}
		}
	}
	for _, e := range carried {
		if live[e.Path] {
			out[e.Path] = e.Clone()
		}
	}
	for p, e := range produced {
		if live[p] {
			out[p] = e.Clone()
		}
	}

	return out
}

// BuildTree folds a flat path-keyed map into a nested tree. Intermediate
// directory entries are created on demand; sibling order is deterministic
// (directories first, then by name) so repeated builds from the same map are
// byte-identical.
func BuildTree(rootLabel string, flat map[string]*types.Entry, now time.Time) *types.Tree {
	tree := &types.Tree{
		Root:      rootLabel,
		UpdatedAt: now,
		Entries:   make([]*types.Entry, 0, len(flat)),
	}

	paths := make([]string, 0, len(flat))
	for p := range flat {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		insert(&tree.Entries, strings.Split(p, "/"), flat[p], now)
	}

	types.SortEntries(tree.Entries)
	return tree
}

func insert(siblings *[]*types.Entry, comps []string, fe *types.Entry, now time.Time) {
	if len(comps) == 1 {
		leaf := fe.Clone()
		leaf.Kind = types.KindFile
		leaf.Name = comps[0]
		*siblings = append(*siblings, leaf)
		return
	}

	name := comps[0]
	for _, sib := range *siblings {
		if sib.IsDir() && sib.Name == name {
			insert(&sib.Entries, comps[1:], fe, now)
			return
		}
	}

	dir := &types.Entry{
		Kind:      types.KindDir,
		Name:      name,
		Path:      dirPath(fe.Path, len(comps)-1),
		UpdatedAt: now,
		Entries:   make([]*types.Entry, 0, 1),
	}
	insert(&dir.Entries, comps[1:], fe, now)
	*siblings = append(*siblings, dir)
}

// dirPath trims the trailing components of a file path, leaving the path of
// the ancestor directory that owns the remaining depth.
func dirPath(filePath string, remaining int) string {
	comps := strings.Split(filePath, "/")
	return strings.Join(comps[:len(comps)-remaining], "/")
}
