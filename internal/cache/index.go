package cache

import (
	"path"

	"github.com/dshills/dirdocs/pkg/types"
)

// Index flattens a tree into a path-keyed map of its file entries. Directory
// nodes are traversed, not indexed; a tree holds at most one entry per path.
func Index(tree *types.Tree) map[string]*types.Entry {
	out := make(map[string]*types.Entry)
	if tree == nil {
		return out
	}
	tree.WalkFiles(func(e *types.Entry) {
		out[e.Path] = e
	})
	return out
}

// Rebase flattens a subdirectory's tree with every path rewritten relative to
// the parent root, so child entries can be looked up and merged by the
// parent run.
func Rebase(sub Subtree) map[string]*types.Entry {
	out := make(map[string]*types.Entry)
	if sub.Tree == nil {
		return out
	}
	sub.Tree.WalkFiles(func(e *types.Entry) {
		rebased := e.Clone()
		rebased.Path = path.Join(sub.Rel, e.Path)
		out[rebased.Path] = rebased
	})
	return out
}
