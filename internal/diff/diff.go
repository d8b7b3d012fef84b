// Package diff classifies candidate files against the loaded cache tree.
//
// For every live path the engine decides whether the cached entry can be
// reused verbatim (clean) or the file needs fresh enrichment (dirty: new,
// modified, or forced). Cached paths no longer present on disk are reported
// as removed. This partition drives all downstream cost: only dirty paths
// incur chunking and enrichment calls.
package diff

import (
	"github.com/dshills/dirdocs/internal/walker"
	"github.com/dshills/dirdocs/pkg/types"
)

// Reason records why a path was classified dirty
type Reason string

const (
	ReasonNew      Reason = "new"
	ReasonModified Reason = "modified"
	ReasonForced   Reason = "forced"
	ReasonEmptyDoc Reason = "empty-doc"
)

// Candidate is a dirty file with its freshly computed content hash
type Candidate struct {
	File   walker.File
	Hash   string
	Reason Reason
}

// Classification partitions the live file set against the cache index
type Classification struct {
	// Clean entries are reused verbatim, hash and doc untouched
	Clean []*types.Entry
	// Dirty files need chunking and enrichment this run
	Dirty []Candidate
	// Removed paths were cached but no longer exist on disk
	Removed []string
	// Skipped paths could not be hashed (unreadable); logged and dropped
	Skipped []string
}

// HashFunc computes the digest for an absolute path
type HashFunc func(abs string) (string, error)

// Classify runs the dirtiness decision for every live file.
//
// Force marks every live file dirty regardless of cache state. Otherwise a
// file is dirty when the index has no entry for its path, the cached hash
// differs from the live hash, or the cached record carries no description.
func Classify(files []walker.File, index map[string]*types.Entry, force bool, hash HashFunc) *Classification {
	out := &Classification{}
	live := make(map[string]bool, len(files))

	for _, f := range files {
		live[f.Path] = true

		digest, err := hash(f.Abs)
		if err != nil {
			out.Skipped = append(out.Skipped, f.Path)
			continue
		}

		prev, cached := index[f.Path]
		switch {
		case force:
			out.Dirty = append(out.Dirty, Candidate{File: f, Hash: digest, Reason: ReasonForced})
		case !cached:
			out.Dirty = append(out.Dirty, Candidate{File: f, Hash: digest, Reason: ReasonNew})
		case prev.Hash != digest:
			out.Dirty = append(out.Dirty, Candidate{File: f, Hash: digest, Reason: ReasonModified})
		case prev.Doc.IsEmpty():
			out.Dirty = append(out.Dirty, Candidate{File: f, Hash: digest, Reason: ReasonEmptyDoc})
		default:
			out.Clean = append(out.Clean, prev.Clone())
		}
	}

	for path := range index {
		if !live[path] {
			out.Removed = append(out.Removed, path)
		}
	}

	return out
}
