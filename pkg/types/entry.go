package types

import (
	"errors"
	"path"
	"sort"
	"time"
)

// EntryKind discriminates tree nodes in the persisted cache file
type EntryKind string

const (
	KindFile EntryKind = "file"
	KindDir  EntryKind = "dir"
)

// Entry is a node in the persisted documentation tree. File entries carry a
// content hash and a documentation record; directory entries carry children.
// The kind tag keeps the JSON schema stable for downstream readers.
type Entry struct {
	Kind      EntryKind `json:"kind"`
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Hash      string    `json:"hash,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
	Doc       *Doc      `json:"doc,omitempty"`
	Entries   []*Entry  `json:"entries,omitempty"`
}

// Tree is the root of a persisted documentation cache, scoped to one
// directory. Subdirectory cache files use the identical schema.
type Tree struct {
	Root      string    `json:"root"`
	UpdatedAt time.Time `json:"updated_at"`
	Entries   []*Entry  `json:"entries"`
}

// NewTree creates an empty tree labeled with the given root path
func NewTree(root string) *Tree {
	return &Tree{
		Root:      root,
		UpdatedAt: time.Now().UTC(),
		Entries:   make([]*Entry, 0),
	}
}

// NewFileEntry creates a file entry for a relative slash-separated path
func NewFileEntry(relPath, hash string, doc *Doc, updatedAt time.Time) *Entry {
	return &Entry{
		Kind:      KindFile,
		Name:      path.Base(relPath),
		Path:      relPath,
		Hash:      hash,
		UpdatedAt: updatedAt,
		Doc:       doc,
	}
}

// IsFile reports whether the entry is a file node
func (e *Entry) IsFile() bool {
	return e.Kind == KindFile
}

// IsDir reports whether the entry is a directory node
func (e *Entry) IsDir() bool {
	return e.Kind == KindDir
}

// Clone returns a deep copy of the entry
func (e *Entry) Clone() *Entry {
	out := *e
	if e.Doc != nil {
		doc := *e.Doc
		out.Doc = &doc
	}
	if e.Entries != nil {
		out.Entries = make([]*Entry, len(e.Entries))
		for i, child := range e.Entries {
			out.Entries[i] = child.Clone()
		}
	}
	return &out
}

// Validate checks structural invariants of a single entry
func (e *Entry) Validate() error {
	if e.Path == "" {
		return errors.New("entry path cannot be empty")
	}
	switch e.Kind {
	case KindFile:
		if e.Hash == "" {
			return errors.New("file entry requires a content hash")
		}
		if len(e.Entries) > 0 {
			return errors.New("file entry cannot have children")
		}
	case KindDir:
		if e.Hash != "" {
			return errors.New("directory entry cannot have a content hash")
		}
	default:
		return errors.New("invalid entry kind")
	}
	return nil
}

// SortEntries orders a sibling slice deterministically: directories first,
// then lexicographic by name. Applied recursively.
func SortEntries(entries []*Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Kind != entries[j].Kind {
			return entries[i].Kind == KindDir
		}
		return entries[i].Name < entries[j].Name
	})
	for _, e := range entries {
		if e.IsDir() {
			SortEntries(e.Entries)
		}
	}
}

// WalkFiles visits every file entry in the tree in depth-first order
func (t *Tree) WalkFiles(fn func(*Entry)) {
	walkFiles(t.Entries, fn)
}

func walkFiles(entries []*Entry, fn func(*Entry)) {
	for _, e := range entries {
		if e.IsFile() {
			fn(e)
			continue
		}
		walkFiles(e.Entries, fn)
	}
}

// FileCount returns the number of file entries in the tree
func (t *Tree) FileCount() int {
	n := 0
	t.WalkFiles(func(*Entry) { n++ })
	return n
}
