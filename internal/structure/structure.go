// Package structure models the in-memory tree of a project being generated.
//
// A Structure maps normalized, slash-separated relative paths to leaves.
// Directories are implied by path prefixes and never stored. Structures are
// immutable: every method that changes content returns a new Structure and
// leaves the receiver untouched, so pipeline actions can hand state along
// without aliasing.
package structure

import (
	"fmt"
	"maps"
	"path"
	"slices"
	"strings"
)

// FileOp tells the writer how to treat a path that already exists on disk.
type FileOp int

const (
	// OpCreate is a plain proposal: written when missing or with force.
	OpCreate FileOp = iota
	// OpPreserve keeps the first proposal during merges; on disk it is
	// written only when missing or with force.
	OpPreserve
	// OpManaged marks files that update mode regenerates in place.
	OpManaged
)

// String returns a human-readable name for the op.
func (op FileOp) String() string {
	switch op {
	case OpCreate:
		return "create"
	case OpPreserve:
		return "preserve"
	case OpManaged:
		return "managed"
	default:
		return "unknown"
	}
}

// Leaf is the content proposed for one file.
type Leaf struct {
	Content string
	Op      FileOp
}

// Structure is an immutable set of file proposals.
type Structure struct {
	files map[string]Leaf
}

// Empty returns a Structure with no files.
func Empty() Structure {
	return Structure{}
}

// NormalizePath cleans a relative path into its canonical slash form.
// Absolute paths, the root itself and paths escaping the root are rejected.
func NormalizePath(p string) (string, error) {
	p = strings.ReplaceAll(p, "\\", "/")
	if strings.HasPrefix(p, "/") {
		return "", fmt.Errorf("invalid path: must be relative, got absolute path %q", p)
	}
	cleaned := path.Clean(p)
	if cleaned == "" || cleaned == "." {
		return "", fmt.Errorf("invalid path: empty or current directory")
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("invalid path: path traversal not allowed in %q", p)
	}
	return cleaned, nil
}

// With returns a copy of s with the leaf at p replaced unconditionally.
func (s Structure) With(p string, leaf Leaf) (Structure, error) {
	key, err := NormalizePath(p)
	if err != nil {
		return s, err
	}
	files := maps.Clone(s.files)
	if files == nil {
		files = make(map[string]Leaf)
	}
	files[key] = leaf
	return Structure{files: files}, nil
}

// Without returns a copy of s with the given paths removed. Unknown paths
// are ignored.
func (s Structure) Without(paths ...string) Structure {
	files := maps.Clone(s.files)
	for _, p := range paths {
		if key, err := NormalizePath(p); err == nil {
			delete(files, key)
		}
	}
	return Structure{files: files}
}

// Get returns the leaf stored at p.
func (s Structure) Get(p string) (Leaf, bool) {
	key, err := NormalizePath(p)
	if err != nil {
		return Leaf{}, false
	}
	leaf, ok := s.files[key]
	return leaf, ok
}

// Paths returns all file paths in lexical order.
func (s Structure) Paths() []string {
	// Equivalent of slices.Sorted(maps.Keys(s.files)); those iterator
	// helpers need Go 1.23 and this module targets Go 1.21.
	paths := make([]string, 0, len(s.files))
	for p := range s.files {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths
}

// Len returns the number of files.
func (s Structure) Len() int { return len(s.files) }

// Merge folds proposal into acc. For each path the proposal wins, unless
// the accumulated leaf is OpPreserve, in which case the accumulated leaf is
// kept and the proposal is discarded for that path only. Neither input is
// modified.
func Merge(acc, proposal Structure) Structure {
	files := maps.Clone(acc.files)
	if files == nil {
		files = make(map[string]Leaf, len(proposal.files))
	}
	for p, leaf := range proposal.files {
		if prev, ok := files[p]; ok && prev.Op == OpPreserve {
			continue
		}
		files[p] = leaf
	}
	return Structure{files: files}
}

// Builder collects proposals for one action before they are merged.
// Errors are sticky: the first invalid path is reported by Build.
type Builder struct {
	files map[string]Leaf
	err   error
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{files: make(map[string]Leaf)}
}

// Add proposes a file with the given op. A later Add for the same path
// replaces the earlier one.
func (b *Builder) Add(p, content string, op FileOp) *Builder {
	if b.err != nil {
		return b
	}
	key, err := NormalizePath(p)
	if err != nil {
		b.err = err
		return b
	}
	b.files[key] = Leaf{Content: content, Op: op}
	return b
}

// Build returns the collected proposal. The Builder must not be reused.
func (b *Builder) Build() (Structure, error) {
	if b.err != nil {
		return Structure{}, b.err
	}
	return Structure{files: b.files}, nil
}
