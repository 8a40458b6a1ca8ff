// Package scaffold holds the builtin actions of the generation pipeline:
// defaulting and checking options, defining the project tree from embedded
// templates, writing it to disk, and initializing the git repository.
package scaffold
