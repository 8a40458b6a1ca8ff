// Package vcs wraps the git executable for the terminal version-control
// actions of a scaffolding run.
package vcs

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Git provides the git operations used during scaffolding.
type Git interface {
	// Run executes git with args inside dir, blocking until it exits.
	Run(ctx context.Context, dir string, args ...string) error

	// IsRepo reports whether dir, or the closest existing ancestor of dir,
	// is inside a git work tree.
	IsRepo(dir string) bool

	// Config returns the value of a git config key, or "" when unset.
	Config(ctx context.Context, key string) string

	// Commit records all staged changes in dir. who is used only where git
	// has no identity of its own configured.
	Commit(ctx context.Context, dir, message string, who Identity) error
}

// Identity is a commit author.
type Identity struct {
	Name  string
	Email string
}

// ExecGit implements Git by running the git binary.
type ExecGit struct {
	// Binary is the executable name or path; "git" when empty.
	Binary string
}

// NewExecGit creates an ExecGit using the git binary found on PATH.
func NewExecGit() *ExecGit {
	return &ExecGit{Binary: "git"}
}

func (g *ExecGit) binary() string {
	if g.Binary == "" {
		return "git"
	}
	return g.Binary
}

// CommandError is a failed git invocation. Error is a single line; the
// combined output of git is kept in Output.
type CommandError struct {
	Args   []string
	Output string
	Err    error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("git %s failed: %v", strings.Join(e.Args, " "), e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

// Detail returns what git printed before failing.
func (e *CommandError) Detail() string { return e.Output }

func commandError(args []string, output []byte, err error) error {
	return &CommandError{Args: args, Output: strings.TrimSpace(string(output)), Err: err}
}

// Run executes git with args inside dir.
func (g *ExecGit) Run(ctx context.Context, dir string, args ...string) error {
	cmd := exec.CommandContext(ctx, g.binary(), args...)
	cmd.Dir = dir
	if output, err := cmd.CombinedOutput(); err != nil {
		return commandError(args, output, err)
	}
	return nil
}

// Commit runs git commit inside dir.
func (g *ExecGit) Commit(ctx context.Context, dir, message string, who Identity) error {
	cmd := exec.CommandContext(ctx, g.binary(), "commit", "-m", message)
	cmd.Dir = dir
	cmd.Env = os.Environ()
	if who.Name != "" && g.Config(ctx, "user.name") == "" {
		cmd.Env = append(cmd.Env, "GIT_AUTHOR_NAME="+who.Name, "GIT_COMMITTER_NAME="+who.Name)
	}
	if who.Email != "" && g.Config(ctx, "user.email") == "" {
		cmd.Env = append(cmd.Env, "GIT_AUTHOR_EMAIL="+who.Email, "GIT_COMMITTER_EMAIL="+who.Email)
	}
	if output, err := cmd.CombinedOutput(); err != nil {
		return commandError([]string{"commit", "-m", message}, output, err)
	}
	return nil
}

// IsRepo walks up from dir looking for a .git entry.
func (g *ExecGit) IsRepo(dir string) bool {
	return discover(dir)
}

// Config returns the value of a git config key.
func (g *ExecGit) Config(ctx context.Context, key string) string {
	cmd := exec.CommandContext(ctx, g.binary(), "config", "--get", key)
	output, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(output))
}

// discover reports whether dir or one of its ancestors holds a .git entry.
// Missing trailing components of dir are skipped so that a project that is
// about to be created resolves the same way as an existing one.
func discover(dir string) bool {
	current, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	for {
		// .git can be a directory or a file (for worktrees/submodules)
		if _, err := os.Stat(filepath.Join(current, ".git")); err == nil {
			return true
		}
		parent := filepath.Dir(current)
		if parent == current {
			// Reached root directory
			return false
		}
		current = parent
	}
}
