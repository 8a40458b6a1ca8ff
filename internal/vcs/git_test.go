package vcs

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	repo := filepath.Join(root, "repo")
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0755); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(repo, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		dir  string
		want bool
	}{
		{"repo root", repo, true},
		{"nested dir", nested, true},
		{"not yet created inside repo", filepath.Join(repo, "new-project"), true},
		{"outside", filepath.Join(root, "elsewhere"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := discover(tt.dir); got != tt.want {
				t.Errorf("discover(%q) = %v, want %v", tt.dir, got, tt.want)
			}
		})
	}
}

func TestExecGit_RunInit(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	g := NewExecGit()

	if err := g.Run(context.Background(), dir, "init"); err != nil {
		t.Fatalf("Run(init) error: %v", err)
	}
	if !g.IsRepo(dir) {
		t.Error("expected directory to be a repository after git init")
	}
}

func TestExecGit_InitAddCommit(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	ctx := context.Background()
	g := NewExecGit()

	if err := g.Run(ctx, dir, "init"); err != nil {
		t.Fatalf("Run(init) error: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("hi\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := g.Run(ctx, dir, "add", "README.md"); err != nil {
		t.Fatalf("Run(add) error: %v", err)
	}
	who := Identity{Name: "Test User", Email: "test@example.com"}
	if err := g.Commit(ctx, dir, "Initial commit", who); err != nil {
		t.Fatalf("Commit() error: %v", err)
	}
}

func TestExecGit_RunFailure(t *testing.T) {
	g := &ExecGit{Binary: "definitely-not-a-git-binary"}
	if err := g.Run(context.Background(), t.TempDir(), "init"); err == nil {
		t.Fatal("expected error for missing binary")
	}
}

func TestExecGit_FailureKeepsOutputOutOfMessage(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	err := NewExecGit().Run(context.Background(), t.TempDir(), "no-such-subcommand")
	if err == nil {
		t.Fatal("expected error for unknown subcommand")
	}
	if strings.Contains(err.Error(), "\n") {
		t.Errorf("error message spans lines: %q", err.Error())
	}
	var ce *CommandError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *CommandError, got %T", err)
	}
	if ce.Detail() == "" {
		t.Error("expected git output in Detail()")
	}
}

func TestRecorder(t *testing.T) {
	r := &Recorder{FailOn: "commit"}
	ctx := context.Background()

	if err := r.Run(ctx, "proj", "init"); err != nil {
		t.Fatalf("Run(init) error: %v", err)
	}
	if err := r.Run(ctx, "proj", "commit", "-m", "msg"); err == nil {
		t.Fatal("expected simulated failure")
	}
	if len(r.Commands) != 2 || r.Commands[0] != "git init" {
		t.Errorf("Commands = %v", r.Commands)
	}
}
