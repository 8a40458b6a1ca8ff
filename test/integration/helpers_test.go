//go:build integration

package integration_test

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agentx-labs/putup/internal/cli"
)

// testEnv holds the isolated directories of one test.
type testEnv struct {
	HomeDir   string // HOME, also the git global config location
	ConfigDir string // PUTUP_CONFIG_DIR
	WorkDir   string // parent of generated projects
}

// setupTestEnv creates isolated temp directories and sets environment
// variables so neither putup nor git reads the real user configuration.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	env := &testEnv{
		HomeDir:   t.TempDir(),
		ConfigDir: t.TempDir(),
		WorkDir:   t.TempDir(),
	}
	t.Setenv("HOME", env.HomeDir)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("APPDATA", "")
	t.Setenv("PUTUP_CONFIG_DIR", env.ConfigDir)
	t.Setenv("PUTUP_PROFILE", "")
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("GIT_CONFIG_GLOBAL", filepath.Join(env.HomeDir, ".gitconfig"))
	return env
}

func (e *testEnv) project(name string) string {
	return filepath.Join(e.WorkDir, name)
}

// putup runs the CLI in-process and returns its stdout and stderr.
func putup(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	app, err := cli.NewApp(cli.BuildInfo{Version: "1.0.0", Commit: "test", Date: "today"})
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	var out, errOut bytes.Buffer
	app.Stdout = &out
	app.Stderr = &errOut
	app.NoColor = true
	err = app.Main(context.Background(), args)
	return out.String(), errOut.String(), err
}

// mustPutup runs the CLI and fails the test on error.
func mustPutup(t *testing.T, args ...string) string {
	t.Helper()
	stdout, stderr, err := putup(t, args...)
	if err != nil {
		t.Fatalf("putup %s: %v\nstderr:\n%s", strings.Join(args, " "), err, stderr)
	}
	return stdout
}

func gitOutput(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return strings.TrimSpace(string(out))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating parent of %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("expected file to exist: %s", path)
	}
}

func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file to not exist: %s", path)
	}
}

func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	if content := readFile(t, path); !strings.Contains(content, substr) {
		t.Errorf("expected %s to contain %q, got:\n%s", path, substr, content)
	}
}

// snapshot returns the content of every regular file under root, keyed by
// slash-separated relative path. The .git directory is skipped.
func snapshot(t *testing.T, root string) map[string]string {
	t.Helper()
	files := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("walking %s: %v", root, err)
	}
	return files
}
