package scaffold

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agentx-labs/putup/internal/fsops"
	"github.com/agentx-labs/putup/internal/options"
	"github.com/agentx-labs/putup/internal/pipeline"
	"github.com/agentx-labs/putup/internal/report"
	"github.com/agentx-labs/putup/internal/vcs"
)

const testVersion = "0.4.0"

// run executes the base plan against a fresh report and recording git.
func run(t *testing.T, o options.Options, git *vcs.Recorder) (*report.Report, pipeline.State, error) {
	t.Helper()
	plan, err := pipeline.BuildPlan(BaseActions(Defaults{}), nil)
	if err != nil {
		t.Fatalf("BuildPlan() error: %v", err)
	}
	rep := report.New()
	env := pipeline.Env{Report: rep, FS: fsops.NewRealFS(), Git: git, Version: testVersion}
	st, err := pipeline.Run(context.Background(), plan, env, o)
	return rep, st, err
}

func projectOpts(t *testing.T) options.Options {
	t.Helper()
	return options.Options{Project: filepath.Join(t.TempDir(), "my-project")}
}

func assertContains(t *testing.T, content, substr string) {
	t.Helper()
	if !strings.Contains(content, substr) {
		t.Errorf("expected content to contain %q, got:\n%s", substr, content)
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

// effects returns the create/run subjects of rep with the project root
// stripped, so reports of different roots compare equal.
func effects(rep *report.Report, root string) map[string]bool {
	out := make(map[string]bool)
	prefix := filepath.ToSlash(root)
	for _, e := range rep.Effects() {
		out[string(e.Kind)+" "+strings.TrimPrefix(e.Subject, prefix)] = true
	}
	return out
}
