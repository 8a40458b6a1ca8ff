package extensions

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"github.com/agentx-labs/putup/internal/fsops"
	"github.com/agentx-labs/putup/internal/options"
	"github.com/agentx-labs/putup/internal/pipeline"
	"github.com/agentx-labs/putup/internal/report"
	"github.com/agentx-labs/putup/internal/scaffold"
	"github.com/agentx-labs/putup/internal/vcs"
)

func activate(t *testing.T, names ...string) []pipeline.Extension {
	t.Helper()
	active, unknown := Active(Builtin(), names)
	if len(unknown) != 0 {
		t.Fatalf("unknown extensions: %v", unknown)
	}
	return active
}

func runWith(t *testing.T, o options.Options, names ...string) (*report.Report, *vcs.Recorder) {
	t.Helper()
	plan, err := pipeline.BuildPlan(scaffold.BaseActions(scaffold.Defaults{}), activate(t, names...))
	if err != nil {
		t.Fatalf("BuildPlan() error: %v", err)
	}
	rep := report.New()
	git := &vcs.Recorder{}
	env := pipeline.Env{Report: rep, FS: fsops.NewRealFS(), Git: git, Version: "0.4.0"}
	o.Extensions = names
	if _, err := pipeline.Run(context.Background(), plan, env, o); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	return rep, git
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func TestBuiltin_NamesAndFlagsAreUnique(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	seen := map[string]bool{}
	for _, e := range Builtin() {
		if seen[e.Name()] {
			t.Errorf("duplicate extension %q", e.Name())
		}
		seen[e.Name()] = true
		e.AugmentCLI(fs) // panics on duplicate flag names
	}
}

func TestActivated(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	for _, e := range Builtin() {
		e.AugmentCLI(fs)
	}
	if err := fs.Parse([]string{"--with-makefile", "--no-git"}); err != nil {
		t.Fatal(err)
	}

	var got []string
	for _, e := range Builtin() {
		if e.Activated(fs) {
			got = append(got, e.Name())
		}
	}
	if !slices.Equal(got, []string{"makefile", "no-git"}) {
		t.Errorf("activated = %v", got)
	}
}

func TestActive_KeepsTableOrder(t *testing.T) {
	active, unknown := Active(Builtin(), []string{"no-git", "ghost", "makefile"})
	if len(active) != 2 || active[0].Name() != "makefile" || active[1].Name() != "no-git" {
		t.Errorf("active = %v", active)
	}
	if !slices.Equal(unknown, []string{"ghost"}) {
		t.Errorf("unknown = %v", unknown)
	}
}

func TestPlan_AllExtensions(t *testing.T) {
	var names []string
	for _, e := range Builtin() {
		names = append(names, e.Name())
	}
	plan, err := pipeline.BuildPlan(scaffold.BaseActions(scaffold.Defaults{}), activate(t, names...))
	if err != nil {
		t.Fatalf("BuildPlan() error: %v", err)
	}

	want := []pipeline.ActionID{
		scaffold.GetDefaultOptionsID,
		scaffold.VerifyOptionsConsistencyID,
		scaffold.DefineStructureID,
		"putup.extensions.no-skeleton:remove_files",
		"putup.extensions.makefile:add_files",
		"putup.extensions.github-actions:add_files",
		"putup.extensions.pre-commit:add_files",
		"putup.extensions.golangci:add_files",
		scaffold.CreateStructureID,
	}
	if got := plan.IDs(); !slices.Equal(got, want) {
		t.Errorf("IDs() = %v\nwant %v", got, want)
	}
	// 5 base + 5 insertions - 1 removal
	if plan.Len() != 9 {
		t.Errorf("Len() = %d, want 9", plan.Len())
	}
}

func TestMakefile(t *testing.T) {
	o := options.Options{Project: filepath.Join(t.TempDir(), "tool"), Extra: map[string]string{FlagMakefileBin: "out"}}
	rep, _ := runWith(t, o, "makefile")

	mk := readFile(t, filepath.Join(o.Project, "Makefile"))
	if !strings.Contains(mk, "BINARY := out/tool") {
		t.Errorf("Makefile missing bin dir:\n%s", mk)
	}
	if gi := readFile(t, filepath.Join(o.Project, ".gitignore")); !strings.Contains(gi, "/out/\n") {
		t.Errorf(".gitignore missing bin dir:\n%s", gi)
	}
	if !rep.Has(report.KindInvoke, "putup.extensions.makefile:add_files") {
		t.Error("missing invoke event")
	}
}

func TestToolingFiles(t *testing.T) {
	tests := []struct {
		ext  string
		path string
		want string
	}{
		{"github-actions", ".github/workflows/ci.yml", "go test -race ./..."},
		{"pre-commit", ".pre-commit-config.yaml", "gofmt"},
		{"golangci", ".golangci.yml", "local-prefixes"},
	}
	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			o := options.Options{Project: filepath.Join(t.TempDir(), "tool")}
			runWith(t, o, tt.ext)
			got := readFile(t, filepath.Join(o.Project, filepath.FromSlash(tt.path)))
			if !strings.Contains(got, tt.want) {
				t.Errorf("%s missing %q:\n%s", tt.path, tt.want, got)
			}
		})
	}
}

func TestNoSkeleton(t *testing.T) {
	o := options.Options{Project: filepath.Join(t.TempDir(), "tool")}
	runWith(t, o, "no-skeleton")

	for _, p := range []string{"cmd/tool/main.go", "internal/tool/tool.go", "internal/tool/tool_test.go"} {
		if _, err := os.Stat(filepath.Join(o.Project, p)); !os.IsNotExist(err) {
			t.Errorf("%s should not exist", p)
		}
	}
	if !strings.Contains(readFile(t, filepath.Join(o.Project, "doc.go")), "package tool") {
		t.Error("doc.go missing package clause")
	}
}

func TestNoGit(t *testing.T) {
	o := options.Options{Project: filepath.Join(t.TempDir(), "tool")}
	rep, git := runWith(t, o, "no-git")

	if len(git.Commands) != 0 || len(rep.Filter(report.KindRun)) != 0 {
		t.Errorf("no-git still ran git: %v", git.Commands)
	}
}

func TestAppendGitignore(t *testing.T) {
	tests := []struct {
		name    string
		content string
		entries []string
		want    string
	}{
		{"append", "*.exe\n", []string{"/bin/"}, "*.exe\n/bin/\n"},
		{"already present", "/bin/\n", []string{"/bin/"}, "/bin/\n"},
		{"missing trailing newline", "*.exe", []string{"/bin/"}, "*.exe\n/bin/\n"},
		{"empty", "", []string{"/bin/", "/bin/"}, "/bin/\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := appendGitignore(tt.content, tt.entries...); got != tt.want {
				t.Errorf("appendGitignore() = %q, want %q", got, tt.want)
			}
		})
	}
}
