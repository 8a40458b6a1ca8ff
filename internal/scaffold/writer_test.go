package scaffold

import (
	"maps"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/agentx-labs/putup/internal/apperrors"
	"github.com/agentx-labs/putup/internal/branding"
	"github.com/agentx-labs/putup/internal/options"
	"github.com/agentx-labs/putup/internal/report"
	"github.com/agentx-labs/putup/internal/structure"
	"github.com/agentx-labs/putup/internal/vcs"
)

func TestDecide(t *testing.T) {
	create := structure.Leaf{Op: structure.OpCreate}
	preserve := structure.Leaf{Op: structure.OpPreserve}
	managed := structure.Leaf{Op: structure.OpManaged}

	tests := []struct {
		name   string
		leaf   structure.Leaf
		exists bool
		opts   options.Options
		write  bool
	}{
		{"missing", create, false, options.Options{}, true},
		{"missing preserve", preserve, false, options.Options{}, true},
		{"exists", create, true, options.Options{}, false},
		{"exists force", preserve, true, options.Options{Force: true}, true},
		{"exists update managed", managed, true, options.Options{Update: true}, true},
		{"exists update create", create, true, options.Options{Update: true}, false},
		{"exists update preserve", preserve, true, options.Options{Update: true}, false},
		{"exists managed without update", managed, true, options.Options{}, false},
		{"exists update force", create, true, options.Options{Update: true, Force: true}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			write, reason := Decide(tt.leaf, tt.exists, tt.opts)
			if write != tt.write {
				t.Errorf("Decide() write = %v, want %v", write, tt.write)
			}
			if !write && reason == "" {
				t.Error("skip without a reason")
			}
		})
	}
}

func TestRun_CreatesProject(t *testing.T) {
	o := projectOpts(t)
	git := &vcs.Recorder{}

	rep, _, err := run(t, o, git)
	if err != nil {
		t.Fatalf("run() error: %v", err)
	}

	for _, p := range []string{
		"README.md", "LICENSE.txt", "go.mod", ".gitignore", "AUTHORS.md", "CHANGELOG.md",
		"cmd/my-project/main.go", "internal/myproject/myproject.go", "internal/myproject/myproject_test.go",
		branding.MetadataFile(),
	} {
		if _, err := os.Stat(filepath.Join(o.Project, filepath.FromSlash(p))); err != nil {
			t.Errorf("expected %s to exist: %v", p, err)
		}
		if !rep.Has(report.KindCreate, filepath.ToSlash(filepath.Join(o.Project, p))) {
			t.Errorf("report missing create event for %s", p)
		}
	}
	assertContains(t, readFile(t, filepath.Join(o.Project, "go.mod")), "module my-project")

	invokes := rep.Filter(report.KindInvoke)
	if len(invokes) != 5 || invokes[0].Subject != string(GetDefaultOptionsID) {
		t.Errorf("invoke events = %+v", invokes)
	}

	if len(git.Commands) == 0 || git.Commands[0] != "git init" {
		t.Fatalf("git commands = %v", git.Commands)
	}
	if last := git.Commands[len(git.Commands)-1]; last != "git commit -m "+InitialCommitMessage {
		t.Errorf("last git command = %q", last)
	}
	if !rep.Has(report.KindRun, "git add README.md") {
		t.Error("report missing git add event")
	}
}

func TestRun_PretendMatchesRealRun(t *testing.T) {
	real := projectOpts(t)
	pretend := projectOpts(t)
	pretend.Pretend = true

	realRep, _, err := run(t, real, &vcs.Recorder{})
	if err != nil {
		t.Fatalf("real run error: %v", err)
	}
	pretendGit := &vcs.Recorder{}
	pretendRep, _, err := run(t, pretend, pretendGit)
	if err != nil {
		t.Fatalf("pretend run error: %v", err)
	}

	if _, err := os.Stat(pretend.Project); !os.IsNotExist(err) {
		t.Errorf("pretend run touched the filesystem: %v", err)
	}
	if len(pretendGit.Commands) != 0 {
		t.Errorf("pretend run executed git: %v", pretendGit.Commands)
	}

	got := effects(pretendRep, pretend.Project)
	want := effects(realRep, real.Project)
	if !maps.Equal(got, want) {
		t.Errorf("pretend effects differ from real run\npretend: %v\nreal:    %v",
			sortedKeys(got), sortedKeys(want))
	}
}

// sortedKeys is the Go 1.21 equivalent of slices.Sorted(maps.Keys(m)).
func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func TestRun_ExistingDirectoryRequiresUpdateOrForce(t *testing.T) {
	o := projectOpts(t)
	if err := os.MkdirAll(o.Project, 0755); err != nil {
		t.Fatal(err)
	}

	rep, _, err := run(t, o, &vcs.Recorder{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !apperrors.Is(err, apperrors.KindOptions) {
		t.Errorf("kind = %s, want options", apperrors.KindOf(err))
	}
	if len(rep.Filter(report.KindCreate)) != 0 {
		t.Error("no file may be created after a failed check")
	}
}

func TestRun_UpdateMissingProject(t *testing.T) {
	o := projectOpts(t)
	o.Update = true
	if _, _, err := run(t, o, &vcs.Recorder{}); !apperrors.Is(err, apperrors.KindOptions) {
		t.Errorf("expected options error, got %v", err)
	}
}

func TestRun_InvalidPackage(t *testing.T) {
	for _, pkg := range []string{"My-Pkg", "func", "1abc"} {
		o := projectOpts(t)
		o.Package = pkg
		if _, _, err := run(t, o, &vcs.Recorder{}); !apperrors.Is(err, apperrors.KindOptions) {
			t.Errorf("package %q: expected options error, got %v", pkg, err)
		}
	}
}

func TestRun_UpdateOverwritesOnlyManaged(t *testing.T) {
	o := projectOpts(t)
	if _, _, err := run(t, o, &vcs.Recorder{}); err != nil {
		t.Fatal(err)
	}
	readme := filepath.Join(o.Project, "README.md")
	meta := filepath.Join(o.Project, branding.MetadataFile())
	for _, p := range []string{readme, meta} {
		if err := os.WriteFile(p, []byte("edited\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	o.Update = true
	git := &vcs.Recorder{}
	rep, _, err := run(t, o, git)
	if err != nil {
		t.Fatalf("update run error: %v", err)
	}
	if readFile(t, readme) != "edited\n" {
		t.Error("update must not overwrite README.md")
	}
	if readFile(t, meta) == "edited\n" {
		t.Error("update must overwrite the managed metadata file")
	}
	if !rep.Has(report.KindSkip, filepath.ToSlash(readme)) {
		t.Error("expected skip event for README.md")
	}
	if len(git.Commands) != 0 || len(rep.Filter(report.KindRun)) != 0 {
		t.Errorf("update must not run git: %v", git.Commands)
	}
}

func TestRun_ForceOverwritesEverything(t *testing.T) {
	o := projectOpts(t)
	if _, _, err := run(t, o, &vcs.Recorder{}); err != nil {
		t.Fatal(err)
	}
	readme := filepath.Join(o.Project, "README.md")
	if err := os.WriteFile(readme, []byte("edited\n"), 0644); err != nil {
		t.Fatal(err)
	}

	o.Update = true
	o.Force = true
	rep, _, err := run(t, o, &vcs.Recorder{})
	if err != nil {
		t.Fatalf("forced update error: %v", err)
	}
	if readFile(t, readme) == "edited\n" {
		t.Error("force must overwrite README.md")
	}
	if len(rep.Filter(report.KindSkip)) != 0 {
		t.Errorf("force must not skip: %+v", rep.Filter(report.KindSkip))
	}
}

func TestRun_UpdateIsIdempotent(t *testing.T) {
	o := projectOpts(t)
	if _, _, err := run(t, o, &vcs.Recorder{}); err != nil {
		t.Fatal(err)
	}
	meta := filepath.Join(o.Project, branding.MetadataFile())

	o.Update = true
	if _, _, err := run(t, o, &vcs.Recorder{}); err != nil {
		t.Fatal(err)
	}
	first := readFile(t, meta)
	if _, _, err := run(t, o, &vcs.Recorder{}); err != nil {
		t.Fatal(err)
	}
	if second := readFile(t, meta); second != first {
		t.Errorf("managed file changed between updates:\n%s\n---\n%s", first, second)
	}
}

func TestInitGit_SkipsExistingRepository(t *testing.T) {
	o := projectOpts(t)
	git := &vcs.Recorder{Repos: map[string]bool{o.Project: true}}

	rep, _, err := run(t, o, git)
	if err != nil {
		t.Fatal(err)
	}
	if len(git.Commands) != 0 || len(rep.Filter(report.KindRun)) != 0 {
		t.Errorf("expected no git commands, got %v", git.Commands)
	}
}

func TestInitGit_Failure(t *testing.T) {
	o := projectOpts(t)
	git := &vcs.Recorder{FailOn: "init"}

	_, _, err := run(t, o, git)
	if !apperrors.Is(err, apperrors.KindExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
}

func TestRun_DefaultsFromGitConfig(t *testing.T) {
	o := projectOpts(t)
	git := &vcs.Recorder{Values: map[string]string{"user.name": "Git User", "user.email": "git@example.com"}}

	_, st, err := run(t, o, git)
	if err != nil {
		t.Fatal(err)
	}
	if st.Opts.Author != "Git User" || st.Opts.Email != "git@example.com" {
		t.Errorf("author = %q <%q>", st.Opts.Author, st.Opts.Email)
	}
	if st.Opts.License != DefaultLicense || st.Opts.Package != "myproject" {
		t.Errorf("defaults not applied: %+v", st.Opts)
	}
	assertContains(t, readFile(t, filepath.Join(o.Project, "AUTHORS.md")), "Git User <git@example.com>")
}
