package vcs

import (
	"context"
	"strings"
)

// Recorder is an in-memory Git used by tests and by callers that must not
// spawn processes. It records every command it is asked to run.
type Recorder struct {
	// Commands holds "git <args>" for each Run call, in order.
	Commands []string
	// Dirs holds the working directory of each Run call.
	Dirs []string
	// Repos lists directories IsRepo reports as repositories.
	Repos map[string]bool
	// Values backs Config.
	Values map[string]string
	// FailOn makes Run fail when the joined args start with this prefix.
	FailOn string
}

// Run records the command.
func (r *Recorder) Run(_ context.Context, dir string, args ...string) error {
	line := strings.Join(args, " ")
	r.Commands = append(r.Commands, "git "+line)
	r.Dirs = append(r.Dirs, dir)
	if r.FailOn != "" && strings.HasPrefix(line, r.FailOn) {
		return &recordedFailure{cmd: "git " + line}
	}
	return nil
}

// Commit records the commit as a command line.
func (r *Recorder) Commit(ctx context.Context, dir, message string, _ Identity) error {
	return r.Run(ctx, dir, "commit", "-m", message)
}

// IsRepo reports whether dir was registered in Repos.
func (r *Recorder) IsRepo(dir string) bool {
	return r.Repos[dir]
}

// Config returns the registered value for key.
func (r *Recorder) Config(_ context.Context, key string) string {
	return r.Values[key]
}

type recordedFailure struct{ cmd string }

func (e *recordedFailure) Error() string { return e.cmd + " failed: simulated failure" }
