package scaffold

import (
	"context"
	"path"
	"path/filepath"
	"strings"

	"github.com/agentx-labs/putup/internal/apperrors"
	"github.com/agentx-labs/putup/internal/ctxlog"
	"github.com/agentx-labs/putup/internal/fsops"
	"github.com/agentx-labs/putup/internal/options"
	"github.com/agentx-labs/putup/internal/pipeline"
	"github.com/agentx-labs/putup/internal/structure"
	"github.com/agentx-labs/putup/internal/vcs"
)

// File and directory permissions of generated content.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Skip reasons reported for paths left untouched.
const (
	ReasonExists    = "exists"
	ReasonPreserved = "preserved"
)

// InitialCommitMessage is the message of the first commit of a new project.
const InitialCommitMessage = "Initial commit"

// Decide reports whether a leaf is written given whether its path already
// exists. A skipped path comes with the reason reported for it.
func Decide(leaf structure.Leaf, exists bool, o options.Options) (write bool, reason string) {
	switch {
	case !exists:
		return true, ""
	case o.Force:
		return true, ""
	case o.Update && leaf.Op == structure.OpManaged:
		return true, ""
	case leaf.Op == structure.OpPreserve:
		return false, ReasonPreserved
	default:
		return false, ReasonExists
	}
}

// CreateStructure materializes the accumulated structure under the project
// directory, in sorted path order. In pretend mode it reports the same
// create and skip events without touching the filesystem.
func CreateStructure(ctx context.Context, env pipeline.Env, st pipeline.State) (pipeline.State, error) {
	logger := ctxlog.FromContext(ctx)
	o := st.Opts
	root := o.Project

	for _, p := range st.Structure.Paths() {
		leaf, _ := st.Structure.Get(p)
		target := filepath.Join(root, filepath.FromSlash(p))
		subject := displayPath(root, p)

		exists, err := env.FS.Exists(target)
		if err != nil {
			return st, apperrors.Wrap(apperrors.KindFileSystem, "stat "+target, err)
		}
		write, reason := Decide(leaf, exists, o)
		if !write {
			env.Report.Skip(subject, reason)
			continue
		}
		if !o.Pretend {
			if err := writeLeaf(env.FS, target, leaf.Content); err != nil {
				return st, err
			}
		}
		logger.Debug("file materialized", "path", subject, "pretend", o.Pretend)
		env.Report.Create(subject)
	}
	return st, nil
}

func writeLeaf(fs fsops.FS, target, content string) error {
	if err := fs.MkdirAll(filepath.Dir(target), dirPerm); err != nil {
		return apperrors.Wrap(apperrors.KindFileSystem, "create directory for "+target, err)
	}
	if err := fs.AtomicWrite(target, []byte(content), filePerm); err != nil {
		return apperrors.Wrap(apperrors.KindFileSystem, "write "+target, err)
	}
	return nil
}

func displayPath(root, p string) string {
	return path.Join(filepath.ToSlash(root), p)
}

// InitGit initializes a repository in the project directory, stages every
// generated file and commits them. It does nothing when updating or when
// the directory already belongs to a repository. In pretend mode the
// commands are only reported.
func InitGit(ctx context.Context, env pipeline.Env, st pipeline.State) (pipeline.State, error) {
	logger := ctxlog.FromContext(ctx)
	o := st.Opts
	root := o.Project

	if o.Update {
		logger.Debug("skipping git init on update")
		return st, nil
	}
	if env.Git == nil {
		return st, apperrors.New(apperrors.KindExternalTool, "git is not available")
	}
	if env.Git.IsRepo(root) {
		logger.Debug("skipping git init, already inside a repository", "dir", root)
		return st, nil
	}

	steps := [][]string{{"init"}}
	for _, p := range st.Structure.Paths() {
		steps = append(steps, []string{"add", p})
	}
	for _, args := range steps {
		if err := runGit(ctx, env, o, root, args...); err != nil {
			return st, err
		}
	}

	env.Report.Run(commandLine("commit", "-m", InitialCommitMessage), root)
	if !o.Pretend {
		who := vcs.Identity{Name: o.Author, Email: o.Email}
		if err := env.Git.Commit(ctx, root, InitialCommitMessage, who); err != nil {
			return st, apperrors.Wrap(apperrors.KindExternalTool, "commit", err)
		}
	}
	return st, nil
}

func runGit(ctx context.Context, env pipeline.Env, o options.Options, dir string, args ...string) error {
	env.Report.Run(commandLine(args...), dir)
	if o.Pretend {
		return nil
	}
	if err := env.Git.Run(ctx, dir, args...); err != nil {
		return apperrors.Wrap(apperrors.KindExternalTool, commandLine(args...), err)
	}
	return nil
}

func commandLine(args ...string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		if strings.ContainsAny(a, " \t") {
			a = `"` + a + `"`
		}
		quoted[i] = a
	}
	return "git " + strings.Join(quoted, " ")
}
