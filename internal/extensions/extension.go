package extensions

import (
	"github.com/spf13/pflag"

	"github.com/agentx-labs/putup/internal/options"
	"github.com/agentx-labs/putup/internal/pipeline"
)

// Namespace prefixes the action IDs of extensions, followed by the
// extension name (e.g. "putup.extensions.makefile:add_files").
const Namespace = "putup.extensions"

// Extension is a plugin seen from both the command line and the plan
// builder.
type Extension interface {
	options.CLIExtension
	pipeline.Extension
}

// flagExtension is an extension switched on by a single boolean flag.
type flagExtension struct {
	name  string
	flag  string
	usage string
	hooks func(name string) []pipeline.Hook
	// extraFlags registers value flags beyond the activation flag.
	extraFlags func(fs *pflag.FlagSet)
}

func (e *flagExtension) Name() string { return e.name }

func (e *flagExtension) AugmentCLI(fs *pflag.FlagSet) {
	fs.Bool(e.flag, false, e.usage)
	if e.extraFlags != nil {
		e.extraFlags(fs)
	}
}

func (e *flagExtension) Activated(fs *pflag.FlagSet) bool {
	v, err := fs.GetBool(e.flag)
	return err == nil && v
}

func (e *flagExtension) Hooks() []pipeline.Hook { return e.hooks(e.name) }

// ActionID returns the ID of an action owned by the named extension.
func ActionID(extension, action string) pipeline.ActionID {
	return pipeline.NewActionID(Namespace+"."+extension, action)
}

// Builtin returns the compiled-in extensions in their stable order.
func Builtin() []Extension {
	return []Extension{
		makefile(),
		githubActions(),
		preCommit(),
		golangci(),
		noSkeleton(),
		noGit(),
	}
}

// CLI returns the command-line side of exts.
func CLI(exts []Extension) []options.CLIExtension {
	out := make([]options.CLIExtension, len(exts))
	for i, e := range exts {
		out[i] = e
	}
	return out
}

// Active returns the extensions of exts whose names are listed in names,
// in the order of exts. Names with no matching extension are returned as
// unknown.
func Active(exts []Extension, names []string) (active []pipeline.Extension, unknown []string) {
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}
	for _, e := range exts {
		if wanted[e.Name()] {
			active = append(active, e)
			delete(wanted, e.Name())
		}
	}
	for _, n := range names {
		if wanted[n] {
			unknown = append(unknown, n)
		}
	}
	return active, unknown
}
