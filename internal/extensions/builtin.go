package extensions

import (
	"context"
	"time"

	"github.com/spf13/pflag"

	"github.com/agentx-labs/putup/internal/apperrors"
	"github.com/agentx-labs/putup/internal/pipeline"
	"github.com/agentx-labs/putup/internal/scaffold"
	"github.com/agentx-labs/putup/internal/structure"
)

// Flags of the builtin extensions.
const (
	FlagMakefile      = "with-makefile"
	FlagMakefileBin   = "makefile-bin-dir"
	FlagGitHubActions = "with-github-actions"
	FlagPreCommit     = "with-pre-commit"
	FlagGolangci      = "with-golangci"
	FlagNoSkeleton    = "no-skeleton"
	FlagNoGit         = "no-git"
)

// file is one generated file of an extension.
type file struct {
	path string
	tmpl string
}

// addFiles returns an action that renders files as managed leaves and
// merges them into the structure. prepare may adjust template data and
// the proposal before merging.
func addFiles(id pipeline.ActionID, files []file, prepare func(st pipeline.State, data *scaffold.ProjectData, s structure.Structure) (structure.Structure, error)) pipeline.Action {
	return pipeline.Action{ID: id, Run: func(_ context.Context, env pipeline.Env, st pipeline.State) (pipeline.State, error) {
		data := scaffold.NewProjectData(st.Opts, env.Version, time.Now().Year())
		acc := st.Structure
		if prepare != nil {
			var err error
			if acc, err = prepare(st, &data, acc); err != nil {
				return st, err
			}
		}

		b := structure.NewBuilder()
		for _, f := range files {
			content, err := scaffold.Render(f.tmpl, data)
			if err != nil {
				return st, err
			}
			b.Add(f.path, content, structure.OpManaged)
		}
		proposal, err := b.Build()
		if err != nil {
			return st, apperrors.Wrap(apperrors.KindConfiguration, string(id), err)
		}
		st.Structure = structure.Merge(acc, proposal)
		return st, nil
	}}
}

func makefile() Extension {
	return &flagExtension{
		name:  "makefile",
		flag:  FlagMakefile,
		usage: "add a Makefile with build, test and vet targets",
		extraFlags: func(fs *pflag.FlagSet) {
			fs.String(FlagMakefileBin, "", "output directory of the Makefile build target (default: bin)")
		},
		hooks: func(name string) []pipeline.Hook {
			prepare := func(st pipeline.State, data *scaffold.ProjectData, s structure.Structure) (structure.Structure, error) {
				// Equivalent of cmp.Or(st.Opts.Extra[FlagMakefileBin], "bin");
				// cmp.Or needs Go 1.22 and this module targets Go 1.21.
				binDir := st.Opts.Extra[FlagMakefileBin]
				if binDir == "" {
					binDir = "bin"
				}
				data.Extra["BinDir"] = binDir
				leaf, ok := s.Get(".gitignore")
				if !ok {
					return s, nil
				}
				leaf.Content = appendGitignore(leaf.Content, "/"+binDir+"/")
				return s.With(".gitignore", leaf)
			}
			return []pipeline.Hook{
				pipeline.InsertBefore(scaffold.CreateStructureID,
					addFiles(ActionID(name, "add_files"), []file{{"Makefile", "Makefile.tmpl"}}, prepare)),
			}
		},
	}
}

func githubActions() Extension {
	return &flagExtension{
		name:  "github-actions",
		flag:  FlagGitHubActions,
		usage: "add a GitHub Actions workflow running vet and tests",
		hooks: func(name string) []pipeline.Hook {
			return []pipeline.Hook{
				pipeline.InsertBefore(scaffold.CreateStructureID,
					addFiles(ActionID(name, "add_files"), []file{{".github/workflows/ci.yml", "ci.yml.tmpl"}}, nil)),
			}
		},
	}
}

func preCommit() Extension {
	return &flagExtension{
		name:  "pre-commit",
		flag:  FlagPreCommit,
		usage: "add a pre-commit configuration running gofmt and go vet",
		hooks: func(name string) []pipeline.Hook {
			return []pipeline.Hook{
				pipeline.InsertBefore(scaffold.CreateStructureID,
					addFiles(ActionID(name, "add_files"), []file{{".pre-commit-config.yaml", "pre-commit-config.yaml.tmpl"}}, nil)),
			}
		},
	}
}

func golangci() Extension {
	return &flagExtension{
		name:  "golangci",
		flag:  FlagGolangci,
		usage: "add a golangci-lint configuration",
		hooks: func(name string) []pipeline.Hook {
			return []pipeline.Hook{
				pipeline.InsertBefore(scaffold.CreateStructureID,
					addFiles(ActionID(name, "add_files"), []file{{".golangci.yml", "golangci.yml.tmpl"}}, nil)),
			}
		},
	}
}

// noSkeleton drops the example command and package, leaving a package
// doc file in their place.
func noSkeleton() Extension {
	return &flagExtension{
		name:  "no-skeleton",
		flag:  FlagNoSkeleton,
		usage: "omit the example command and package",
		hooks: func(name string) []pipeline.Hook {
			return []pipeline.Hook{
				pipeline.InsertAfter(scaffold.DefineStructureID, pipeline.Action{
					ID:  ActionID(name, "remove_files"),
					Run: removeSkeleton,
				}),
			}
		},
	}
}

func removeSkeleton(_ context.Context, env pipeline.Env, st pipeline.State) (pipeline.State, error) {
	data := scaffold.NewProjectData(st.Opts, env.Version, time.Now().Year())
	pkgDir := "internal/" + data.Package + "/"
	s := st.Structure.Without(
		"cmd/"+data.Name+"/main.go",
		pkgDir+data.Package+".go",
		pkgDir+data.Package+"_test.go",
	)
	doc, err := scaffold.Render("doc.go.tmpl", data)
	if err != nil {
		return st, err
	}
	s, err = s.With("doc.go", structure.Leaf{Content: doc, Op: structure.OpCreate})
	if err != nil {
		return st, apperrors.Wrap(apperrors.KindConfiguration, "remove skeleton", err)
	}
	st.Structure = s
	return st, nil
}

// noGit removes repository initialization from the plan.
func noGit() Extension {
	return &flagExtension{
		name:  "no-git",
		flag:  FlagNoGit,
		usage: "do not initialize a git repository",
		hooks: func(string) []pipeline.Hook {
			return []pipeline.Hook{pipeline.Remove(scaffold.InitGitID)}
		},
	}
}
