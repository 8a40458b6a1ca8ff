package scaffold

import (
	"context"
	"go/token"
	"regexp"
	"time"

	"github.com/agentx-labs/putup/internal/apperrors"
	"github.com/agentx-labs/putup/internal/branding"
	"github.com/agentx-labs/putup/internal/ctxlog"
	"github.com/agentx-labs/putup/internal/manifest"
	"github.com/agentx-labs/putup/internal/options"
	"github.com/agentx-labs/putup/internal/pipeline"
	"github.com/agentx-labs/putup/internal/structure"
)

// Namespace prefixes the IDs of the builtin actions.
const Namespace = "putup.scaffold"

// Builtin action IDs, in base plan order.
var (
	GetDefaultOptionsID        = pipeline.NewActionID(Namespace, "get_default_options")
	VerifyOptionsConsistencyID = pipeline.NewActionID(Namespace, "verify_options_consistency")
	DefineStructureID          = pipeline.NewActionID(Namespace, "define_structure")
	CreateStructureID          = pipeline.NewActionID(Namespace, "create_structure")
	InitGitID                  = pipeline.NewActionID(Namespace, "init_git")
)

// Placeholders used when no author identity can be found.
const (
	DefaultAuthor      = "Your Name"
	DefaultEmail       = "you@example.com"
	DefaultDescription = "Add a short description here!"
)

// Defaults are user-level fallbacks for options not given on the command
// line.
type Defaults struct {
	Author  string
	Email   string
	License string
}

// BaseActions returns the canonical generation sequence.
func BaseActions(d Defaults) []pipeline.Action {
	return []pipeline.Action{
		{ID: GetDefaultOptionsID, Run: getDefaultOptions(d)},
		{ID: VerifyOptionsConsistencyID, Run: verifyOptionsConsistency},
		{ID: DefineStructureID, Run: defineStructure},
		{ID: CreateStructureID, Run: CreateStructure},
		{ID: InitGitID, Run: InitGit},
	}
}

func getDefaultOptions(d Defaults) pipeline.RunFunc {
	return func(ctx context.Context, env pipeline.Env, st pipeline.State) (pipeline.State, error) {
		o := st.Opts.Clone()
		if o.Package == "" {
			o.Package = PackageName(o.Project)
		}
		if o.ModulePath == "" {
			o.ModulePath = ModulePath(o.URL, o.Project)
		}
		if o.Description == "" {
			o.Description = DefaultDescription
		}
		if o.License == "" {
			o.License = firstNonEmpty(d.License, DefaultLicense)
		}
		if o.Author == "" {
			o.Author = firstNonEmpty(d.Author, gitConfig(ctx, env, "user.name"), DefaultAuthor)
		}
		if o.Email == "" {
			o.Email = firstNonEmpty(d.Email, gitConfig(ctx, env, "user.email"), DefaultEmail)
		}
		if _, ok := LookupLicense(o.License); !ok {
			return st, apperrors.New(apperrors.KindOptions, "invalid default license %q", o.License)
		}

		ctxlog.FromContext(ctx).Debug("options defaulted",
			"package", o.Package, "module", o.ModulePath, "license", o.License)
		st.Opts = o
		return st, nil
	}
}

func gitConfig(ctx context.Context, env pipeline.Env, key string) string {
	if env.Git == nil {
		return ""
	}
	return env.Git.Config(ctx, key)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

var packagePattern = regexp.MustCompile(`^[a-z][a-z0-9]*$`)

func verifyOptionsConsistency(_ context.Context, env pipeline.Env, st pipeline.State) (pipeline.State, error) {
	o := st.Opts
	if !packagePattern.MatchString(o.Package) || token.IsKeyword(o.Package) {
		return st, apperrors.New(apperrors.KindOptions,
			"package name %q is not a valid Go package name", o.Package)
	}

	exists, err := env.FS.Exists(o.Project)
	if err != nil {
		return st, apperrors.Wrap(apperrors.KindFileSystem, "stat "+o.Project, err)
	}
	switch {
	case exists && !o.Update && !o.Force:
		return st, apperrors.New(apperrors.KindOptions,
			"directory %s already exists; use --update to update an existing project or --force to overwrite",
			o.Project)
	case !exists && o.Update:
		return st, apperrors.New(apperrors.KindOptions,
			"project %s does not exist and cannot be updated", o.Project)
	}
	if exists {
		isDir, err := env.FS.IsDir(o.Project)
		if err != nil {
			return st, apperrors.Wrap(apperrors.KindFileSystem, "stat "+o.Project, err)
		}
		if !isDir {
			return st, apperrors.New(apperrors.KindOptions, "%s exists and is not a directory", o.Project)
		}
	}
	return st, nil
}

func defineStructure(_ context.Context, env pipeline.Env, st pipeline.State) (pipeline.State, error) {
	data := NewProjectData(st.Opts, env.Version, time.Now().Year())
	pkg := "internal/" + data.Package + "/"

	b := structure.NewBuilder()
	for _, f := range []struct {
		path, tmpl string
		op         structure.FileOp
	}{
		{"README.md", "README.md.tmpl", structure.OpPreserve},
		{"LICENSE.txt", "LICENSE.txt.tmpl", structure.OpPreserve},
		{"AUTHORS.md", "AUTHORS.md.tmpl", structure.OpPreserve},
		{"CHANGELOG.md", "CHANGELOG.md.tmpl", structure.OpPreserve},
		{".gitignore", "gitignore.tmpl", structure.OpPreserve},
		{"go.mod", "go.mod.tmpl", structure.OpPreserve},
		{"cmd/" + data.Name + "/main.go", "main.go.tmpl", structure.OpCreate},
		{pkg + data.Package + ".go", "package.go.tmpl", structure.OpCreate},
		{pkg + data.Package + "_test.go", "package_test.go.tmpl", structure.OpCreate},
	} {
		content, err := Render(f.tmpl, data)
		if err != nil {
			return st, err
		}
		b.Add(f.path, content, f.op)
	}

	meta, err := manifest.Encode(Metadata(st.Opts, env.Version))
	if err != nil {
		return st, err
	}
	b.Add(branding.MetadataFile(), string(meta), structure.OpManaged)

	proposal, err := b.Build()
	if err != nil {
		return st, apperrors.Wrap(apperrors.KindConfiguration, "define structure", err)
	}
	st.Structure = structure.Merge(st.Structure, proposal)
	return st, nil
}

// Metadata builds the metadata record written to a generated project.
func Metadata(o options.Options, version string) manifest.Metadata {
	return manifest.Metadata{
		Generator: manifest.Generator{Version: manifest.GeneratorVersion(version)},
		Project: manifest.Project{
			Name:        ProjectName(o.Project),
			Package:     o.Package,
			Module:      o.ModulePath,
			Description: o.Description,
			URL:         o.URL,
			License:     o.License,
			Author:      o.Author,
			Email:       o.Email,
		},
		Extensions: o.Extensions,
		Settings:   o.Extra,
	}
}
