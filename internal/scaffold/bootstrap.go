package scaffold

import (
	"path/filepath"

	"github.com/agentx-labs/putup/internal/branding"
	"github.com/agentx-labs/putup/internal/fsops"
	"github.com/agentx-labs/putup/internal/manifest"
	"github.com/agentx-labs/putup/internal/options"
)

// MetadataPath returns the location of the metadata file of a project.
func MetadataPath(project string) string {
	return filepath.Join(project, branding.MetadataFile())
}

// Bootstrap prepares options for an update run. It reads the project's
// metadata file, refuses projects written by a newer version unless
// forced, re-activates recorded extensions and fills options that were not
// given with their recorded values. Outside update mode, or when the
// project has no metadata file, o is returned unchanged.
func Bootstrap(fs fsops.FS, o options.Options, version string) (options.Options, error) {
	if !o.Update {
		return o, nil
	}
	meta, ok, err := manifest.Load(fs, MetadataPath(o.Project))
	if err != nil {
		return o, err
	}
	if !ok {
		return o, nil
	}
	if err := manifest.CheckGenerator(meta, version, o.Force); err != nil {
		return o, err
	}

	out := o.Clone()
	p := meta.Project
	fill(&out.Package, p.Package)
	fill(&out.ModulePath, p.Module)
	fill(&out.Description, p.Description)
	fill(&out.URL, p.URL)
	fill(&out.License, p.License)
	fill(&out.Author, p.Author)
	fill(&out.Email, p.Email)
	for _, name := range meta.Extensions {
		out = out.WithExtension(name)
	}
	for key, value := range meta.Settings {
		if _, given := out.Extra[key]; given {
			continue
		}
		if out.Extra == nil {
			out.Extra = make(map[string]string)
		}
		out.Extra[key] = value
	}
	return out, nil
}

func fill(dst *string, recorded string) {
	if *dst == "" {
		*dst = recorded
	}
}
