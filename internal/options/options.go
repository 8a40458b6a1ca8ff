// Package options defines the resolved option record of a scaffolding run
// and the resolver that builds it from command-line arguments, argument
// files and profiles.
package options

import (
	"maps"
	"slices"
	"strings"

	"github.com/agentx-labs/putup/internal/apperrors"
)

// Options is the resolved configuration of a run. Zero values mean the
// option was not given and the owning component picks its default.
type Options struct {
	Project     string
	Package     string
	Description string
	URL         string
	License     string
	Author      string
	Email       string
	ModulePath  string

	Force       bool
	Update      bool
	Pretend     bool
	ListActions bool
	SaveProfile bool

	Quiet    bool
	LogLevel string
	Verbose  bool

	// Extensions lists the names of active extensions in activation order.
	Extensions []string

	// Extra holds values of extension-specific non-boolean flags keyed by
	// flag name.
	Extra map[string]string
}

// Clone returns a deep copy of o.
func (o Options) Clone() Options {
	c := o
	c.Extensions = slices.Clone(o.Extensions)
	c.Extra = maps.Clone(o.Extra)
	return c
}

// HasExtension reports whether the named extension is active.
func (o Options) HasExtension(name string) bool {
	return slices.Contains(o.Extensions, name)
}

// WithExtension returns a copy of o with name appended to the active
// extensions unless it is already present.
func (o Options) WithExtension(name string) Options {
	c := o.Clone()
	if !c.HasExtension(name) {
		c.Extensions = append(c.Extensions, name)
	}
	return c
}

// EffectiveLogLevel returns the log level implied by the record: quiet
// forces "error", an explicit level comes next, and fallback applies
// otherwise.
func (o Options) EffectiveLogLevel(fallback string) string {
	switch {
	case o.Quiet:
		return "error"
	case o.LogLevel != "":
		return o.LogLevel
	case fallback != "":
		return fallback
	default:
		return "info"
	}
}

// Validate checks the invariants of a parsed record and normalizes the
// project name. licenses is the set of accepted license codes; an empty
// License is always accepted.
func (o *Options) Validate(licenses []string) error {
	o.Project = strings.TrimRight(o.Project, `/\`)
	if o.Project == "" {
		return apperrors.New(apperrors.KindOptions, "project name is required")
	}
	if o.Pretend && o.ListActions {
		return apperrors.New(apperrors.KindOptions, "--pretend and --list-actions cannot be used together")
	}
	if o.License != "" && len(licenses) > 0 && !slices.Contains(licenses, o.License) {
		return apperrors.New(apperrors.KindOptions, "invalid license %q (choose from %s)",
			o.License, strings.Join(licenses, ", "))
	}
	return nil
}
