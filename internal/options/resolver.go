package options

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"github.com/agentx-labs/putup/internal/apperrors"
	"github.com/agentx-labs/putup/internal/argfile"
	"github.com/agentx-labs/putup/internal/userdata"
)

// Flag names shared by the resolver and the CLI.
const (
	FlagPackage     = "package"
	FlagDescription = "description"
	FlagURL         = "url"
	FlagLicense     = "license"
	FlagForce       = "force"
	FlagUpdate      = "update"
	FlagPretend     = "pretend"
	FlagDryRun      = "dry-run"
	FlagListActions = "list-actions"
	FlagSaveProfile = "save-profile"
	FlagQuiet       = "quiet"
	FlagLogLevel    = "log-level"
	FlagVerbose     = "verbose"
)

// CLIExtension is the command-line side of an extension.
type CLIExtension interface {
	Name() string
	// AugmentCLI registers the extension's flags.
	AugmentCLI(fs *pflag.FlagSet)
	// Activated reports whether the parsed flags turn the extension on.
	Activated(fs *pflag.FlagSet) bool
}

// Resolver turns raw arguments into a validated Options record.
type Resolver struct {
	// Env locates the profile argument file.
	Env userdata.Environment
	// Extensions contribute flags; order fixes activation order.
	Extensions []CLIExtension
	// Licenses is the accepted license set.
	Licenses []string
}

// NormalizeFlagName maps flag aliases to their canonical name.
func NormalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	if name == FlagDryRun {
		name = FlagPretend
	}
	return pflag.NormalizedName(name)
}

// Bind registers the base flags and every extension's flags on fs, storing
// base values into o.
func (r *Resolver) Bind(fs *pflag.FlagSet, o *Options) {
	fs.StringVarP(&o.Package, FlagPackage, "p", "", "package name (default: derived from project name)")
	fs.StringVarP(&o.Description, FlagDescription, "d", "", "project description")
	fs.StringVarP(&o.URL, FlagURL, "u", "", "project URL; also determines the module path")
	fs.StringVarP(&o.License, FlagLicense, "l", "", "project license, one of: "+strings.Join(r.Licenses, ", "))
	fs.BoolVarP(&o.Force, FlagForce, "f", false, "force overwriting an existing directory")
	fs.BoolVarP(&o.Update, FlagUpdate, "U", false, "update an existing project, replacing only managed files (combine with --force to replace all)")
	fs.BoolVar(&o.Pretend, FlagPretend, false, "do not create the project, only report what would happen (alias --dry-run)")
	fs.BoolVar(&o.ListActions, FlagListActions, false, "do not create the project, list the planned actions")
	fs.BoolVar(&o.SaveProfile, FlagSaveProfile, false, "save the given flags as the active profile")
	fs.BoolVarP(&o.Quiet, FlagQuiet, "q", false, "suppress logs and warnings")
	fs.StringVar(&o.LogLevel, FlagLogLevel, "", "log level (debug, info, warn, error)")
	fs.BoolVar(&o.Verbose, FlagVerbose, false, "print the full error chain on failure")
	fs.SetNormalizeFunc(NormalizeFlagName)

	for _, ext := range r.Extensions {
		ext.AugmentCLI(fs)
	}
}

// PrepareArgs prepends the active profile and expands argument files.
func (r *Resolver) PrepareArgs(args []string) ([]string, error) {
	withProfile, err := userdata.PrependProfile(r.Env, args)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindConfiguration, "load profile", err)
	}
	return argfile.Expand(withProfile)
}

// Build completes o after fs has been parsed: it takes the project name
// from positional, records active extensions and the values of their
// non-boolean flags, then validates the result.
func (r *Resolver) Build(fs *pflag.FlagSet, o *Options, positional []string) (Options, error) {
	switch len(positional) {
	case 0:
		return Options{}, apperrors.New(apperrors.KindOptions, "missing PROJECT argument")
	case 1:
		o.Project = positional[0]
	default:
		return Options{}, apperrors.New(apperrors.KindOptions, "unexpected arguments: %s", strings.Join(positional[1:], " "))
	}

	base := baseFlagNames()
	fs.Visit(func(f *pflag.Flag) {
		if base[f.Name] || f.Name == "help" || f.Name == "version" || f.Value.Type() == "bool" {
			return
		}
		if o.Extra == nil {
			o.Extra = make(map[string]string)
		}
		o.Extra[f.Name] = f.Value.String()
	})
	for _, ext := range r.Extensions {
		if ext.Activated(fs) {
			*o = o.WithExtension(ext.Name())
		}
	}

	if err := o.Validate(r.Licenses); err != nil {
		return Options{}, err
	}
	return o.Clone(), nil
}

// Resolve runs the full resolution: profile, argument files, flag parsing,
// record construction and validation.
func (r *Resolver) Resolve(args []string) (Options, error) {
	expanded, err := r.PrepareArgs(args)
	if err != nil {
		return Options{}, err
	}

	var o Options
	fs := pflag.NewFlagSet("putup", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	r.Bind(fs, &o)
	if err := fs.Parse(expanded); err != nil {
		return Options{}, apperrors.Wrap(apperrors.KindOptions, "parse arguments", err)
	}
	return r.Build(fs, &o, fs.Args())
}

func baseFlagNames() map[string]bool {
	return map[string]bool{
		FlagPackage: true, FlagDescription: true, FlagURL: true, FlagLicense: true,
		FlagForce: true, FlagUpdate: true, FlagPretend: true, FlagListActions: true,
		FlagSaveProfile: true, FlagQuiet: true, FlagLogLevel: true, FlagVerbose: true,
	}
}

// ExplicitArgs returns args without argument-file references and without
// the positional project name, in a form suitable for saving as a profile.
// Flags that only make sense for one run are dropped.
func ExplicitArgs(fs *pflag.FlagSet) []string {
	skip := map[string]bool{
		FlagSaveProfile: true, FlagPretend: true, FlagListActions: true,
		FlagForce: true, FlagUpdate: true, "help": true, "version": true,
	}
	var out []string
	fs.Visit(func(f *pflag.Flag) {
		if skip[f.Name] {
			return
		}
		if f.Value.Type() == "bool" {
			if f.Value.String() == "true" {
				out = append(out, "--"+f.Name)
			}
			return
		}
		out = append(out, fmt.Sprintf("--%s", f.Name), f.Value.String())
	})
	return out
}
