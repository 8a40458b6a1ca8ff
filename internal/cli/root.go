package cli

import (
	"context"
	"io"
	"os"
	"slices"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/agentx-labs/putup/internal/apperrors"
	"github.com/agentx-labs/putup/internal/branding"
	"github.com/agentx-labs/putup/internal/extensions"
	"github.com/agentx-labs/putup/internal/fsops"
	"github.com/agentx-labs/putup/internal/options"
	"github.com/agentx-labs/putup/internal/scaffold"
	"github.com/agentx-labs/putup/internal/userdata"
	"github.com/agentx-labs/putup/internal/vcs"
)

// App holds the collaborators of one invocation.
type App struct {
	Build      BuildInfo
	Stdout     io.Writer
	Stderr     io.Writer
	Env        userdata.Environment
	FS         fsops.FS
	Git        vcs.Git
	Extensions []extensions.Extension
	// NoColor disables escape sequences in the action report.
	NoColor bool

	verbose bool
}

// NewApp returns an App bound to the process environment.
func NewApp(build BuildInfo) (*App, error) {
	env, err := userdata.LoadEnvironment()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindConfiguration, "read environment", err)
	}
	return &App{
		Build:      build,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Env:        env,
		FS:         fsops.NewRealFS(),
		Git:        vcs.NewExecGit(),
		Extensions: extensions.Builtin(),
		NoColor:    color.NoColor,
	}, nil
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	args := os.Args[1:]
	app, err := NewApp(BuildInfo{Version: version, Commit: commit, Date: date})
	if err != nil {
		printError(os.Stderr, err, slices.Contains(args, "--"+options.FlagVerbose))
		return err
	}
	return app.Main(context.Background(), args)
}

// Main runs args and reports a failure on Stderr.
func (a *App) Main(ctx context.Context, args []string) error {
	err := a.Run(ctx, args)
	if err != nil {
		printError(a.Stderr, err, a.verbose || slices.Contains(args, "--"+options.FlagVerbose))
	}
	return err
}

// Run resolves args and executes the root command. Errors are returned
// without being printed.
func (a *App) Run(ctx context.Context, args []string) error {
	resolver := &options.Resolver{
		Env:        a.Env,
		Extensions: extensions.CLI(a.Extensions),
		Licenses:   scaffold.Licenses(),
	}
	expanded, err := resolver.PrepareArgs(args)
	if err != nil {
		return err
	}

	var o options.Options
	cmd := a.newRootCmd(resolver, &o)
	if expanded == nil {
		// cobra falls back to os.Args for a nil slice.
		expanded = []string{}
	}
	cmd.SetArgs(expanded)
	err = cmd.ExecuteContext(ctx)
	a.verbose = o.Verbose
	return err
}

func (a *App) newRootCmd(resolver *options.Resolver, o *options.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   branding.CLIName() + " [flags] PROJECT",
		Short: branding.Description(),
		Long: branding.DisplayName() + ` generates the skeleton of a Go project: module file, entry point,
package layout, license, changelog and an initial git commit. Running it
again with --update refreshes the files it manages and leaves your edits
alone.

Defaults are read from the active profile argument file and from
` + branding.EnvVar("PROFILE") + `. Arguments of the form @FILE are replaced by
the contents of FILE.`,
		Version:       a.Build.Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, positional []string) error {
			opts, err := resolver.Build(cmd.Flags(), o, positional)
			if err != nil {
				return err
			}
			return a.generate(cmd.Context(), cmd.Flags(), opts)
		},
	}
	cmd.SetOut(a.Stdout)
	cmd.SetErr(a.Stderr)
	cmd.SetVersionTemplate(a.versionTemplate())

	resolver.Bind(cmd.Flags(), o)
	cmd.SetGlobalNormalizationFunc(options.NormalizeFlagName)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return apperrors.Wrap(apperrors.KindOptions, "parse arguments", err)
	})
	return cmd
}
