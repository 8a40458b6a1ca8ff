package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/agentx-labs/putup/internal/apperrors"
	"github.com/agentx-labs/putup/internal/config"
	"github.com/agentx-labs/putup/internal/ctxlog"
	"github.com/agentx-labs/putup/internal/extensions"
	"github.com/agentx-labs/putup/internal/options"
	"github.com/agentx-labs/putup/internal/pipeline"
	"github.com/agentx-labs/putup/internal/report"
	"github.com/agentx-labs/putup/internal/scaffold"
	"github.com/agentx-labs/putup/internal/userdata"
)

// UpdateNote is printed after a successful update that was not forced.
const UpdateNote = "Update accomplished!"

// generate runs the action pipeline for resolved options.
func (a *App) generate(ctx context.Context, flags *pflag.FlagSet, opts options.Options) error {
	settings, err := a.settings()
	if err != nil {
		return err
	}
	level := opts.EffectiveLogLevel(settings.LogLevel)
	logger := ctxlog.New(level, a.Stderr)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("options resolved", "project", opts.Project, "extensions", opts.Extensions)

	opts, err = scaffold.Bootstrap(a.FS, opts, a.Build.Version)
	if err != nil {
		return err
	}

	plan, err := a.plan(ctx, opts, settings)
	if err != nil {
		return err
	}

	printer := report.NewPrinter(a.Stdout, a.NoColor)
	if opts.ListActions {
		ids := plan.IDs()
		names := make([]string, len(ids))
		for i, id := range ids {
			names[i] = id.String()
		}
		printer.PrintPlan(names)
		return nil
	}

	showReport := ctxlog.ParseLevel(level) <= slog.LevelInfo
	var sinks []report.Sink
	if showReport {
		sinks = append(sinks, printer)
	}
	rep := report.New(sinks...)
	if opts.SaveProfile {
		if err := a.saveProfile(rep, flags, opts); err != nil {
			return err
		}
	}

	env := pipeline.Env{
		Report:  rep,
		FS:      a.FS,
		Git:     a.Git,
		Version: a.Build.Version,
	}
	if _, err := pipeline.Run(ctx, plan, env, opts); err != nil {
		return err
	}

	if opts.Update && !opts.Force && showReport {
		fmt.Fprintln(a.Stdout, UpdateNote)
	}
	return nil
}

// saveProfile writes the explicit flags to the active profile. In pretend
// mode the file is only reported.
func (a *App) saveProfile(rep *report.Report, flags *pflag.FlagSet, opts options.Options) error {
	if opts.Pretend {
		path, err := userdata.ProfilePath(a.Env)
		if err != nil {
			return apperrors.Wrap(apperrors.KindConfiguration, "save profile", err)
		}
		rep.Create(filepath.ToSlash(path))
		return nil
	}
	if _, err := userdata.SaveProfile(a.Stdout, a.FS, a.Env, options.ExplicitArgs(flags)); err != nil {
		return apperrors.Wrap(apperrors.KindConfiguration, "save profile", err)
	}
	return nil
}

// plan assembles the base actions and the hooks of the active extensions.
// Recorded extensions this build does not know are skipped with a warning.
func (a *App) plan(ctx context.Context, opts options.Options, s config.Settings) (*pipeline.Plan, error) {
	active, unknown := extensions.Active(a.Extensions, opts.Extensions)
	for _, name := range unknown {
		ctxlog.FromContext(ctx).Warn("ignoring unknown extension", "extension", name)
	}
	base := scaffold.BaseActions(scaffold.Defaults{
		Author:  s.Author,
		Email:   s.Email,
		License: s.License,
	})
	return pipeline.BuildPlan(base, active)
}

func (a *App) settings() (config.Settings, error) {
	path, err := userdata.ConfigPath(a.Env)
	if err != nil {
		return config.Settings{}, apperrors.Wrap(apperrors.KindConfiguration, "locate config", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Settings{}, apperrors.Wrap(apperrors.KindConfiguration, "load config", err)
	}
	return cfg.Settings(), nil
}
