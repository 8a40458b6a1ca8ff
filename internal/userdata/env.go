package userdata

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/agentx-labs/putup/internal/branding"
)

// platformEnv holds the platform variables that locate configuration roots.
type platformEnv struct {
	Home          string `env:"HOME"`
	AppData       string `env:"APPDATA"`
	XDGConfigHome string `env:"XDG_CONFIG_HOME"`
}

// toolEnv holds the variables owned by this tool, read with the branding
// prefix (e.g. PUTUP_PROFILE).
type toolEnv struct {
	Profile   string `env:"PROFILE"`
	ConfigDir string `env:"CONFIG_DIR"`
}

// Environment is the typed view of the process environment used to find
// configuration and profiles.
type Environment struct {
	Home          string
	AppData       string
	XDGConfigHome string

	// Profile is the requested profile name; empty selects the default.
	Profile string
	// ConfigDir overrides the configuration directory search when set.
	ConfigDir string
}

// LoadEnvironment parses the process environment.
func LoadEnvironment() (Environment, error) {
	var p platformEnv
	if err := env.Parse(&p); err != nil {
		return Environment{}, fmt.Errorf("parse env: %w", err)
	}
	var t toolEnv
	if err := env.ParseWithOptions(&t, env.Options{Prefix: branding.EnvPrefix() + "_"}); err != nil {
		return Environment{}, fmt.Errorf("parse env: %w", err)
	}
	return Environment{
		Home:          p.Home,
		AppData:       p.AppData,
		XDGConfigHome: p.XDGConfigHome,
		Profile:       t.Profile,
		ConfigDir:     t.ConfigDir,
	}, nil
}
