// Package branding provides compile-time identity values for the CLI.
//
// branding.yaml is embedded with go:embed; forks change the CLI name, the
// environment prefix and the configuration directory names there.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName      string `yaml:"cli_name"`
	DisplayName  string `yaml:"display_name"`
	Description  string `yaml:"description"`
	ConfigDir    string `yaml:"config_dir"`
	HomeDir      string `yaml:"home_dir"`
	EnvPrefix    string `yaml:"env_prefix"`
	GoModule     string `yaml:"go_module"`
	MetadataFile string `yaml:"metadata_file"`
}

func load() {
	once.Do(func() {
		// Set hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:      "putup",
			DisplayName:  "putup",
			Description:  "Scaffold a new Go project",
			ConfigDir:    "putup",
			HomeDir:      ".putup",
			EnvPrefix:    "PUTUP",
			GoModule:     "github.com/agentx-labs/putup",
			MetadataFile: ".putup.yaml",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "putup").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// ConfigDir returns the directory name appended to platform config roots
// (e.g., "putup" in ~/.config/putup).
func ConfigDir() string { load(); return defaults.ConfigDir }

// HomeDir returns the dot-directory name under $HOME used when no platform
// config root exists (e.g., ".putup").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "PUTUP").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GoModule returns the Go module path of this tool.
func GoModule() string { load(); return defaults.GoModule }

// MetadataFile returns the name of the metadata file written at the root of
// every generated project.
func MetadataFile() string { load(); return defaults.MetadataFile }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("PROFILE") → "PUTUP_PROFILE".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
