package userdata

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentx-labs/putup/internal/branding"
)

// File name conventions inside the configuration directory.
const (
	ArgsExt        = ".args"
	ConfigFile     = "config.yaml"
	DefaultProfile = "default"
	// NoProfile disables profile loading entirely.
	NoProfile = "none"
)

// Permission constants.
const (
	DirPermNormal  os.FileMode = 0755
	FilePermNormal os.FileMode = 0644
)

// configRoots lists the candidate platform configuration roots in search
// order. Empty entries are dropped.
func (e Environment) configRoots() []string {
	var roots []string
	if e.Home != "" {
		roots = append(roots, filepath.Join(e.Home, "Library", "Application Support"))
	}
	if e.AppData != "" {
		roots = append(roots, e.AppData)
	}
	if e.XDGConfigHome != "" {
		roots = append(roots, e.XDGConfigHome)
	}
	if e.Home != "" {
		roots = append(roots, filepath.Join(e.Home, ".config"))
	}
	return roots
}

// ConfigDir returns the configuration directory. ConfigDir in the
// environment wins; otherwise the first existing platform root gets the
// tool's directory name appended, and ~/.putup is the last resort. The
// returned directory need not exist.
func ConfigDir(e Environment) (string, error) {
	if e.ConfigDir != "" {
		return e.ConfigDir, nil
	}
	for _, root := range e.configRoots() {
		if info, err := os.Stat(root); err == nil && info.IsDir() {
			return filepath.Join(root, branding.ConfigDir()), nil
		}
	}
	home := e.Home
	if home == "" {
		var err error
		home, err = os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
	}
	return filepath.Join(home, branding.HomeDir()), nil
}

// ConfigPath returns the path of the user configuration file.
func ConfigPath(e Environment) (string, error) {
	dir, err := ConfigDir(e)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFile), nil
}

// ArgsFile returns the path of the argument file for the named profile.
// For example, ArgsFile(dir, "ci") returns "<dir>/ci.args".
func ArgsFile(dir, profile string) string {
	return filepath.Join(dir, profile+ArgsExt)
}
