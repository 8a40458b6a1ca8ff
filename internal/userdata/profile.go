package userdata

import (
	"fmt"
	"os"
	"slices"

	"github.com/agentx-labs/putup/internal/argfile"
)

// ProfileName returns the profile selected by the environment, falling
// back to the default profile.
func ProfileName(e Environment) string {
	if e.Profile == "" {
		return DefaultProfile
	}
	return e.Profile
}

// ProfileArgsFile returns the argument file of the active profile. ok is
// false when profiles are disabled or the file does not exist.
func ProfileArgsFile(e Environment) (path string, ok bool, err error) {
	name := ProfileName(e)
	if name == NoProfile {
		return "", false, nil
	}
	dir, err := ConfigDir(e)
	if err != nil {
		return "", false, err
	}
	path = ArgsFile(dir, name)
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return path, false, nil
		}
		return "", false, fmt.Errorf("checking profile %q: %w", name, err)
	}
	if info.IsDir() {
		return path, false, nil
	}
	return path, true, nil
}

// PrependProfile returns args with the active profile's argument file
// reference placed first, so that explicitly given flags parse later and
// take precedence. args is returned unchanged when no profile applies.
func PrependProfile(e Environment, args []string) ([]string, error) {
	path, ok, err := ProfileArgsFile(e)
	if err != nil {
		return nil, err
	}
	if !ok {
		return slices.Clone(args), nil
	}
	return append([]string{argfile.Prefix + path}, args...), nil
}
