package manifest

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/agentx-labs/putup/internal/apperrors"
)

// CompareVersions compares two version strings using semver.
// Returns -1 if a < b, 0 if equal, 1 if a > b. A leading "v" is accepted.
func CompareVersions(a, b string) (int, error) {
	av, err := parseSemver(a)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", a, err)
	}
	bv, err := parseSemver(b)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", b, err)
	}
	return av.Compare(bv), nil
}

// CheckGenerator refuses to update a project written by a newer version
// of the tool than current, unless force is set. Unparseable development
// versions of current are accepted.
func CheckGenerator(m *Metadata, current string, force bool) error {
	if force || m == nil {
		return nil
	}
	if _, err := parseSemver(current); err != nil {
		return nil
	}
	cmp, err := CompareVersions(m.Generator.Version, current)
	if err != nil {
		return apperrors.Wrap(apperrors.KindConfiguration, "check generator version", err)
	}
	if cmp > 0 {
		return apperrors.New(apperrors.KindOptions,
			"project was generated by version %s, newer than this version %s; use --force to update anyway",
			m.Generator.Version, current)
	}
	return nil
}

func parseSemver(version string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimPrefix(version, "v"))
}

// DevVersion is recorded for builds without a release version.
const DevVersion = "0.0.0-dev"

// GeneratorVersion returns version in the form recorded in metadata files,
// mapping unparseable development versions to DevVersion.
func GeneratorVersion(version string) string {
	if _, err := parseSemver(version); err != nil {
		return DevVersion
	}
	return strings.TrimPrefix(version, "v")
}
