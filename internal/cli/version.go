package cli

import "fmt"

// BuildInfo is the version information injected via ldflags.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

func (b BuildInfo) String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", b.Version, b.Commit, b.Date)
}

func (a *App) versionTemplate() string {
	return "{{.Name}} version " + a.Build.String() + "\n"
}
