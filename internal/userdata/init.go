package userdata

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/agentx-labs/putup/internal/branding"
	"github.com/agentx-labs/putup/internal/fsops"
)

// SaveProfile writes args to the argument file of the active profile,
// one flag per line, creating the configuration directory when needed.
// Progress messages are written to w. It returns the file written.
func SaveProfile(w io.Writer, fs fsops.FS, e Environment, args []string) (string, error) {
	path, err := ProfilePath(e)
	if err != nil {
		return "", err
	}
	if err := ensureDir(w, fs, filepath.Dir(path)); err != nil {
		return "", err
	}

	name := ProfileName(e)
	if err := fs.AtomicWrite(path, []byte(FormatArgs(args)), FilePermNormal); err != nil {
		return "", fmt.Errorf("writing profile %s: %w", path, err)
	}
	fmt.Fprintf(w, "  Saved profile %q to %s\n", name, path)
	return path, nil
}

// ProfilePath returns the argument file SaveProfile writes for the active
// profile. It fails when profiles are disabled.
func ProfilePath(e Environment) (string, error) {
	name := ProfileName(e)
	if name == NoProfile {
		return "", fmt.Errorf("profiles are disabled; unset %s to save one", profileEnvVar())
	}
	dir, err := ConfigDir(e)
	if err != nil {
		return "", err
	}
	return ArgsFile(dir, name), nil
}

// FormatArgs renders args as argument-file text. A token starting with
// "-" begins a new line; quoting is applied where a token would otherwise
// be split or read as a comment.
func FormatArgs(args []string) string {
	var b strings.Builder
	for i, arg := range args {
		switch {
		case i == 0:
		case strings.HasPrefix(arg, "-"):
			b.WriteByte('\n')
		default:
			b.WriteByte(' ')
		}
		b.WriteString(quote(arg))
	}
	if len(args) > 0 {
		b.WriteByte('\n')
	}
	return b.String()
}

func quote(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\n\"'\\#") {
		return s
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}

// ensureDir creates a directory if it doesn't exist and reports it.
func ensureDir(w io.Writer, fs fsops.FS, path string) error {
	isDir, err := fs.IsDir(path)
	if err != nil {
		return fmt.Errorf("checking %s: %w", path, err)
	}
	if isDir {
		return nil
	}
	if err := fs.MkdirAll(path, DirPermNormal); err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	fmt.Fprintf(w, "  Created %s/\n", filepath.Clean(path))
	return nil
}

func profileEnvVar() string {
	return branding.EnvVar("PROFILE")
}
