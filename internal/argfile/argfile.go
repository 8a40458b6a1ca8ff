// Package argfile expands "@file" references on the command line.
//
// An argument file holds command-line tokens written with shell-like
// quoting. A "#" outside quotes starts a comment that runs to the end of
// the line. Files may reference other files with further "@file" tokens.
package argfile

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/shlex"

	"github.com/agentx-labs/putup/internal/apperrors"
)

// Prefix marks a token that names an argument file.
const Prefix = "@"

// Tokenize splits the text of an argument file into tokens.
func Tokenize(text string) ([]string, error) {
	tokens, err := shlex.Split(stripComments(text))
	if err != nil {
		return nil, fmt.Errorf("tokenize arguments: %w", err)
	}
	return tokens, nil
}

// stripComments drops everything from an unquoted, unescaped "#" to the end
// of its line, including a "#" in the middle of a word.
func stripComments(text string) string {
	var b strings.Builder
	var single, double, escaped, comment bool
	for _, r := range text {
		switch {
		case comment:
			if r != '\n' {
				continue
			}
			comment = false
		case escaped:
			escaped = false
		case r == '\\' && !single:
			escaped = true
		case r == '\'' && !double:
			single = !single
		case r == '"' && !single:
			double = !double
		case r == '#' && !single && !double:
			comment = true
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// IsReference reports whether token names an argument file.
func IsReference(token string) bool {
	return len(token) > len(Prefix) && strings.HasPrefix(token, Prefix)
}

// Expand replaces every "@file" token in args with the tokens read from
// that file, recursively and depth-first, preserving order. Relative paths
// resolve against the working directory of the process.
func Expand(args []string) ([]string, error) {
	return expand(args, nil)
}

func expand(args []string, stack []string) ([]string, error) {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		if !IsReference(arg) {
			out = append(out, arg)
			continue
		}

		name := strings.TrimPrefix(arg, Prefix)
		abs, err := filepath.Abs(name)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.KindConfiguration, "resolve argument file "+name, err)
		}
		chain := append(slices.Clone(stack), abs)
		if slices.Contains(stack, abs) {
			return nil, apperrors.New(apperrors.KindConfiguration,
				"argument file inclusion cycle: %s", strings.Join(chain, " -> "))
		}

		data, err := os.ReadFile(name)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, apperrors.New(apperrors.KindConfiguration,
					"argument file not found: %s", strings.Join(chain, " -> "))
			}
			return nil, apperrors.Wrap(apperrors.KindConfiguration, "read argument file "+name, err)
		}

		tokens, err := Tokenize(string(data))
		if err != nil {
			return nil, apperrors.Wrap(apperrors.KindConfiguration, "argument file "+name, err)
		}

		nested, err := expand(tokens, chain)
		if err != nil {
			return nil, err
		}
		out = append(out, nested...)
	}
	return out, nil
}
