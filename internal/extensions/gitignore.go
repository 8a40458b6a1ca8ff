package extensions

import "strings"

// appendGitignore returns content with each line of entries appended
// unless already present. It is a no-op when every entry exists.
func appendGitignore(content string, entries ...string) string {
	present := make(map[string]bool)
	for _, l := range strings.Split(content, "\n") {
		present[strings.TrimSpace(l)] = true
	}

	var b strings.Builder
	b.WriteString(content)
	for _, entry := range entries {
		if present[entry] {
			continue
		}
		present[entry] = true
		// Ensure there's a newline before our addition.
		if b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
			b.WriteByte('\n')
		}
		b.WriteString(entry)
		b.WriteByte('\n')
	}
	return b.String()
}
