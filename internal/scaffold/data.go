package scaffold

import (
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentx-labs/putup/internal/options"
)

// GoVersion is the go directive written to generated go.mod files.
const GoVersion = "1.22"

// ProjectData holds all template variables available to project templates.
type ProjectData struct {
	Name        string // Base name of the project directory, e.g. "my-project"
	Title       string // e.g. "My Project"
	Package     string // e.g. "myproject"
	Module      string // e.g. "github.com/acme/my-project"
	Description string
	URL         string
	License     License
	Author      string
	Email       string
	Year        int
	Version     string // Version of the generator
	GoVersion   string
	Extra       map[string]string // Extension-specific template values
}

// NewProjectData derives template data from resolved options.
func NewProjectData(o options.Options, version string, year int) ProjectData {
	name := ProjectName(o.Project)
	lic, _ := LookupLicense(o.License)
	return ProjectData{
		Name:        name,
		Title:       Title(name),
		Package:     o.Package,
		Module:      o.ModulePath,
		Description: o.Description,
		URL:         o.URL,
		License:     lic,
		Author:      o.Author,
		Email:       o.Email,
		Year:        year,
		Version:     version,
		GoVersion:   GoVersion,
		Extra:       map[string]string{},
	}
}

// ProjectName returns the last element of the project path.
func ProjectName(project string) string {
	return path.Base(filepath.ToSlash(project))
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// PackageName derives a Go package name from a project name: lowercased,
// with everything but letters and digits removed. A leading digit gets a
// "pkg" prefix.
func PackageName(project string) string {
	name := nonAlnum.ReplaceAllString(strings.ToLower(ProjectName(project)), "")
	if name == "" {
		return "app"
	}
	if name[0] >= '0' && name[0] <= '9' {
		name = "pkg" + name
	}
	return name
}

// ModulePath derives a Go module path. An http(s) URL contributes its host
// and path (e.g. https://github.com/acme/tool becomes github.com/acme/tool);
// otherwise the project name is used.
func ModulePath(url, project string) string {
	u := strings.TrimSpace(url)
	for _, scheme := range []string{"https://", "http://"} {
		u = strings.TrimPrefix(u, scheme)
	}
	u = strings.TrimSuffix(strings.TrimSuffix(u, "/"), ".git")
	if u != "" && strings.Contains(u, "/") {
		return u
	}
	return ProjectName(project)
}

// Title turns a project name into a heading, e.g. "my-project" into
// "My Project".
func Title(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool { return r == '-' || r == '_' || r == '.' })
	return cases.Title(language.English).String(strings.Join(words, " "))
}
