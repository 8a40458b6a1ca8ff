package manifest

// Metadata is the content of a project's metadata file.
type Metadata struct {
	Generator  Generator `yaml:"putup" json:"putup"`
	Project    Project   `yaml:"project" json:"project"`
	Extensions []string  `yaml:"extensions,omitempty" json:"extensions,omitempty"`

	// Settings holds extension-specific values keyed by flag name.
	Settings map[string]string `yaml:"settings,omitempty" json:"settings,omitempty"`
}

// Generator identifies the tool version that wrote the project.
type Generator struct {
	Version string `yaml:"version" json:"version"`
}

// Project holds the options a project was generated with.
type Project struct {
	Name        string `yaml:"name" json:"name"`
	Package     string `yaml:"package" json:"package"`
	Module      string `yaml:"module" json:"module"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	URL         string `yaml:"url,omitempty" json:"url,omitempty"`
	License     string `yaml:"license,omitempty" json:"license,omitempty"`
	Author      string `yaml:"author,omitempty" json:"author,omitempty"`
	Email       string `yaml:"email,omitempty" json:"email,omitempty"`
}
