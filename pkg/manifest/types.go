// Package manifest owns the manifest document: the tracked files, packages
// and requirements of a greatness state directory, and their YAML form.
package manifest

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// TrackedFile is one user file under management
type TrackedFile struct {
	// Path is a portable path, never an absolute path at rest
	Path      string   `yaml:"path"`
	Tag       string   `yaml:"tag,omitempty"`
	Scripts   []string `yaml:"scripts,omitempty"`
	Encrypted bool     `yaml:"encrypted,omitempty"`
}

// HasScript reports whether script is assigned to the file
func (f TrackedFile) HasScript(script string) bool {
	for _, s := range f.Scripts {
		if s == script {
			return true
		}
	}
	return false
}

// Dependency references an external manifest merged into this one
type Dependency struct {
	// SourceURL is empty for purely local requirements
	SourceURL string `yaml:"url,omitempty"`
	LocalPath string `yaml:"path"`
}

// UnmarshalYAML accepts both the mapping form and the legacy two element
// sequence form [url-or-null, path].
func (d *Dependency) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.MappingNode:
		type plain Dependency
		var p plain
		if err := value.Decode(&p); err != nil {
			return err
		}
		*d = Dependency(p)
		return nil
	case yaml.SequenceNode:
		if len(value.Content) != 2 {
			return fmt.Errorf("line %d: requirement must have exactly two elements, got %d",
				value.Line, len(value.Content))
		}
		url, path := value.Content[0], value.Content[1]
		if url.Kind != yaml.ScalarNode || path.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: requirement elements must be scalars", value.Line)
		}
		d.SourceURL = ""
		if url.Tag != "!!null" {
			d.SourceURL = url.Value
		}
		d.LocalPath = path.Value
		return nil
	default:
		return fmt.Errorf("line %d: requirement must be a mapping or a sequence", value.Line)
	}
}

// TrackedPackage is a package the user wants installed
type TrackedPackage struct {
	Name string `yaml:"package"`
	// Overloads maps a package manager to its name for this package
	Overloads map[string]string `yaml:"package_overloads,omitempty"`
}

// NameFor returns the overloaded name for manager, or the canonical name
func (p TrackedPackage) NameFor(manager string) string {
	if name, ok := p.Overloads[manager]; ok && name != "" {
		return name
	}
	return p.Name
}

// Document is the persisted manifest. Absent and empty lists mean the same
// thing; empty lists are omitted when written.
type Document struct {
	Files    []TrackedFile    `yaml:"files,omitempty"`
	Packages []TrackedPackage `yaml:"packages,omitempty"`
	Requires []Dependency     `yaml:"requires,omitempty"`
}
