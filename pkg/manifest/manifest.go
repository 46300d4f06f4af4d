package manifest

import (
	"path/filepath"

	"github.com/IsaccBarker/Greatness/pkg/errors"
)

// Contains finds the first file whose portable path equals path exactly.
// It returns nil and -1 when the file is not tracked.
func (d *Document) Contains(path string) (*TrackedFile, int) {
	for i := range d.Files {
		if d.Files[i].Path == path {
			return &d.Files[i], i
		}
	}
	return nil, -1
}

// UpsertFile replaces any entry with the same path by f, appended at the
// end. Upserting the same file twice leaves a single entry.
func (d *Document) UpsertFile(f TrackedFile) {
	kept := d.Files[:0]
	for _, existing := range d.Files {
		if existing.Path != f.Path {
			kept = append(kept, existing)
		}
	}
	d.Files = append(kept, f)
}

// AddFile appends f unless its path is already tracked
func (d *Document) AddFile(f TrackedFile) error {
	if existing, _ := d.Contains(f.Path); existing != nil {
		return errors.Newf(errors.ErrAlreadyExists, "%s is already tracked", f.Path).
			WithDetail("path", f.Path)
	}
	d.Files = append(d.Files, f)
	return nil
}

// RemoveFile untracks path
func (d *Document) RemoveFile(path string) error {
	_, i := d.Contains(path)
	if i < 0 {
		return notTracked(path)
	}
	d.Files = append(d.Files[:i], d.Files[i+1:]...)
	return nil
}

// SetTag sets the tag of a tracked file. An empty tag clears it.
func (d *Document) SetTag(path, tag string) error {
	f, _ := d.Contains(path)
	if f == nil {
		return notTracked(path)
	}
	f.Tag = tag
	return nil
}

// AssignScript appends script to the file's scripts. It returns an
// ALREADY_EXISTS error when the script is already assigned.
func (d *Document) AssignScript(path, script string) error {
	f, _ := d.Contains(path)
	if f == nil {
		return notTracked(path)
	}
	if f.HasScript(script) {
		return errors.Newf(errors.ErrAlreadyExists, "script %s is already assigned to %s", script, path).
			WithDetail("path", path).
			WithDetail("script", script)
	}
	f.Scripts = append(f.Scripts, script)
	return nil
}

// UnassignScript removes script from the file's scripts
func (d *Document) UnassignScript(path, script string) error {
	f, _ := d.Contains(path)
	if f == nil {
		return notTracked(path)
	}
	kept := f.Scripts[:0]
	for _, s := range f.Scripts {
		if s != script {
			kept = append(kept, s)
		}
	}
	if len(kept) == len(f.Scripts) {
		return errors.Newf(errors.ErrNotFound, "script %s is not assigned to %s", script, path).
			WithDetail("path", path).
			WithDetail("script", script)
	}
	if len(kept) == 0 {
		kept = nil
	}
	f.Scripts = kept
	return nil
}

// SetEncrypted toggles the encryption flag of a tracked file
func (d *Document) SetEncrypted(path string, encrypted bool) error {
	f, _ := d.Contains(path)
	if f == nil {
		return notTracked(path)
	}
	f.Encrypted = encrypted
	return nil
}

// AllTags returns every distinct non-empty tag in first seen order
func (d *Document) AllTags() []string {
	var tags []string
	seen := map[string]struct{}{}
	for _, f := range d.Files {
		if f.Tag == "" {
			continue
		}
		if _, ok := seen[f.Tag]; ok {
			continue
		}
		seen[f.Tag] = struct{}{}
		tags = append(tags, f.Tag)
	}
	return tags
}

// AllScripts returns every distinct assigned script in first seen order
func (d *Document) AllScripts() []string {
	var scripts []string
	seen := map[string]struct{}{}
	for _, f := range d.Files {
		for _, s := range f.Scripts {
			if s == "" {
				continue
			}
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			scripts = append(scripts, s)
		}
	}
	return scripts
}

// ContainsPackage looks a package up by canonical name. The returned
// pointer may be used to mutate the entry in place.
func (d *Document) ContainsPackage(name string) *TrackedPackage {
	for i := range d.Packages {
		if d.Packages[i].Name == name {
			return &d.Packages[i]
		}
	}
	return nil
}

// UpsertPackage replaces any package with the same name by p
func (d *Document) UpsertPackage(p TrackedPackage) {
	kept := d.Packages[:0]
	for _, existing := range d.Packages {
		if existing.Name != p.Name {
			kept = append(kept, existing)
		}
	}
	d.Packages = append(kept, p)
}

// AddPackage tracks a new package by name
func (d *Document) AddPackage(name string) error {
	if d.ContainsPackage(name) != nil {
		return errors.Newf(errors.ErrAlreadyExists, "package %s is already tracked", name).
			WithDetail("package", name)
	}
	d.Packages = append(d.Packages, TrackedPackage{Name: name})
	return nil
}

// RemovePackage untracks a package
func (d *Document) RemovePackage(name string) error {
	for i := range d.Packages {
		if d.Packages[i].Name == name {
			d.Packages = append(d.Packages[:i], d.Packages[i+1:]...)
			return nil
		}
	}
	return packageNotTracked(name)
}

// SetOverload records the name package goes by under manager
func (d *Document) SetOverload(name, manager, overload string) error {
	p := d.ContainsPackage(name)
	if p == nil {
		return packageNotTracked(name)
	}
	if p.Overloads == nil {
		p.Overloads = map[string]string{}
	}
	p.Overloads[manager] = overload
	return nil
}

// RemoveOverload drops the overload of package for manager
func (d *Document) RemoveOverload(name, manager string) error {
	p := d.ContainsPackage(name)
	if p == nil {
		return packageNotTracked(name)
	}
	if _, ok := p.Overloads[manager]; !ok {
		return errors.Newf(errors.ErrNotFound, "package %s has no overload for %s", name, manager).
			WithDetail("package", name).
			WithDetail("manager", manager)
	}
	delete(p.Overloads, manager)
	if len(p.Overloads) == 0 {
		p.Overloads = nil
	}
	return nil
}

// FindDependency returns the requirement recorded for localPath
func (d *Document) FindDependency(localPath string) *Dependency {
	for i := range d.Requires {
		if d.Requires[i].LocalPath == localPath {
			return &d.Requires[i]
		}
	}
	return nil
}

// AddDependency records dep unless a requirement with the same local path
// exists. It reports whether dep was added.
func (d *Document) AddDependency(dep Dependency) bool {
	if d.FindDependency(dep.LocalPath) != nil {
		return false
	}
	d.Requires = append(d.Requires, dep)
	return true
}

// RemoveDependenciesNamed drops every requirement whose local path ends in
// a component equal to name, returning how many were removed.
func (d *Document) RemoveDependenciesNamed(name string) int {
	kept := d.Requires[:0]
	removed := 0
	for _, dep := range d.Requires {
		if filepath.Base(filepath.Clean(dep.LocalPath)) == name {
			removed++
			continue
		}
		kept = append(kept, dep)
	}
	if len(kept) == 0 {
		kept = nil
	}
	d.Requires = kept
	return removed
}

func notTracked(path string) error {
	return errors.Newf(errors.ErrFileNotTracked, "%s is not tracked", path).
		WithDetail("path", path)
}

func packageNotTracked(name string) error {
	return errors.Newf(errors.ErrPackageNotTracked, "package %s is not tracked", name).
		WithDetail("package", name)
}
