// Package packages picks the host's preferred package manager and builds
// the commands that install tracked packages with it.
package packages

import (
	"os/exec"
	"sort"

	"github.com/IsaccBarker/Greatness/pkg/errors"
	"github.com/IsaccBarker/Greatness/pkg/manifest"
)

// DefaultSudo is the privilege wrapper used for managers that need root
const DefaultSudo = "sudo"

// Manager describes how to install a package with one package manager
type Manager struct {
	Name string `koanf:"-"`
	// Root means the manager must run as root
	Root bool `koanf:"root"`
	// Priority ranks managers present on the same host, highest wins
	Priority int `koanf:"priority"`
	// Args precede the package name
	Args []string `koanf:"args"`
}

// Catalog maps manager names to their descriptions
type Catalog map[string]Manager

// DefaultCatalog returns the built in managers
func DefaultCatalog() Catalog {
	return Catalog{
		"pacman": {Root: true, Priority: 0, Args: []string{"-y", "--needed", "-S"}},
		"paru":   {Priority: 1, Args: []string{"--noconfirm", "--needed", "-S"}},
		"yay":    {Priority: 2, Args: []string{"--noconfirm", "--needed", "-S"}},
		"emerge": {Priority: 0},
		"apt":    {Root: true, Priority: 0, Args: []string{"install"}},
		"rpm":    {Root: true, Priority: 0, Args: []string{"-i"}},
		"dnf":    {Root: true, Priority: 0, Args: []string{"install"}},
		"brew":   {Priority: 1, Args: []string{"install"}},
		"port":   {Priority: 0, Args: []string{"install"}},
	}
}

// Lookup returns the named manager with its Name filled in
func (c Catalog) Lookup(name string) (Manager, bool) {
	m, ok := c[name]
	m.Name = name
	return m, ok
}

// Names returns the manager names in sorted order
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookPathFunc finds an executable, like exec.LookPath
type LookPathFunc func(file string) (string, error)

// Available returns the managers whose executable lookPath finds, sorted by
// name. A nil lookPath uses exec.LookPath.
func (c Catalog) Available(lookPath LookPathFunc) []Manager {
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	var out []Manager
	for _, name := range c.Names() {
		if _, err := lookPath(name); err != nil {
			continue
		}
		m, _ := c.Lookup(name)
		out = append(out, m)
	}
	return out
}

// Pick returns the manager with the highest priority. Equal priorities are
// decided by name so the choice is stable.
func Pick(available []Manager) (Manager, error) {
	if len(available) == 0 {
		return Manager{}, errors.New(errors.ErrNoManager,
			"no supported package manager found on PATH")
	}
	best := available[0]
	for _, m := range available[1:] {
		if m.Priority > best.Priority || (m.Priority == best.Priority && m.Name < best.Name) {
			best = m
		}
	}
	return best, nil
}

// Command returns the program and arguments that install pkg with m. The
// sudo wrapper is added when m needs root and the process is not root; the
// package name, or its overload for m, comes last.
func Command(m Manager, pkg manifest.TrackedPackage, isRoot bool) (string, []string) {
	return commandWith(DefaultSudo, m, pkg, isRoot)
}

func commandWith(sudo string, m Manager, pkg manifest.TrackedPackage, isRoot bool) (string, []string) {
	args := make([]string, 0, len(m.Args)+2)
	args = append(args, m.Args...)
	args = append(args, pkg.NameFor(m.Name))

	if m.Root && !isRoot {
		if sudo == "" {
			sudo = DefaultSudo
		}
		return sudo, append([]string{m.Name}, args...)
	}
	return m.Name, args
}
