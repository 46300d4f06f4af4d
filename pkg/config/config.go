package config

import (
	"time"

	"github.com/IsaccBarker/Greatness/pkg/install"
	"github.com/IsaccBarker/Greatness/pkg/packages"
)

// Config holds every greatness setting
type Config struct {
	Pull     Pull     `koanf:"pull"`
	Install  Install  `koanf:"install"`
	Packages Packages `koanf:"packages"`
	Scripts  Scripts  `koanf:"scripts"`

	// raw is the merged tree the struct was decoded from
	raw map[string]interface{}
}

// Pull configures the dependency resolver
type Pull struct {
	DefaultHost string `koanf:"default_host"`
}

// Install configures how pulled files are placed
type Install struct {
	Mode      string `koanf:"mode"`
	Overwrite string `koanf:"overwrite"`
}

// Packages configures package manager selection
type Packages struct {
	Sudo     string                      `koanf:"sudo"`
	Managers map[string]packages.Manager `koanf:"managers"`
}

// Scripts configures the transform engine
type Scripts struct {
	Timeout time.Duration `koanf:"timeout"`
}

// Catalog returns the configured package managers
func (c *Config) Catalog() packages.Catalog {
	catalog := make(packages.Catalog, len(c.Packages.Managers))
	for name, m := range c.Packages.Managers {
		m.Name = name
		catalog[name] = m
	}
	return catalog
}

// InstallMode returns the parsed install mode
func (c *Config) InstallMode() (install.Mode, error) {
	return install.ParseMode(c.Install.Mode)
}

// OverwritePolicy returns the parsed overwrite policy
func (c *Config) OverwritePolicy() (install.OverwritePolicy, error) {
	return install.ParsePolicy(c.Install.Overwrite)
}
