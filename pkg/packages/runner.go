package packages

import (
	"context"
	"os"
	"os/exec"

	"github.com/IsaccBarker/Greatness/pkg/errors"
	"github.com/IsaccBarker/Greatness/pkg/logging"
	"github.com/IsaccBarker/Greatness/pkg/manifest"
)

// Runner executes a package manager command
type Runner interface {
	Run(ctx context.Context, name string, args []string) error
}

// ExecRunner runs commands attached to the current terminal, since package
// managers may ask for passwords or confirmation
type ExecRunner struct{}

// Run executes name with args
func (ExecRunner) Run(ctx context.Context, name string, args []string) error {
	logging.LogCommand(logging.GetLogger("packages"), name, args)
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// IsRoot reports whether the process runs as root
func IsRoot() bool {
	return os.Geteuid() == 0
}

// Installer installs tracked packages with one manager
type Installer struct {
	Manager Manager
	Sudo    string
	IsRoot  bool
	Runner  Runner
}

// NewInstaller picks the preferred available manager from catalog
func NewInstaller(catalog Catalog, lookPath LookPathFunc, sudo string) (*Installer, error) {
	m, err := Pick(catalog.Available(lookPath))
	if err != nil {
		return nil, err
	}
	logger := logging.GetLogger("packages")
	logger.Debug().
		Str("manager", m.Name).
		Int("priority", m.Priority).
		Msg("Picked package manager")
	return &Installer{Manager: m, Sudo: sudo, IsRoot: IsRoot(), Runner: ExecRunner{}}, nil
}

// Install installs one package
func (i *Installer) Install(ctx context.Context, pkg manifest.TrackedPackage) error {
	name, args := commandWith(i.Sudo, i.Manager, pkg, i.IsRoot)
	logger := logging.GetLogger("packages")
	logger.Info().
		Str("package", pkg.Name).
		Str("manager", i.Manager.Name).
		Msg("Installing package")
	if err := i.Runner.Run(ctx, name, args); err != nil {
		return errors.Wrapf(err, errors.ErrPackageInstall, "package %s failed to install with %s", pkg.Name, i.Manager.Name).
			WithDetail("package", pkg.Name).
			WithDetail("manager", i.Manager.Name)
	}
	return nil
}

// InstallAll installs pkgs in order, stopping at the first failure. It
// returns the names of the packages installed.
func (i *Installer) InstallAll(ctx context.Context, pkgs []manifest.TrackedPackage) ([]string, error) {
	var done []string
	if len(pkgs) == 0 {
		logger := logging.GetLogger("packages")
		logger.Info().Msg("No packages to install")
		return nil, nil
	}
	for _, pkg := range pkgs {
		if err := i.Install(ctx, pkg); err != nil {
			return done, err
		}
		done = append(done, pkg.Name)
	}
	return done, nil
}
