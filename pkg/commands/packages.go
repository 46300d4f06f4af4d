package commands

import (
	"context"

	"github.com/IsaccBarker/Greatness/pkg/errors"
	"github.com/IsaccBarker/Greatness/pkg/logging"
)

// AddPackages tracks packages by name
func (s *Session) AddPackages(names []string) error {
	for _, name := range names {
		if name == "" {
			return errors.New(errors.ErrInvalidInput, "package name must not be empty")
		}
		if err := s.State.Doc.AddPackage(name); err != nil {
			return err
		}
	}
	return s.State.Save()
}

// RemovePackages untracks packages
func (s *Session) RemovePackages(names []string) error {
	for _, name := range names {
		if err := s.State.Doc.RemovePackage(name); err != nil {
			return err
		}
	}
	return s.State.Save()
}

// AddOverload records that pkg is called name when installed with manager
func (s *Session) AddOverload(manager, pkg, name string) error {
	if manager == "" || name == "" {
		return errors.New(errors.ErrInvalidInput, "manager and overload name must not be empty")
	}
	if _, ok := s.Config.Catalog()[manager]; !ok {
		logger := logging.GetLogger("commands.package")
		logger.Warn().
			Str("manager", manager).
			Msg("Overloading for a package manager greatness does not know")
	}
	if err := s.State.Doc.SetOverload(pkg, manager, name); err != nil {
		return err
	}
	return s.State.Save()
}

// RemoveOverload drops the overload of pkg for manager
func (s *Session) RemoveOverload(manager, pkg string) error {
	if err := s.State.Doc.RemoveOverload(pkg, manager); err != nil {
		return err
	}
	return s.State.Save()
}

// InstallPackages installs every tracked package with the preferred
// package manager on this host and returns the names it installed
func (s *Session) InstallPackages(ctx context.Context) ([]string, error) {
	if len(s.State.Doc.Packages) == 0 {
		return nil, nil
	}
	inst, err := s.packageInstaller()
	if err != nil {
		return nil, err
	}
	return inst.InstallAll(ctx, s.State.Doc.Packages)
}
