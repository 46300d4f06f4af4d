// Package install materializes one file at its destination, protecting
// whatever was there before.
//
// Per file the installer moves through NotPresent -> Installed, or
// Present -> (confirmed) backed up -> Installed, or Present -> (declined)
// Skipped. A destination that already matches the source is left alone.
package install

import (
	"os"
	"path/filepath"
	"time"

	"github.com/IsaccBarker/Greatness/pkg/errors"
	"github.com/IsaccBarker/Greatness/pkg/filesystem"
	"github.com/IsaccBarker/Greatness/pkg/logging"
	"github.com/spf13/afero"
)

// ConfirmRequest describes an overwrite the user is asked about
type ConfirmRequest struct {
	Source      string
	Destination string
	// Diff is a unified diff of the change, empty when not applicable
	Diff string
}

// ConfirmFunc asks whether an existing destination may be overwritten
type ConfirmFunc func(req ConfirmRequest) (bool, error)

// Result reports what happened to one file
type Result struct {
	Source      string
	Destination string
	Outcome     Outcome
	// Backup is the path the previous destination was copied to, if any
	Backup string
}

// Installer copies or links files into place
type Installer struct {
	Fs      afero.Fs
	Mode    Mode
	Policy  OverwritePolicy
	Confirm ConfirmFunc
	// Now is used for backup names; defaults to time.Now
	Now func() time.Time
}

// New returns an installer for fs with the given mode and policy
func New(fs afero.Fs, mode Mode, policy OverwritePolicy, confirm ConfirmFunc) *Installer {
	return &Installer{Fs: fs, Mode: mode, Policy: policy, Confirm: confirm}
}

func (i *Installer) now() time.Time {
	if i.Now != nil {
		return i.Now()
	}
	return time.Now()
}

// Install places src at dst. Errors carry both paths.
func (i *Installer) Install(src, dst string) (Result, error) {
	logger := logging.GetLogger("install")
	res := Result{Source: src, Destination: dst}

	if i.Mode == ModeSymlink {
		abs, err := filepath.Abs(src)
		if err != nil {
			return res, errors.Wrap(err, errors.ErrInvalidInput, "cannot resolve source").WithPaths(src, dst)
		}
		src = abs
		res.Source = abs
	}

	srcInfo, err := i.Fs.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return res, errors.Wrap(err, errors.ErrNotFound, "source does not exist").WithPaths(src, dst)
		}
		return res, errors.Wrap(err, errors.ErrFileAccess, "cannot read source").WithPaths(src, dst)
	}
	if srcInfo.IsDir() {
		return res, errors.New(errors.ErrInvalidInput, "source is a directory").WithPaths(src, dst)
	}

	dstInfo, err := filesystem.Lstat(i.Fs, dst)
	switch {
	case os.IsNotExist(err):
		parent := filepath.Dir(dst)
		if err := i.Fs.MkdirAll(parent, 0755); err != nil {
			return res, errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", parent).WithPaths(src, dst)
		}
		if err := i.place(src, dst); err != nil {
			return res, err
		}
		logger.Info().Str("source", src).Str("destination", dst).Msg("Installed file")
		res.Outcome = Installed
		return res, nil
	case err != nil:
		return res, errors.Wrap(err, errors.ErrFileAccess, "cannot inspect destination").WithPaths(src, dst)
	case dstInfo.IsDir():
		return res, errors.New(errors.ErrInvalidInput, "destination is a directory").WithPaths(src, dst)
	}

	if i.unchanged(src, dst, dstInfo) {
		logger.Debug().Str("destination", dst).Msg("Destination already up to date")
		res.Outcome = Unchanged
		return res, nil
	}

	ok, err := i.confirm(src, dst)
	if err != nil {
		return res, err
	}
	if !ok {
		logger.Info().Str("destination", dst).Msg("Skipping existing file")
		res.Outcome = Skipped
		return res, nil
	}

	backup, err := i.backup(src, dst, dstInfo)
	if err != nil {
		return res, err
	}
	res.Backup = backup
	logger.Info().Str("destination", dst).Str("backup", backup).Msg("Backed up existing file")

	// writing through a symlink would modify its target
	if i.Mode == ModeSymlink || dstInfo.Mode()&os.ModeSymlink != 0 {
		if err := i.Fs.Remove(dst); err != nil {
			return res, errors.Wrap(err, errors.ErrFileRemove, "failed to remove destination").WithPaths(src, dst)
		}
	}
	if err := i.place(src, dst); err != nil {
		return res, err
	}

	logger.Info().Str("source", src).Str("destination", dst).Msg("Installed file")
	res.Outcome = Installed
	return res, nil
}

func (i *Installer) place(src, dst string) error {
	if i.Mode == ModeSymlink {
		return filesystem.Symlink(i.Fs, src, dst)
	}
	return filesystem.CopyFile(i.Fs, src, dst)
}

func (i *Installer) unchanged(src, dst string, dstInfo os.FileInfo) bool {
	isLink := dstInfo.Mode()&os.ModeSymlink != 0
	if i.Mode == ModeSymlink {
		if !isLink {
			return false
		}
		target, err := filesystem.Readlink(i.Fs, dst)
		return err == nil && target == src
	}
	if isLink || !dstInfo.Mode().IsRegular() {
		return false
	}
	same, err := filesystem.SameContent(i.Fs, src, dst)
	return err == nil && same
}

func (i *Installer) confirm(src, dst string) (bool, error) {
	switch i.Policy {
	case OverwriteAlways:
		return true, nil
	case OverwriteNever:
		return false, nil
	}

	if i.Confirm == nil {
		logger := logging.GetLogger("install")
		logger.Warn().
			Str("destination", dst).
			Msg("No way to ask about overwriting, leaving existing file")
		return false, nil
	}

	ok, err := i.Confirm(ConfirmRequest{
		Source:      src,
		Destination: dst,
		Diff:        Diff(i.Fs, src, dst),
	})
	if err != nil {
		return false, errors.Wrap(err, errors.ErrInternal, "confirmation failed").WithPaths(src, dst)
	}
	return ok, nil
}
