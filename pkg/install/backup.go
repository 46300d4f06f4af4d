package install

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/IsaccBarker/Greatness/pkg/errors"
	"github.com/IsaccBarker/Greatness/pkg/filesystem"
	"github.com/google/uuid"
	"github.com/spf13/afero"
)

const (
	backupTimeFormat = "20060102T150405.000000000"
	backupAttempts   = 5
)

// BackupName returns a sibling name for path that embeds a timestamp and a
// random salt: <name>.greatness.<time>.<salt>.bak
func BackupName(path string, now time.Time) string {
	salt := uuid.NewString()[:8]
	return fmt.Sprintf("%s.greatness.%s.%s.bak", path, now.UTC().Format(backupTimeFormat), salt)
}

// backup copies dst aside and returns the backup path. The backup is
// created exclusively, so it never replaces an earlier backup.
func (i *Installer) backup(src, dst string, info os.FileInfo) (string, error) {
	var lastErr error
	for attempt := 0; attempt < backupAttempts; attempt++ {
		name := BackupName(dst, i.now())

		var err error
		if info.Mode()&os.ModeSymlink != 0 {
			err = backupSymlink(i.Fs, dst, name)
		} else {
			err = backupFile(i.Fs, dst, name, info.Mode().Perm())
		}
		if err == nil {
			return name, nil
		}
		if !os.IsExist(err) {
			return "", errors.Wrapf(err, errors.ErrBackupCreate, "failed to back up %s", dst).
				WithPaths(src, dst).
				WithDetail("backup", name)
		}
		lastErr = err
	}
	return "", errors.Wrapf(lastErr, errors.ErrBackupCreate, "could not find a free backup name for %s", dst).
		WithPaths(src, dst)
}

func backupFile(fs afero.Fs, path, backup string, perm os.FileMode) error {
	in, err := fs.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := fs.OpenFile(backup, os.O_CREATE|os.O_EXCL|os.O_WRONLY, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = fs.Remove(backup)
		return err
	}
	return out.Close()
}

func backupSymlink(fs afero.Fs, path, backup string) error {
	target, err := filesystem.Readlink(fs, path)
	if err != nil {
		return err
	}
	if ok, err := filesystem.Exists(fs, backup); err != nil {
		return err
	} else if ok {
		return &os.PathError{Op: "symlink", Path: backup, Err: os.ErrExist}
	}
	linker, ok := fs.(afero.Linker)
	if !ok {
		return fmt.Errorf("filesystem cannot back up symlink %s", filepath.Base(path))
	}
	return linker.SymlinkIfPossible(target, backup)
}
