// Package filesystem provides the afero based file helpers greatness uses.
//
// Every function takes an afero.Fs so the same code runs against the OS
// filesystem in production and an in-memory filesystem in tests. Symlink
// operations need a filesystem implementing afero.Linker (the OS one does).
package filesystem

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/IsaccBarker/Greatness/pkg/errors"
	"github.com/spf13/afero"
)

// NewOS returns the OS backed filesystem
func NewOS() afero.Fs {
	return afero.NewOsFs()
}

// Exists reports whether path exists, without following a final symlink
func Exists(fs afero.Fs, path string) (bool, error) {
	_, err := Lstat(fs, path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// Lstat uses Lstat when the filesystem supports it and Stat otherwise
func Lstat(fs afero.Fs, path string) (os.FileInfo, error) {
	if l, ok := fs.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(path)
		return info, err
	}
	return fs.Stat(path)
}

// IsSymlink reports whether path is a symlink
func IsSymlink(fs afero.Fs, path string) bool {
	info, err := Lstat(fs, path)
	return err == nil && info.Mode()&os.ModeSymlink != 0
}

// Symlink creates link pointing at target
func Symlink(fs afero.Fs, target, link string) error {
	linker, ok := fs.(afero.Linker)
	if !ok {
		return errors.New(errors.ErrSymlinkCreate, "filesystem does not support symlinks").
			WithPaths(target, link)
	}
	if err := linker.SymlinkIfPossible(target, link); err != nil {
		return errors.Wrap(err, errors.ErrSymlinkCreate, "failed to create symlink").
			WithPaths(target, link)
	}
	return nil
}

// Readlink returns the target of the symlink at path
func Readlink(fs afero.Fs, path string) (string, error) {
	reader, ok := fs.(afero.LinkReader)
	if !ok {
		return "", errors.New(errors.ErrFileAccess, "filesystem does not support symlinks").
			WithDetail("path", path)
	}
	return reader.ReadlinkIfPossible(path)
}

// CopyFile copies the contents and permission bits of src to dst,
// replacing dst if it exists. Parent directories are not created.
func CopyFile(fs afero.Fs, src, dst string) error {
	in, err := fs.Open(src)
	if err != nil {
		return errors.Wrap(err, errors.ErrFileCopy, "failed to open source").WithPaths(src, dst)
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return errors.Wrap(err, errors.ErrFileCopy, "failed to stat source").WithPaths(src, dst)
	}
	if info.IsDir() {
		return errors.New(errors.ErrFileCopy, "source is a directory").WithPaths(src, dst)
	}

	out, err := fs.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return errors.Wrap(err, errors.ErrFileCopy, "failed to open destination").WithPaths(src, dst)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return errors.Wrap(err, errors.ErrFileCopy, "failed to copy contents").WithPaths(src, dst)
	}
	if err := out.Close(); err != nil {
		return errors.Wrap(err, errors.ErrFileCopy, "failed to flush destination").WithPaths(src, dst)
	}
	// OpenFile only applies the mode on creation
	if err := fs.Chmod(dst, info.Mode().Perm()); err != nil {
		return errors.Wrap(err, errors.ErrFileCopy, "failed to set permissions").WithPaths(src, dst)
	}
	return nil
}

// CopyTree copies the directory tree at src into dst. Symlinks are copied
// as the files they point to.
func CopyTree(fs afero.Fs, src, dst string) error {
	return afero.Walk(fs, src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if info.IsDir() {
			if err := fs.MkdirAll(target, info.Mode().Perm()|0700); err != nil {
				return errors.Wrap(err, errors.ErrDirCreate, "failed to create directory").
					WithDetail("path", target)
			}
			return nil
		}
		return CopyFile(fs, path, target)
	})
}

// SameContent reports whether both files exist and hold identical bytes
func SameContent(fs afero.Fs, a, b string) (bool, error) {
	left, err := afero.ReadFile(fs, a)
	if err != nil {
		return false, err
	}
	right, err := afero.ReadFile(fs, b)
	if err != nil {
		return false, err
	}
	return bytes.Equal(left, right), nil
}

// AtomicWriteFile writes data to a temporary sibling of path and renames
// it into place, so readers never observe a truncated file.
func AtomicWriteFile(fs afero.Fs, path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := afero.TempFile(fs, dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "failed to create temporary file").
			WithDetail("path", path)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = fs.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return errors.Wrap(err, errors.ErrFileWrite, "failed to write temporary file").
			WithDetail("path", path)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return errors.Wrap(err, errors.ErrFileWrite, "failed to sync temporary file").
			WithDetail("path", path)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return errors.Wrap(err, errors.ErrFileWrite, "failed to close temporary file").
			WithDetail("path", path)
	}
	if err := fs.Chmod(tmpName, perm); err != nil {
		cleanup()
		return errors.Wrap(err, errors.ErrFileWrite, "failed to set permissions").
			WithDetail("path", path)
	}
	if err := fs.Rename(tmpName, path); err != nil {
		cleanup()
		return errors.Wrap(err, errors.ErrFileWrite, "failed to replace file").
			WithDetail("path", path)
	}
	return nil
}
