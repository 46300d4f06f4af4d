// Package state holds the runtime context of one greatness invocation: the
// state directory layout, the path codec and the loaded manifest.
package state

import (
	"context"
	"path/filepath"

	"github.com/IsaccBarker/Greatness/pkg/errors"
	"github.com/IsaccBarker/Greatness/pkg/filesystem"
	"github.com/IsaccBarker/Greatness/pkg/logging"
	"github.com/IsaccBarker/Greatness/pkg/manifest"
	"github.com/IsaccBarker/Greatness/pkg/paths"
	"github.com/spf13/afero"
)

// RepoInitializer creates an empty repository in dir
type RepoInitializer interface {
	Init(ctx context.Context, dir string) error
}

// LocalState is owned by the running command and written back at the end
// of any mutating operation.
type LocalState struct {
	Layout paths.Layout
	Codec  *paths.Codec
	Fs     afero.Fs
	Doc    *manifest.Document
}

// Open loads the manifest of an initialized state directory
func Open(fs afero.Fs, layout paths.Layout, codec *paths.Codec) (*LocalState, error) {
	doc, err := manifest.Load(fs, layout.ManifestPath())
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrNotFound) {
			return nil, errors.Wrapf(err, errors.ErrNotFound,
				"no manifest in %s, run `greatness init` first", layout.Root()).
				WithDetail("path", layout.ManifestPath())
		}
		return nil, err
	}
	return &LocalState{Layout: layout, Codec: codec, Fs: fs, Doc: doc}, nil
}

// Reload re-reads the manifest from disk, discarding in-memory changes
func (s *LocalState) Reload() error {
	doc, err := manifest.Load(s.Fs, s.Layout.ManifestPath())
	if err != nil {
		return err
	}
	s.Doc = doc
	return nil
}

// Save writes the manifest back to disk
func (s *LocalState) Save() error {
	logger := logging.GetLogger("state")
	logger.Debug().
		Str("path", s.Layout.ManifestPath()).
		Int("files", len(s.Doc.Files)).
		Int("packages", len(s.Doc.Packages)).
		Int("requires", len(s.Doc.Requires)).
		Msg("Saving manifest")
	return manifest.Save(s.Fs, s.Layout.ManifestPath(), s.Doc)
}

// HasPackRepo reports whether the pack directory holds a repository
func (s *LocalState) HasPackRepo() bool {
	ok, err := filesystem.Exists(s.Fs, filepath.Join(s.Layout.PackDir(), ".git"))
	return err == nil && ok
}

// Decode is a shorthand for s.Codec.Decode
func (s *LocalState) Decode(portable string) string {
	return s.Codec.Decode(portable)
}

// Init creates the state directory, writes an empty manifest and
// initializes the pack repository. An existing manifest is only replaced
// when force is set.
func Init(ctx context.Context, fs afero.Fs, layout paths.Layout, repo RepoInitializer, force bool) error {
	exists, err := filesystem.Exists(fs, layout.ManifestPath())
	if err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "failed to check for an existing manifest")
	}
	if exists && !force {
		return errors.Newf(errors.ErrAlreadyExists,
			"%s already exists, pass --force to replace it", layout.ManifestPath()).
			WithDetail("path", layout.ManifestPath())
	}

	if err := InitNoDamage(ctx, fs, layout, repo); err != nil {
		return err
	}

	if err := filesystem.AtomicWriteFile(fs, layout.ManifestPath(), []byte(manifest.EmptyDocument), 0644); err != nil {
		return errors.Wrap(err, errors.ErrManifestWrite, "failed to write empty manifest")
	}
	return nil
}

// InitNoDamage creates whatever part of the state directory is missing and
// never overwrites anything. Used after adopting a pulled manifest.
func InitNoDamage(ctx context.Context, fs afero.Fs, layout paths.Layout, repo RepoInitializer) error {
	logger := logging.GetLogger("state")

	for _, dir := range layout.Dirs() {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dir).
				WithDetail("path", dir)
		}
	}

	manifestExists, err := filesystem.Exists(fs, layout.ManifestPath())
	if err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "failed to check for an existing manifest")
	}
	if !manifestExists {
		if err := filesystem.AtomicWriteFile(fs, layout.ManifestPath(), []byte(manifest.EmptyDocument), 0644); err != nil {
			return errors.Wrap(err, errors.ErrManifestWrite, "failed to write empty manifest")
		}
	}

	repoExists, err := filesystem.Exists(fs, filepath.Join(layout.PackDir(), ".git"))
	if err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "failed to check the pack repository")
	}
	if !repoExists && repo != nil {
		logger.Info().Str("dir", layout.PackDir()).Msg("Initializing pack repository")
		if err := repo.Init(ctx, layout.PackDir()); err != nil {
			return err
		}
	}
	return nil
}
