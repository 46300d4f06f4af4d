package commands

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/IsaccBarker/Greatness/pkg/errors"
	"github.com/IsaccBarker/Greatness/pkg/filesystem"
	"github.com/IsaccBarker/Greatness/pkg/logging"
	"github.com/IsaccBarker/Greatness/pkg/manifest"
	"github.com/IsaccBarker/Greatness/pkg/paths"
)

// Skipped is an argument an operation passed over
type Skipped struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// FilesResult reports a batch operation on files
type FilesResult struct {
	// Changed holds the portable paths that were affected
	Changed []string  `json:"changed"`
	Skipped []Skipped `json:"skipped,omitempty"`
}

func (r *FilesResult) skip(path, reason string) {
	logger := logging.GetLogger("commands.files")
	logger.Warn().
		Str("path", path).
		Str("reason", reason).
		Msg("Skipping file")
	r.Skipped = append(r.Skipped, Skipped{Path: path, Reason: reason})
}

// AddFiles starts tracking files in place. Missing files, symlinks,
// directories and files already tracked are skipped with a warning.
func (s *Session) AddFiles(files []string) (*FilesResult, error) {
	result := &FilesResult{}
	for _, p := range files {
		portable, reason, err := s.trackable(p)
		if err != nil {
			return result, err
		}
		if reason != "" {
			result.skip(p, reason)
			continue
		}
		if err := s.State.Doc.AddFile(manifest.TrackedFile{Path: portable}); err != nil {
			return result, err
		}
		result.Changed = append(result.Changed, portable)
	}
	return result, s.saveIfChanged(result)
}

// TrackFiles moves files into the greatness directory and leaves a symlink
// at each original location, so edits land in the stored copy
func (s *Session) TrackFiles(files []string) (*FilesResult, error) {
	logger := logging.GetLogger("commands.track")
	fs := s.State.Fs
	result := &FilesResult{}

	for _, p := range files {
		portable, reason, err := s.trackable(p)
		if err != nil {
			return result, err
		}
		if reason != "" {
			result.skip(p, reason)
			continue
		}

		original := s.State.Decode(portable)
		stored := paths.StoragePath(s.State.Layout.FilesDir(), portable)
		if err := fs.MkdirAll(filepath.Dir(stored), 0755); err != nil {
			return result, errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", filepath.Dir(stored)).
				WithDetail("path", filepath.Dir(stored))
		}
		if err := filesystem.CopyFile(fs, original, stored); err != nil {
			return result, err
		}
		if err := fs.Remove(original); err != nil {
			return result, errors.Wrapf(err, errors.ErrFileRemove, "failed to move %s", original).
				WithPaths(original, stored)
		}
		if err := filesystem.Symlink(fs, stored, original); err != nil {
			if restoreErr := filesystem.CopyFile(fs, stored, original); restoreErr != nil {
				logger.Error().Err(restoreErr).Str("path", original).Msg("Failed to restore file")
			}
			return result, err
		}
		logger.Info().Str("path", original).Str("stored", stored).Msg("Tracking file by symlink")

		if err := s.State.Doc.AddFile(manifest.TrackedFile{Path: portable}); err != nil {
			return result, err
		}
		result.Changed = append(result.Changed, portable)
	}
	return result, s.saveIfChanged(result)
}

// trackable checks that p is a regular file not yet tracked and returns its
// portable path, or the reason it cannot be tracked
func (s *Session) trackable(p string) (portable, reason string, err error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", "", errors.Wrapf(err, errors.ErrInvalidInput, "cannot make %s absolute", p)
	}
	info, err := filesystem.Lstat(s.State.Fs, abs)
	switch {
	case os.IsNotExist(err):
		return "", "does not exist", nil
	case err != nil:
		return "", "", errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", abs).
			WithDetail("path", abs)
	case info.Mode()&os.ModeSymlink != 0:
		return "", "is a symlink", nil
	case !info.Mode().IsRegular():
		return "", "is not a regular file", nil
	}

	portable, err = s.State.Codec.CanonicalizeAndEncode(abs)
	if err != nil {
		return "", "", err
	}
	if f, _ := s.State.Doc.Contains(portable); f != nil {
		return "", "is already tracked", nil
	}
	return portable, "", nil
}

// RemoveFiles stops tracking files. Files tracked by symlink are moved back
// to their original location.
func (s *Session) RemoveFiles(files []string) (*FilesResult, error) {
	result := &FilesResult{}
	for _, p := range files {
		portable, err := s.resolveTracked(p)
		if err != nil {
			return result, err
		}
		if err := s.State.Doc.RemoveFile(portable); err != nil {
			return result, err
		}
		if err := s.restoreTracked(portable); err != nil {
			return result, err
		}
		result.Changed = append(result.Changed, portable)
	}
	return result, s.saveIfChanged(result)
}

// restoreTracked replaces the symlink left by TrackFiles with the stored file
func (s *Session) restoreTracked(portable string) error {
	fs := s.State.Fs
	original := s.State.Decode(portable)
	stored := paths.StoragePath(s.State.Layout.FilesDir(), portable)
	if !filesystem.IsSymlink(fs, original) {
		return nil
	}
	if target, err := filesystem.Readlink(fs, original); err != nil || filepath.Clean(target) != stored {
		return nil
	}

	if err := fs.Remove(original); err != nil {
		return errors.Wrapf(err, errors.ErrFileRemove, "failed to remove link %s", original).
			WithPaths(stored, original)
	}
	if err := filesystem.CopyFile(fs, stored, original); err != nil {
		return err
	}
	if err := fs.Remove(stored); err != nil {
		return errors.Wrapf(err, errors.ErrFileRemove, "failed to remove %s", stored).
			WithDetail("path", stored)
	}
	logger := logging.GetLogger("commands.rm")
	logger.Info().Str("path", original).Msg("Restored tracked file")
	return nil
}

// TagFiles sets the tag of tracked files. An empty tag clears it.
func (s *Session) TagFiles(tag string, files []string) (*FilesResult, error) {
	result := &FilesResult{}
	for _, p := range files {
		portable, err := s.resolveTracked(p)
		if err != nil {
			return result, err
		}
		if err := s.State.Doc.SetTag(portable, tag); err != nil {
			return result, err
		}
		result.Changed = append(result.Changed, portable)
	}
	return result, s.saveIfChanged(result)
}

// resolveTracked turns a command line argument into the portable path it
// is tracked under. Portable paths are accepted as is. Files that no
// longer exist are encoded without touching the filesystem.
func (s *Session) resolveTracked(p string) (string, error) {
	if strings.HasPrefix(p, "{{") {
		return p, nil
	}
	lexical, err := s.State.Codec.EncodeLexical(p)
	if err != nil {
		return "", err
	}
	if f, _ := s.State.Doc.Contains(lexical); f != nil {
		return lexical, nil
	}
	if canonical, err := s.State.Codec.CanonicalizeAndEncode(p); err == nil {
		return canonical, nil
	}
	return lexical, nil
}

func (s *Session) saveIfChanged(result *FilesResult) error {
	if len(result.Changed) == 0 {
		return nil
	}
	return s.State.Save()
}
