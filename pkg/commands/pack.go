package commands

import (
	"path/filepath"

	"github.com/IsaccBarker/Greatness/pkg/errors"
	"github.com/IsaccBarker/Greatness/pkg/filesystem"
	"github.com/IsaccBarker/Greatness/pkg/logging"
	"github.com/IsaccBarker/Greatness/pkg/manifest"
	"github.com/IsaccBarker/Greatness/pkg/paths"
)

// PackOptions selects what goes into the pack
type PackOptions struct {
	Tag   string
	Where string
}

// PackResult reports a pack
type PackResult struct {
	Dir     string    `json:"dir"`
	Packed  []string  `json:"packed"`
	Skipped []Skipped `json:"skipped,omitempty"`
}

// Pack lays the manifest and the selected files out in the pack repository
// the way pull expects to find them: greatness.yaml next to files/<path>.
// Files tracked in the manifest but missing on disk are left out.
func (s *Session) Pack(opts PackOptions) (*PackResult, error) {
	logger := logging.GetLogger("commands.pack")
	fs := s.State.Fs
	dir := s.State.Layout.PackDir()
	filesDir := filepath.Join(dir, paths.FilesDirName)
	result := &PackResult{Dir: dir}

	sel, err := manifest.NewSelector(opts.Tag, opts.Where)
	if err != nil {
		return nil, err
	}
	selected, err := s.State.Doc.Select(sel)
	if err != nil {
		return nil, err
	}

	if err := fs.RemoveAll(filesDir); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRemove, "failed to clear %s", filesDir).
			WithDetail("path", filesDir)
	}

	packed := &manifest.Document{
		Packages: s.State.Doc.Packages,
		Requires: s.State.Doc.Requires,
	}
	for _, f := range selected {
		src := s.State.Decode(f.Path)
		if ok, _ := filesystem.Exists(fs, src); !ok {
			logger.Warn().Str("path", src).Msg("Tracked file is missing, not packing it")
			result.Skipped = append(result.Skipped, Skipped{Path: f.Path, Reason: "does not exist"})
			continue
		}
		dst := paths.StoragePath(filesDir, f.Path)
		if err := fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return result, errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", filepath.Dir(dst)).
				WithDetail("path", filepath.Dir(dst))
		}
		if err := filesystem.CopyFile(fs, src, dst); err != nil {
			return result, err
		}
		packed.Files = append(packed.Files, f)
		result.Packed = append(result.Packed, f.Path)
	}

	if err := manifest.Save(fs, filepath.Join(dir, paths.ManifestFileName), packed); err != nil {
		return result, err
	}
	logger.Info().Int("files", len(result.Packed)).Str("dir", dir).Msg("Packed manifest")
	return result, nil
}
