package scripts

import (
	"path/filepath"

	"github.com/IsaccBarker/Greatness/pkg/errors"
	"github.com/IsaccBarker/Greatness/pkg/filesystem"
	"github.com/IsaccBarker/Greatness/pkg/logging"
	"github.com/IsaccBarker/Greatness/pkg/manifest"
	"github.com/spf13/afero"
)

// PathFunc turns a portable path into a path on this host
type PathFunc func(portable string) string

// Applied reports the scripts run on one file
type Applied struct {
	File    string
	Scripts []string
	Changed bool
}

// Runner applies assigned scripts to tracked files
type Runner struct {
	Engine *Engine
	// ResolveFile locates a tracked file
	ResolveFile PathFunc
	// ResolveScript locates a script; defaults to ResolveFile
	ResolveScript PathFunc
}

// RunFile applies every script assigned to f, in order, and writes the
// result back when it differs
func (r *Runner) RunFile(f manifest.TrackedFile) (Applied, error) {
	applied := Applied{File: f.Path}
	if len(f.Scripts) == 0 {
		return applied, nil
	}

	fs := r.Engine.Fs
	path := followLink(fs, r.ResolveFile(f.Path))
	info, err := fs.Stat(path)
	if err != nil {
		return applied, errors.Wrapf(err, errors.ErrNotFound, "cannot read %s", path).
			WithDetail("path", path)
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return applied, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path).
			WithDetail("path", path)
	}

	original := string(data)
	contents := original
	resolveScript := r.ResolveScript
	if resolveScript == nil {
		resolveScript = r.ResolveFile
	}
	for _, script := range f.Scripts {
		contents, err = r.Engine.Run(resolveScript(script), contents, f.Path)
		if err != nil {
			return applied, err
		}
		applied.Scripts = append(applied.Scripts, script)
	}

	if contents == original {
		return applied, nil
	}
	if err := filesystem.AtomicWriteFile(fs, path, []byte(contents), info.Mode().Perm()); err != nil {
		return applied, err
	}
	applied.Changed = true
	logger := logging.GetLogger("script")
	logger.Info().
		Str("file", path).
		Int("scripts", len(applied.Scripts)).
		Msg("Transformed file")
	return applied, nil
}

// followLink returns the target of a symlinked file so that writing the
// result keeps the link intact
func followLink(fs afero.Fs, path string) string {
	if !filesystem.IsSymlink(fs, path) {
		return path
	}
	target, err := filesystem.Readlink(fs, path)
	if err != nil {
		return path
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(path), target)
	}
	return target
}

// Jog runs the scripts of every selected file that has any. The first
// failure stops the jog.
func (r *Runner) Jog(doc *manifest.Document, sel manifest.Selector) ([]Applied, error) {
	if sel == nil {
		sel = manifest.All()
	}
	files, err := doc.Select(sel)
	if err != nil {
		return nil, err
	}

	var out []Applied
	for _, f := range files {
		if len(f.Scripts) == 0 {
			continue
		}
		applied, err := r.RunFile(f)
		if err != nil {
			return out, err
		}
		out = append(out, applied)
	}
	return out, nil
}
