package commands

import (
	"path/filepath"
	"strings"

	"github.com/IsaccBarker/Greatness/pkg/errors"
	"github.com/IsaccBarker/Greatness/pkg/filesystem"
	"github.com/IsaccBarker/Greatness/pkg/logging"
	"github.com/IsaccBarker/Greatness/pkg/manifest"
	"github.com/IsaccBarker/Greatness/pkg/scripts"
)

func (s *Session) scriptRunner() *scripts.Runner {
	return &scripts.Runner{
		Engine:      scripts.NewEngine(s.State.Fs, s.Config.Scripts.Timeout),
		ResolveFile: s.State.Decode,
	}
}

// RegisterScript copies a script into the scripts directory after checking
// that it compiles, and returns its portable path. Registering the same
// content twice is a no-op.
func (s *Session) RegisterScript(file string) (string, error) {
	fs := s.State.Fs
	src, err := filepath.Abs(file)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "cannot make %s absolute", file)
	}
	if _, err := s.scriptRunner().Engine.Compile(src); err != nil {
		return "", err
	}

	dst := filepath.Join(s.State.Layout.ScriptsDir(), filepath.Base(src))
	portable := s.State.Codec.Encode(dst)
	if ok, _ := filesystem.Exists(fs, dst); ok {
		if same, err := filesystem.SameContent(fs, src, dst); err == nil && same {
			return portable, nil
		}
		return "", errors.Newf(errors.ErrAlreadyExists, "a different script named %s is already registered", filepath.Base(src)).
			WithPaths(src, dst)
	}

	if err := fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", filepath.Dir(dst)).
			WithDetail("path", filepath.Dir(dst))
	}
	if err := filesystem.CopyFile(fs, src, dst); err != nil {
		return "", err
	}
	logger := logging.GetLogger("commands.script")
	logger.Info().Str("script", dst).Msg("Registered script")
	return portable, nil
}

// AssignScript appends script to the scripts run on a tracked file. script
// is the name of a registered script or a path to one.
func (s *Session) AssignScript(file, script string) error {
	portable, err := s.resolveTracked(file)
	if err != nil {
		return err
	}
	scriptPath, err := s.resolveScript(script, true)
	if err != nil {
		return err
	}
	if err := s.State.Doc.AssignScript(portable, scriptPath); err != nil {
		return err
	}
	return s.State.Save()
}

// UnassignScript removes script from a tracked file
func (s *Session) UnassignScript(file, script string) error {
	portable, err := s.resolveTracked(file)
	if err != nil {
		return err
	}
	scriptPath, err := s.resolveScript(script, false)
	if err != nil {
		return err
	}
	if err := s.State.Doc.UnassignScript(portable, scriptPath); err != nil {
		return err
	}
	return s.State.Save()
}

// resolveScript turns a script argument into a portable path. Bare names
// refer to registered scripts.
func (s *Session) resolveScript(script string, mustExist bool) (string, error) {
	if strings.HasPrefix(script, "{{") {
		return script, nil
	}
	if !strings.ContainsRune(script, filepath.Separator) {
		registered := filepath.Join(s.State.Layout.ScriptsDir(), script)
		if ok, _ := filesystem.Exists(s.State.Fs, registered); ok || !mustExist {
			return s.State.Codec.Encode(registered), nil
		}
	}
	if mustExist {
		abs, err := filepath.Abs(script)
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrInvalidInput, "cannot make %s absolute", script)
		}
		if ok, _ := filesystem.Exists(s.State.Fs, abs); !ok {
			return "", errors.Newf(errors.ErrNotFound, "script %s does not exist", script).
				WithDetail("script", script)
		}
		return s.State.Codec.Encode(abs), nil
	}
	return s.State.Codec.EncodeLexical(script)
}

// RunScripts applies the scripts assigned to one tracked file
func (s *Session) RunScripts(file string) (*scripts.Applied, error) {
	portable, err := s.resolveTracked(file)
	if err != nil {
		return nil, err
	}
	f, _ := s.State.Doc.Contains(portable)
	if f == nil {
		return nil, errors.Newf(errors.ErrFileNotTracked, "%s is not tracked", portable).
			WithDetail("path", portable)
	}
	applied, err := s.scriptRunner().RunFile(*f)
	if err != nil {
		return nil, err
	}
	return &applied, nil
}

// JogOptions selects the files a jog runs over
type JogOptions struct {
	Tag   string
	Where string
}

// Jog applies assigned scripts to every selected tracked file
func (s *Session) Jog(opts JogOptions) ([]scripts.Applied, error) {
	sel, err := manifest.NewSelector(opts.Tag, opts.Where)
	if err != nil {
		return nil, err
	}
	return s.scriptRunner().Jog(s.State.Doc, sel)
}
