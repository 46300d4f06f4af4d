// Package commands implements the greatness operations the CLI exposes.
//
// Every operation runs against a Session: the opened state directory, the
// effective configuration and the collaborators (git, package managers)
// the operation may need. Operations that change the manifest save it
// before returning.
package commands

import (
	"context"

	"github.com/IsaccBarker/Greatness/pkg/config"
	"github.com/IsaccBarker/Greatness/pkg/git"
	"github.com/IsaccBarker/Greatness/pkg/logging"
	"github.com/IsaccBarker/Greatness/pkg/packages"
	"github.com/IsaccBarker/Greatness/pkg/paths"
	"github.com/IsaccBarker/Greatness/pkg/state"
	"github.com/spf13/afero"
)

// Session is the context of one command
type Session struct {
	State  *state.LocalState
	Config *config.Config
	Git    git.Client

	// LookPath finds package managers; nil uses exec.LookPath
	LookPath packages.LookPathFunc
	// Runner executes package manager commands; nil runs them attached to
	// the terminal
	Runner packages.Runner
}

// InitOptions holds options for Init
type InitOptions struct {
	Fs     afero.Fs
	Layout paths.Layout
	Git    git.Client
	// Force replaces an existing manifest with an empty one
	Force bool
}

// Init creates the greatness directory and its pack repository
func Init(ctx context.Context, opts InitOptions) error {
	logger := logging.GetLogger("commands.init")
	logger.Info().
		Str("root", opts.Layout.Root()).
		Bool("force", opts.Force).
		Msg("Initializing greatness directory")

	var repo state.RepoInitializer
	if opts.Git != nil {
		repo = opts.Git
	}
	return state.Init(ctx, opts.Fs, opts.Layout, repo, opts.Force)
}

// OpenOptions holds options for Open
type OpenOptions struct {
	Fs     afero.Fs
	Layout paths.Layout
	// Codec defaults to one built from this host's known directories
	Codec *paths.Codec
	// Config defaults to the configuration found in the layout
	Config *config.Config
	Git    git.Client
}

// Open loads the state directory and returns a session on it
func Open(opts OpenOptions) (*Session, error) {
	if opts.Codec == nil {
		dirs, err := paths.DefaultKnownDirs()
		if err != nil {
			return nil, err
		}
		opts.Codec = paths.NewCodec(dirs)
	}
	if opts.Config == nil {
		cfg, err := config.Load(opts.Layout.ConfigPath(), nil)
		if err != nil {
			return nil, err
		}
		opts.Config = cfg
	}

	st, err := state.Open(opts.Fs, opts.Layout, opts.Codec)
	if err != nil {
		return nil, err
	}
	return &Session{State: st, Config: opts.Config, Git: opts.Git}, nil
}

// packageInstaller picks the package manager for this host
func (s *Session) packageInstaller() (*packages.Installer, error) {
	inst, err := packages.NewInstaller(s.Config.Catalog(), s.LookPath, s.Config.Packages.Sudo)
	if err != nil {
		return nil, err
	}
	if s.Runner != nil {
		inst.Runner = s.Runner
	}
	return inst, nil
}
