package commands

import (
	"context"
	"path/filepath"

	"github.com/IsaccBarker/Greatness/pkg/filesystem"
	"github.com/IsaccBarker/Greatness/pkg/install"
	"github.com/IsaccBarker/Greatness/pkg/logging"
	"github.com/IsaccBarker/Greatness/pkg/manifest"
	"github.com/IsaccBarker/Greatness/pkg/paths"
	"github.com/IsaccBarker/Greatness/pkg/pull"
	"github.com/IsaccBarker/Greatness/pkg/scripts"
)

// PullOptions holds options for Pull and Update
type PullOptions struct {
	pull.Options
	// Mode and Policy override the configured install settings when set
	Mode   install.Mode
	Policy install.OverwritePolicy
	// Confirm answers overwrite prompts
	Confirm install.ConfirmFunc
}

// Pull fetches location, installs its files and everything it requires
func (s *Session) Pull(ctx context.Context, location string, opts PullOptions) (*pull.Report, error) {
	r, err := s.resolver(opts)
	if err != nil {
		return nil, err
	}
	return r.Resolve(ctx, location, opts.Options)
}

// Update fetches every recorded requirement again
func (s *Session) Update(ctx context.Context, opts PullOptions) (*pull.Report, error) {
	r, err := s.resolver(opts)
	if err != nil {
		return nil, err
	}
	return r.Update(ctx, opts.Options)
}

// Repel drops the requirements named name and their checkouts
func (s *Session) Repel(name string) ([]manifest.Dependency, error) {
	r := &pull.Resolver{State: s.State, Git: s.Git, DefaultHost: s.Config.Pull.DefaultHost}
	return r.Repel(name)
}

func (s *Session) resolver(opts PullOptions) (*pull.Resolver, error) {
	mode := opts.Mode
	if mode == "" {
		m, err := s.Config.InstallMode()
		if err != nil {
			return nil, err
		}
		mode = m
	}
	policy := opts.Policy
	if policy == "" {
		p, err := s.Config.OverwritePolicy()
		if err != nil {
			return nil, err
		}
		policy = p
	}

	return &pull.Resolver{
		State:       s.State,
		Git:         s.Git,
		Installer:   install.New(s.State.Fs, mode, policy, opts.Confirm),
		DefaultHost: s.Config.Pull.DefaultHost,
		Mods:        s.applyMods,
	}, nil
}

// applyMods runs the scripts of a fetched manifest over those of its files
// present on this host, then installs its packages
func (s *Session) applyMods(ctx context.Context, dir string, doc *manifest.Document) error {
	logger := logging.GetLogger("commands.pull")
	checkoutScripts := paths.ForCheckout(dir).ScriptsDir()

	present := &manifest.Document{}
	for _, f := range doc.Files {
		if ok, _ := filesystem.Exists(s.State.Fs, s.State.Decode(f.Path)); ok {
			present.Files = append(present.Files, f)
		}
	}

	runner := &scripts.Runner{
		Engine:      scripts.NewEngine(s.State.Fs, s.Config.Scripts.Timeout),
		ResolveFile: s.State.Decode,
		ResolveScript: func(script string) string {
			shipped := filepath.Join(checkoutScripts, filepath.Base(s.State.Decode(script)))
			if ok, _ := filesystem.Exists(s.State.Fs, shipped); ok {
				return shipped
			}
			return s.State.Decode(script)
		},
	}
	applied, err := runner.Jog(present, nil)
	if err != nil {
		return err
	}
	logger.Info().Int("files", len(applied)).Str("checkout", dir).Msg("Ran fetched scripts")

	if len(doc.Packages) == 0 {
		return nil
	}
	inst, err := s.packageInstaller()
	if err != nil {
		return err
	}
	installed, err := inst.InstallAll(ctx, doc.Packages)
	logger.Info().Strs("packages", installed).Msg("Installed fetched packages")
	return err
}
