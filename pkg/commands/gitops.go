package commands

import (
	"context"
	"os"
	"os/exec"

	"github.com/IsaccBarker/Greatness/pkg/errors"
	"github.com/IsaccBarker/Greatness/pkg/logging"
)

// PromptPS1 is the shell prompt shown inside the pack repository
const PromptPS1 = "greatness (git prompt) > "

func (s *Session) packRepo() (string, error) {
	if s.Git == nil {
		return "", errors.New(errors.ErrInternal, "no git client configured")
	}
	if !s.State.HasPackRepo() {
		return "", errors.Newf(errors.ErrNotFound,
			"no pack repository in %s, run `greatness init` first", s.State.Layout.PackDir()).
			WithDetail("path", s.State.Layout.PackDir())
	}
	return s.State.Layout.PackDir(), nil
}

// GitAdd stages every change in the pack repository
func (s *Session) GitAdd(ctx context.Context) error {
	dir, err := s.packRepo()
	if err != nil {
		return err
	}
	return s.Git.AddAll(ctx, dir)
}

// GitCommit commits the staged changes of the pack repository
func (s *Session) GitCommit(ctx context.Context, message string) error {
	dir, err := s.packRepo()
	if err != nil {
		return err
	}
	return s.Git.Commit(ctx, dir, message)
}

// GitPush pushes the pack repository to its remote
func (s *Session) GitPush(ctx context.Context) error {
	dir, err := s.packRepo()
	if err != nil {
		return err
	}
	return s.Git.Push(ctx, dir)
}

// GitPull pulls remote changes into the pack repository
func (s *Session) GitPull(ctx context.Context) error {
	dir, err := s.packRepo()
	if err != nil {
		return err
	}
	return s.Git.Pull(ctx, dir)
}

// GitSetRemote points the pack repository at url
func (s *Session) GitSetRemote(ctx context.Context, url string) error {
	dir, err := s.packRepo()
	if err != nil {
		return err
	}
	return s.Git.SetRemote(ctx, dir, url)
}

// PromptCommand returns a shell running in the pack repository with a
// prompt that makes the location obvious. shell defaults to $SHELL, then sh.
func (s *Session) PromptCommand(ctx context.Context, shell string) (*exec.Cmd, error) {
	dir, err := s.packRepo()
	if err != nil {
		return nil, err
	}
	if shell == "" {
		shell = os.Getenv("SHELL")
	}
	if shell == "" {
		shell = "sh"
	}

	logging.LogCommand(logging.GetLogger("commands.prompt"), shell, nil)
	cmd := exec.CommandContext(ctx, shell)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "PS1="+PromptPS1)
	return cmd, nil
}
