// Package git is the version-control collaborator: cloning remote
// manifests and maintaining the local pack repository.
package git

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/IsaccBarker/Greatness/pkg/errors"
	"github.com/IsaccBarker/Greatness/pkg/logging"
)

// Client provides the git operations greatness needs
type Client interface {
	// Clone fetches url into dest, which must not exist yet
	Clone(ctx context.Context, url, dest string) error
	// Init creates an empty repository in dir
	Init(ctx context.Context, dir string) error
	// AddAll stages every change in dir
	AddAll(ctx context.Context, dir string) error
	// Commit records the staged changes in dir
	Commit(ctx context.Context, dir, message string) error
	// Push sends the current branch of dir to its remote
	Push(ctx context.Context, dir string) error
	// Pull merges remote changes into dir
	Pull(ctx context.Context, dir string) error
	// SetRemote points the origin remote of dir at url
	SetRemote(ctx context.Context, dir, url string) error
}

// RemoteName is the remote greatness manages
const RemoteName = "origin"

// ShellClient implements Client by shelling out to the git command
type ShellClient struct {
	binary string
}

// NewShellClient creates a git client that uses the git binary on PATH
func NewShellClient() *ShellClient {
	return &ShellClient{binary: "git"}
}

// Clone clones url into dest. A partially written dest is removed when the
// clone fails.
func (c *ShellClient) Clone(ctx context.Context, url, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return errors.Wrap(err, errors.ErrDirCreate, "failed to create parent directory").
			WithDetail("path", dest)
	}

	cmd := c.command(ctx, "", "clone", "--depth", "1", url, dest)
	// a missing repository must fail instead of asking for credentials
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	if err := c.runCommand(cmd); err != nil {
		_ = os.RemoveAll(dest)
		return errors.Wrapf(err, errors.ErrTransport, "git clone of %s failed", url).
			WithDetail("url", url).
			WithDetail("destination", dest)
	}
	return nil
}

// Init runs git init in dir
func (c *ShellClient) Init(ctx context.Context, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, errors.ErrDirCreate, "failed to create repository directory").
			WithDetail("path", dir)
	}
	return c.run(ctx, dir, "init")
}

// AddAll runs git add -A in dir
func (c *ShellClient) AddAll(ctx context.Context, dir string) error {
	return c.run(ctx, dir, "add", "-A")
}

// Commit runs git commit -m message in dir
func (c *ShellClient) Commit(ctx context.Context, dir, message string) error {
	if strings.TrimSpace(message) == "" {
		return errors.New(errors.ErrInvalidInput, "commit message must not be empty")
	}
	return c.run(ctx, dir, "commit", "-m", message)
}

// Push pushes the current branch, setting its upstream on first push
func (c *ShellClient) Push(ctx context.Context, dir string) error {
	return c.run(ctx, dir, "push", "--set-upstream", RemoteName, "HEAD")
}

// Pull runs git pull in dir
func (c *ShellClient) Pull(ctx context.Context, dir string) error {
	return c.run(ctx, dir, "pull", "--ff-only")
}

// SetRemote adds the origin remote, or changes its url when it exists
func (c *ShellClient) SetRemote(ctx context.Context, dir, url string) error {
	if url == "" {
		return errors.New(errors.ErrInvalidInput, "remote url must not be empty")
	}
	if _, err := c.output(ctx, dir, "remote", "get-url", RemoteName); err == nil {
		return c.run(ctx, dir, "remote", "set-url", RemoteName, url)
	}
	return c.run(ctx, dir, "remote", "add", RemoteName, url)
}

// Head returns the commit hash HEAD points at in dir
func (c *ShellClient) Head(ctx context.Context, dir string) (string, error) {
	return c.output(ctx, dir, "rev-parse", "HEAD")
}

func (c *ShellClient) command(ctx context.Context, dir string, args ...string) *exec.Cmd {
	if dir != "" {
		args = append([]string{"-C", dir}, args...)
	}
	logging.LogCommand(logging.GetLogger("git"), c.binary, args)
	return exec.CommandContext(ctx, c.binary, args...)
}

func (c *ShellClient) run(ctx context.Context, dir string, args ...string) error {
	if err := c.runCommand(c.command(ctx, dir, args...)); err != nil {
		return errors.Wrapf(err, errors.ErrGit, "git %s failed", args[0]).
			WithDetail("dir", dir)
	}
	return nil
}

func (c *ShellClient) output(ctx context.Context, dir string, args ...string) (string, error) {
	out, err := c.command(ctx, dir, args...).Output()
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrGit, "git %s failed", args[0]).
			WithDetail("dir", dir)
	}
	return strings.TrimSpace(string(out)), nil
}

// runCommand executes a command and returns an error with its output on failure
func (c *ShellClient) runCommand(cmd *exec.Cmd) error {
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}
