package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/IsaccBarker/Greatness/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	t.Setenv("GIT_AUTHOR_NAME", "Test")
	t.Setenv("GIT_AUTHOR_EMAIL", "test@test.com")
	t.Setenv("GIT_COMMITTER_NAME", "Test")
	t.Setenv("GIT_COMMITTER_EMAIL", "test@test.com")
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("HOME", t.TempDir())
}

// commitFile writes name into repo and commits it
func commitFile(t *testing.T, c *ShellClient, repo, name, content string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, os.MkdirAll(filepath.Dir(filepath.Join(repo, name)), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(repo, name), []byte(content), 0644))
	require.NoError(t, c.AddAll(ctx, repo))
	require.NoError(t, c.Commit(ctx, repo, "add "+name))
}

func TestCloneLocalRepository(t *testing.T) {
	requireGit(t)
	ctx := context.Background()
	c := NewShellClient()

	remote := t.TempDir()
	require.NoError(t, c.Init(ctx, remote))
	commitFile(t, c, remote, "greatness.yaml", "{}\n")

	dest := filepath.Join(t.TempDir(), "pulled", "example.com", "alice", "dots")
	require.NoError(t, c.Clone(ctx, remote, dest))

	got, err := os.ReadFile(filepath.Join(dest, "greatness.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(got))

	head, err := c.Head(ctx, dest)
	require.NoError(t, err)
	assert.Len(t, head, 40)
}

func TestCloneFailureRemovesDestination(t *testing.T) {
	requireGit(t)
	c := NewShellClient()

	dest := filepath.Join(t.TempDir(), "checkout")
	err := c.Clone(context.Background(), filepath.Join(t.TempDir(), "does-not-exist"), dest)

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTransport))
	assert.NoDirExists(t, dest)
}

func TestPushAndPull(t *testing.T) {
	requireGit(t)
	ctx := context.Background()
	c := NewShellClient()

	bare := filepath.Join(t.TempDir(), "remote.git")
	out, err := exec.Command("git", "init", "--bare", bare).CombinedOutput()
	require.NoError(t, err, string(out))

	pack := t.TempDir()
	require.NoError(t, c.Init(ctx, pack))
	require.NoError(t, c.SetRemote(ctx, pack, bare))
	commitFile(t, c, pack, "greatness.yaml", "{}\n")
	require.NoError(t, c.Push(ctx, pack))

	other := filepath.Join(t.TempDir(), "other")
	require.NoError(t, c.Clone(ctx, bare, other))
	commitFile(t, c, other, "files/{{HOME}}/.bashrc", "alias ll='ls -l'\n")
	require.NoError(t, c.Push(ctx, other))

	require.NoError(t, c.Pull(ctx, pack))
	assert.FileExists(t, filepath.Join(pack, "files", "{{HOME}}", ".bashrc"))
}

func TestSetRemoteReplacesExistingURL(t *testing.T) {
	requireGit(t)
	ctx := context.Background()
	c := NewShellClient()

	repo := t.TempDir()
	require.NoError(t, c.Init(ctx, repo))
	require.NoError(t, c.SetRemote(ctx, repo, "https://example.com/a.git"))
	require.NoError(t, c.SetRemote(ctx, repo, "https://example.com/b.git"))

	url, err := c.output(ctx, repo, "remote", "get-url", RemoteName)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/b.git", url)
}

func TestInvalidArguments(t *testing.T) {
	c := NewShellClient()
	ctx := context.Background()

	err := c.Commit(ctx, t.TempDir(), "  ")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	err = c.SetRemote(ctx, t.TempDir(), "")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}
