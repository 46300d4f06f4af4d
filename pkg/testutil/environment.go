package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/IsaccBarker/Greatness/pkg/filesystem"
	"github.com/IsaccBarker/Greatness/pkg/manifest"
	"github.com/IsaccBarker/Greatness/pkg/paths"
	"github.com/IsaccBarker/Greatness/pkg/state"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// TestEnvironment is a home directory plus an initialized greatness state
// directory inside it
type TestEnvironment struct {
	Home   string
	Root   string
	Fs     afero.Fs
	Layout paths.Layout
	Codec  *paths.Codec
	State  *state.LocalState
	Type   EnvType

	t *testing.T
}

// NewTestEnvironment creates the home and state directories, writes an empty
// manifest and opens the state
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{t: t, Type: envType}
	switch envType {
	case EnvMemoryOnly:
		env.Fs = afero.NewMemMapFs()
		env.Home = "/virtual/home"
	case EnvIsolated:
		env.Fs = filesystem.NewOS()
		// EvalSymlinks keeps paths stable where the temp dir is itself a link
		home, err := filepath.EvalSymlinks(t.TempDir())
		require.NoError(t, err)
		env.Home = home
		t.Setenv("HOME", home)
	}
	env.Root = filepath.Join(env.Home, paths.DefaultDirName)
	t.Setenv(paths.EnvGreatnessDir, env.Root)

	layout, err := paths.NewLayout(env.Root)
	require.NoError(t, err)
	env.Layout = layout
	env.Codec = paths.NewCodec(paths.KnownDirs{
		Home:      env.Home,
		Documents: filepath.Join(env.Home, "Documents"),
	})

	require.NoError(t, env.Fs.MkdirAll(env.Home, 0755))
	require.NoError(t, state.InitNoDamage(context.Background(), env.Fs, layout, nil))
	env.State, err = state.Open(env.Fs, layout, env.Codec)
	require.NoError(t, err)
	return env
}

// HomePath joins rel onto the home directory
func (env *TestEnvironment) HomePath(rel string) string {
	return filepath.Join(env.Home, rel)
}

// WriteFile creates path with content, including parent directories
func (env *TestEnvironment) WriteFile(path, content string) string {
	env.t.Helper()
	WriteFile(env.t, env.Fs, path, content)
	return path
}

// ReadFile returns the content of path, failing the test when unreadable
func (env *TestEnvironment) ReadFile(path string) string {
	env.t.Helper()
	data, err := afero.ReadFile(env.Fs, path)
	require.NoError(env.t, err)
	return string(data)
}

// Exists reports whether path exists
func (env *TestEnvironment) Exists(path string) bool {
	ok, err := filesystem.Exists(env.Fs, path)
	return err == nil && ok
}

// SavedManifest loads the manifest as currently written on disk
func (env *TestEnvironment) SavedManifest() *manifest.Document {
	env.t.Helper()
	doc, err := manifest.Load(env.Fs, env.Layout.ManifestPath())
	require.NoError(env.t, err)
	return doc
}

// WriteFile creates path with content on fs, including parent directories
func WriteFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
}
