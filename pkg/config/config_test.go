package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/IsaccBarker/Greatness/pkg/errors"
	"github.com/IsaccBarker/Greatness/pkg/install"
	"github.com/IsaccBarker/Greatness/pkg/packages"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "github.com", cfg.Pull.DefaultHost)
	assert.Equal(t, "copy", cfg.Install.Mode)
	assert.Equal(t, "prompt", cfg.Install.Overwrite)
	assert.Equal(t, "sudo", cfg.Packages.Sudo)
	assert.Equal(t, 10*time.Second, cfg.Scripts.Timeout)

	mode, err := cfg.InstallMode()
	require.NoError(t, err)
	assert.Equal(t, install.ModeCopy, mode)
	policy, err := cfg.OverwritePolicy()
	require.NoError(t, err)
	assert.Equal(t, install.OverwritePrompt, policy)
}

func TestDefaultCatalogMatchesBuiltin(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	catalog := cfg.Catalog()
	builtin := packages.DefaultCatalog()
	require.Equal(t, builtin.Names(), catalog.Names())
	for _, name := range builtin.Names() {
		want, _ := builtin.Lookup(name)
		got, _ := catalog.Lookup(name)
		assert.Equal(t, want.Root, got.Root, name)
		assert.Equal(t, want.Priority, got.Priority, name)
		assert.Equal(t, len(want.Args), len(got.Args), name)
		if len(want.Args) > 0 {
			assert.Equal(t, want.Args, got.Args, name)
		}
		assert.Equal(t, name, catalog[name].Name)
	}
}

func TestLoadLayers(t *testing.T) {
	path := writeConfig(t, `
[pull]
default_host = "gitlab.com"

[install]
mode = "symlink"

[packages.managers.zypper]
root = true
priority = 3
args = ["install", "-y"]

[scripts]
timeout = "2s"
`)

	t.Run("file overrides defaults", func(t *testing.T) {
		cfg, err := Load(path, nil)
		require.NoError(t, err)
		assert.Equal(t, "gitlab.com", cfg.Pull.DefaultHost)
		assert.Equal(t, "symlink", cfg.Install.Mode)
		assert.Equal(t, "prompt", cfg.Install.Overwrite)
		assert.Equal(t, 2*time.Second, cfg.Scripts.Timeout)

		zypper, ok := cfg.Catalog().Lookup("zypper")
		require.True(t, ok)
		assert.True(t, zypper.Root)
		assert.Equal(t, 3, zypper.Priority)
		assert.Equal(t, []string{"install", "-y"}, zypper.Args)

		_, ok = cfg.Catalog().Lookup("pacman")
		assert.True(t, ok, "defaults survive alongside new managers")
	})

	t.Run("environment overrides file", func(t *testing.T) {
		t.Setenv("GREATNESS_INSTALL__OVERWRITE", "never")
		t.Setenv("GREATNESS_PACKAGES__MANAGERS__BREW__PRIORITY", "9")
		t.Setenv("GREATNESS_DIR", "/not/a/setting")

		cfg, err := Load(path, nil)
		require.NoError(t, err)
		assert.Equal(t, "never", cfg.Install.Overwrite)
		assert.Equal(t, 9, cfg.Catalog()["brew"].Priority)
		assert.Equal(t, "symlink", cfg.Install.Mode)
	})

	t.Run("overrides win", func(t *testing.T) {
		t.Setenv("GREATNESS_INSTALL__OVERWRITE", "never")

		cfg, err := Load(path, map[string]interface{}{
			"install.overwrite": "always",
			"install.mode":      "copy",
		})
		require.NoError(t, err)
		assert.Equal(t, "always", cfg.Install.Overwrite)
		assert.Equal(t, "copy", cfg.Install.Mode)
	})
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"), nil)
	require.NoError(t, err)
	assert.Equal(t, "github.com", cfg.Pull.DefaultHost)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		overrides map[string]interface{}
	}{
		{name: "malformed toml", content: "[install\nmode = "},
		{name: "bad mode", content: "[install]\nmode = \"hardlink\"\n"},
		{name: "bad policy", overrides: map[string]interface{}{"install.overwrite": "sometimes"}},
		{name: "empty host", overrides: map[string]interface{}{"pull.default_host": " "}},
		{name: "bad timeout", content: "[scripts]\ntimeout = \"soon\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := ""
			if tt.content != "" {
				path = writeConfig(t, tt.content)
			}
			_, err := Load(path, tt.overrides)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse), err.Error())
		})
	}
}

func TestRender(t *testing.T) {
	cfg, err := Load("", map[string]interface{}{"pull.default_host": "example.org"})
	require.NoError(t, err)

	out, err := cfg.Render()
	require.NoError(t, err)
	assert.Contains(t, out, "default_host")
	assert.Contains(t, out, "example.org")
	assert.Contains(t, out, "[packages.managers.pacman]")
	assert.Contains(t, out, "10s")
}

func TestDefaultsContent(t *testing.T) {
	assert.Contains(t, DefaultsContent(), "[packages.managers.yay]")
}
