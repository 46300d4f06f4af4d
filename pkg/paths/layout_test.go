package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLayout(t *testing.T) {
	tests := []struct {
		name     string
		root     string
		envSetup map[string]string
		validate func(t *testing.T, l Layout, home string)
	}{
		{
			name: "explicit root",
			root: "/tmp/greatness",
			validate: func(t *testing.T, l Layout, _ string) {
				assert.Equal(t, "/tmp/greatness", l.Root())
				assert.Equal(t, "/tmp/greatness/greatness.yaml", l.ManifestPath())
				assert.Equal(t, "/tmp/greatness/pulled", l.PulledDir())
				assert.Equal(t, "/tmp/greatness/scripts", l.ScriptsDir())
				assert.Equal(t, "/tmp/greatness/files", l.FilesDir())
				assert.Equal(t, "/tmp/greatness/packed/git", l.PackDir())
				assert.Equal(t, "/tmp/greatness/config.toml", l.ConfigPath())
			},
		},
		{
			name: "default under home",
			validate: func(t *testing.T, l Layout, home string) {
				assert.Equal(t, filepath.Join(home, ".greatness"), l.Root())
			},
		},
		{
			name:     "from GREATNESS_DIR",
			envSetup: map[string]string{EnvGreatnessDir: "/env/great"},
			validate: func(t *testing.T, l Layout, _ string) {
				assert.Equal(t, "/env/great", l.Root())
			},
		},
		{
			name: "tilde is expanded",
			root: "~/dots",
			validate: func(t *testing.T, l Layout, home string) {
				assert.Equal(t, filepath.Join(home, "dots"), l.Root())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := t.TempDir()
			t.Setenv(EnvHome, home)
			t.Setenv(EnvGreatnessDir, "")
			for k, v := range tt.envSetup {
				t.Setenv(k, v)
			}

			l, err := NewLayout(tt.root)
			require.NoError(t, err)
			tt.validate(t, l, home)
		})
	}
}

func TestLayoutDirs(t *testing.T) {
	l := ForCheckout("/x/pulled/github.com/a/b/")
	assert.Equal(t, "/x/pulled/github.com/a/b", l.Root())
	assert.Equal(t, []string{
		"/x/pulled/github.com/a/b",
		"/x/pulled/github.com/a/b/pulled",
		"/x/pulled/github.com/a/b/scripts",
		"/x/pulled/github.com/a/b/files",
		"/x/pulled/github.com/a/b/packed/git",
	}, l.Dirs())
}
