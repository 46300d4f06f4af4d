package scripts

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/IsaccBarker/Greatness/pkg/errors"
	"github.com/IsaccBarker/Greatness/pkg/manifest"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, fs afero.Fs, path, src string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, afero.WriteFile(fs, path, []byte(src), 0644))
}

func TestRun(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		want     string
		wantCode errors.ErrorCode
	}{
		{
			name: "uppercase",
			src:  `function transform(contents, file) { return contents.toUpperCase() }`,
			want: "HELLO",
		},
		{
			name: "file identity is passed",
			src:  `function transform(contents, file) { info("on " + file); return file + ":" + contents }`,
			want: "{{HOME}}/.rc:hello",
		},
		{
			name:     "syntax error",
			src:      `function transform(contents { return contents }`,
			wantCode: errors.ErrScriptCompile,
		},
		{
			name:     "missing entry point",
			src:      `var x = 1`,
			wantCode: errors.ErrScriptCompile,
		},
		{
			name:     "thrown error",
			src:      `function transform(c) { error("bad"); throw new Error("boom") }`,
			wantCode: errors.ErrScriptRun,
		},
		{
			name:     "non string result",
			src:      `function transform(c) { return 42 }`,
			wantCode: errors.ErrScriptRun,
		},
		{
			name:     "undefined result",
			src:      `function transform(c) { warn("nothing") }`,
			wantCode: errors.ErrScriptRun,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			writeScript(t, fs, "/scripts/s.js", tt.src)

			got, err := NewEngine(fs, 0).Run("/scripts/s.js", "hello", "{{HOME}}/.rc")
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, tt.wantCode), err.Error())
				assert.Equal(t, "/scripts/s.js", errors.GetErrorDetails(err)["script"])
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunTimeout(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeScript(t, fs, "/s.js", `function transform(c) { while (true) {} }`)

	_, err := NewEngine(fs, 50*time.Millisecond).Run("/s.js", "", "f")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrScriptRun))
}

func TestCompileIsCached(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeScript(t, fs, "/s.js", `function transform(c) { return c + "1" }`)
	e := NewEngine(fs, 0)

	first, err := e.Compile("/s.js")
	require.NoError(t, err)
	writeScript(t, fs, "/s.js", `function transform(c) { return c + "2" }`)
	second, err := e.Compile("/s.js")
	require.NoError(t, err)
	assert.Same(t, first, second)

	_, err = e.Compile("/missing.js")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestJog(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeScript(t, fs, "/home/u/.greatness/scripts/upper.js", `function transform(c) { return c.toUpperCase() }`)
	writeScript(t, fs, "/home/u/.greatness/scripts/bang.js", `function transform(c) { return c + "!" }`)
	writeScript(t, fs, "/home/u/.rc", "hi")
	writeScript(t, fs, "/home/u/.plain", "untouched")
	writeScript(t, fs, "/home/u/.same", "SAME")

	doc := &manifest.Document{Files: []manifest.TrackedFile{
		{Path: "{{HOME}}/.rc", Tag: "shell", Scripts: []string{
			"{{HOME}}/.greatness/scripts/upper.js",
			"{{HOME}}/.greatness/scripts/bang.js",
		}},
		{Path: "{{HOME}}/.plain"},
		{Path: "{{HOME}}/.same", Scripts: []string{"{{HOME}}/.greatness/scripts/upper.js"}},
	}}

	r := &Runner{
		Engine: NewEngine(fs, 0),
		ResolveFile: func(p string) string {
			return filepath.Join("/home/u", p[len("{{HOME}}"):])
		},
	}

	applied, err := r.Jog(doc, nil)
	require.NoError(t, err)
	require.Len(t, applied, 2)
	assert.True(t, applied[0].Changed)
	assert.False(t, applied[1].Changed)

	data, err := afero.ReadFile(fs, "/home/u/.rc")
	require.NoError(t, err)
	assert.Equal(t, "HI!", string(data))

	data, err = afero.ReadFile(fs, "/home/u/.plain")
	require.NoError(t, err)
	assert.Equal(t, "untouched", string(data))

	t.Run("selector limits the jog", func(t *testing.T) {
		applied, err := r.Jog(doc, manifest.WithTag("none"))
		require.NoError(t, err)
		assert.Empty(t, applied)
	})

	t.Run("missing tracked file", func(t *testing.T) {
		_, err := r.RunFile(manifest.TrackedFile{Path: "{{HOME}}/.gone", Scripts: []string{"{{HOME}}/.greatness/scripts/upper.js"}})
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	})
}

func TestRunFileKeepsSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "store", "rc")
	link := filepath.Join(dir, "home", "rc")
	script := filepath.Join(dir, "upper.js")
	require.NoError(t, os.MkdirAll(filepath.Dir(target), 0755))
	require.NoError(t, os.MkdirAll(filepath.Dir(link), 0755))
	require.NoError(t, os.WriteFile(target, []byte("abc"), 0600))
	require.NoError(t, os.Symlink(target, link))
	require.NoError(t, os.WriteFile(script, []byte(`function transform(c) { return c.toUpperCase() }`), 0644))

	r := &Runner{
		Engine:      NewEngine(afero.NewOsFs(), 0),
		ResolveFile: func(p string) string { return p },
	}
	applied, err := r.RunFile(manifest.TrackedFile{Path: link, Scripts: []string{script}})
	require.NoError(t, err)
	assert.True(t, applied.Changed)

	info, err := os.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "ABC", string(data))

	info, err = os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
