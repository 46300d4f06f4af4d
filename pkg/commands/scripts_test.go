package commands

import (
	"testing"

	"github.com/IsaccBarker/Greatness/pkg/errors"
	"github.com/IsaccBarker/Greatness/pkg/manifest"
	"github.com/IsaccBarker/Greatness/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const upperJS = `function transform(contents) { return contents.toUpperCase() }`

func TestRegisterScript(t *testing.T) {
	s, env, _ := newSession(t, testutil.EnvMemoryOnly)
	src := env.WriteFile(env.HomePath("src/upper.js"), upperJS)

	portable, err := s.RegisterScript(src)
	require.NoError(t, err)
	assert.Equal(t, "{{HOME}}/.greatness/scripts/upper.js", portable)
	assert.Equal(t, upperJS, env.ReadFile(env.HomePath(".greatness/scripts/upper.js")))

	t.Run("same content again", func(t *testing.T) {
		again, err := s.RegisterScript(src)
		require.NoError(t, err)
		assert.Equal(t, portable, again)
	})

	t.Run("different script with the same name", func(t *testing.T) {
		other := env.WriteFile(env.HomePath("other/upper.js"), `function transform(c) { return c }`)
		_, err := s.RegisterScript(other)
		assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))
	})

	t.Run("does not compile", func(t *testing.T) {
		broken := env.WriteFile(env.HomePath("src/broken.js"), `function transform(c {`)
		_, err := s.RegisterScript(broken)
		assert.True(t, errors.IsErrorCode(err, errors.ErrScriptCompile))
		assert.False(t, env.Exists(env.HomePath(".greatness/scripts/broken.js")))
	})
}

func TestAssignRunAndJog(t *testing.T) {
	s, env, _ := newSession(t, testutil.EnvMemoryOnly)
	_, err := s.RegisterScript(env.WriteFile(env.HomePath("src/upper.js"), upperJS))
	require.NoError(t, err)

	rc := env.WriteFile(env.HomePath(".rc"), "alias ll='ls -l'\n")
	work := env.WriteFile(env.HomePath(".work"), "work\n")
	require.NoError(t, s.State.Doc.AddFile(manifest.TrackedFile{Path: "{{HOME}}/.rc", Tag: "shell"}))
	require.NoError(t, s.State.Doc.AddFile(manifest.TrackedFile{Path: "{{HOME}}/.work", Tag: "work"}))

	require.NoError(t, s.AssignScript(rc, "upper.js"))
	require.NoError(t, s.AssignScript(work, "upper.js"))
	err = s.AssignScript(rc, "upper.js")
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))
	err = s.AssignScript(rc, "missing.js")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	assert.Equal(t, []string{"{{HOME}}/.greatness/scripts/upper.js"}, env.SavedManifest().Files[0].Scripts)

	applied, err := s.RunScripts(rc)
	require.NoError(t, err)
	assert.True(t, applied.Changed)
	assert.Equal(t, "ALIAS LL='LS -L'\n", env.ReadFile(rc))

	jogged, err := s.Jog(JogOptions{Tag: "work"})
	require.NoError(t, err)
	require.Len(t, jogged, 1)
	assert.Equal(t, "{{HOME}}/.work", jogged[0].File)
	assert.Equal(t, "WORK\n", env.ReadFile(work))

	_, err = s.Jog(JogOptions{Where: "tag =="})
	assert.True(t, errors.IsErrorCode(err, errors.ErrSelectorCompile))

	require.NoError(t, s.UnassignScript(rc, "upper.js"))
	err = s.UnassignScript(rc, "upper.js")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	assert.Empty(t, env.SavedManifest().Files[0].Scripts)

	t.Run("untracked file", func(t *testing.T) {
		_, err := s.RunScripts(env.HomePath(".nope"))
		assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotTracked))
	})
}
