package manifest

import (
	"testing"

	"github.com/IsaccBarker/Greatness/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContains(t *testing.T) {
	doc := &Document{Files: []TrackedFile{
		{Path: "{{HOME}}/.bashrc"},
		{Path: "{{HOME}}/.vimrc", Tag: "editor"},
	}}

	f, i := doc.Contains("{{HOME}}/.vimrc")
	require.NotNil(t, f)
	assert.Equal(t, 1, i)
	assert.Equal(t, "editor", f.Tag)

	f, i = doc.Contains("{{HOME}}/.VIMRC")
	assert.Nil(t, f)
	assert.Equal(t, -1, i)

	f, i = (&Document{}).Contains("{{HOME}}/.bashrc")
	assert.Nil(t, f)
	assert.Equal(t, -1, i)
}

func TestUpsertFile(t *testing.T) {
	t.Run("idempotent", func(t *testing.T) {
		doc := &Document{}
		f := TrackedFile{Path: "{{HOME}}/.bashrc", Tag: "shell"}

		doc.UpsertFile(f)
		doc.UpsertFile(f)

		require.Len(t, doc.Files, 1)
		assert.Equal(t, f, doc.Files[0])
	})

	t.Run("replacement moves to the end", func(t *testing.T) {
		doc := &Document{Files: []TrackedFile{
			{Path: "a"}, {Path: "b"}, {Path: "c"},
		}}

		doc.UpsertFile(TrackedFile{Path: "a", Tag: "new"})

		require.Len(t, doc.Files, 3)
		assert.Equal(t, []string{"b", "c", "a"}, paths(doc))
		assert.Equal(t, "new", doc.Files[2].Tag)
	})

	t.Run("no duplicate paths after any sequence", func(t *testing.T) {
		doc := &Document{}
		for _, p := range []string{"a", "b", "a", "c", "b", "b", "a"} {
			doc.UpsertFile(TrackedFile{Path: p})
		}
		seen := map[string]int{}
		for _, f := range doc.Files {
			seen[f.Path]++
		}
		for p, n := range seen {
			assert.Equal(t, 1, n, "path %s", p)
		}
		assert.Len(t, doc.Files, 3)
	})
}

func TestAddAndRemoveFile(t *testing.T) {
	doc := &Document{}
	require.NoError(t, doc.AddFile(TrackedFile{Path: "a"}))

	err := doc.AddFile(TrackedFile{Path: "a"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))

	require.NoError(t, doc.RemoveFile("a"))
	assert.Empty(t, doc.Files)

	err = doc.RemoveFile("a")
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotTracked))
}

func TestTagsAndScripts(t *testing.T) {
	doc := &Document{}
	assert.Empty(t, doc.AllTags())
	assert.Empty(t, doc.AllScripts())

	doc.Files = []TrackedFile{
		{Path: "a", Tag: "work", Scripts: []string{"{{HOME}}/.greatness/scripts/x.js"}},
		{Path: "b"},
		{Path: "c", Tag: "home"},
		{Path: "d", Tag: "work", Scripts: []string{"{{HOME}}/.greatness/scripts/x.js", "y.js"}},
	}

	assert.Equal(t, []string{"work", "home"}, doc.AllTags())
	assert.Equal(t, []string{"{{HOME}}/.greatness/scripts/x.js", "y.js"}, doc.AllScripts())

	require.NoError(t, doc.SetTag("b", "misc"))
	assert.Equal(t, "misc", doc.Files[1].Tag)
	assert.True(t, errors.IsErrorCode(doc.SetTag("zzz", "x"), errors.ErrFileNotTracked))
}

func TestScriptAssignment(t *testing.T) {
	doc := &Document{Files: []TrackedFile{{Path: "a"}}}

	require.NoError(t, doc.AssignScript("a", "s1"))
	require.NoError(t, doc.AssignScript("a", "s2"))
	assert.True(t, errors.IsErrorCode(doc.AssignScript("a", "s1"), errors.ErrAlreadyExists))
	assert.Equal(t, []string{"s1", "s2"}, doc.Files[0].Scripts)

	require.NoError(t, doc.UnassignScript("a", "s1"))
	assert.Equal(t, []string{"s2"}, doc.Files[0].Scripts)
	assert.True(t, errors.IsErrorCode(doc.UnassignScript("a", "s1"), errors.ErrNotFound))

	require.NoError(t, doc.UnassignScript("a", "s2"))
	assert.Nil(t, doc.Files[0].Scripts)

	assert.True(t, errors.IsErrorCode(doc.AssignScript("b", "s1"), errors.ErrFileNotTracked))
}

func TestPackages(t *testing.T) {
	doc := &Document{}

	doc.UpsertPackage(TrackedPackage{Name: "vim", Overloads: map[string]string{"apt": "vim-nox"}})
	p := doc.ContainsPackage("vim")
	require.NotNil(t, p)
	assert.Equal(t, "vim-nox", p.Overloads["apt"])
	assert.Equal(t, "vim-nox", p.NameFor("apt"))
	assert.Equal(t, "vim", p.NameFor("pacman"))

	assert.Nil(t, doc.ContainsPackage("Vim"))

	require.NoError(t, doc.AddPackage("git"))
	assert.True(t, errors.IsErrorCode(doc.AddPackage("git"), errors.ErrAlreadyExists))

	require.NoError(t, doc.SetOverload("git", "port", "git-core"))
	assert.Equal(t, "git-core", doc.ContainsPackage("git").Overloads["port"])
	require.NoError(t, doc.RemoveOverload("git", "port"))
	assert.Nil(t, doc.ContainsPackage("git").Overloads)
	assert.True(t, errors.IsErrorCode(doc.RemoveOverload("git", "port"), errors.ErrNotFound))
	assert.True(t, errors.IsErrorCode(doc.SetOverload("nope", "apt", "x"), errors.ErrPackageNotTracked))

	require.NoError(t, doc.RemovePackage("git"))
	assert.True(t, errors.IsErrorCode(doc.RemovePackage("git"), errors.ErrPackageNotTracked))
	assert.Len(t, doc.Packages, 1)
}

func TestContainsPackageIsMutable(t *testing.T) {
	doc := &Document{Packages: []TrackedPackage{{Name: "vim"}}}

	p := doc.ContainsPackage("vim")
	p.Overloads = map[string]string{"apt": "vim-nox"}

	assert.Equal(t, "vim-nox", doc.Packages[0].Overloads["apt"])
}

func TestDependencies(t *testing.T) {
	doc := &Document{}

	assert.True(t, doc.AddDependency(Dependency{SourceURL: "https://github.com/alice/dots.git", LocalPath: "{{HOME}}/.greatness/pulled/github.com/alice/dots"}))
	assert.False(t, doc.AddDependency(Dependency{SourceURL: "other", LocalPath: "{{HOME}}/.greatness/pulled/github.com/alice/dots"}))
	assert.True(t, doc.AddDependency(Dependency{LocalPath: "{{HOME}}/local/dots"}))
	require.Len(t, doc.Requires, 2)

	removed := doc.RemoveDependenciesNamed("dots")
	assert.Equal(t, 2, removed)
	assert.Nil(t, doc.Requires)

	doc.AddDependency(Dependency{LocalPath: "{{HOME}}/x/bob"})
	assert.Equal(t, 0, doc.RemoveDependenciesNamed("bo"))
	assert.Len(t, doc.Requires, 1)
}

func paths(d *Document) []string {
	var out []string
	for _, f := range d.Files {
		out = append(out, f.Path)
	}
	return out
}
