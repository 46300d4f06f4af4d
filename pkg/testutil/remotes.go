package testutil

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/IsaccBarker/Greatness/pkg/errors"
	"github.com/IsaccBarker/Greatness/pkg/filesystem"
	"github.com/IsaccBarker/Greatness/pkg/manifest"
	"github.com/IsaccBarker/Greatness/pkg/paths"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// GitCall records one call made to a FakeGit
type GitCall struct {
	Op   string
	Dir  string
	Args []string
}

// FakeGit is a git client whose remotes are directories on its filesystem
type FakeGit struct {
	Fs afero.Fs
	// Remotes maps a clone URL to the directory holding its content
	Remotes map[string]string

	mu    sync.Mutex
	calls []GitCall
}

// NewFakeGit returns a FakeGit with no remotes
func NewFakeGit(fs afero.Fs) *FakeGit {
	return &FakeGit{Fs: fs, Remotes: map[string]string{}}
}

func (g *FakeGit) record(op, dir string, args ...string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, GitCall{Op: op, Dir: dir, Args: args})
}

// Calls returns the calls made so far
func (g *FakeGit) Calls() []GitCall {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]GitCall(nil), g.calls...)
}

// Clones returns the URLs cloned so far, in order
func (g *FakeGit) Clones() []string {
	var out []string
	for _, c := range g.Calls() {
		if c.Op == "clone" {
			out = append(out, c.Args[0])
		}
	}
	return out
}

// Clone copies the registered directory for url into dest
func (g *FakeGit) Clone(_ context.Context, url, dest string) error {
	g.record("clone", dest, url)
	src, ok := g.Remotes[url]
	if !ok {
		// leave something behind so cleanup of partial clones is observable
		_ = g.Fs.MkdirAll(filepath.Join(dest, ".git"), 0755)
		return errors.Newf(errors.ErrTransport, "repository %s not found", url).
			WithDetail("url", url)
	}
	if err := filesystem.CopyTree(g.Fs, src, dest); err != nil {
		return errors.Wrap(err, errors.ErrTransport, "clone failed")
	}
	return g.Fs.MkdirAll(filepath.Join(dest, ".git"), 0755)
}

// Init creates dir/.git
func (g *FakeGit) Init(_ context.Context, dir string) error {
	g.record("init", dir)
	return g.Fs.MkdirAll(filepath.Join(dir, ".git"), 0755)
}

// AddAll records the call
func (g *FakeGit) AddAll(_ context.Context, dir string) error {
	g.record("add", dir)
	return nil
}

// Commit records the call
func (g *FakeGit) Commit(_ context.Context, dir, message string) error {
	g.record("commit", dir, message)
	return nil
}

// Push records the call
func (g *FakeGit) Push(_ context.Context, dir string) error {
	g.record("push", dir)
	return nil
}

// Pull records the call
func (g *FakeGit) Pull(_ context.Context, dir string) error {
	g.record("pull", dir)
	return nil
}

// SetRemote records the call
func (g *FakeGit) SetRemote(_ context.Context, dir, url string) error {
	g.record("remote", dir, url)
	return nil
}

// RemoteBuilder declares the content of a fake remote repository
type RemoteBuilder struct {
	t   *testing.T
	git *FakeGit
	url string
	dir string
	doc manifest.Document
}

// Remote starts declaring the repository served at url. Its content lives
// under /remotes on an in-memory filesystem and in a temp dir otherwise.
func (g *FakeGit) Remote(t *testing.T, url string) *RemoteBuilder {
	t.Helper()
	dir := filepath.Join("/remotes", filepath.FromSlash(sanitize(url)))
	if _, ok := g.Fs.(*afero.OsFs); ok {
		dir = t.TempDir()
	}
	return &RemoteBuilder{t: t, git: g, url: url, dir: dir}
}

// File tracks a file with the given portable path, tag and content
func (b *RemoteBuilder) File(portable, tag, content string) *RemoteBuilder {
	b.t.Helper()
	b.doc.Files = append(b.doc.Files, manifest.TrackedFile{Path: portable, Tag: tag})
	WriteFile(b.t, b.git.Fs, paths.StoragePath(filepath.Join(b.dir, paths.FilesDirName), portable), content)
	return b
}

// Requires adds a requirement on location
func (b *RemoteBuilder) Requires(location string) *RemoteBuilder {
	b.doc.Requires = append(b.doc.Requires, manifest.Dependency{
		SourceURL: location,
		LocalPath: "{{HOME}}/.greatness/pulled/" + sanitize(location),
	})
	return b
}

// Package tracks a package
func (b *RemoteBuilder) Package(p manifest.TrackedPackage) *RemoteBuilder {
	b.doc.Packages = append(b.doc.Packages, p)
	return b
}

// Build writes the manifest and registers the remote, returning its directory
func (b *RemoteBuilder) Build() string {
	b.t.Helper()
	require.NoError(b.t, b.git.Fs.MkdirAll(b.dir, 0755))
	require.NoError(b.t, manifest.Save(b.git.Fs, filepath.Join(b.dir, paths.ManifestFileName), &b.doc))
	b.git.Remotes[b.url] = b.dir
	return b.dir
}

// BuildRaw registers the remote with a manifest holding exactly content
func (b *RemoteBuilder) BuildRaw(content string) string {
	b.t.Helper()
	WriteFile(b.t, b.git.Fs, filepath.Join(b.dir, paths.ManifestFileName), content)
	b.git.Remotes[b.url] = b.dir
	return b.dir
}

func sanitize(url string) string {
	out := make([]rune, 0, len(url))
	for _, r := range url {
		switch r {
		case ':', '@':
			r = '_'
		}
		out = append(out, r)
	}
	return string(out)
}
