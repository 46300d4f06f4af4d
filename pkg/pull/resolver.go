// Package pull fetches remote manifests, installs the files they track and
// recursively resolves the manifests they require.
package pull

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/IsaccBarker/Greatness/pkg/errors"
	"github.com/IsaccBarker/Greatness/pkg/filesystem"
	"github.com/IsaccBarker/Greatness/pkg/git"
	"github.com/IsaccBarker/Greatness/pkg/install"
	"github.com/IsaccBarker/Greatness/pkg/logging"
	"github.com/IsaccBarker/Greatness/pkg/manifest"
	"github.com/IsaccBarker/Greatness/pkg/paths"
	"github.com/IsaccBarker/Greatness/pkg/state"
)

// Options controls one pull
type Options struct {
	// TagFilter installs only files carrying exactly this tag
	TagFilter string
	// Where is an expression further restricting the installed files
	Where string
	// AsMain adopts the remote manifest as the local one
	AsMain bool
	// AllowMods runs the fetched manifest's scripts and package installs
	AllowMods bool
}

// ModsFunc applies the scripts and packages of a fetched manifest whose
// checkout lives in dir
type ModsFunc func(ctx context.Context, dir string, doc *manifest.Document) error

// Report summarizes a resolution run
type Report struct {
	// Fetched lists every location cloned, in resolution order
	Fetched []string
	// Results holds one entry per installed, skipped or unchanged file
	Results []install.Result
	// Recorded lists requirements added to the local manifest
	Recorded []manifest.Dependency
}

// Resolver pulls remote manifests into a local state
type Resolver struct {
	State       *state.LocalState
	Git         git.Client
	Installer   *install.Installer
	DefaultHost string
	// Mods runs when Options.AllowMods is set; nil disables mods
	Mods ModsFunc
}

// resolution carries the state shared by the recursive calls of one Resolve
// or Update
type resolution struct {
	opts     Options
	selector manifest.Selector
	visited  map[string]bool
	report   *Report
}

type depth int

const (
	topLevel depth = iota
	transitive
)

// Resolve pulls location and everything it requires
func (r *Resolver) Resolve(ctx context.Context, location string, opts Options) (*Report, error) {
	defer logging.LogOperationStart(logging.GetLogger("pull"), "resolve")()
	rs, err := r.newRun(opts)
	if err != nil {
		return nil, err
	}
	if err := r.resolve(ctx, rs, location, topLevel); err != nil {
		return rs.report, err
	}
	if opts.AsMain {
		if err := r.adopt(ctx); err != nil {
			return rs.report, err
		}
	}
	return rs.report, nil
}

// Update re-resolves every recorded requirement that has a source URL.
// All of them share one visited set.
func (r *Resolver) Update(ctx context.Context, opts Options) (*Report, error) {
	logger := logging.GetLogger("pull")
	defer logging.LogOperationStart(logger, "update")()
	opts.AsMain = false
	rs, err := r.newRun(opts)
	if err != nil {
		return nil, err
	}

	var urls []string
	for _, dep := range r.State.Doc.Requires {
		if dep.SourceURL != "" {
			urls = append(urls, dep.SourceURL)
		}
	}
	if len(urls) == 0 {
		logger.Info().Msg("No requirements with a source to update")
	}
	for _, u := range urls {
		if err := r.resolve(ctx, rs, u, topLevel); err != nil {
			return rs.report, err
		}
	}
	return rs.report, nil
}

func (r *Resolver) newRun(opts Options) (*resolution, error) {
	sel, err := manifest.NewSelector(opts.TagFilter, opts.Where)
	if err != nil {
		return nil, err
	}
	return &resolution{
		opts:     opts,
		selector: sel,
		visited:  map[string]bool{},
		report:   &Report{},
	}, nil
}

func (r *Resolver) resolve(ctx context.Context, rs *resolution, location string, d depth) error {
	logger := logging.GetLogger("pull")

	url := NormalizeLocation(location, r.DefaultHost)
	if url == "" {
		return errors.New(errors.ErrInvalidInput, "empty pull location")
	}
	key := canonicalKey(url)
	if rs.visited[key] {
		logger.Debug().Str("url", url).Msg("Already resolved in this run, skipping")
		return nil
	}
	rs.visited[key] = true

	asMain := rs.opts.AsMain && d == topLevel
	dest := CheckoutDir(r.State.Layout.PulledDir(), url)
	if asMain {
		dest = r.State.Layout.Root()
	}
	logger.Info().Str("url", url).Str("destination", dest).Bool("transitive", d == transitive).Msg("Pulling")

	if err := r.State.Fs.RemoveAll(dest); err != nil {
		return errors.Wrapf(err, errors.ErrFileRemove, "failed to clear %s", dest).
			WithDetail("path", dest)
	}
	if err := r.Git.Clone(ctx, url, dest); err != nil {
		_ = r.State.Fs.RemoveAll(dest)
		if errors.IsErrorCode(err, errors.ErrTransport) {
			return err
		}
		return errors.Wrapf(err, errors.ErrTransport, "failed to fetch %s", url).
			WithDetail("url", url)
	}
	rs.report.Fetched = append(rs.report.Fetched, url)

	checkout := paths.ForCheckout(dest)
	fetched, err := manifest.Load(r.State.Fs, checkout.ManifestPath())
	if err != nil {
		return errors.Wrapf(err, errors.GetErrorCode(err), "manifest of %s is unusable", url).
			WithDetail("url", url)
	}

	if err := r.installFiles(rs, checkout, fetched); err != nil {
		return err
	}

	if rs.opts.AllowMods && r.Mods != nil {
		if err := r.Mods(ctx, dest, fetched); err != nil {
			return err
		}
	}

	if d == topLevel && !asMain {
		dep := manifest.Dependency{SourceURL: url, LocalPath: r.State.Codec.Encode(dest)}
		if r.State.Doc.AddDependency(dep) {
			rs.report.Recorded = append(rs.report.Recorded, dep)
		} else {
			logger.Info().Str("path", dep.LocalPath).Msg("Requirement already recorded")
		}
	}

	for _, req := range fetched.Requires {
		if req.SourceURL == "" {
			continue
		}
		if err := r.resolve(ctx, rs, req.SourceURL, transitive); err != nil {
			return err
		}
	}

	if d == topLevel && !asMain {
		return r.State.Save()
	}
	return nil
}

// installFiles installs the selected files of a fetched manifest. The first
// failure aborts the remaining installs.
func (r *Resolver) installFiles(rs *resolution, checkout paths.Layout, doc *manifest.Document) error {
	files, err := doc.Select(rs.selector)
	if err != nil {
		return err
	}
	for _, f := range files {
		if err := checkStoredPath(checkout.FilesDir(), f.Path); err != nil {
			return err
		}
	}
	for _, f := range files {
		src := paths.StoragePath(checkout.FilesDir(), f.Path)
		dst := r.State.Codec.Decode(f.Path)
		res, err := r.Installer.Install(src, dst)
		if err != nil {
			return err
		}
		rs.report.Results = append(rs.report.Results, res)
	}
	return nil
}

// checkStoredPath rejects fetched entries that would read outside the
// checkout's files directory or write outside the directory their token
// decodes to.
func checkStoredPath(filesDir, portable string) error {
	escapes := !paths.Within(filesDir, paths.StoragePath(filesDir, portable))
	for _, part := range strings.Split(filepath.ToSlash(portable), "/") {
		if part == ".." {
			escapes = true
		}
	}
	if escapes {
		return errors.Newf(errors.ErrInvalidInput, "fetched file %s points outside its directory", portable).
			WithDetail("path", portable)
	}
	return nil
}

// adopt finishes an as-main pull: the fetched manifest becomes the local one
// and whatever part of the state directory it lacked is created.
func (r *Resolver) adopt(ctx context.Context) error {
	var repo state.RepoInitializer
	if r.Git != nil {
		repo = r.Git
	}
	if err := state.InitNoDamage(ctx, r.State.Fs, r.State.Layout, repo); err != nil {
		return err
	}
	return r.State.Reload()
}

// Repel drops every requirement whose checkout directory is named name and
// deletes those checkouts. It returns the removed requirements.
func (r *Resolver) Repel(name string) ([]manifest.Dependency, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New(errors.ErrInvalidInput, "requirement name must not be empty")
	}

	var removed []manifest.Dependency
	for _, dep := range r.State.Doc.Requires {
		if filepath.Base(filepath.Clean(dep.LocalPath)) == name {
			removed = append(removed, dep)
		}
	}
	if r.State.Doc.RemoveDependenciesNamed(name) == 0 {
		return nil, errors.Newf(errors.ErrNotFound, "no requirement named %s", name).
			WithDetail("name", name)
	}

	pulled := r.State.Layout.PulledDir() + string(filepath.Separator)
	for _, dep := range removed {
		dir := r.State.Codec.Decode(dep.LocalPath)
		if !strings.HasPrefix(dir, pulled) {
			continue
		}
		if ok, _ := filesystem.Exists(r.State.Fs, dir); !ok {
			continue
		}
		if err := r.State.Fs.RemoveAll(dir); err != nil {
			return removed, errors.Wrapf(err, errors.ErrFileRemove, "failed to remove %s", dir).
				WithDetail("path", dir)
		}
	}
	return removed, r.State.Save()
}
