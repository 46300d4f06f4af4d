package paths

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/IsaccBarker/Greatness/pkg/errors"
)

// Tokens used in portable paths
const (
	TokenHome        = "{{HOME}}"
	TokenDesktop     = "{{DESKTOP}}"
	TokenDocuments   = "{{DOCUMENTS}}"
	TokenDownloads   = "{{DOWNLOADS}}"
	TokenMusic       = "{{MUSIC}}"
	TokenPictures    = "{{PICTURES}}"
	TokenPublicShare = "{{PUBLICSHARE}}"
	TokenTemplates   = "{{TEMPLATES}}"
	TokenVideos      = "{{VIDEOS}}"
)

type substitution struct {
	token string
	dir   string
	// alias entries are the symlink free form of a configured directory.
	// They encode but never decode.
	alias bool
}

// Codec maps absolute paths to portable paths and back
type Codec struct {
	// ordered most specific directory first
	subs []substitution
}

// NewCodec builds a codec for dirs. Well-known directories that are empty,
// the filesystem root, or identical to the home directory are ignored.
func NewCodec(dirs KnownDirs) *Codec {
	home := filepath.Clean(dirs.Home)
	candidates := []substitution{
		{token: TokenDesktop, dir: dirs.Desktop},
		{token: TokenDocuments, dir: dirs.Documents},
		{token: TokenDownloads, dir: dirs.Downloads},
		{token: TokenMusic, dir: dirs.Music},
		{token: TokenPictures, dir: dirs.Pictures},
		{token: TokenPublicShare, dir: dirs.PublicShare},
		{token: TokenTemplates, dir: dirs.Templates},
		{token: TokenVideos, dir: dirs.Videos},
	}

	c := &Codec{}
	if usableDir(dirs.Home) {
		c.subs = append(c.subs, substitution{token: TokenHome, dir: home})
	}
	seen := map[string]struct{}{home: {}}
	for _, s := range candidates {
		if !usableDir(s.dir) {
			continue
		}
		s.dir = filepath.Clean(s.dir)
		if _, dup := seen[s.dir]; dup {
			continue
		}
		seen[s.dir] = struct{}{}
		c.subs = append(c.subs, s)
	}

	// Canonicalized paths carry the resolved form of a directory reached
	// through a symlink, e.g. /home -> /usr/home.
	for _, s := range append([]substitution(nil), c.subs...) {
		resolved, err := filepath.EvalSymlinks(s.dir)
		if err != nil || resolved == s.dir {
			continue
		}
		if _, dup := seen[resolved]; dup {
			continue
		}
		seen[resolved] = struct{}{}
		c.subs = append(c.subs, substitution{token: s.token, dir: resolved, alias: true})
	}

	sort.SliceStable(c.subs, func(i, j int) bool {
		return len(c.subs[i].dir) > len(c.subs[j].dir)
	})
	return c
}

func usableDir(dir string) bool {
	if dir == "" {
		return false
	}
	clean := filepath.Clean(dir)
	return clean != string(filepath.Separator) && clean != "."
}

// Encode replaces the most specific known directory prefix of abs with its
// token. Paths outside every known directory are returned unchanged.
func (c *Codec) Encode(abs string) string {
	for _, s := range c.subs {
		if abs == s.dir {
			return s.token
		}
		if strings.HasPrefix(abs, s.dir+string(filepath.Separator)) {
			return s.token + abs[len(s.dir):]
		}
	}
	return abs
}

// Decode resolves the token at the start of portable against this host's
// directories. Paths without a token are returned unchanged.
func (c *Codec) Decode(portable string) string {
	for _, s := range c.subs {
		if s.alias {
			continue
		}
		if portable == s.token {
			return s.dir
		}
		if strings.HasPrefix(portable, s.token+string(filepath.Separator)) {
			return s.dir + portable[len(s.token):]
		}
	}
	return portable
}

// CanonicalizeAndEncode resolves p to an absolute path with every symlink
// evaluated, then encodes it. p must exist.
func (c *Codec) CanonicalizeAndEncode(p string) (string, error) {
	canonical, err := Canonicalize(p)
	if err != nil {
		return "", err
	}
	return c.Encode(canonical), nil
}

// EncodeLexical makes p absolute and encodes it without touching the
// filesystem. Used for paths that may no longer exist.
func (c *Codec) EncodeLexical(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "cannot make %s absolute", p)
	}
	return c.Encode(abs), nil
}

// Canonicalize returns the absolute, symlink free form of p
func Canonicalize(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "cannot make %s absolute", p)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Wrapf(err, errors.ErrNotFound, "%s does not exist", p).
				WithDetail("path", p)
		}
		return "", errors.Wrapf(err, errors.ErrFileAccess, "cannot resolve %s", p).
			WithDetail("path", p)
	}
	return resolved, nil
}

// StoragePath returns where the file with the given portable path lives
// inside a file storage directory such as <checkout>/files.
func StoragePath(storageDir, portable string) string {
	rel := strings.TrimLeft(portable, string(filepath.Separator))
	return filepath.Join(storageDir, rel)
}

// Within reports whether p, once cleaned, lies inside dir
func Within(dir, p string) bool {
	rel, err := filepath.Rel(dir, p)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
