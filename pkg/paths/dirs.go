package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/IsaccBarker/Greatness/pkg/errors"
	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvHome is the standard home directory variable
	EnvHome = "HOME"

	// EnvGreatnessDir overrides the location of the state directory
	EnvGreatnessDir = "GREATNESS_DIR"
)

// Well-known directory environment variables, as written by xdg-user-dirs
const (
	EnvDesktopDir     = "XDG_DESKTOP_DIR"
	EnvDocumentsDir   = "XDG_DOCUMENTS_DIR"
	EnvDownloadDir    = "XDG_DOWNLOAD_DIR"
	EnvMusicDir       = "XDG_MUSIC_DIR"
	EnvPicturesDir    = "XDG_PICTURES_DIR"
	EnvPublicShareDir = "XDG_PUBLICSHARE_DIR"
	EnvTemplatesDir   = "XDG_TEMPLATES_DIR"
	EnvVideosDir      = "XDG_VIDEOS_DIR"
)

// KnownDirs holds the directories the codec substitutes with tokens.
// It is resolved once per process and passed around explicitly.
type KnownDirs struct {
	Home        string
	Desktop     string
	Documents   string
	Downloads   string
	Music       string
	Pictures    string
	PublicShare string
	Templates   string
	Videos      string
}

// LookupFunc has the signature of os.LookupEnv
type LookupFunc func(key string) (string, bool)

// ResolveKnownDirs builds KnownDirs for home, taking overrides from lookup
// and falling back to the conventional HOME-relative subdirectories.
func ResolveKnownDirs(home string, lookup LookupFunc) KnownDirs {
	home = filepath.Clean(home)
	dir := func(env, fallback string) string {
		if lookup != nil {
			if v, ok := lookup(env); ok && strings.TrimSpace(v) != "" {
				return expandUserDir(v, home)
			}
		}
		return filepath.Join(home, fallback)
	}

	return KnownDirs{
		Home:        home,
		Desktop:     dir(EnvDesktopDir, "Desktop"),
		Documents:   dir(EnvDocumentsDir, "Documents"),
		Downloads:   dir(EnvDownloadDir, "Downloads"),
		Music:       dir(EnvMusicDir, "Music"),
		Pictures:    dir(EnvPicturesDir, "Pictures"),
		PublicShare: dir(EnvPublicShareDir, "Public"),
		Templates:   dir(EnvTemplatesDir, "Templates"),
		Videos:      dir(EnvVideosDir, "Videos"),
	}
}

// DefaultKnownDirs resolves the directories of the current user. The
// well-known directories come from the xdg user dirs, which read both the
// environment and the user-dirs.dirs file.
func DefaultKnownDirs() (KnownDirs, error) {
	home, err := GetHomeDirectory()
	if err != nil {
		return KnownDirs{}, err
	}

	xdg.Reload()
	user := xdg.UserDirs
	values := map[string]string{
		EnvDesktopDir:     user.Desktop,
		EnvDocumentsDir:   user.Documents,
		EnvDownloadDir:    user.Download,
		EnvMusicDir:       user.Music,
		EnvPicturesDir:    user.Pictures,
		EnvPublicShareDir: user.PublicShare,
		EnvTemplatesDir:   user.Templates,
		EnvVideosDir:      user.Videos,
	}

	return ResolveKnownDirs(home, func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok && v != ""
	}), nil
}

// GetHomeDirectory returns the user's home directory, falling back to $HOME
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		if home := os.Getenv(EnvHome); home != "" {
			return home, nil
		}
		return "", errors.Wrap(err, errors.ErrFileAccess, "failed to get home directory")
	}
	return homeDir, nil
}

// expandUserDir expands the "$HOME/..." form used by user-dirs.dirs
func expandUserDir(value, home string) string {
	value = strings.Trim(value, `"`)
	switch {
	case value == "$HOME" || value == "${HOME}":
		return home
	case strings.HasPrefix(value, "$HOME/"):
		return filepath.Join(home, value[len("$HOME/"):])
	case strings.HasPrefix(value, "${HOME}/"):
		return filepath.Join(home, value[len("${HOME}/"):])
	}
	return filepath.Clean(expandHome(value, home))
}

// expandHome expands a leading ~ to home
func expandHome(path, home string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	if len(path) == 1 {
		return home
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(home, path[2:])
	}
	// ~someone is left alone
	return path
}
