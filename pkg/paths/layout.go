package paths

import (
	"os"
	"path/filepath"
)

// Names inside the state directory. These are not user configurable.
const (
	DefaultDirName   = ".greatness"
	ManifestFileName = "greatness.yaml"
	ConfigFileName   = "config.toml"
	PulledDirName    = "pulled"
	ScriptsDirName   = "scripts"
	FilesDirName     = "files"
	PackDirName      = "packed"
	PackGitDirName   = "git"
)

// Layout locates everything inside a greatness state directory
type Layout struct {
	root string
}

// NewLayout returns the layout rooted at root. A leading ~ is expanded and
// relative roots are made absolute.
func NewLayout(root string) (Layout, error) {
	if root == "" {
		var err error
		root, err = DefaultRoot()
		if err != nil {
			return Layout{}, err
		}
	}
	if home, err := GetHomeDirectory(); err == nil {
		root = expandHome(root, home)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return Layout{}, err
	}
	return Layout{root: abs}, nil
}

// DefaultRoot is $GREATNESS_DIR, or ~/.greatness
func DefaultRoot() (string, error) {
	if root := os.Getenv(EnvGreatnessDir); root != "" {
		return root, nil
	}
	home, err := GetHomeDirectory()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DefaultDirName), nil
}

func (l Layout) Root() string         { return l.root }
func (l Layout) ManifestPath() string { return filepath.Join(l.root, ManifestFileName) }
func (l Layout) ConfigPath() string   { return filepath.Join(l.root, ConfigFileName) }
func (l Layout) PulledDir() string    { return filepath.Join(l.root, PulledDirName) }
func (l Layout) ScriptsDir() string   { return filepath.Join(l.root, ScriptsDirName) }
func (l Layout) FilesDir() string     { return filepath.Join(l.root, FilesDirName) }
func (l Layout) PackDir() string      { return filepath.Join(l.root, PackDirName, PackGitDirName) }

// Dirs lists every directory init creates
func (l Layout) Dirs() []string {
	return []string{l.root, l.PulledDir(), l.ScriptsDir(), l.FilesDir(), l.PackDir()}
}

// ForCheckout returns the layout of a fetched manifest checkout
func ForCheckout(dir string) Layout {
	return Layout{root: filepath.Clean(dir)}
}
