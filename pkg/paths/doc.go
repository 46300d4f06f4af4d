// Package paths provides centralized path handling for greatness.
//
// It covers two concerns:
//
//   - The path codec, which turns machine specific absolute paths into
//     portable symbolic paths and back again.
//   - The layout of the greatness state directory (manifest, pulled
//     dependencies, scripts, tracked file storage and the pack repository).
//
// # Portable Paths
//
// A portable path replaces a well-known absolute prefix with a token:
//
//	/home/alice/.bashrc            -> {{HOME}}/.bashrc
//	/home/alice/Documents/notes.md -> {{DOCUMENTS}}/notes.md
//
// The most specific prefix wins, so anything under the documents directory
// encodes to {{DOCUMENTS}} even though that directory lives under HOME.
// Decoding substitutes the directories of the current host, which is what
// keeps a manifest valid on machines with different home directories.
//
// The well-known directories are resolved once into a KnownDirs value,
// honouring XDG_DESKTOP_DIR, XDG_DOCUMENTS_DIR and friends (and the
// user-dirs.dirs file) through github.com/adrg/xdg. Everything else takes
// a KnownDirs or a Codec explicitly.
//
// # State Layout
//
// The state directory defaults to ~/.greatness and can be overridden with
// GREATNESS_DIR or the --greatness-dir flag:
//
//	~/.greatness/
//	├── greatness.yaml   manifest
//	├── config.toml      optional user configuration
//	├── files/           storage for symlink-tracked files
//	├── pulled/          checkouts of pulled manifests
//	├── scripts/         registered transform scripts
//	└── packed/git/      repository that pack and git commands operate on
package paths
