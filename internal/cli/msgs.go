package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Manage, share and pull dotfile manifests"
	MsgVersionShort    = "Print version information"
	MsgInitShort       = "Create the greatness directory"
	MsgAddShort        = "Track files in the manifest"
	MsgTrackShort      = "Move files into greatness and leave symlinks behind"
	MsgRmShort         = "Stop tracking files"
	MsgTagShort        = "Tag tracked files"
	MsgStatusShort     = "Show tracked files, requirements and packages"
	MsgDoctorShort     = "Look for problems in the manifest"
	MsgConfigShort     = "Print the effective configuration"
	MsgPackShort       = "Copy the manifest and tracked files into the pack repository"
	MsgGitShort        = "Run git operations on the pack repository"
	MsgGitAddShort     = "Stage every change in the pack repository"
	MsgGitCommitShort  = "Commit the staged changes"
	MsgGitPushShort    = "Push the pack repository"
	MsgGitPullShort    = "Pull into the pack repository"
	MsgGitRemoteShort  = "Manage the pack repository remote"
	MsgGitRemoteSet    = "Set the origin remote URL"
	MsgPromptShort     = "Open a shell in the pack repository"
	MsgPullShort       = "Fetch and install a manifest and its requirements"
	MsgPullRmShort     = "Forget a requirement and delete its checkout"
	MsgPullUpdateShort = "Fetch every recorded requirement again"
	MsgPackageShort    = "Manage tracked packages"
	MsgPkgAddShort     = "Track packages"
	MsgPkgRmShort      = "Stop tracking packages"
	MsgOverloadShort   = "Manage per package manager names"
	MsgOverloadAdd     = "Name a package differently for one package manager"
	MsgOverloadRm      = "Drop a package manager specific name"
	MsgPkgInstallShort = "Install every tracked package"
	MsgScriptShort     = "Manage and run scripts"
	MsgScriptRegister  = "Copy a script into the scripts directory"
	MsgScriptAssign    = "Run a script whenever a file is jogged"
	MsgScriptRm        = "Unassign a script from a file"
	MsgScriptRun       = "Run the scripts assigned to one file"
	MsgScriptJog       = "Run assigned scripts over every selected file"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgInitialized      = "Initialized greatness directory at %s"
	MsgFileChanged      = "%s"
	MsgFileSkipped      = "%s %s"
	MsgNothingChanged   = "Nothing changed."
	MsgPacked           = "Packed %d file(s) into %s"
	MsgGitDone          = "git %s done in %s"
	MsgRemoteSet        = "origin is now %s"
	MsgPulledSummary    = "Fetched %d repository(ies), %d file(s) installed"
	MsgRecorded         = "Recorded requirement %s"
	MsgRepelled         = "Removed requirement %s"
	MsgPackagesAdded    = "Tracking %s"
	MsgPackagesRemoved  = "No longer tracking %s"
	MsgOverloadAdded    = "%s is called %s under %s"
	MsgOverloadRemoved  = "Removed the %s name of %s"
	MsgNoPackages       = "No packages to install."
	MsgPackagesDone     = "Installed %d package(s)"
	MsgScriptRegistered = "Registered %s"
	MsgScriptAssigned   = "%s now runs on %s"
	MsgScriptUnassigned = "%s no longer runs on %s"
	MsgScriptApplied    = "%s: %d script(s), changed"
	MsgScriptUnchanged  = "%s: %d script(s), unchanged"
	MsgNoScriptsRun     = "No files with scripts selected."

	// Status tree labels
	MsgTreeFiles        = "files"
	MsgTreeRequirements = "requirements"
	MsgTreePackages     = "packages"
	MsgTreeNone         = "(none)"
	MsgTreeMissing      = "(missing)"
	MsgTreeEncrypted    = "(encrypted)"

	// Prompts
	MsgPromptOverwrite = "Overwrite %s?"

	// Version output
	MsgVersionFormat = "greatness version %s\n"
	MsgCommitFormat  = "Commit: %s\n"
	MsgBuiltFormat   = "Built:  %s\n"

	// Error messages
	MsgErrRunningAsRoot = "refusing to run as root, pass --ignore-root-check if you mean it"
	MsgErrGreatnessDir  = "failed to locate the greatness directory: %w"
	MsgErrOverride      = "invalid --set value %q, want key=value"
	MsgErrPromptShell   = "prompt shell exited: %w"

	// Flag descriptions
	MsgFlagVerbose      = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDir          = "Greatness directory (default $GREATNESS_DIR or ~/.greatness)"
	MsgFlagIgnoreRoot   = "Allow running as root"
	MsgFlagFormat       = "Output format: auto, term, text or json"
	MsgFlagSet          = "Override a configuration key (key=value), may repeat"
	MsgFlagForce        = "Replace an existing manifest with an empty one"
	MsgFlagTag          = "Only files carrying exactly this tag"
	MsgFlagWhere        = "Only files matching this expression (path, tag, scripts, encrypted)"
	MsgFlagAsMain       = "Adopt the fetched manifest as the local one"
	MsgFlagAllowMods    = "Run fetched scripts and install fetched packages"
	MsgFlagYes          = "Overwrite existing files without asking"
	MsgFlagNo           = "Never overwrite existing files"
	MsgFlagSymlink      = "Link installed files to the checkout instead of copying"
	MsgFlagCommitMsg    = "Commit message"
	MsgFlagPromptShell  = "Shell to start (default $SHELL)"
	MsgFlagDefaults     = "Print the built-in defaults instead of the effective configuration"
	MsgDefaultCommitMsg = "Update manifest"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/pull-long.txt
	msgPullLongRaw string
	MsgPullLong    = strings.TrimSpace(msgPullLongRaw)

	//go:embed msgs/pull-example.txt
	msgPullExampleRaw string
	MsgPullExample    = strings.TrimSpace(msgPullExampleRaw)

	//go:embed msgs/script-long.txt
	msgScriptLongRaw string
	MsgScriptLong    = strings.TrimSpace(msgScriptLongRaw)
)
