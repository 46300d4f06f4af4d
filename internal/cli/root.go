// Package cli builds the greatness command tree.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/IsaccBarker/Greatness/internal/version"
	"github.com/IsaccBarker/Greatness/pkg/commands"
	"github.com/IsaccBarker/Greatness/pkg/config"
	"github.com/IsaccBarker/Greatness/pkg/errors"
	"github.com/IsaccBarker/Greatness/pkg/filesystem"
	"github.com/IsaccBarker/Greatness/pkg/git"
	"github.com/IsaccBarker/Greatness/pkg/logging"
	"github.com/IsaccBarker/Greatness/pkg/packages"
	"github.com/IsaccBarker/Greatness/pkg/paths"
	"github.com/IsaccBarker/Greatness/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// noStateAnnotation marks commands that run without an opened state directory
const noStateAnnotation = "greatness/no-state"

var noState = map[string]string{noStateAnnotation: "true"}

// app holds the global flags and the collaborators shared by all commands
type app struct {
	verbosity  int
	dir        string
	ignoreRoot bool
	format     string
	overrides  []string

	fs     afero.Fs
	git    git.Client
	codec  *paths.Codec
	isRoot func() bool

	layout  paths.Layout
	config  *config.Config
	session *commands.Session
	printer *ui.Printer
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{
		fs:     filesystem.NewOS(),
		git:    git.NewShellClient(),
		isRoot: packages.IsRoot,
	})
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "greatness",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLogger(a.verbosity)
			log.Debug().Str("command", cmd.CommandPath()).Msg("Command started")
			return a.prepare(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVarP(&a.dir, "greatness-dir", "g", "", MsgFlagDir)
	rootCmd.PersistentFlags().BoolVar(&a.ignoreRoot, "ignore-root-check", false, MsgFlagIgnoreRoot)
	rootCmd.PersistentFlags().StringVar(&a.format, "format", "auto", MsgFlagFormat)
	rootCmd.PersistentFlags().StringArrayVar(&a.overrides, "set", nil, MsgFlagSet)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "manage", Title: "MANAGE:"})

	rootCmd.AddCommand(newInitCmd(a))
	rootCmd.AddCommand(newAddCmd(a))
	rootCmd.AddCommand(newTrackCmd(a))
	rootCmd.AddCommand(newRmCmd(a))
	rootCmd.AddCommand(newTagCmd(a))
	rootCmd.AddCommand(newStatusCmd(a))
	rootCmd.AddCommand(newPullCmd(a))
	rootCmd.AddCommand(newPackCmd(a))

	rootCmd.AddCommand(newDoctorCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newGitCmd(a))
	rootCmd.AddCommand(newPromptCmd(a))
	rootCmd.AddCommand(newPackageCmd(a))
	rootCmd.AddCommand(newScriptCmd(a))

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// prepare runs before every command: root check, output format,
// configuration and, unless the command is marked otherwise, the state
// directory
func (a *app) prepare(cmd *cobra.Command) error {
	if !a.ignoreRoot && a.isRoot != nil && a.isRoot() {
		return errors.New(errors.ErrRunningAsRoot, MsgErrRunningAsRoot)
	}

	format, err := ui.ParseFormat(a.format)
	if err != nil {
		return err
	}
	a.printer = ui.NewPrinter(cmd.OutOrStdout(), format)

	dir := a.dir
	if dir == "" {
		if dir, err = paths.DefaultRoot(); err != nil {
			return fmt.Errorf(MsgErrGreatnessDir, err)
		}
	}
	if a.layout, err = paths.NewLayout(dir); err != nil {
		return fmt.Errorf(MsgErrGreatnessDir, err)
	}

	overrides, err := parseOverrides(a.overrides)
	if err != nil {
		return err
	}
	if a.config, err = config.Load(a.layout.ConfigPath(), overrides); err != nil {
		return err
	}

	if cmd.Annotations[noStateAnnotation] == "true" {
		return nil
	}
	a.session, err = commands.Open(commands.OpenOptions{
		Fs:     a.fs,
		Layout: a.layout,
		Codec:  a.codec,
		Config: a.config,
		Git:    a.git,
	})
	return err
}

func parseOverrides(values []string) (map[string]interface{}, error) {
	if len(values) == 0 {
		return nil, nil
	}
	out := make(map[string]interface{}, len(values))
	for _, v := range values {
		key, value, ok := strings.Cut(v, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, errors.Newf(errors.ErrInvalidInput, MsgErrOverride, v)
		}
		out[strings.TrimSpace(key)] = value
	}
	return out, nil
}

// prompter asks questions on the command's input and error streams
func (a *app) prompter(cmd *cobra.Command) *ui.Prompter {
	return ui.NewPrompter(cmd.InOrStdin(), cmd.ErrOrStderr(), a.printer.Color())
}

// printFiles reports the outcome of a file command
func (a *app) printFiles(res *commands.FilesResult) error {
	if a.printer.JSON() {
		return a.printer.Encode(res)
	}
	for _, p := range res.Changed {
		a.printer.Success(MsgFileChanged, p)
	}
	for _, s := range res.Skipped {
		a.printer.Warn(MsgFileSkipped, s.Path, s.Reason)
	}
	if len(res.Changed) == 0 && len(res.Skipped) == 0 {
		a.printer.Info(MsgNothingChanged)
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       MsgVersionShort,
		Args:        cobra.NoArgs,
		Annotations: noState,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, MsgVersionFormat, version.Version)
			if version.Commit != "" {
				fmt.Fprintf(out, MsgCommitFormat, version.Commit)
			}
			if version.Date != "" {
				fmt.Fprintf(out, MsgBuiltFormat, version.Date)
			}
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: MsgCompletionShort,
		Long: `To load completions:

Bash:
  $ source <(greatness completion bash)

Zsh:
  $ greatness completion zsh > "${fpath[1]}/_greatness"

Fish:
  $ greatness completion fish | source

PowerShell:
  PS> greatness completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		Annotations:           noState,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeCompletion(cmd.Root(), args[0], cmd.OutOrStdout())
		},
	}
}

func writeCompletion(root *cobra.Command, shell string, out io.Writer) error {
	switch shell {
	case "bash":
		return root.GenBashCompletionV2(out, true)
	case "zsh":
		return root.GenZshCompletion(out)
	case "fish":
		return root.GenFishCompletion(out, true)
	default:
		return root.GenPowerShellCompletionWithDesc(out)
	}
}
