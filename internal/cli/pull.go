package cli

import (
	"github.com/IsaccBarker/Greatness/pkg/commands"
	"github.com/IsaccBarker/Greatness/pkg/install"
	"github.com/IsaccBarker/Greatness/pkg/pull"
	"github.com/IsaccBarker/Greatness/pkg/style"
	"github.com/spf13/cobra"
)

// pullFlags are shared by pull and pull update
type pullFlags struct {
	opts    pull.Options
	yes     bool
	no      bool
	symlink bool
}

func (f *pullFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.opts.TagFilter, "only-with-tag", "t", "", MsgFlagTag)
	cmd.Flags().StringVar(&f.opts.Where, "where", "", MsgFlagWhere)
	cmd.Flags().BoolVarP(&f.opts.AllowMods, "allow-mods", "d", false, MsgFlagAllowMods)
	cmd.Flags().BoolVarP(&f.yes, "yes", "y", false, MsgFlagYes)
	cmd.Flags().BoolVarP(&f.no, "no", "n", false, MsgFlagNo)
	cmd.Flags().BoolVar(&f.symlink, "symlink", false, MsgFlagSymlink)
	cmd.MarkFlagsMutuallyExclusive("yes", "no")
}

// options turns the flags into pull options. Without --yes or --no the
// configured policy applies and questions go to the prompter.
func (f *pullFlags) options(a *app, cmd *cobra.Command) commands.PullOptions {
	opts := commands.PullOptions{Options: f.opts}
	switch {
	case f.yes:
		opts.Policy = install.OverwriteAlways
	case f.no:
		opts.Policy = install.OverwriteNever
	default:
		opts.Confirm = a.prompter(cmd).ConfirmOverwrite
	}
	if f.symlink {
		opts.Mode = install.ModeSymlink
	}
	return opts
}

func newPullCmd(a *app) *cobra.Command {
	var flags pullFlags
	cmd := &cobra.Command{
		Use:     "pull <location>",
		Short:   MsgPullShort,
		Long:    MsgPullLong,
		Example: MsgPullExample,
		Args:    cobra.ExactArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := a.session.Pull(cmd.Context(), args[0], flags.options(a, cmd))
			if report != nil {
				if perr := a.printPull(report); perr != nil && err == nil {
					err = perr
				}
			}
			return err
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&flags.opts.AsMain, "as-main", false, MsgFlagAsMain)

	cmd.AddCommand(newPullUpdateCmd(a))
	cmd.AddCommand(&cobra.Command{
		Use:   "rm <name>",
		Short: MsgPullRmShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := a.session.Repel(args[0])
			if err != nil {
				return err
			}
			if a.printer.JSON() {
				return a.printer.Encode(removed)
			}
			for _, dep := range removed {
				a.printer.Success(MsgRepelled, dep.LocalPath)
			}
			return nil
		},
	})
	return cmd
}

func newPullUpdateCmd(a *app) *cobra.Command {
	var flags pullFlags
	cmd := &cobra.Command{
		Use:   "update",
		Short: MsgPullUpdateShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := a.session.Update(cmd.Context(), flags.options(a, cmd))
			if report != nil {
				if perr := a.printPull(report); perr != nil && err == nil {
					err = perr
				}
			}
			return err
		},
	}
	flags.register(cmd)
	return cmd
}

var outcomeStatus = map[install.Outcome]style.Status{
	install.Installed: style.StatusInstalled,
	install.Skipped:   style.StatusSkipped,
	install.Unchanged: style.StatusUnchanged,
}

func (a *app) printPull(report *pull.Report) error {
	if a.printer.JSON() {
		return a.printer.Encode(report)
	}
	installed := 0
	for _, res := range report.Results {
		if res.Outcome == install.Installed {
			installed++
		}
		a.printer.Println(a.printer.Badge(outcomeStatus[res.Outcome]) + " " + a.printer.Paint(style.PathStyle, res.Destination))
	}
	for _, dep := range report.Recorded {
		a.printer.Info(MsgRecorded, dep.SourceURL)
	}
	a.printer.Success(MsgPulledSummary, len(report.Fetched), installed)
	return nil
}
