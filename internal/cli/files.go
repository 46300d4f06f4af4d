package cli

import (
	"github.com/IsaccBarker/Greatness/pkg/commands"
	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:         "init",
		Short:       MsgInitShort,
		Args:        cobra.NoArgs,
		GroupID:     "core",
		Annotations: noState,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := commands.Init(cmd.Context(), commands.InitOptions{
				Fs:     a.fs,
				Layout: a.layout,
				Git:    a.git,
				Force:  force,
			})
			if err != nil {
				return err
			}
			a.printer.Success(MsgInitialized, a.layout.Root())
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, MsgFlagForce)
	return cmd
}

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "add <file>...",
		Short:   MsgAddShort,
		Args:    cobra.MinimumNArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.session.AddFiles(args)
			if err != nil {
				return err
			}
			return a.printFiles(res)
		},
	}
}

func newTrackCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "track <file>...",
		Short:   MsgTrackShort,
		Args:    cobra.MinimumNArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.session.TrackFiles(args)
			if err != nil {
				return err
			}
			return a.printFiles(res)
		},
	}
}

func newRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <file>...",
		Short:   MsgRmShort,
		Args:    cobra.MinimumNArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.session.RemoveFiles(args)
			if err != nil {
				return err
			}
			return a.printFiles(res)
		},
	}
}

func newTagCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "tag <tag> <file>...",
		Short:   MsgTagShort,
		Args:    cobra.MinimumNArgs(2),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.session.TagFiles(args[0], args[1:])
			if err != nil {
				return err
			}
			return a.printFiles(res)
		},
	}
}
