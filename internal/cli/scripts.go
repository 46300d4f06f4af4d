package cli

import (
	"github.com/IsaccBarker/Greatness/pkg/commands"
	"github.com/IsaccBarker/Greatness/pkg/scripts"
	"github.com/spf13/cobra"
)

func newScriptCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "script",
		Short:   MsgScriptShort,
		Long:    MsgScriptLong,
		GroupID: "manage",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "register <file>",
		Short: MsgScriptRegister,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			portable, err := a.session.RegisterScript(args[0])
			if err != nil {
				return err
			}
			a.printer.Success(MsgScriptRegistered, portable)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "assign <file> <script>",
		Short: MsgScriptAssign,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.AssignScript(args[0], args[1]); err != nil {
				return err
			}
			a.printer.Success(MsgScriptAssigned, args[1], args[0])
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "rm <file> <script>",
		Short: MsgScriptRm,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.UnassignScript(args[0], args[1]); err != nil {
				return err
			}
			a.printer.Success(MsgScriptUnassigned, args[1], args[0])
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "run <file>",
		Short: MsgScriptRun,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			applied, err := a.session.RunScripts(args[0])
			if err != nil {
				return err
			}
			return a.printApplied([]scripts.Applied{*applied})
		},
	})

	var jog commands.JogOptions
	jogCmd := &cobra.Command{
		Use:   "jog",
		Short: MsgScriptJog,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			applied, err := a.session.Jog(jog)
			if perr := a.printApplied(applied); perr != nil && err == nil {
				err = perr
			}
			return err
		},
	}
	jogCmd.Flags().StringVarP(&jog.Tag, "tag", "t", "", MsgFlagTag)
	jogCmd.Flags().StringVar(&jog.Where, "where", "", MsgFlagWhere)
	cmd.AddCommand(jogCmd)
	return cmd
}

func (a *app) printApplied(applied []scripts.Applied) error {
	if a.printer.JSON() {
		if applied == nil {
			applied = []scripts.Applied{}
		}
		return a.printer.Encode(applied)
	}
	if len(applied) == 0 {
		a.printer.Info(MsgNoScriptsRun)
		return nil
	}
	for _, ap := range applied {
		if ap.Changed {
			a.printer.Success(MsgScriptApplied, ap.File, len(ap.Scripts))
		} else {
			a.printer.Info(MsgScriptUnchanged, ap.File, len(ap.Scripts))
		}
	}
	return nil
}
