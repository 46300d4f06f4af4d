package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newPackageCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "package",
		Aliases: []string{"pkg"},
		Short:   MsgPackageShort,
		GroupID: "manage",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <package>...",
		Short: MsgPkgAddShort,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.AddPackages(args); err != nil {
				return err
			}
			a.printer.Success(MsgPackagesAdded, strings.Join(args, ", "))
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "rm <package>...",
		Short: MsgPkgRmShort,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.RemovePackages(args); err != nil {
				return err
			}
			a.printer.Success(MsgPackagesRemoved, strings.Join(args, ", "))
			return nil
		},
	})

	overload := &cobra.Command{
		Use:   "overload",
		Short: MsgOverloadShort,
	}
	overload.AddCommand(&cobra.Command{
		Use:   "add <manager> <package> <name>",
		Short: MsgOverloadAdd,
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.AddOverload(args[0], args[1], args[2]); err != nil {
				return err
			}
			a.printer.Success(MsgOverloadAdded, args[1], args[2], args[0])
			return nil
		},
	})
	overload.AddCommand(&cobra.Command{
		Use:   "rm <manager> <package>",
		Short: MsgOverloadRm,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.RemoveOverload(args[0], args[1]); err != nil {
				return err
			}
			a.printer.Success(MsgOverloadRemoved, args[0], args[1])
			return nil
		},
	})
	cmd.AddCommand(overload)

	cmd.AddCommand(&cobra.Command{
		Use:   "install",
		Short: MsgPkgInstallShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			installed, err := a.session.InstallPackages(cmd.Context())
			if a.printer.JSON() {
				if installed == nil {
					installed = []string{}
				}
				if perr := a.printer.Encode(installed); perr != nil && err == nil {
					err = perr
				}
				return err
			}
			for _, name := range installed {
				a.printer.Success(MsgFileChanged, name)
			}
			if err != nil {
				return err
			}
			if len(installed) == 0 {
				a.printer.Info(MsgNoPackages)
				return nil
			}
			a.printer.Info(MsgPackagesDone, len(installed))
			return nil
		},
	})
	return cmd
}
