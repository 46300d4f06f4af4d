package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/IsaccBarker/Greatness/pkg/commands"
	"github.com/IsaccBarker/Greatness/pkg/config"
	"github.com/IsaccBarker/Greatness/pkg/doctor"
	"github.com/IsaccBarker/Greatness/pkg/manifest"
	"github.com/IsaccBarker/Greatness/pkg/style"
	"github.com/spf13/cobra"
)

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "status [file]",
		Short:   MsgStatusShort,
		Args:    cobra.MaximumNArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				fs, err := a.session.FileStatus(args[0])
				if err != nil {
					return err
				}
				if a.printer.JSON() {
					return a.printer.Encode(fs)
				}
				root := &style.Node{Label: a.fileLabel(*fs)}
				addFileDetails(root, *fs)
				a.printer.Tree(root)
				return nil
			}

			report := a.session.Status()
			if a.printer.JSON() {
				return a.printer.Encode(report)
			}
			a.printer.Tree(a.statusTree(report))
			return nil
		},
	}
}

func (a *app) statusTree(report *commands.StatusReport) *style.Node {
	root := &style.Node{Label: a.printer.Paint(style.TitleStyle, "greatness") + " " + a.printer.Paint(style.PathStyle, report.Root)}

	files := root.Add(MsgTreeFiles)
	for _, f := range report.Files {
		files.Add(a.fileLabel(f))
	}
	if len(report.Files) == 0 {
		files.Add(MsgTreeNone)
	}

	reqs := root.Add(MsgTreeRequirements)
	for _, r := range report.Requirements {
		label := a.printer.Paint(style.RequireStyle, r.LocalPath)
		if r.URL != "" {
			label += " <- " + r.URL
		}
		if !r.Present {
			label += " " + a.printer.Paint(style.ErrorStyle, MsgTreeMissing)
		}
		reqs.Add(label)
	}
	if len(report.Requirements) == 0 {
		reqs.Add(MsgTreeNone)
	}

	pkgs := root.Add(MsgTreePackages)
	for _, p := range report.Packages {
		pkgs.Add(a.packageLabel(p))
	}
	if len(report.Packages) == 0 {
		pkgs.Add(MsgTreeNone)
	}
	return root
}

func (a *app) fileLabel(f commands.FileStatus) string {
	label := a.printer.Badge(style.Status(f.State)) + " " + f.Path
	if f.Tag != "" {
		label += " " + a.printer.Paint(style.TagStyle, "#"+f.Tag)
	}
	if len(f.Scripts) > 0 {
		label += " " + a.printer.Paint(style.ScriptStyle, fmt.Sprintf("[%d script(s)]", len(f.Scripts)))
	}
	if f.Encrypted {
		label += " " + MsgTreeEncrypted
	}
	return label
}

func addFileDetails(n *style.Node, f commands.FileStatus) {
	n.Add("local: " + f.Local)
	if f.Tag != "" {
		n.Add("tag: " + f.Tag)
	}
	if len(f.Scripts) > 0 {
		scripts := n.Add("scripts")
		for _, s := range f.Scripts {
			scripts.Add(s)
		}
	}
}

func (a *app) packageLabel(p manifest.TrackedPackage) string {
	label := a.printer.Paint(style.PackageStyle, p.Name)
	if len(p.Overloads) == 0 {
		return label
	}
	managers := make([]string, 0, len(p.Overloads))
	for m := range p.Overloads {
		managers = append(managers, m)
	}
	sort.Strings(managers)
	parts := make([]string, 0, len(managers))
	for _, m := range managers {
		parts = append(parts, m+": "+p.Overloads[m])
	}
	return label + " (" + strings.Join(parts, ", ") + ")"
}

func newDoctorCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "doctor",
		Short:   MsgDoctorShort,
		Args:    cobra.NoArgs,
		GroupID: "manage",
		RunE: func(cmd *cobra.Command, args []string) error {
			findings := a.session.Doctor()
			if a.printer.JSON() {
				if findings == nil {
					findings = []doctor.Finding{}
				}
				return a.printer.Encode(findings)
			}
			a.printer.Markdown(doctor.Markdown(findings))
			return nil
		},
	}
}

func newConfigCmd(a *app) *cobra.Command {
	var defaults bool
	cmd := &cobra.Command{
		Use:         "config",
		Short:       MsgConfigShort,
		Args:        cobra.NoArgs,
		GroupID:     "manage",
		Annotations: noState,
		RunE: func(cmd *cobra.Command, args []string) error {
			if defaults {
				fmt.Fprint(cmd.OutOrStdout(), config.DefaultsContent())
				return nil
			}
			out, err := a.config.Render()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)
	return cmd
}

func newPackCmd(a *app) *cobra.Command {
	var opts commands.PackOptions
	cmd := &cobra.Command{
		Use:     "pack",
		Short:   MsgPackShort,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.session.Pack(opts)
			if err != nil {
				return err
			}
			if a.printer.JSON() {
				return a.printer.Encode(res)
			}
			for _, s := range res.Skipped {
				a.printer.Warn(MsgFileSkipped, s.Path, s.Reason)
			}
			a.printer.Success(MsgPacked, len(res.Packed), res.Dir)
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.Tag, "tag", "t", "", MsgFlagTag)
	cmd.Flags().StringVar(&opts.Where, "where", "", MsgFlagWhere)
	return cmd
}
