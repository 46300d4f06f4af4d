package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newGitCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "git",
		Short:   MsgGitShort,
		GroupID: "manage",
	}

	cmd.AddCommand(a.gitStep("add", MsgGitAddShort, func(ctx context.Context) error {
		return a.session.GitAdd(ctx)
	}))
	cmd.AddCommand(a.gitStep("push", MsgGitPushShort, func(ctx context.Context) error {
		return a.session.GitPush(ctx)
	}))
	cmd.AddCommand(a.gitStep("pull", MsgGitPullShort, func(ctx context.Context) error {
		return a.session.GitPull(ctx)
	}))

	var message string
	commit := a.gitStep("commit", MsgGitCommitShort, func(ctx context.Context) error {
		return a.session.GitCommit(ctx, message)
	})
	commit.Flags().StringVarP(&message, "message", "m", MsgDefaultCommitMsg, MsgFlagCommitMsg)
	cmd.AddCommand(commit)

	remote := &cobra.Command{
		Use:   "remote",
		Short: MsgGitRemoteShort,
	}
	remote.AddCommand(&cobra.Command{
		Use:   "set <url>",
		Short: MsgGitRemoteSet,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.GitSetRemote(cmd.Context(), args[0]); err != nil {
				return err
			}
			a.printer.Success(MsgRemoteSet, args[0])
			return nil
		},
	})
	cmd.AddCommand(remote)
	return cmd
}

func (a *app) gitStep(name, short string, run func(ctx context.Context) error) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := run(cmd.Context()); err != nil {
				return err
			}
			a.printer.Success(MsgGitDone, name, a.layout.PackDir())
			return nil
		},
	}
}

func newPromptCmd(a *app) *cobra.Command {
	var shell string
	cmd := &cobra.Command{
		Use:     "prompt",
		Short:   MsgPromptShort,
		Args:    cobra.NoArgs,
		GroupID: "manage",
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, err := a.session.PromptCommand(cmd.Context(), shell)
			if err != nil {
				return err
			}
			sh.Stdin = cmd.InOrStdin()
			sh.Stdout = cmd.OutOrStdout()
			sh.Stderr = cmd.ErrOrStderr()
			if err := sh.Run(); err != nil {
				return fmt.Errorf(MsgErrPromptShell, err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&shell, "shell", "", MsgFlagPromptShell)
	return cmd
}
