package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/byte4ever/ghub/branch"
)

func newBranchCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "branch",
		Short: "List and delete branches",
	}

	cmd.AddCommand(
		newBranchListCmd(flags),
		newBranchDeleteCmd(flags),
	)

	return cmd
}

func newBranchListCmd(flags *rootFlags) *cobra.Command {
	var (
		in        branch.ListInput
		protected bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of branches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			const errCtx = "listing branches"

			if cmd.Flags().Changed("protected") {
				in.Protected = &protected
			}

			cl, err := flags.newClient()
			if err != nil {
				return fmt.Errorf("%s: %w", errCtx, err)
			}

			val, err := cl.Branch.List(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("%s: %w", errCtx, err)
			}

			return printJSON(cmd.OutOrStdout(), val)
		},
	}

	cmd.Flags().StringVar(
		&in.RepoPath, "repo",
		envOr("GITHUB_REPOSITORY", ""),
		"Repository as owner/name",
	)
	cmd.Flags().BoolVar(
		&protected, "protected", false,
		"Only list protected branches",
	)
	cmd.Flags().Uint32Var(
		&in.PerPage, "per-page", 100, "Page size",
	)
	cmd.Flags().Uint32Var(
		&in.Page, "page", 1, "Page number, from 1",
	)

	return cmd
}

func newBranchDeleteCmd(flags *rootFlags) *cobra.Command {
	var in branch.DeleteInput

	cmd := &cobra.Command{
		Use:   "delete <branch>",
		Short: "Delete a branch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			const errCtx = "deleting branch"

			in.BranchName = args[0]

			cl, err := flags.newClient()
			if err != nil {
				return fmt.Errorf("%s: %w", errCtx, err)
			}

			if err := cl.Branch.Delete(
				cmd.Context(), in,
			); err != nil {
				return fmt.Errorf("%s: %w", errCtx, err)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(
		&in.RepoPath, "repo",
		envOr("GITHUB_REPOSITORY", ""),
		"Repository as owner/name",
	)

	return cmd
}
