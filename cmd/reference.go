package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/byte4ever/ghub/reference"
)

func newReferenceCmd(flags *rootFlags) *cobra.Command {
	var in reference.DeleteInput

	del := &cobra.Command{
		Use:   "delete <heads/branch|tags/tag>",
		Short: "Delete a git reference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			const errCtx = "deleting reference"

			in.ReferencePath = args[0]

			cl, err := flags.newClient()
			if err != nil {
				return fmt.Errorf("%s: %w", errCtx, err)
			}

			if err := cl.Reference.Delete(
				cmd.Context(), in,
			); err != nil {
				return fmt.Errorf("%s: %w", errCtx, err)
			}

			return nil
		},
	}

	del.Flags().StringVar(
		&in.RepoPath, "repo",
		envOr("GITHUB_REPOSITORY", ""),
		"Repository as owner/name",
	)

	cmd := &cobra.Command{
		Use:   "ref",
		Short: "Manage git references",
	}
	cmd.AddCommand(del)

	return cmd
}
