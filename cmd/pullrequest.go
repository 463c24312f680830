package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/byte4ever/ghub/pullrequest"
)

func newPullRequestCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pr",
		Aliases: []string{"pull-request"},
		Short:   "Create, merge and look up pull requests",
	}

	cmd.AddCommand(
		newPRCreateCmd(flags),
		newPRMergeCmd(flags),
		newPRGetByHeadCmd(flags),
	)

	return cmd
}

func newPRCreateCmd(flags *rootFlags) *cobra.Command {
	var in pullrequest.CreateInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Open a pull request from --head into --base",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			const errCtx = "creating pull request"

			cl, err := flags.newClient()
			if err != nil {
				return fmt.Errorf("%s: %w", errCtx, err)
			}

			val, err := cl.PullRequest.Create(
				cmd.Context(), in,
			)
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
	cmd.Flags().StringVar(
		&in.Title, "title", "", "Pull request title",
	)
	cmd.Flags().StringVar(
		&in.BranchName, "head", "", "Branch to merge from",
	)
	cmd.Flags().StringVar(
		&in.IntoBranch, "base", "main", "Branch to merge into",
	)
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("head")

	return cmd
}

func newPRMergeCmd(flags *rootFlags) *cobra.Command {
	var (
		in     pullrequest.MergeInput
		method string
	)

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge pull request --number",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			const errCtx = "merging pull request"

			mm, err := pullrequest.ParseMergeMethod(method)
			if err != nil {
				return fmt.Errorf("%s: %w", errCtx, err)
			}

			in.MergeMethod = mm

			cl, err := flags.newClient()
			if err != nil {
				return fmt.Errorf("%s: %w", errCtx, err)
			}

			val, err := cl.PullRequest.Merge(
				cmd.Context(), in,
			)
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
	cmd.Flags().IntVar(
		&in.PullNumber, "number", 0,
		"Pull request number",
	)
	cmd.Flags().StringVar(
		&method, "method", pullrequest.Merge.String(),
		"Merge method: merge, rebase or squash",
	)
	_ = cmd.MarkFlagRequired("number")

	return cmd
}

func newPRGetByHeadCmd(flags *rootFlags) *cobra.Command {
	var in pullrequest.GetByHeadInput

	cmd := &cobra.Command{
		Use:   "get-by-head",
		Short: "Show the open pull request for --owner:--branch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			const errCtx = "getting pull request by head"

			cl, err := flags.newClient()
			if err != nil {
				return fmt.Errorf("%s: %w", errCtx, err)
			}

			val, found, err := cl.PullRequest.GetByHead(
				cmd.Context(), in,
			)
			if err != nil {
				return fmt.Errorf("%s: %w", errCtx, err)
			}

			if !found {
				slog.Info(
					"no open pull request",
					"head", in.BranchOwner+":"+in.BranchName,
				)
			}

			return printJSON(cmd.OutOrStdout(), val)
		},
	}

	cmd.Flags().StringVar(
		&in.RepoPath, "repo",
		envOr("GITHUB_REPOSITORY", ""),
		"Repository as owner/name",
	)
	cmd.Flags().StringVar(
		&in.BranchOwner, "owner", "",
		"Owner of the head branch",
	)
	cmd.Flags().StringVar(
		&in.BranchName, "branch", "", "Head branch name",
	)
	_ = cmd.MarkFlagRequired("owner")
	_ = cmd.MarkFlagRequired("branch")

	return cmd
}
