package commands

import (
	"github.com/spf13/cobra"
	"github.com/vatfree/timecard/internal/config"
	"github.com/vatfree/timecard/internal/githist"
)

var (
	githubOrg    string
	githubOutput string
)

// NewGithubCommand creates the github adapter command
func NewGithubCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "github [start] [end]",
		Short: "Collect commit activity from merged pull requests",
		Long: `Scans every repository of the organization for pull requests merged in
the date range, attributes their commits to you by author email, and
emits one task per pull request as interchange JSON. Dates are
YYYY-MM-DD; without them the current week starting Monday is used.

Requires an authenticated gh CLI and git config user.email.`,
		Args: cobra.MaximumNArgs(2),
		RunE: runGithub,
	}

	cmd.Flags().StringVar(&githubOrg, "org", "", "GitHub organization to scan (default from config)")
	cmd.Flags().StringVarP(&githubOutput, "output", "o", "", "Write JSON to file instead of stdout")

	return cmd
}

func runGithub(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	rng, err := rangeFromArgs(args)
	if err != nil {
		return err
	}

	org := cfg.Org
	if githubOrg != "" {
		org = githubOrg
	}

	fetcher := &githist.Fetcher{
		Client: githist.NewClient(),
		Org:    org,
		Diag:   cmd.ErrOrStderr(),
	}
	tasks, err := fetcher.Fetch(cmd.Context(), rng)
	if err != nil {
		return err
	}

	return writeTasks(cmd, tasks, githubOutput)
}
