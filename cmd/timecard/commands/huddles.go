package commands

import (
	"github.com/spf13/cobra"
	"github.com/vatfree/timecard/internal/config"
	"github.com/vatfree/timecard/internal/huddles"
)

var (
	huddlesUserID string
	huddlesPath   string
	huddlesOutput string
)

// NewHuddlesCommand creates the huddles adapter command
func NewHuddlesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "huddles [start] [end]",
		Short: "Collect Slack huddle sessions from a local export",
		Long: `Reads the newest slack_huddles*.json export in the export directory and
emits one task per huddle you participated in during the date range as
interchange JSON. Dates are YYYY-MM-DD; without them the current week
starting Monday is used.`,
		Args: cobra.MaximumNArgs(2),
		RunE: runHuddles,
	}

	cmd.Flags().StringVar(&huddlesUserID, "slack-user-id", "", "Slack member ID to match (default from config or SLACK_USER_ID)")
	cmd.Flags().StringVar(&huddlesPath, "slack-huddles-path", "", "Directory holding the huddle export (default from config)")
	cmd.Flags().StringVarP(&huddlesOutput, "output", "o", "", "Write JSON to file instead of stdout")

	return cmd
}

func runHuddles(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	rng, err := rangeFromArgs(args)
	if err != nil {
		return err
	}

	userID := cfg.SlackUserID
	if huddlesUserID != "" {
		userID = huddlesUserID
	}
	exportDir := cfg.SlackHuddlesPath
	if huddlesPath != "" {
		exportDir = huddlesPath
	}

	tasks, err := huddles.Fetch(cmd.Context(), userID, exportDir, rng, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	return writeTasks(cmd, tasks, huddlesOutput)
}
