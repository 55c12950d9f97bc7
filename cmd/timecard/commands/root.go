package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/vatfree/timecard/internal/config"
	"github.com/vatfree/timecard/internal/dates"
	"github.com/vatfree/timecard/internal/githist"
	"github.com/vatfree/timecard/internal/huddles"
	"github.com/vatfree/timecard/internal/report"
	"github.com/vatfree/timecard/internal/timeline"
	"github.com/vatfree/timecard/internal/tui"
	"github.com/vatfree/timecard/pkg/models"
)

var (
	debugMode    bool
	reportOutput string
)

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "timecard",
		Short: "Turn commits and huddles into a weekly time-entry report",
		Long: `timecard collects your GitHub commits and Slack huddles for the week,
merges overlapping work sessions per task, and produces an editable
time-entry report. Running it without a subcommand reviews the report
in a TUI before writing it; the github, huddles and format subcommands
expose the individual pipeline stages.`,
		RunE: runReview,
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Print the merged task list without the review TUI")
	rootCmd.Flags().StringVarP(&reportOutput, "output", "o", "time-report.yaml", "Report file written on accept")
	rootCmd.AddCommand(NewGithubCommand())
	rootCmd.AddCommand(NewHuddlesCommand())
	rootCmd.AddCommand(NewFormatCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runReview(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	rng := dates.DefaultWeek(time.Now())

	if debugMode {
		tasks, err := collectTasks(cmd.Context(), cfg, rng, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		return runDebugMode(cmd.OutOrStdout(), tasks)
	}

	// Progress chatter would fight the alternate screen; the TUI shows
	// its own loading state instead.
	load := func(ctx context.Context) (string, error) {
		tasks, err := collectTasks(ctx, cfg, rng, io.Discard)
		if err != nil {
			return "", err
		}
		return report.Render(tasks), nil
	}

	rendered, accepted, err := tui.Review(load)
	if err != nil {
		return err
	}
	if !accepted {
		fmt.Fprintln(cmd.ErrOrStderr(), "Cancelled, nothing written.")
		return nil
	}
	if rendered == "" {
		fmt.Fprintln(cmd.ErrOrStderr(), "No tasks to report")
		return nil
	}

	if err := os.WriteFile(reportOutput, []byte(rendered), 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Report written to %s\n", reportOutput)
	return nil
}

// collectTasks runs both adapters and merges their output.
func collectTasks(ctx context.Context, cfg *config.Config, rng dates.Range, diag io.Writer) ([]models.Task, error) {
	fetcher := &githist.Fetcher{Client: githist.NewClient(), Org: cfg.Org, Diag: diag}
	commitTasks, err := fetcher.Fetch(ctx, rng)
	if err != nil {
		return nil, err
	}

	huddleTasks, err := huddles.Fetch(ctx, cfg.SlackUserID, cfg.SlackHuddlesPath, rng, diag)
	if err != nil {
		return nil, err
	}

	return timeline.MergeTasks(append(commitTasks, huddleTasks...)), nil
}

func runDebugMode(out io.Writer, tasks []models.Task) error {
	fmt.Fprintln(out, "=== Debug Mode: Merged Tasks ===")
	for i, task := range tasks {
		fmt.Fprintf(out, "\n%d. %s\n", i+1, task.Name)
		fmt.Fprintf(out, "   Sort Timestamp: %s\n", time.Unix(task.SortTimestamp, 0).UTC().Format("2006-01-02 15:04"))
		fmt.Fprintf(out, "   Sessions: %d\n", len(task.Sessions))
		for _, s := range task.Sessions {
			fmt.Fprintf(out, "   - %s, %d min\n",
				time.Unix(s.Start, 0).UTC().Format("2006-01-02 15:04"),
				report.Minutes(s))
		}
	}
	return nil
}

// rangeFromArgs resolves the optional [start] [end] day arguments shared
// by the adapter subcommands.
func rangeFromArgs(args []string) (dates.Range, error) {
	switch len(args) {
	case 0:
		return dates.DefaultWeek(time.Now()), nil
	case 2:
		return dates.Parse(args[0], args[1])
	default:
		return dates.Range{}, fmt.Errorf("provide both start and end dates, or neither")
	}
}

// writeTasks emits the interchange JSON on stdout or into path. The data
// channel carries only well-formed JSON; notices go to stderr.
func writeTasks(cmd *cobra.Command, tasks []models.Task, path string) error {
	data := []byte("[]")
	if len(tasks) > 0 {
		var err error
		data, err = json.MarshalIndent(tasks, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode tasks: %w", err)
		}
	}

	if path != "" {
		if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "JSON data written to %s\n", path)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
