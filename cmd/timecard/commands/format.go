package commands

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vatfree/timecard/internal/report"
	"github.com/vatfree/timecard/internal/timeline"
	"github.com/vatfree/timecard/pkg/models"
)

var formatOutput string

// NewFormatCommand creates the format command
func NewFormatCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "format [file...]",
		Short: "Merge adapter JSON and render the report",
		Long: `Reads interchange JSON from the given files, or from stdin when no
files are named, merges overlapping sessions per task and renders the
time-entry report. Malformed records are reported on stderr and
skipped; the remaining tasks are still rendered.`,
		RunE: runFormat,
	}

	cmd.Flags().StringVarP(&formatOutput, "output", "o", "", "Write the report to file instead of stdout")

	return cmd
}

func runFormat(cmd *cobra.Command, args []string) error {
	tasks, err := readTaskInputs(cmd, args)
	if err != nil {
		return err
	}

	merged := timeline.MergeTasks(tasks)
	rendered := report.Render(merged)
	if rendered == "" {
		fmt.Fprintln(cmd.ErrOrStderr(), "No tasks to report")
		return nil
	}

	if formatOutput != "" {
		if err := os.WriteFile(formatOutput, []byte(rendered), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", formatOutput, err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Report written to %s\n", formatOutput)
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), rendered)
	return nil
}

// readTaskInputs decodes every input source, surfacing per-record
// problems on stderr without dropping the rest of the batch.
func readTaskInputs(cmd *cobra.Command, args []string) ([]models.Task, error) {
	var tasks []models.Task
	badRecords := 0

	decode := func(label string, r io.Reader) error {
		decoded, recordErrs, err := models.DecodeTasks(r)
		if err != nil {
			return fmt.Errorf("%s: %w", label, err)
		}
		for _, recErr := range recordErrs {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s: %v\n", label, recErr)
		}
		badRecords += len(recordErrs)
		tasks = append(tasks, decoded...)
		return nil
	}

	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		if len(strings.TrimSpace(string(data))) == 0 {
			return nil, fmt.Errorf("no input data; pipe adapter output or name a file")
		}
		if err := decode("stdin", bytes.NewReader(data)); err != nil {
			return nil, err
		}
	} else {
		for _, path := range args {
			f, err := os.Open(path)
			if err != nil {
				return nil, fmt.Errorf("failed to open %s: %w", path, err)
			}
			err = decode(path, f)
			f.Close()
			if err != nil {
				return nil, err
			}
		}
	}

	if len(tasks) == 0 && badRecords > 0 {
		return nil, fmt.Errorf("no usable records in input")
	}
	return tasks, nil
}
