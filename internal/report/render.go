// Package report renders the merged task list as the editable time-entry
// submission document.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/vatfree/timecard/pkg/models"
)

const displayLayout = "02 Jan 2006, 15:04"

// Render produces the submission report for a canonical (merged, sorted)
// task list. Timestamps are rendered in UTC. An empty task list renders
// as an empty string; the caller decides how to announce that.
func Render(tasks []models.Task) string {
	if len(tasks) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("# Time Entry Submission\n")
	b.WriteString("# Review and confirm the sessions below:\n")
	b.WriteString("# Save and close this file to submit, or delete all content to cancel\n")
	b.WriteString("\n")
	b.WriteString("tasks:\n")

	for _, task := range tasks {
		fmt.Fprintf(&b, "  - taskName: %q\n", task.Name)
		b.WriteString("    focus:\n")
		for _, session := range task.Sessions {
			start := time.Unix(session.Start, 0).UTC().Format(displayLayout)
			fmt.Fprintf(&b, "      - %s, %d min\n", start, Minutes(session))
		}
	}
	return b.String()
}

// Minutes is the session length in whole minutes, rounding half up.
func Minutes(s models.Session) int64 {
	return (s.End - s.Start + 30) / 60
}
