// Package huddles is the call-history adapter. It reads a locally exported
// Slack huddles file and emits one task per huddle the configured user
// attended within the reporting range.
package huddles

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vatfree/timecard/internal/dates"
	"github.com/vatfree/timecard/internal/db"
	"github.com/vatfree/timecard/pkg/models"
)

// TaskName labels every huddle; huddles are not differentiated by topic.
const TaskName = "Slack huddle #meetings"

const exportPattern = "slack_huddles*.json"

// FindExport locates the newest slack_huddles*.json file under dir.
func FindExport(dir string) (string, error) {
	dir = expandHome(dir)
	matches, err := filepath.Glob(filepath.Join(dir, exportPattern))
	if err != nil {
		return "", fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no %s file found in %s\n\n"+
			"To generate this file:\n"+
			"1. Open Slack in your browser\n"+
			"2. Run the bookmarklet to download huddles data\n"+
			"3. Save the file as slack_huddles.json", exportPattern, dir)
	}

	newest := matches[0]
	newestInfo, err := os.Stat(newest)
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", newest, err)
	}
	for _, candidate := range matches[1:] {
		info, err := os.Stat(candidate)
		if err != nil {
			continue
		}
		if info.ModTime().After(newestInfo.ModTime()) {
			newest, newestInfo = candidate, info
		}
	}
	return newest, nil
}

// Fetch loads the huddles the user attended with a start time inside rng
// and returns them as single-session tasks. Progress notes go to diag.
func Fetch(ctx context.Context, userID, exportDir string, rng dates.Range, diag io.Writer) ([]models.Task, error) {
	if userID == "" {
		return nil, fmt.Errorf("Slack user ID not set; set SLACK_USER_ID or pass --slack-user-id\n" +
			"To find your ID in Slack: Profile -> More -> Copy member ID")
	}

	exportFile, err := FindExport(exportDir)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(diag, "Loaded huddles from %s\n", exportFile)

	database, err := db.Get()
	if err != nil {
		return nil, err
	}

	// The export is one JSON document with a "huddles" array; unnest it
	// and filter in the query rather than materializing the whole file.
	// The schema is pinned so an empty export still plans cleanly.
	query := fmt.Sprintf(`
		SELECT
			h.date_start as start_ts,
			h.date_end as end_ts
		FROM (
			SELECT unnest(huddles) AS h
			FROM read_json('%s',
				columns = {huddles: 'STRUCT(id VARCHAR, date_start BIGINT, date_end BIGINT, participant_history VARCHAR[])[]'}
			)
		)
		WHERE h.date_start IS NOT NULL
		AND h.date_end IS NOT NULL
		AND h.date_end >= h.date_start
		AND list_contains(h.participant_history, ?)
		AND h.date_start BETWEEN ? AND ?
		ORDER BY h.date_start ASC
	`, sqlEscape(exportFile))

	rows, err := database.QueryContext(ctx, query, userID, rng.Start.Unix(), rng.End.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to query huddles export %s: %w", exportFile, err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var start, end int64
		if err := rows.Scan(&start, &end); err != nil {
			return nil, fmt.Errorf("failed to read huddle record: %w", err)
		}
		tasks = append(tasks, models.Task{
			Name:          TaskName,
			Sessions:      []models.Session{{Start: start, End: end}},
			SortTimestamp: start,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read huddles export %s: %w", exportFile, err)
	}

	if len(tasks) == 0 {
		fmt.Fprintln(diag, "No huddles found for the specified period.")
	} else {
		fmt.Fprintf(diag, "Found %d huddles\n", len(tasks))
	}
	return tasks, nil
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

// sqlEscape guards the file path interpolated into read_json; paths cannot
// be bound as parameters there.
func sqlEscape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
