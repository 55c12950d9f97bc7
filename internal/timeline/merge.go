package timeline

import (
	"sort"

	"github.com/vatfree/timecard/pkg/models"
)

// MergeSessions collapses overlapping or touching sessions into a minimal
// set of non-overlapping intervals, ascending by start. The input is not
// modified. Merging an already-merged list yields the same list.
func MergeSessions(sessions []models.Session) []models.Session {
	if len(sessions) == 0 {
		return nil
	}

	sorted := make([]models.Session, len(sessions))
	copy(sorted, sessions)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	merged := []models.Session{sorted[0]}
	for _, next := range sorted[1:] {
		current := &merged[len(merged)-1]
		// Input is start-sorted, so overlap-or-touch reduces to a single
		// comparison and start never needs to change.
		if next.Start <= current.End {
			if next.End > current.End {
				current.End = next.End
			}
			continue
		}
		merged = append(merged, next)
	}
	return merged
}

// MergeTasks groups tasks by exact name, merges each group's sessions and
// returns the canonical list ordered ascending by sort timestamp. The sort
// is stable, and a group keeps the minimum sort timestamp seen across its
// contributors, so a later mention of a known task never pushes it later
// in the output.
func MergeTasks(tasks []models.Task) []models.Task {
	byName := make(map[string]int, len(tasks))
	merged := make([]models.Task, 0, len(tasks))

	for _, t := range tasks {
		i, seen := byName[t.Name]
		if !seen {
			byName[t.Name] = len(merged)
			merged = append(merged, models.Task{
				Name:          t.Name,
				Sessions:      append([]models.Session(nil), t.Sessions...),
				SortTimestamp: t.SortTimestamp,
			})
			continue
		}
		merged[i].Sessions = append(merged[i].Sessions, t.Sessions...)
		if t.SortTimestamp < merged[i].SortTimestamp {
			merged[i].SortTimestamp = t.SortTimestamp
		}
	}

	for i := range merged {
		merged[i].Sessions = MergeSessions(merged[i].Sessions)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].SortTimestamp < merged[j].SortTimestamp
	})
	return merged
}
