package timeline

import (
	"reflect"
	"testing"

	"github.com/vatfree/timecard/pkg/models"
)

// Timestamps are arbitrary unix seconds; only their relative layout matters.
// 09:00 on some day.
const base = int64(1767259800)

func at(minutes int64) int64 {
	return base + minutes*60
}

func TestMergeSessionsOverlap(t *testing.T) {
	// 09:00-09:30 and 09:15-09:45 collapse into 09:00-09:45.
	sessions := []models.Session{
		{Start: at(0), End: at(30)},
		{Start: at(15), End: at(45)},
	}

	merged := MergeSessions(sessions)
	want := []models.Session{{Start: at(0), End: at(45)}}
	if !reflect.DeepEqual(merged, want) {
		t.Errorf("got %+v, want %+v", merged, want)
	}
}

func TestMergeSessionsTouching(t *testing.T) {
	// 08:00-08:30 and 08:30-09:00 share an endpoint and merge.
	sessions := []models.Session{
		{Start: at(0), End: at(30)},
		{Start: at(30), End: at(60)},
	}

	merged := MergeSessions(sessions)
	want := []models.Session{{Start: at(0), End: at(60)}}
	if !reflect.DeepEqual(merged, want) {
		t.Errorf("got %+v, want %+v", merged, want)
	}
}

func TestMergeSessionsDisjoint(t *testing.T) {
	sessions := []models.Session{
		{Start: at(0), End: at(30)},
		{Start: at(120), End: at(150)},
	}

	merged := MergeSessions(sessions)
	if len(merged) != 2 {
		t.Fatalf("disjoint sessions must stay distinct, got %+v", merged)
	}
	if !reflect.DeepEqual(merged, sessions) {
		t.Errorf("got %+v, want %+v", merged, sessions)
	}
}

func TestMergeSessionsUnsortedInput(t *testing.T) {
	sessions := []models.Session{
		{Start: at(60), End: at(90)},
		{Start: at(0), End: at(30)},
		{Start: at(20), End: at(70)},
	}

	merged := MergeSessions(sessions)
	want := []models.Session{{Start: at(0), End: at(90)}}
	if !reflect.DeepEqual(merged, want) {
		t.Errorf("got %+v, want %+v", merged, want)
	}
}

func TestMergeSessionsContained(t *testing.T) {
	// A session fully inside another must not shrink the envelope.
	sessions := []models.Session{
		{Start: at(0), End: at(90)},
		{Start: at(10), End: at(20)},
	}

	merged := MergeSessions(sessions)
	want := []models.Session{{Start: at(0), End: at(90)}}
	if !reflect.DeepEqual(merged, want) {
		t.Errorf("got %+v, want %+v", merged, want)
	}
}

func TestMergeSessionsIdempotent(t *testing.T) {
	sessions := []models.Session{
		{Start: at(0), End: at(45)},
		{Start: at(120), End: at(150)},
		{Start: at(300), End: at(330)},
	}

	once := MergeSessions(sessions)
	twice := MergeSessions(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("merge is not idempotent: %+v vs %+v", once, twice)
	}
}

func TestMergeSessionsEmpty(t *testing.T) {
	if merged := MergeSessions(nil); merged != nil {
		t.Errorf("expected nil for empty input, got %+v", merged)
	}
}

func TestMergeSessionsDoesNotModifyInput(t *testing.T) {
	sessions := []models.Session{
		{Start: at(60), End: at(90)},
		{Start: at(0), End: at(30)},
	}
	saved := append([]models.Session(nil), sessions...)

	MergeSessions(sessions)
	if !reflect.DeepEqual(sessions, saved) {
		t.Errorf("input mutated: %+v", sessions)
	}
}

func TestMergeTasksGroupsByName(t *testing.T) {
	// Same name from two different adapters becomes one task with the
	// union of sessions and the minimum sort timestamp.
	tasks := []models.Task{
		{
			Name:          "Fix bug #eng707",
			Sessions:      []models.Session{{Start: at(0), End: at(30)}},
			SortTimestamp: at(0),
		},
		{
			Name:          "Fix bug #eng707",
			Sessions:      []models.Session{{Start: at(120), End: at(150)}},
			SortTimestamp: at(-60),
		},
	}

	merged := MergeTasks(tasks)
	if len(merged) != 1 {
		t.Fatalf("expected 1 merged task, got %d", len(merged))
	}
	if merged[0].SortTimestamp != at(-60) {
		t.Errorf("minimum sort timestamp should win, got %d", merged[0].SortTimestamp)
	}
	if len(merged[0].Sessions) != 2 {
		t.Errorf("expected 2 disjoint sessions, got %+v", merged[0].Sessions)
	}
}

func TestMergeTasksDistinctNamesStaySeparate(t *testing.T) {
	tasks := []models.Task{
		{Name: "Fix bug #eng707", Sessions: []models.Session{{Start: at(0), End: at(30)}}, SortTimestamp: at(0)},
		{Name: "Fix bug #eng708", Sessions: []models.Session{{Start: at(0), End: at(30)}}, SortTimestamp: at(0)},
	}

	merged := MergeTasks(tasks)
	if len(merged) != 2 {
		t.Fatalf("byte-distinct names must not merge, got %d tasks", len(merged))
	}
}

func TestMergeTasksStableSort(t *testing.T) {
	tasks := []models.Task{
		{Name: "late", Sessions: []models.Session{{Start: 300, End: 360}}, SortTimestamp: 300},
		{Name: "tied-first", Sessions: []models.Session{{Start: 100, End: 160}}, SortTimestamp: 100},
		{Name: "tied-second", Sessions: []models.Session{{Start: 100, End: 160}}, SortTimestamp: 100},
	}

	merged := MergeTasks(tasks)
	got := []string{merged[0].Name, merged[1].Name, merged[2].Name}
	want := []string{"tied-first", "tied-second", "late"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got order %v, want %v", got, want)
	}
}

func TestMergeTasksSessionsSortedWithinTask(t *testing.T) {
	tasks := []models.Task{
		{
			Name: "work",
			Sessions: []models.Session{
				{Start: at(300), End: at(330)},
				{Start: at(0), End: at(30)},
			},
			SortTimestamp: at(0),
		},
	}

	merged := MergeTasks(tasks)
	sessions := merged[0].Sessions
	for i := 1; i < len(sessions); i++ {
		if sessions[i].Start < sessions[i-1].Start {
			t.Errorf("sessions not ascending by start: %+v", sessions)
		}
	}
}

func TestMergeTasksIdempotent(t *testing.T) {
	tasks := []models.Task{
		{Name: "a", Sessions: []models.Session{{Start: at(0), End: at(30)}, {Start: at(15), End: at(45)}}, SortTimestamp: at(0)},
		{Name: "b", Sessions: []models.Session{{Start: at(60), End: at(90)}}, SortTimestamp: at(60)},
		{Name: "a", Sessions: []models.Session{{Start: at(200), End: at(230)}}, SortTimestamp: at(200)},
	}

	once := MergeTasks(tasks)
	twice := MergeTasks(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("task merge is not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestMergeTasksEmpty(t *testing.T) {
	if merged := MergeTasks(nil); len(merged) != 0 {
		t.Errorf("expected empty output, got %+v", merged)
	}
}
