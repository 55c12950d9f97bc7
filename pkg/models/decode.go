package models

import (
	"encoding/json"
	"fmt"
	"io"
)

// rawTask mirrors Task with enough slack to validate the interchange
// contract record by record instead of failing the whole array.
type rawTask struct {
	Name          *string      `json:"name"`
	Sessions      []rawSession `json:"sessions"`
	SortTimestamp *json.Number `json:"sort_timestamp"`
}

type rawSession struct {
	Start *json.Number `json:"start"`
	End   *json.Number `json:"end"`
}

// DecodeTasks reads an interchange task list from r. Records that violate
// the data contract (missing fields, non-integer timestamps, start > end)
// are dropped and reported in the returned slice of record errors; the
// final error is non-nil only when the input is not a JSON array at all.
func DecodeTasks(r io.Reader) ([]Task, []error, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read input: %w", err)
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, nil, fmt.Errorf("invalid JSON input: %w", err)
	}

	var tasks []Task
	var recordErrs []error
	for i, rec := range records {
		var raw rawTask
		if err := json.Unmarshal(rec, &raw); err != nil {
			recordErrs = append(recordErrs, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		task, err := raw.toTask()
		if err != nil {
			recordErrs = append(recordErrs, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks, recordErrs, nil
}

func (r rawTask) toTask() (Task, error) {
	if r.Name == nil || *r.Name == "" {
		return Task{}, fmt.Errorf("missing task name")
	}
	if len(r.Sessions) == 0 {
		return Task{}, fmt.Errorf("task %q has no sessions", *r.Name)
	}

	task := Task{Name: *r.Name, Sessions: make([]Session, 0, len(r.Sessions))}
	for i, rs := range r.Sessions {
		if rs.Start == nil || rs.End == nil {
			return Task{}, fmt.Errorf("task %q session %d: missing start or end", *r.Name, i)
		}
		start, err := rs.Start.Int64()
		if err != nil {
			return Task{}, fmt.Errorf("task %q session %d: non-integer start %q", *r.Name, i, rs.Start.String())
		}
		end, err := rs.End.Int64()
		if err != nil {
			return Task{}, fmt.Errorf("task %q session %d: non-integer end %q", *r.Name, i, rs.End.String())
		}
		if start > end {
			return Task{}, fmt.Errorf("task %q session %d: start %d after end %d", *r.Name, i, start, end)
		}
		task.Sessions = append(task.Sessions, Session{Start: start, End: end})
	}

	if r.SortTimestamp == nil {
		return Task{}, fmt.Errorf("task %q: missing sort_timestamp", *r.Name)
	}
	ts, err := r.SortTimestamp.Int64()
	if err != nil {
		return Task{}, fmt.Errorf("task %q: non-integer sort_timestamp %q", *r.Name, r.SortTimestamp.String())
	}
	task.SortTimestamp = ts
	return task, nil
}
