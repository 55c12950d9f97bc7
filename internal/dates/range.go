// Package dates resolves the reporting window for a run. Days are treated
// as UTC calendar days; a range of days expands to the closed interval
// [start 00:00:00, end 23:59:59].
package dates

import (
	"fmt"
	"time"
)

const dayLayout = "2006-01-02"

// Range is a reporting window in UTC. Start sits at the first instant of
// the first day, End at the last second of the last day.
type Range struct {
	Start time.Time
	End   time.Time
}

// Parse builds a range from two YYYY-MM-DD day strings.
func Parse(startDay, endDay string) (Range, error) {
	start, err := time.ParseInLocation(dayLayout, startDay, time.UTC)
	if err != nil {
		return Range{}, fmt.Errorf("invalid start date %q (want YYYY-MM-DD): %w", startDay, err)
	}
	end, err := time.ParseInLocation(dayLayout, endDay, time.UTC)
	if err != nil {
		return Range{}, fmt.Errorf("invalid end date %q (want YYYY-MM-DD): %w", endDay, err)
	}
	if end.Before(start) {
		return Range{}, fmt.Errorf("end date %s before start date %s", endDay, startDay)
	}
	return Range{Start: start, End: endOfDay(end)}, nil
}

// DefaultWeek is the range used when no dates are given: the current week's
// Monday through today. On a Monday it falls back to the previous full
// Monday-to-Sunday week, since the new week has barely started.
func DefaultWeek(now time.Time) Range {
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	sinceMonday := (int(now.Weekday()) + 6) % 7

	if sinceMonday == 0 {
		return Range{
			Start: today.AddDate(0, 0, -7),
			End:   endOfDay(today.AddDate(0, 0, -1)),
		}
	}
	return Range{
		Start: today.AddDate(0, 0, -sinceMonday),
		End:   endOfDay(today),
	}
}

// Contains reports whether the unix timestamp falls inside the range.
func (r Range) Contains(ts int64) bool {
	t := time.Unix(ts, 0).UTC()
	return !t.Before(r.Start) && !t.After(r.End)
}

func (r Range) String() string {
	return fmt.Sprintf("%s to %s", r.Start.Format(dayLayout), r.End.Format(dayLayout))
}

// StartDay and EndDay render the range bounds as YYYY-MM-DD, the form the
// GitHub search API expects.
func (r Range) StartDay() string { return r.Start.Format(dayLayout) }
func (r Range) EndDay() string   { return r.End.Format(dayLayout) }

func endOfDay(day time.Time) time.Time {
	return day.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
}
