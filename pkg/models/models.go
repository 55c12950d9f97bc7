package models

// Session is one continuous closed interval of work.
// Start and End are unix seconds, UTC, with Start <= End.
type Session struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

// OverlapsOrTouches reports whether the two intervals overlap or share an
// endpoint. Touching sessions are merge candidates.
func (s Session) OverlapsOrTouches(o Session) bool {
	return s.Start <= o.End && o.Start <= s.End
}

// Task is a named activity aggregating one or more sessions.
// Name is the sole identity for merging: two tasks are the same task
// iff their names are byte-equal.
type Task struct {
	Name     string    `json:"name"`
	Sessions []Session `json:"sessions"`
	// SortTimestamp orders tasks in rendered output. It is set to the
	// earliest session start at creation time and never recomputed;
	// on merge the minimum across contributing tasks wins.
	SortTimestamp int64 `json:"sort_timestamp"`
}
