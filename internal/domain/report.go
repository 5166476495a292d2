package domain

import "time"

// MaxDiffLines is the maximum number of diff lines sent to the model.
const MaxDiffLines = 3000

// Report is the aggregate produced by one pipeline run: a diff summary plus
// zero or more per-finding suggestions. It exists only for the duration of
// the run; delivery is the publisher's concern.
type Report struct {
	Date        time.Time
	Summary     string
	Suggestions []Suggestion
	Model       string
}

// HasSuggestions returns true if there are any suggestions to render.
func (r *Report) HasSuggestions() bool {
	return len(r.Suggestions) > 0
}
