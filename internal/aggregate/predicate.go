// Package aggregate reduces execution records into dashboard statistics. The server
// endpoints and the dashboard's in-memory re-filtering share the reductions in this
// package so both paths produce the same figures for the same filter state.
package aggregate

import (
	"time"

	"github.com/stanstork/execdash/internal/models"
)

// MatchesCountFilters reports whether a record passes the workflow, mode and date
// range filters. Status is deliberately ignored, and the instance dimension is
// expected to have been applied by the query that produced the records.
func MatchesCountFilters(rec models.ExecutionRecord, f models.FilterState) bool {
	if f.Workflow != "" && rec.WorkflowName != f.Workflow {
		return false
	}
	if f.Mode != "" && rec.ModeOrEmpty() != f.Mode {
		return false
	}
	if f.DateRange != nil {
		// An undated record cannot fall inside a window.
		if rec.StartedAt == nil {
			return false
		}
		start, end := dayBounds(*f.DateRange)
		t := *rec.StartedAt
		if t.Before(start) || !t.Before(end) {
			return false
		}
	}
	return true
}

// MatchesStatusFilter reports whether a record passes the status filter.
func MatchesStatusFilter(rec models.ExecutionRecord, f models.FilterState) bool {
	return f.Status == "" || rec.Status == f.Status
}

// Matches reports whether a record passes every in-memory filter, status included.
// It selects the rows shown in the executions table.
func Matches(rec models.ExecutionRecord, f models.FilterState) bool {
	return MatchesCountFilters(rec, f) && MatchesStatusFilter(rec, f)
}

// dayBounds returns the half-open interval [start of From, start of the day after To)
// in local time.
func dayBounds(r models.DateRange) (time.Time, time.Time) {
	to := r.From
	if r.To != nil {
		to = *r.To
	}
	return StartOfDay(r.From), StartOfDay(to).AddDate(0, 0, 1)
}

// StartOfDay truncates t to local midnight.
func StartOfDay(t time.Time) time.Time {
	t = t.In(time.Local)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}
