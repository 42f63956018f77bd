package aggregate

import (
	"sort"
	"time"

	"github.com/stanstork/execdash/internal/models"
)

// ComputeStats folds the per-status groups of an instance into the stat cards.
// There is no status dimension on the server: every measured execution contributes
// to the average duration.
func ComputeStats(groups []models.StatusGroup) models.AggregateStats {
	var t tally
	for _, g := range groups {
		t.count(g.Status, g.Count)
		t.measure(g.DurationSumMs, g.DurationCount)
	}
	return t.result()
}

// WindowStart returns local midnight days days before now, the first day of the
// trailing window reported by ComputeDaily.
func WindowStart(now time.Time, days int) time.Time {
	return StartOfDay(now).AddDate(0, 0, -days)
}

// ComputeDaily returns one bucket per calendar day in [now - days, now], zero-filled
// for days without executions, with the records counted into the day they started.
// Records starting after today (clock skew on the producer) are not counted.
func ComputeDaily(records []models.ExecutionRecord, now time.Time, days int) []models.DailyBucket {
	if days < 0 {
		days = 0
	}
	buckets := make(map[string]*models.DailyBucket, days+1)
	start := WindowStart(now, days)
	for i := 0; i <= days; i++ {
		key := DayKey(start.AddDate(0, 0, i))
		buckets[key] = &models.DailyBucket{Date: key}
	}
	return bucketize(records, buckets, false)
}

// ComputeWorkflowStats folds (workflow, status) groups into per-workflow figures.
// Only workflows with at least one execution appear; the result is ordered by count,
// busiest first.
func ComputeWorkflowStats(groups []models.StatusGroup) []models.WorkflowStats {
	tallies := make(map[string]*tally)
	for _, g := range groups {
		t, ok := tallies[g.WorkflowName]
		if !ok {
			t = &tally{}
			tallies[g.WorkflowName] = t
		}
		t.count(g.Status, g.Count)
		t.measure(g.DurationSumMs, g.DurationCount)
	}

	out := make([]models.WorkflowStats, 0, len(tallies))
	for name, t := range tallies {
		s := t.result()
		if s.TotalExecutions == 0 {
			continue
		}
		out = append(out, models.WorkflowStats{
			WorkflowName:  name,
			Count:         s.TotalExecutions,
			Success:       s.SuccessCount,
			Fail:          s.ErrorCount,
			AvgDurationMs: s.AvgDurationMs,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].WorkflowName < out[j].WorkflowName
	})
	return out
}
