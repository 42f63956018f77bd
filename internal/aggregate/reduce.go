package aggregate

import (
	"sort"
	"time"

	"github.com/stanstork/execdash/internal/models"
)

// DateLayout is the key format of daily buckets.
const DateLayout = "2006-01-02"

// DayKey returns the daily bucket key for t in local time.
func DayKey(t time.Time) string {
	return t.In(time.Local).Format(DateLayout)
}

// tally accumulates status counts and duration sums. Both the per-record local
// path and the grouped rows returned by the store feed the same tally.
type tally struct {
	stats    models.AggregateStats
	sum      float64
	measured int
}

func (t *tally) count(status models.ExecutionStatus, n int) {
	t.stats.TotalExecutions += n
	switch status {
	case models.StatusSuccess:
		t.stats.SuccessCount += n
	case models.StatusError:
		t.stats.ErrorCount += n
	case models.StatusRunning:
		t.stats.RunningCount += n
	case models.StatusWaiting:
		t.stats.WaitingCount += n
	case models.StatusCanceled:
		t.stats.CanceledCount += n
	}
}

func (t *tally) measure(sumMs float64, n int) {
	t.sum += sumMs
	t.measured += n
}

func (t *tally) result() models.AggregateStats {
	stats := t.stats
	if t.measured > 0 {
		stats.AvgDurationMs = t.sum / float64(t.measured)
	}
	stats.SuccessRate = successRate(stats.SuccessCount, stats.TotalExecutions)
	return stats
}

// summarize counts every record by status and averages duration_ms over the records
// accepted by inDuration that carry a duration. A nil inDuration accepts all records.
func summarize(records []models.ExecutionRecord, inDuration func(models.ExecutionRecord) bool) models.AggregateStats {
	var t tally
	for _, rec := range records {
		t.count(rec.Status, 1)
		if rec.DurationMs == nil {
			continue
		}
		if inDuration != nil && !inDuration(rec) {
			continue
		}
		t.measure(float64(*rec.DurationMs), 1)
	}
	return t.result()
}

func successRate(success, total int) float64 {
	if total == 0 {
		return 0.0 // Avoid division by zero
	}
	return float64(success) / float64(total) * 100.0
}

// bucketize adds every dated record to the bucket of its start day and returns the
// buckets sorted by date. With grow set, missing buckets are created; otherwise
// records outside the given buckets are dropped.
func bucketize(records []models.ExecutionRecord, buckets map[string]*models.DailyBucket, grow bool) []models.DailyBucket {
	for _, rec := range records {
		if rec.StartedAt == nil {
			continue
		}
		key := DayKey(*rec.StartedAt)
		b, ok := buckets[key]
		if !ok {
			if !grow {
				continue
			}
			b = &models.DailyBucket{Date: key}
			buckets[key] = b
		}
		b.Total++
		switch rec.Status {
		case models.StatusSuccess:
			b.Success++
		case models.StatusError:
			b.Error++
		}
	}

	out := make([]models.DailyBucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
