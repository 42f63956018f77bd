package aggregate

import "github.com/stanstork/execdash/internal/models"

// Recompute derives the stat cards and daily series for filters from an already
// fetched record window, so the dashboard can re-filter without a round trip.
//
// With no in-memory filter active the server figures are returned untouched: they
// are computed over the whole store while records may be a capped window of it.
// Counts and the daily series come from the records passing the workflow, mode and
// date range filters; the status filter only narrows the average duration. When
// status is the only active filter the server's daily series is kept as is.
func Recompute(
	records []models.ExecutionRecord,
	filters models.FilterState,
	serverStats models.AggregateStats,
	serverDaily []models.DailyBucket,
) (models.AggregateStats, []models.DailyBucket) {
	if !filters.HasLocalFilters() {
		return serverStats, serverDaily
	}

	countSet := make([]models.ExecutionRecord, 0, len(records))
	for _, rec := range records {
		if MatchesCountFilters(rec, filters) {
			countSet = append(countSet, rec)
		}
	}

	stats := summarize(countSet, func(rec models.ExecutionRecord) bool {
		return MatchesStatusFilter(rec, filters)
	})

	if !filters.HasCountFilters() {
		return stats, serverDaily
	}
	return stats, bucketize(countSet, map[string]*models.DailyBucket{}, true)
}
