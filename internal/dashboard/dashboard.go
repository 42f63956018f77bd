package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/stanstork/execdash/internal/aggregate"
	"github.com/stanstork/execdash/internal/models"
	"golang.org/x/sync/errgroup"
)

// Fetcher is the subset of the API the dashboard loads on every refresh.
type Fetcher interface {
	Executions(ctx context.Context, instance string, limit int) ([]models.ExecutionRecord, error)
	Stats(ctx context.Context, instance string) (models.AggregateStats, error)
	Daily(ctx context.Context, instance string, days int) ([]models.DailyBucket, error)
	Invalidate()
}

// Snapshot is the fetched state for one instance. Each section carries its own
// error; a failed section does not prevent the others from rendering.
type Snapshot struct {
	Instance      string
	Executions    []models.ExecutionRecord
	ExecutionsErr error
	Stats         models.AggregateStats
	StatsErr      error
	Daily         []models.DailyBucket
	DailyErr      error
	FetchedAt     time.Time
}

// ConnectionIssue reports whether any section failed to load.
func (s Snapshot) ConnectionIssue() bool {
	return s.ExecutionsErr != nil || s.StatsErr != nil || s.DailyErr != nil
}

type Dashboard struct {
	fetcher Fetcher
	limit   int
	days    int
	now     func() time.Time
	logger  zerolog.Logger

	mu       sync.Mutex
	seq      uint64
	instance string
	current  Snapshot
}

// New returns a dashboard loading up to limit executions and a days-long daily series.
func New(fetcher Fetcher, limit, days int, logger zerolog.Logger) *Dashboard {
	return &Dashboard{
		fetcher: fetcher,
		limit:   limit,
		days:    days,
		now:     time.Now,
		logger:  logger.With().Str("component", "dashboard").Logger(),
	}
}

// Load fetches executions, stats and the daily series for instance concurrently.
// The result replaces the current snapshot only if no newer Load was started in
// the meantime; the returned bool reports whether it was applied.
func (d *Dashboard) Load(ctx context.Context, instance string) (Snapshot, bool) {
	d.mu.Lock()
	d.seq++
	seq := d.seq
	d.instance = instance
	d.mu.Unlock()

	snap := Snapshot{Instance: instance}
	var g errgroup.Group
	g.Go(func() error {
		snap.Executions, snap.ExecutionsErr = d.fetcher.Executions(ctx, instance, d.limit)
		return nil
	})
	g.Go(func() error {
		snap.Stats, snap.StatsErr = d.fetcher.Stats(ctx, instance)
		return nil
	})
	g.Go(func() error {
		snap.Daily, snap.DailyErr = d.fetcher.Daily(ctx, instance, d.days)
		return nil
	})
	_ = g.Wait()
	snap.FetchedAt = d.now()

	return snap, d.apply(seq, snap)
}

func (d *Dashboard) apply(seq uint64, snap Snapshot) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if seq != d.seq {
		d.logger.Debug().Str("instance", snap.Instance).Msg("discarding stale response")
		return false
	}
	d.current = snap
	if snap.ConnectionIssue() {
		d.logger.Warn().
			AnErr("executions", snap.ExecutionsErr).
			AnErr("stats", snap.StatsErr).
			AnErr("daily", snap.DailyErr).
			Str("instance", snap.Instance).
			Msg("dashboard loaded with errors")
	}
	return true
}

// Refresh drops cached responses and reloads the most recently requested instance.
func (d *Dashboard) Refresh(ctx context.Context) (Snapshot, bool) {
	d.fetcher.Invalidate()
	d.mu.Lock()
	instance := d.instance
	d.mu.Unlock()
	return d.Load(ctx, instance)
}

func (d *Dashboard) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

// View is what the dashboard renders for a filter state.
type View struct {
	Filters      models.FilterState
	Stats        models.AggregateStats
	Daily        []models.DailyBucket
	ActiveStatus models.ExecutionStatus
	Rows         []models.ExecutionRecord

	// InstanceMismatch is set when the filters select a different instance than the
	// snapshot was loaded for; the figures are the previous instance's until reloaded.
	InstanceMismatch bool

	StatsErr      error
	DailyErr      error
	ExecutionsErr error
}

// View applies filters to the current snapshot without fetching.
func (d *Dashboard) View(filters models.FilterState) View {
	return BuildView(d.Snapshot(), filters)
}

// BuildView derives the stat cards, daily series and table rows for filters.
func BuildView(snap Snapshot, filters models.FilterState) View {
	v := View{
		Filters:          filters,
		ActiveStatus:     filters.Status,
		InstanceMismatch: filters.Instance != snap.Instance,
		StatsErr:         snap.StatsErr,
		DailyErr:         snap.DailyErr,
		ExecutionsErr:    snap.ExecutionsErr,
	}
	v.Stats, v.Daily = aggregate.Recompute(snap.Executions, filters, snap.Stats, snap.Daily)

	// Locally filtered figures depend on the execution list, not the server figures.
	if filters.HasLocalFilters() {
		v.StatsErr = snap.ExecutionsErr
		if filters.HasCountFilters() {
			v.DailyErr = snap.ExecutionsErr
		}
	}

	v.Rows = make([]models.ExecutionRecord, 0, len(snap.Executions))
	for _, rec := range snap.Executions {
		if aggregate.Matches(rec, filters) {
			v.Rows = append(v.Rows, rec)
		}
	}
	return v
}
