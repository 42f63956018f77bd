package cli

import (
	"fmt"
	"time"

	"github.com/stanstork/execdash/internal/aggregate"
	"github.com/stanstork/execdash/internal/models"
)

type filterOptions struct {
	status   string
	workflow string
	mode     string
	from     string
	to       string
}

// filterState turns the summary flags into a FilterState. Dates are calendar days
// in the local zone.
func (o filterOptions) filterState(instance string) (models.FilterState, error) {
	filters := models.FilterState{}.
		WithInstance(instance).
		WithWorkflow(o.workflow).
		WithMode(o.mode)

	if o.status != "" {
		status := models.ExecutionStatus(o.status)
		if !status.Valid() {
			return models.FilterState{}, fmt.Errorf("unknown status %q (want one of %v)", o.status, models.Statuses)
		}
		filters = filters.WithStatus(status)
	}

	if o.from == "" {
		if o.to != "" {
			return models.FilterState{}, fmt.Errorf("--to requires --from")
		}
		return filters, nil
	}

	from, err := parseDay(o.from)
	if err != nil {
		return models.FilterState{}, fmt.Errorf("invalid --from: %w", err)
	}
	r := &models.DateRange{From: from}
	if o.to != "" {
		to, err := parseDay(o.to)
		if err != nil {
			return models.FilterState{}, fmt.Errorf("invalid --to: %w", err)
		}
		if to.Before(from) {
			return models.FilterState{}, fmt.Errorf("--to %s is before --from %s", o.to, o.from)
		}
		r.To = &to
	}
	return filters.WithDateRange(r), nil
}

func parseDay(s string) (time.Time, error) {
	return time.ParseInLocation(aggregate.DateLayout, s, time.Local)
}
