package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/stanstork/execdash/internal/aggregate"
	"github.com/stanstork/execdash/internal/dashboard"
	"github.com/stanstork/execdash/internal/models"
)

const connectionBanner = "! Could not reach the execution API for some sections. Figures below may be incomplete."

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func renderSectionError(w io.Writer, section string, err error) {
	_, _ = fmt.Fprintf(w, "%s: failed to load (%v)\n", section, err)
}

// renderSummary prints the stat cards, the daily series and the executions table.
func renderSummary(w io.Writer, snap dashboard.Snapshot, v dashboard.View) {
	instance := snap.Instance
	if instance == "" {
		instance = "all instances"
	}
	_, _ = fmt.Fprintf(w, "Executions for %s (updated %s)\n", instance, snap.FetchedAt.Format("15:04:05"))
	if snap.ConnectionIssue() {
		_, _ = fmt.Fprintln(w, connectionBanner)
	}
	if v.InstanceMismatch {
		_, _ = fmt.Fprintf(w, "! Showing %s while %q is loading.\n", instance, v.Filters.Instance)
	}
	_, _ = fmt.Fprintln(w)

	renderStats(w, v)
	_, _ = fmt.Fprintln(w)
	renderDaily(w, v)
	_, _ = fmt.Fprintln(w)
	renderExecutions(w, v)
}

func statLabel(status models.ExecutionStatus, active models.ExecutionStatus) string {
	label := strings.ToUpper(string(status[:1])) + string(status[1:])
	if status == active {
		return "[" + label + "]"
	}
	return label
}

func renderStats(w io.Writer, v dashboard.View) {
	if v.StatsErr != nil {
		renderSectionError(w, "Stats", v.StatsErr)
		return
	}

	header := table.Row{"Total"}
	row := table.Row{v.Stats.TotalExecutions}
	for _, status := range models.Statuses {
		header = append(header, statLabel(status, v.ActiveStatus))
		row = append(row, v.Stats.CountFor(status))
	}
	header = append(header, "Success rate", "Avg duration")
	row = append(row, fmt.Sprintf("%.1f%%", v.Stats.SuccessRate), aggregate.FormatDuration(v.Stats.AvgDurationMs))

	t := newTable(w)
	t.AppendHeader(header)
	t.AppendRow(row)
	t.Render()
}

func renderDaily(w io.Writer, v dashboard.View) {
	if v.DailyErr != nil {
		renderSectionError(w, "Daily", v.DailyErr)
		return
	}
	if len(v.Daily) == 0 {
		_, _ = fmt.Fprintln(w, "Daily: no executions in range")
		return
	}

	t := newTable(w)
	t.SetTitle("Daily")
	t.AppendHeader(table.Row{"Date", "Total", "Success", "Error"})
	for _, b := range v.Daily {
		t.AppendRow(table.Row{aggregate.FormatDateKey(b.Date), b.Total, b.Success, b.Error})
	}
	t.Render()
}

func orPlaceholder(s *string) string {
	if s == nil || *s == "" {
		return aggregate.Placeholder
	}
	return *s
}

func renderExecutions(w io.Writer, v dashboard.View) {
	if v.ExecutionsErr != nil {
		renderSectionError(w, "Executions", v.ExecutionsErr)
		return
	}
	if len(v.Rows) == 0 {
		_, _ = fmt.Fprintln(w, "Executions: none match the current filters")
		return
	}

	t := newTable(w)
	t.SetTitle("Executions")
	t.AppendHeader(table.Row{"Workflow", "Status", "Mode", "Instance", "Started", "Duration", "Nodes", "Error"})
	for _, rec := range v.Rows {
		nodes := aggregate.Placeholder
		if rec.NodeCount != nil {
			nodes = fmt.Sprint(*rec.NodeCount)
		}
		t.AppendRow(table.Row{
			rec.WorkflowName,
			rec.Status,
			orPlaceholder(rec.Mode),
			orPlaceholder(rec.InstanceID),
			aggregate.FormatTimestamp(rec.StartedAt),
			aggregate.FormatDurationPtr(rec.DurationMs),
			nodes,
			orPlaceholder(rec.ErrorMessage),
		})
	}
	t.Render()
	_, _ = fmt.Fprintf(w, "(%d executions)\n", len(v.Rows))
}

func renderInstances(w io.Writer, instances []string) {
	if len(instances) == 0 {
		_, _ = fmt.Fprintln(w, "No instances have reported executions yet")
		return
	}
	t := newTable(w)
	t.AppendHeader(table.Row{"Instance"})
	for _, id := range instances {
		t.AppendRow(table.Row{id})
	}
	t.Render()
}

func renderWorkflows(w io.Writer, workflows []models.WorkflowStats) {
	if len(workflows) == 0 {
		_, _ = fmt.Fprintln(w, "No executions recorded")
		return
	}
	t := newTable(w)
	t.AppendHeader(table.Row{"Workflow", "Count", "Success", "Fail", "Avg duration"})
	for _, wf := range workflows {
		t.AppendRow(table.Row{wf.WorkflowName, wf.Count, wf.Success, wf.Fail, aggregate.FormatDuration(wf.AvgDurationMs)})
	}
	t.Render()
}
