package models

// AggregateStats holds the stat card figures for a set of executions.
type AggregateStats struct {
	TotalExecutions int     `json:"total_executions"`
	SuccessCount    int     `json:"success_count"`
	ErrorCount      int     `json:"error_count"`
	RunningCount    int     `json:"running_count"`
	WaitingCount    int     `json:"waiting_count"`
	CanceledCount   int     `json:"canceled_count"`
	AvgDurationMs   float64 `json:"avg_duration_ms"`
	SuccessRate     float64 `json:"success_rate"` // success/total * 100
}

// CountFor returns the per-status count for a stat card.
func (s AggregateStats) CountFor(status ExecutionStatus) int {
	switch status {
	case StatusSuccess:
		return s.SuccessCount
	case StatusError:
		return s.ErrorCount
	case StatusRunning:
		return s.RunningCount
	case StatusWaiting:
		return s.WaitingCount
	case StatusCanceled:
		return s.CanceledCount
	}
	return 0
}

// DailyBucket holds counts for a single calendar day.
type DailyBucket struct {
	Date    string `json:"date"`
	Total   int    `json:"total"`
	Success int    `json:"success"`
	Error   int    `json:"error"`
}

// WorkflowStats is the per-workflow aggregate over an instance's executions.
type WorkflowStats struct {
	WorkflowName  string  `json:"workflow_name"`
	Count         int     `json:"count"`
	Success       int     `json:"success"`
	Fail          int     `json:"fail"`
	AvgDurationMs float64 `json:"avg_duration_ms"`
}

// StatusGroup is one row of a GROUP BY over executions: the number of executions
// with a status (and workflow, when grouped by workflow) plus the sum and count of
// their recorded durations.
type StatusGroup struct {
	WorkflowName  string
	Status        ExecutionStatus
	Count         int
	DurationSumMs float64
	DurationCount int
}
