package models

import (
	"encoding/json"
	"time"
)

type ExecutionStatus string

const (
	StatusSuccess  ExecutionStatus = "success"
	StatusError    ExecutionStatus = "error"
	StatusRunning  ExecutionStatus = "running"
	StatusWaiting  ExecutionStatus = "waiting"
	StatusCanceled ExecutionStatus = "canceled"
)

// Statuses lists every status a stat card exists for, in display order.
var Statuses = []ExecutionStatus{StatusSuccess, StatusError, StatusRunning, StatusWaiting, StatusCanceled}

func (s ExecutionStatus) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// ExecutionRecord is one captured workflow run. Rows are written by the capture hook
// and only ever read here.
type ExecutionRecord struct {
	ID            string          `json:"id" db:"id"`
	InstanceID    *string         `json:"instance_id" db:"instance_id"`
	WorkflowID    string          `json:"workflow_id" db:"workflow_id"`
	WorkflowName  string          `json:"workflow_name" db:"workflow_name"`
	Status        ExecutionStatus `json:"status" db:"status"`
	Finished      bool            `json:"finished" db:"finished"`
	StartedAt     *time.Time      `json:"started_at" db:"started_at"`
	FinishedAt    *time.Time      `json:"finished_at" db:"finished_at"`
	DurationMs    *int64          `json:"duration_ms" db:"duration_ms"`
	Mode          *string         `json:"mode" db:"mode"`
	NodeCount     *int            `json:"node_count" db:"node_count"`
	ErrorMessage  *string         `json:"error_message" db:"error_message"`
	ExecutionData json.RawMessage `json:"execution_data,omitempty" db:"execution_data"`
	WorkflowData  json.RawMessage `json:"workflow_data,omitempty" db:"workflow_data"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}

// ModeOrEmpty returns the execution mode, or "" when the producer did not record one.
func (e ExecutionRecord) ModeOrEmpty() string {
	if e.Mode == nil {
		return ""
	}
	return *e.Mode
}

func (e ExecutionRecord) InstanceOrEmpty() string {
	if e.InstanceID == nil {
		return ""
	}
	return *e.InstanceID
}
