package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterState_ToggleStatus(t *testing.T) {
	var f FilterState

	selected := f.ToggleStatus(StatusError)
	assert.Equal(t, StatusError, selected.Status)
	assert.Empty(t, f.Status, "receiver must not change")

	switched := selected.ToggleStatus(StatusSuccess)
	assert.Equal(t, StatusSuccess, switched.Status)

	cleared := switched.ToggleStatus(StatusSuccess)
	assert.Empty(t, cleared.Status)
}

func TestFilterState_WithDateRangeCopies(t *testing.T) {
	from := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.Local)
	r := &DateRange{From: from}

	f := FilterState{}.WithDateRange(r)
	r.From = from.AddDate(0, 0, 5)

	require.NotNil(t, f.DateRange)
	assert.Equal(t, from, f.DateRange.From)
	assert.Nil(t, FilterState{}.WithDateRange(nil).DateRange)
}

func TestFilterState_Predicates(t *testing.T) {
	day := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.Local)

	tests := []struct {
		name      string
		filters   FilterState
		wantCount bool
		wantLocal bool
		wantEmpty bool
	}{
		{name: "none", wantEmpty: true},
		{name: "instance only", filters: FilterState{Instance: "eu-1"}},
		{name: "status only", filters: FilterState{Status: StatusRunning}, wantLocal: true},
		{name: "workflow", filters: FilterState{Workflow: "Sync"}, wantCount: true, wantLocal: true},
		{name: "mode", filters: FilterState{Mode: "cron"}, wantCount: true, wantLocal: true},
		{name: "date range", filters: FilterState{DateRange: &DateRange{From: day}}, wantCount: true, wantLocal: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCount, tt.filters.HasCountFilters())
			assert.Equal(t, tt.wantLocal, tt.filters.HasLocalFilters())
			assert.Equal(t, tt.wantEmpty, tt.filters.IsEmpty())
		})
	}
}

func TestExecutionStatus_Valid(t *testing.T) {
	for _, s := range Statuses {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, ExecutionStatus("failed").Valid())
	assert.False(t, ExecutionStatus("").Valid())
}

func TestExecutionRecord_JSON(t *testing.T) {
	var rec ExecutionRecord
	require.NoError(t, json.Unmarshal([]byte(`{"id":"1","workflow_name":"Sync","status":"success","mode":null}`), &rec))

	assert.Equal(t, "", rec.ModeOrEmpty())
	assert.Equal(t, "", rec.InstanceOrEmpty())
	assert.Nil(t, rec.StartedAt)
	assert.Nil(t, rec.DurationMs)

	out, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "execution_data")
}
