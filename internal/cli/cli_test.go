package cli

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stanstork/execdash/internal/dashboard"
	"github.com/stanstork/execdash/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := LoadConfig(nil)
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080", cfg.APIURL)
		assert.Equal(t, 100, cfg.Limit)
		assert.Equal(t, 14, cfg.Days)
		assert.Equal(t, 30*time.Second, cfg.Refresh)
		assert.Equal(t, 10*time.Second, cfg.Timeout)
	})

	t.Run("env overrides defaults", func(t *testing.T) {
		t.Setenv("EXECDASH_API_URL", "http://dash:9000")
		t.Setenv("EXECDASH_LIMIT", "50")
		t.Setenv("EXECDASH_REFRESH", "1m")

		cfg, err := LoadConfig(nil)
		require.NoError(t, err)
		assert.Equal(t, "http://dash:9000", cfg.APIURL)
		assert.Equal(t, 50, cfg.Limit)
		assert.Equal(t, time.Minute, cfg.Refresh)
	})

	t.Run("changed flags override env", func(t *testing.T) {
		t.Setenv("EXECDASH_LIMIT", "50")
		t.Setenv("EXECDASH_INSTANCE", "eu-1")

		fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
		fs.Int("limit", 0, "")
		fs.String("instance", "", "")
		fs.String("workflow", "", "")
		require.NoError(t, fs.Parse([]string{"--limit=7", "--workflow=ignored"}))

		cfg, err := LoadConfig(fs)
		require.NoError(t, err)
		assert.Equal(t, 7, cfg.Limit)
		assert.Equal(t, "eu-1", cfg.Instance)
	})

	t.Run("invalid limit", func(t *testing.T) {
		t.Setenv("EXECDASH_LIMIT", "0")
		_, err := LoadConfig(nil)
		assert.ErrorContains(t, err, "limit must be positive")
	})
}

func TestFilterOptions(t *testing.T) {
	march1 := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.Local)
	march3 := time.Date(2024, time.March, 3, 0, 0, 0, 0, time.Local)

	tests := []struct {
		name    string
		opts    filterOptions
		want    models.FilterState
		wantErr string
	}{
		{
			name: "empty",
			want: models.FilterState{Instance: "eu-1"},
		},
		{
			name: "status workflow mode",
			opts: filterOptions{status: "error", workflow: "Sync CRM", mode: "trigger"},
			want: models.FilterState{Instance: "eu-1", Status: models.StatusError, Workflow: "Sync CRM", Mode: "trigger"},
		},
		{
			name: "single day",
			opts: filterOptions{from: "2024-03-01"},
			want: models.FilterState{Instance: "eu-1", DateRange: &models.DateRange{From: march1}},
		},
		{
			name: "day range",
			opts: filterOptions{from: "2024-03-01", to: "2024-03-03"},
			want: models.FilterState{Instance: "eu-1", DateRange: &models.DateRange{From: march1, To: &march3}},
		},
		{name: "unknown status", opts: filterOptions{status: "failed"}, wantErr: "unknown status"},
		{name: "to without from", opts: filterOptions{to: "2024-03-03"}, wantErr: "--to requires --from"},
		{name: "bad date", opts: filterOptions{from: "03/01/2024"}, wantErr: "invalid --from"},
		{name: "reversed range", opts: filterOptions{from: "2024-03-03", to: "2024-03-01"}, wantErr: "is before"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.opts.filterState("eu-1")
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func newAPIServer(t *testing.T, statsStatus int) *httptest.Server {
	t.Helper()
	started := time.Now().Format(time.RFC3339)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/instances", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `["eu-1","us-1"]`)
	})
	mux.HandleFunc("/api/executions", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `[
			{"id":"1","workflow_name":"Sync CRM","status":"success","started_at":%q,"duration_ms":1200,"mode":"trigger"},
			{"id":"2","workflow_name":"Sync CRM","status":"error","started_at":%q,"duration_ms":300,"mode":"trigger","error_message":"timeout"},
			{"id":"3","workflow_name":"Nightly backup","status":"success","started_at":%q,"duration_ms":90000,"mode":"cron"}
		]`, started, started, started)
	})
	mux.HandleFunc("/api/executions/stats", func(w http.ResponseWriter, r *http.Request) {
		if statsStatus != http.StatusOK {
			w.WriteHeader(statsStatus)
			fmt.Fprint(w, `{"error":"database unavailable"}`)
			return
		}
		fmt.Fprint(w, `{"total_executions":3,"success_count":2,"error_count":1,"avg_duration_ms":30500,"success_rate":66.66666666666667}`)
	})
	mux.HandleFunc("/api/executions/daily", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `[{"date":%q,"total":3,"success":2,"error":1}]`, time.Now().Format("2006-01-02"))
	})
	mux.HandleFunc("/api/executions/workflows", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"workflow_name":"Sync CRM","count":2,"success":1,"fail":1,"avg_duration_ms":750}]`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSummaryCommand(t *testing.T) {
	srv := newAPIServer(t, http.StatusOK)

	out, err := runCLI(t, "summary", "--api-url", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "Executions for all instances")
	assert.NotContains(t, out, connectionBanner)
	assert.Contains(t, out, "66.7%")
	assert.Contains(t, out, "31s")
	assert.Contains(t, out, "Nightly backup")
	assert.Contains(t, out, "(3 executions)")
}

func TestSummaryCommand_LocalFilters(t *testing.T) {
	srv := newAPIServer(t, http.StatusOK)

	out, err := runCLI(t, "summary", "--api-url", srv.URL, "--workflow", "Sync CRM", "--status", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "[ERROR]") // table headers render upper-case
	assert.Contains(t, out, "50.0%")
	assert.Contains(t, out, "300ms")
	assert.NotContains(t, out, "Nightly backup")
	assert.Contains(t, out, "(1 executions)")
}

func TestSummaryCommand_SectionFailure(t *testing.T) {
	srv := newAPIServer(t, http.StatusInternalServerError)

	out, err := runCLI(t, "summary", "--api-url", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, connectionBanner)
	assert.Contains(t, out, "Stats: failed to load")
	assert.Contains(t, out, "database unavailable")
	assert.Contains(t, out, "(3 executions)")
}

func TestSummaryCommand_InvalidFilter(t *testing.T) {
	srv := newAPIServer(t, http.StatusOK)

	_, err := runCLI(t, "summary", "--api-url", srv.URL, "--status", "bogus")
	assert.ErrorContains(t, err, "unknown status")
}

func TestInstancesCommand(t *testing.T) {
	srv := newAPIServer(t, http.StatusOK)

	out, err := runCLI(t, "instances", "--api-url", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "eu-1")
	assert.Contains(t, out, "us-1")
}

func TestWorkflowsCommand(t *testing.T) {
	srv := newAPIServer(t, http.StatusOK)

	out, err := runCLI(t, "workflows", "--api-url", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "Sync CRM")
	assert.Contains(t, out, "750ms")
}

func TestWorkflowsCommand_Unreachable(t *testing.T) {
	srv := newAPIServer(t, http.StatusOK)
	url := srv.URL
	srv.Close()

	_, err := runCLI(t, "workflows", "--api-url", url, "--timeout", "1s")
	assert.Error(t, err)
}

func TestGetConfig_WithoutRootPreRun(t *testing.T) {
	t.Run("falls back to defaults", func(t *testing.T) {
		cfg, err := GetConfig(context.Background())
		require.NoError(t, err)
		require.NotNil(t, cfg)
		assert.Equal(t, 100, cfg.Limit)
	})

	t.Run("invalid environment is reported", func(t *testing.T) {
		t.Setenv("EXECDASH_LIMIT", "0")

		cfg, err := GetConfig(context.Background())
		assert.Nil(t, cfg)
		assert.ErrorContains(t, err, "limit must be positive")

		cmd := NewWorkflowsCommand()
		cmd.SetArgs([]string{})
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		assert.ErrorContains(t, cmd.ExecuteContext(context.Background()), "limit must be positive")
	})
}

func TestRenderSummary_InstanceMismatch(t *testing.T) {
	snap := dashboard.Snapshot{Instance: "eu-1", FetchedAt: time.Now()}
	var buf bytes.Buffer

	renderSummary(&buf, snap, dashboard.BuildView(snap, models.FilterState{Instance: "us-1"}))
	assert.Contains(t, buf.String(), `! Showing eu-1 while "us-1" is loading.`)

	buf.Reset()
	renderSummary(&buf, snap, dashboard.BuildView(snap, models.FilterState{Instance: "eu-1"}))
	assert.NotContains(t, buf.String(), "is loading")
}
