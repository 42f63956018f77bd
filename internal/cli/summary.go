package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/stanstork/execdash/internal/dashboard"
	"github.com/stanstork/execdash/internal/models"
)

const clearScreen = "\033[H\033[2J"

// NewSummaryCommand creates the summary command.
func NewSummaryCommand() *cobra.Command {
	var (
		opts  filterOptions
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show stat cards, the daily series and recent executions",
		Long: `Fetch executions, aggregate stats and the daily series for the selected
instance, then apply the status, workflow, mode and date filters locally.

Counts and the daily series honour the workflow, mode and date filters. The
status filter selects a stat card: it narrows the average duration and the
executions table but not the counts.`,
		Example: `  # Overview of every instance
  execdash summary

  # Failed runs of one workflow in March
  execdash summary --workflow "Sync CRM" --status error --from 2024-03-01 --to 2024-03-31

  # Re-fetch every 15 seconds until interrupted
  execdash summary --watch --refresh 15s`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSummary(cmd, opts, watch)
		},
	}

	cmd.Flags().StringVar(&opts.status, "status", "", "Select a status card (success|error|running|waiting|canceled)")
	cmd.Flags().StringVar(&opts.workflow, "workflow", "", "Only count executions of this workflow name")
	cmd.Flags().StringVar(&opts.mode, "mode", "", "Only count executions started in this mode")
	cmd.Flags().StringVar(&opts.from, "from", "", "First day to include (yyyy-MM-dd)")
	cmd.Flags().StringVar(&opts.to, "to", "", "Last day to include (yyyy-MM-dd, defaults to --from)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Keep refreshing until interrupted")
	cmd.Flags().Duration("refresh", 0, "Refresh interval for --watch (default 30s, 0 disables)")

	_ = cmd.RegisterFlagCompletionFunc("status", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		out := make([]string, 0, len(models.Statuses))
		for _, s := range models.Statuses {
			out = append(out, string(s))
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runSummary(cmd *cobra.Command, opts filterOptions, watch bool) error {
	cfg, err := GetConfig(cmd.Context())
	if err != nil {
		return err
	}
	filters, err := opts.filterState(cfg.Instance)
	if err != nil {
		return err
	}

	logger := newLogger(cmd, cfg)
	d := dashboard.New(newClient(cfg, logger), cfg.Limit, cfg.Days, logger)
	out := cmd.OutOrStdout()

	snap, _ := d.Load(cmd.Context(), filters.Instance)
	if !watch {
		renderSummary(out, snap, dashboard.BuildView(snap, filters))
		return nil
	}
	if cfg.Refresh == 0 {
		return fmt.Errorf("--watch needs a positive --refresh interval")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watchSummary(ctx, out, d, filters, snap, cfg)
}

// watchSummary redraws the summary after every refresh until ctx is cancelled.
func watchSummary(ctx context.Context, out io.Writer, d *dashboard.Dashboard, filters models.FilterState, first dashboard.Snapshot, cfg *Config) error {
	draw := func(snap dashboard.Snapshot) {
		_, _ = fmt.Fprint(out, clearScreen)
		renderSummary(out, snap, dashboard.BuildView(snap, filters))
		_, _ = fmt.Fprintf(out, "\nRefreshing every %s. Press Ctrl+C to quit.\n", cfg.Refresh)
	}
	draw(first)

	refresher := dashboard.NewRefresher(func() {
		if snap, applied := d.Refresh(ctx); applied && ctx.Err() == nil {
			draw(snap)
		}
	})
	refresher.SetInterval(cfg.Refresh)
	<-ctx.Done()
	refresher.Stop()
	return nil
}
