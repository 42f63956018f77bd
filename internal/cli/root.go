// Package cli implements the execdash terminal dashboard.
package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stanstork/execdash/internal/dashboard"
)

// Version is set at build time.
var Version = "dev"

// NewRootCmd creates the execdash command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "execdash",
		Short: "Terminal dashboard for captured workflow executions",
		Long: `execdash reads workflow executions from the execution API and renders
stat cards, the daily series and the executions table in the terminal.

Settings can also be given as EXECDASH_* environment variables
(for example EXECDASH_API_URL).`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			cfg, err := LoadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), configKey{}, cfg))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("api-url", "", "Base URL of the execution API (default http://localhost:8080)")
	rootCmd.PersistentFlags().StringP("instance", "i", "", "Only show executions of this instance")
	rootCmd.PersistentFlags().Int("limit", 0, "Maximum number of executions to fetch (default 100)")
	rootCmd.PersistentFlags().Int("days", 0, "Days covered by the daily series (default 14)")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Per-request timeout (default 10s)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log requests to stderr")

	rootCmd.AddCommand(NewSummaryCommand())
	rootCmd.AddCommand(NewInstancesCommand())
	rootCmd.AddCommand(NewWorkflowsCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func newLogger(cmd *cobra.Command, cfg *Config) zerolog.Logger {
	level := zerolog.ErrorLevel
	if cfg.Verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func newClient(cfg *Config, logger zerolog.Logger) *dashboard.Client {
	return dashboard.NewClient(cfg.APIURL, &http.Client{Timeout: cfg.Timeout}, dashboard.NewCache(), logger)
}
