package cli

import (
	"github.com/spf13/cobra"
)

// NewWorkflowsCommand creates the workflows command.
func NewWorkflowsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "workflows",
		Short:   "Show execution counts and average duration per workflow",
		Example: `  execdash workflows --instance eu-1`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := GetConfig(cmd.Context())
			if err != nil {
				return err
			}
			client := newClient(cfg, newLogger(cmd, cfg))

			workflows, err := client.Workflows(cmd.Context(), cfg.Instance)
			if err != nil {
				return err
			}
			renderWorkflows(cmd.OutOrStdout(), workflows)
			return nil
		},
	}
}
