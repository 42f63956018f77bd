package cli

import (
	"github.com/spf13/cobra"
)

// NewInstancesCommand creates the instances command.
func NewInstancesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "instances",
		Short: "List the instances that have reported executions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := GetConfig(cmd.Context())
			if err != nil {
				return err
			}
			client := newClient(cfg, newLogger(cmd, cfg))

			instances, err := client.Instances(cmd.Context())
			if err != nil {
				return err
			}
			renderInstances(cmd.OutOrStdout(), instances)
			return nil
		},
	}
}
