package main

import (
	"fmt"

	"comfygen/settings"
	"comfygen/workflow"

	"github.com/spf13/cobra"
)

func newCheckCommand() *cobra.Command {
	var baseWorkflow string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify that a base workflow has every node the builder patches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := settings.LoadConfig()
			if err != nil {
				return err
			}
			if baseWorkflow == "" {
				baseWorkflow = config.ComfyUi.BaseWorkflow
			}
			template, err := workflow.Load(baseWorkflow)
			if err != nil {
				return err
			}

			builder := workflow.NewBuilder(config.ComfyUi.Nodes, workflow.DefaultPresets())
			missing := builder.Check(template)
			if len(missing) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: all required nodes present\n", baseWorkflow)
				return nil
			}

			for _, node := range missing {
				fmt.Fprintf(cmd.OutOrStdout(), "missing: %s node (id %d)\n", node.Role, node.ID)
			}
			return fmt.Errorf("%s is missing %d required node(s)", baseWorkflow, len(missing))
		},
	}

	cmd.Flags().StringVar(&baseWorkflow, "base-workflow", "", "Base workflow template (default from config)")
	return cmd
}
