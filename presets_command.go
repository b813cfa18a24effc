package main

import (
	"fmt"

	"comfygen/settings"
	"comfygen/workflow"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newPresetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the motion presets and their effective values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := settings.LoadConfig()
			if err != nil {
				return err
			}
			presets, err := workflow.PresetsFrom(config.Presets)
			if err != nil {
				return err
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(cmd.OutOrStdout())
			tw.SetStyle(table.StyleRounded)
			tw.AppendHeader(table.Row{"Motion", "Video", "Strength", "End %", "Scale"})
			for _, motion := range workflow.Motions() {
				preset := presets[motion]
				tw.AppendRow(table.Row{
					motion,
					preset.Video,
					fmt.Sprintf("%.2f", preset.ControlNetStrength),
					fmt.Sprintf("%.2f", preset.ControlNetEnd),
					fmt.Sprintf("%.2f", preset.MotionScale),
				})
			}
			tw.Render()
			return nil
		},
	}
}
