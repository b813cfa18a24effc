package main

import (
	"time"

	"comfygen/logger"
	"comfygen/settings"
	"comfygen/workflow"

	"github.com/hako/durafmt"
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var req workflow.BuildRequest
	var baseWorkflow string
	var prettyOutput bool

	rootCmd := &cobra.Command{
		Use:           "comfygen",
		Short:         "Generate a 2-frame 4I2V ComfyUI workflow from the base 4I2V Flow graph",
		Long: `comfygen clones the base "4I2V Flow" graph and fills in the start/end
frame images, the camera motion preset and the quality mode. The generated
workflow can be loaded directly in ComfyUI.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(req, baseWorkflow, prettyOutput)
		},
	}

	rootCmd.Flags().StringVar(&req.StartImage, "start-image", "", "Start frame image path")
	rootCmd.Flags().StringVar(&req.EndImage, "end-image", "", "End frame image path")
	rootCmd.Flags().StringVar(&req.Motion, "motion", "", "Camera motion preset (zoom|rotate_left|rotate_right|up|down)")
	rootCmd.Flags().StringVar(&req.Quality, "quality", workflow.QualitySample, "Quality mode (sample|full)")
	rootCmd.Flags().StringVar(&req.MotionVideo, "motion-video", "", "Override motion video path/URL")
	rootCmd.Flags().StringVar(&req.Output, "output", "", "Destination for the generated workflow")
	rootCmd.Flags().StringVar(&baseWorkflow, "base-workflow", "", "Base workflow template (default from config)")
	rootCmd.Flags().BoolVar(&prettyOutput, "pretty", false, "Re-indent the generated JSON")

	rootCmd.AddCommand(newPresetsCommand())
	rootCmd.AddCommand(newCheckCommand())

	return rootCmd
}

func runBuild(req workflow.BuildRequest, baseWorkflow string, prettyOutput bool) error {
	started := time.Now()

	config, err := settings.LoadConfig()
	if err != nil {
		return err
	}
	logger.Init(config.Logging)

	// Fail on bad arguments before touching any file.
	if err := req.Validate(); err != nil {
		return err
	}

	presets, err := workflow.PresetsFrom(config.Presets)
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

	builder := workflow.NewBuilder(config.ComfyUi.Nodes, presets)
	doc, err := builder.Build(template, req)
	if err != nil {
		return err
	}
	if prettyOutput {
		doc = doc.Pretty()
	}

	if err := doc.WriteFile(req.Output); err != nil {
		return err
	}

	logger.Info("Generated workflow",
		"output", req.Output,
		"motion", req.Motion,
		"quality", req.Quality,
		"took", durafmt.Parse(time.Since(started).Round(time.Millisecond)).String())
	return nil
}
