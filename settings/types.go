package settings

import (
	"comfygen/logger"
)

type (
	Config struct {
		ComfyUi ComfyUiConfig             `toml:"comfyui" validate:"required"`
		Presets map[string]PresetOverride `toml:"presets" validate:"omitempty,dive"`
		Logging logger.Config             `toml:"logging" validate:"required"`
	}

	ComfyUiConfig struct {
		BaseWorkflow string      `toml:"baseWorkflow" validate:"required"`
		Nodes        NodesConfig `toml:"nodes" validate:"required"`
	}

	// NodesConfig maps the node roles the builder patches to their ids in the
	// base graph. Defaults match the exported "4I2V Flow" graph; a re-exported
	// graph with renumbered nodes only needs a settings/comfyui.toml edit.
	NodesConfig struct {
		StartImages  []int `toml:"startImages" validate:"required,min=1,dive,gt=0"`
		EndImages    []int `toml:"endImages" validate:"required,min=1,dive,gt=0"`
		MotionVideo  int   `toml:"motionVideo" validate:"required,gt=0"`
		ControlNet   int   `toml:"controlNet" validate:"required,gt=0"`
		MotionScale  int   `toml:"motionScale" validate:"required,gt=0"`
		Preview      int   `toml:"preview" validate:"required,gt=0"`
		Final        int   `toml:"final" validate:"required,gt=0"`
		Interpolated int   `toml:"interpolated" validate:"required,gt=0"`
		UpscaleModel int   `toml:"upscaleModel" validate:"required,gt=0"`
	}

	// PresetOverride adjusts the representative point of a motion preset
	// without rebuilding. Nil fields keep the built-in value.
	PresetOverride struct {
		Video              *string  `toml:"video"`
		ControlNetStrength *float64 `toml:"controlnetStrength" validate:"omitempty,gte=0,lte=1"`
		ControlNetEnd      *float64 `toml:"controlnetEnd" validate:"omitempty,gte=0,lte=1"`
		MotionScale        *float64 `toml:"motionScale" validate:"omitempty,gt=0"`
	}
)
