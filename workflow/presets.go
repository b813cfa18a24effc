package workflow

import (
	"sort"

	"comfygen/settings"
)

// MotionPreset bundles the camera-motion defaults written into the graph: the
// guidance video, how hard and for how long the controlnet steers sampling,
// and the AnimateDiff motion scale. The numeric values are representative
// points inside the tuning ranges documented in the README; adjust them via
// settings/presets.toml rather than editing this table.
type MotionPreset struct {
	Video              string
	ControlNetStrength float64
	ControlNetEnd      float64
	MotionScale        float64
}

// PresetTable maps a motion identifier to its preset.
type PresetTable map[string]MotionPreset

const (
	MotionZoom        = "zoom"
	MotionRotateLeft  = "rotate_left"
	MotionRotateRight = "rotate_right"
	MotionUp          = "up"
	MotionDown        = "down"
)

const (
	QualitySample = "sample"
	QualityFull   = "full"
)

var motionPresets = PresetTable{
	MotionZoom: {
		Video:              "motions/zoom.mp4",
		ControlNetStrength: 0.55,
		ControlNetEnd:      0.45,
		MotionScale:        1.15,
	},
	MotionRotateLeft: {
		Video:              "motions/rotate_left.mp4",
		ControlNetStrength: 0.60,
		ControlNetEnd:      0.55,
		MotionScale:        1.12,
	},
	MotionRotateRight: {
		Video:              "motions/rotate_right.mp4",
		ControlNetStrength: 0.60,
		ControlNetEnd:      0.55,
		MotionScale:        1.12,
	},
	MotionUp: {
		Video:              "motions/tilt_up.mp4",
		ControlNetStrength: 0.60,
		ControlNetEnd:      0.55,
		MotionScale:        1.10,
	},
	MotionDown: {
		Video:              "motions/tilt_down.mp4",
		ControlNetStrength: 0.60,
		ControlNetEnd:      0.55,
		MotionScale:        1.10,
	},
}

// Motions returns the recognized motion identifiers, sorted.
func Motions() []string {
	motions := make([]string, 0, len(motionPresets))
	for motion := range motionPresets {
		motions = append(motions, motion)
	}
	sort.Strings(motions)
	return motions
}

// DefaultPresets returns a copy of the built-in preset table.
func DefaultPresets() PresetTable {
	table := make(PresetTable, len(motionPresets))
	for motion, preset := range motionPresets {
		table[motion] = preset
	}
	return table
}

// PresetsFrom builds the effective preset table from the built-in defaults
// and the configured overrides. An override for an unknown motion is a
// configuration error.
func PresetsFrom(overrides map[string]settings.PresetOverride) (PresetTable, error) {
	table := DefaultPresets()
	for motion, override := range overrides {
		preset, ok := table[motion]
		if !ok {
			return nil, &InvalidMotionError{Motion: motion}
		}
		if override.Video != nil {
			preset.Video = *override.Video
		}
		if override.ControlNetStrength != nil {
			preset.ControlNetStrength = *override.ControlNetStrength
		}
		if override.ControlNetEnd != nil {
			preset.ControlNetEnd = *override.ControlNetEnd
		}
		if override.MotionScale != nil {
			preset.MotionScale = *override.MotionScale
		}
		table[motion] = preset
	}
	return table, nil
}

// PresetFor looks up the preset for a motion identifier.
func (t PresetTable) PresetFor(motion string) (MotionPreset, error) {
	preset, ok := t[motion]
	if !ok {
		return MotionPreset{}, &InvalidMotionError{Motion: motion}
	}
	return preset, nil
}
