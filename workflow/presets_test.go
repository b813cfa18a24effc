package workflow

import (
	"errors"
	"reflect"
	"testing"

	"comfygen/settings"
)

func TestPresetForAllMotions(t *testing.T) {
	tests := []struct {
		motion string
		want   MotionPreset
	}{
		{"zoom", MotionPreset{Video: "motions/zoom.mp4", ControlNetStrength: 0.55, ControlNetEnd: 0.45, MotionScale: 1.15}},
		{"rotate_left", MotionPreset{Video: "motions/rotate_left.mp4", ControlNetStrength: 0.60, ControlNetEnd: 0.55, MotionScale: 1.12}},
		{"rotate_right", MotionPreset{Video: "motions/rotate_right.mp4", ControlNetStrength: 0.60, ControlNetEnd: 0.55, MotionScale: 1.12}},
		{"up", MotionPreset{Video: "motions/tilt_up.mp4", ControlNetStrength: 0.60, ControlNetEnd: 0.55, MotionScale: 1.10}},
		{"down", MotionPreset{Video: "motions/tilt_down.mp4", ControlNetStrength: 0.60, ControlNetEnd: 0.55, MotionScale: 1.10}},
	}

	presets := DefaultPresets()
	for _, tt := range tests {
		t.Run(tt.motion, func(t *testing.T) {
			got, err := presets.PresetFor(tt.motion)
			if err != nil {
				t.Fatalf("PresetFor(%q): %v", tt.motion, err)
			}
			if got != tt.want {
				t.Errorf("PresetFor(%q) = %+v, want %+v", tt.motion, got, tt.want)
			}
		})
	}
}

func TestPresetForUnknownMotion(t *testing.T) {
	_, err := DefaultPresets().PresetFor("sway")
	var invalid *InvalidMotionError
	if !errors.As(err, &invalid) {
		t.Fatalf("got %v, wanted InvalidMotionError", err)
	}
	if invalid.Motion != "sway" {
		t.Errorf("offending motion = %q, want %q", invalid.Motion, "sway")
	}
}

func TestMotions(t *testing.T) {
	want := []string{"down", "rotate_left", "rotate_right", "up", "zoom"}
	if got := Motions(); !reflect.DeepEqual(got, want) {
		t.Errorf("Motions() = %v, want %v", got, want)
	}
}

func TestPresetsFromOverrides(t *testing.T) {
	video := "motions/zoom_slow.mp4"
	strength := 0.50
	overrides := map[string]settings.PresetOverride{
		"zoom": {Video: &video, ControlNetStrength: &strength},
	}

	presets, err := PresetsFrom(overrides)
	if err != nil {
		t.Fatalf("PresetsFrom: %v", err)
	}

	zoom := presets["zoom"]
	if zoom.Video != video {
		t.Errorf("video = %q, want override %q", zoom.Video, video)
	}
	if zoom.ControlNetStrength != strength {
		t.Errorf("strength = %v, want override %v", zoom.ControlNetStrength, strength)
	}
	// Fields without an override keep the built-in value.
	if zoom.ControlNetEnd != 0.45 || zoom.MotionScale != 1.15 {
		t.Errorf("untouched fields changed: %+v", zoom)
	}
	if up := presets["up"]; up != motionPresets["up"] {
		t.Errorf("unrelated preset changed: %+v", up)
	}
}

func TestPresetsFromUnknownMotion(t *testing.T) {
	overrides := map[string]settings.PresetOverride{"pan": {}}
	_, err := PresetsFrom(overrides)
	var invalid *InvalidMotionError
	if !errors.As(err, &invalid) {
		t.Fatalf("got %v, wanted InvalidMotionError", err)
	}
}

func TestDefaultPresetsIsACopy(t *testing.T) {
	table := DefaultPresets()
	table["zoom"] = MotionPreset{}
	if motionPresets["zoom"].Video != "motions/zoom.mp4" {
		t.Error("mutating the returned table leaked into the built-in presets")
	}
}
