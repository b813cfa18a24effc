package workflow

import (
	"errors"
	"fmt"

	"comfygen/logger"
	"comfygen/settings"
)

// Node modes as the base graph uses them.
const (
	modeEnabled = 0
	modeBypass  = 2
)

// Builder patches clones of a base workflow template. The node ids it
// targets come from configuration, the numeric values from the preset table.
type Builder struct {
	nodes   settings.NodesConfig
	presets PresetTable
}

func NewBuilder(nodes settings.NodesConfig, presets PresetTable) *Builder {
	return &Builder{nodes: nodes, presets: presets}
}

// Build validates the request, clones the template and patches the start/end
// images, motion settings, quality switches and output prefix. The template
// itself is never mutated.
func (b *Builder) Build(template *Document, req BuildRequest) (*Document, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	preset, err := b.presets.PresetFor(req.Motion)
	if err != nil {
		return nil, err
	}
	logger.Debug("building workflow", "motion", req.Motion, "quality", req.Quality)

	doc := template.Clone()

	for _, id := range b.nodes.StartImages {
		if err := setLoadImage(doc, "start image", id, req.StartImage); err != nil {
			return nil, err
		}
	}
	for _, id := range b.nodes.EndImages {
		if err := setLoadImage(doc, "end image", id, req.EndImage); err != nil {
			return nil, err
		}
	}
	if err := b.setMotion(doc, req, preset); err != nil {
		return nil, err
	}
	if err := b.setQuality(doc, req.Quality); err != nil {
		return nil, err
	}
	if err := b.setOutputPrefix(doc, req.Motion, req.Quality); err != nil {
		return nil, err
	}

	return doc, nil
}

// setLoadImage points a LoadImage node at an image. widgets_values for these
// nodes is [path, "image"]; a missing or empty array is recreated in that
// shape, a single-element array gets the upload mode appended.
func setLoadImage(doc *Document, role string, id int, image string) error {
	path, err := doc.nodePath(role, id)
	if err != nil {
		return err
	}

	widgets := doc.get(path + ".widgets_values")
	if !widgets.IsArray() || len(widgets.Array()) == 0 {
		return doc.set(path+".widgets_values", []any{image, "image"})
	}
	if err := doc.set(path+".widgets_values.0", image); err != nil {
		return err
	}
	if len(widgets.Array()) == 1 {
		return doc.set(path+".widgets_values.1", "image")
	}
	return nil
}

// setMotion applies the guidance video and the preset's controlnet and
// motion-scale values.
func (b *Builder) setMotion(doc *Document, req BuildRequest, preset MotionPreset) error {
	video := preset.Video
	if req.MotionVideo != "" {
		video = req.MotionVideo
	}
	logger.Debug("applying motion preset", "video", video,
		"strength", preset.ControlNetStrength, "end", preset.ControlNetEnd, "scale", preset.MotionScale)

	// The video loader keeps its widgets in an object, with an optional
	// embedded preview whose filename has to track the video.
	videoPath, err := doc.nodePath("motion video", b.nodes.MotionVideo)
	if err != nil {
		return err
	}
	widgets := doc.get(videoPath + ".widgets_values")
	if !widgets.IsObject() {
		if err := doc.set(videoPath+".widgets_values", map[string]any{"video": video}); err != nil {
			return err
		}
	} else {
		if err := doc.set(videoPath+".widgets_values.video", video); err != nil {
			return err
		}
		if widgets.Get("videopreview").IsObject() {
			if err := doc.set(videoPath+".widgets_values.videopreview.params.filename", video); err != nil {
				return err
			}
		}
	}

	// ControlNet apply keeps [strength, start_percent, end_percent]; the
	// start percent is left as the template has it.
	cnPath, err := doc.nodePath("controlnet apply", b.nodes.ControlNet)
	if err != nil {
		return err
	}
	cn := doc.get(cnPath + ".widgets_values")
	if !cn.IsArray() || len(cn.Array()) == 0 {
		if err := doc.set(cnPath+".widgets_values", []any{preset.ControlNetStrength, 0, preset.ControlNetEnd}); err != nil {
			return err
		}
	} else {
		if err := doc.set(cnPath+".widgets_values.0", preset.ControlNetStrength); err != nil {
			return err
		}
		for i := len(cn.Array()); i < 3; i++ {
			if err := doc.set(fmt.Sprintf("%s.widgets_values.%d", cnPath, i), 0); err != nil {
				return err
			}
		}
		if err := doc.set(cnPath+".widgets_values.2", preset.ControlNetEnd); err != nil {
			return err
		}
	}

	msPath, err := doc.nodePath("motion scale", b.nodes.MotionScale)
	if err != nil {
		return err
	}
	ms := doc.get(msPath + ".widgets_values")
	if !ms.IsArray() || len(ms.Array()) == 0 {
		return doc.set(msPath+".widgets_values", []any{preset.MotionScale})
	}
	return doc.set(msPath+".widgets_values.0", preset.MotionScale)
}

// setQuality enables exactly one of the two output nodes. The interpolated
// and upscale-model nodes stay bypassed in both modes.
func (b *Builder) setQuality(doc *Document, quality string) error {
	previewMode, finalMode := modeBypass, modeEnabled
	if quality == QualitySample {
		previewMode, finalMode = modeEnabled, modeBypass
	}

	targets := []roleTarget{
		{"video preview", b.nodes.Preview, previewMode},
		{"video final", b.nodes.Final, finalMode},
		{"video interpolated", b.nodes.Interpolated, modeBypass},
		{"upscale model", b.nodes.UpscaleModel, modeBypass},
	}
	for _, target := range targets {
		path, err := doc.nodePath(target.role, target.id)
		if err != nil {
			return err
		}
		if err := doc.set(path+".mode", target.mode); err != nil {
			return err
		}
	}
	return nil
}

// setOutputPrefix stamps the save nodes with a dated, motion/quality tagged
// filename prefix, only where the node keeps object-style widgets.
func (b *Builder) setOutputPrefix(doc *Document, motion, quality string) error {
	prefix := fmt.Sprintf("%%date:yyyy-MM-dd%%/%s/%s_%s/AD", quality, motion, quality)
	targets := []roleTarget{
		{role: "video preview", id: b.nodes.Preview},
		{role: "video final", id: b.nodes.Final},
	}
	for _, target := range targets {
		path, err := doc.nodePath(target.role, target.id)
		if err != nil {
			return err
		}
		if doc.get(path + ".widgets_values").IsObject() {
			if err := doc.set(path+".widgets_values.filename_prefix", prefix); err != nil {
				return err
			}
		}
	}
	return nil
}

type roleTarget struct {
	role string
	id   int
	mode int
}

// Check reports every configured node role missing from the template,
// without patching anything.
func (b *Builder) Check(template *Document) []MissingNodeError {
	var missing []MissingNodeError
	for _, target := range b.roleTargets() {
		if _, err := template.nodePath(target.role, target.id); err != nil {
			var missingNode *MissingNodeError
			if errors.As(err, &missingNode) {
				missing = append(missing, *missingNode)
			}
		}
	}
	return missing
}

func (b *Builder) roleTargets() []roleTarget {
	var targets []roleTarget
	for _, id := range b.nodes.StartImages {
		targets = append(targets, roleTarget{role: "start image", id: id})
	}
	for _, id := range b.nodes.EndImages {
		targets = append(targets, roleTarget{role: "end image", id: id})
	}
	return append(targets,
		roleTarget{role: "motion video", id: b.nodes.MotionVideo},
		roleTarget{role: "controlnet apply", id: b.nodes.ControlNet},
		roleTarget{role: "motion scale", id: b.nodes.MotionScale},
		roleTarget{role: "video preview", id: b.nodes.Preview},
		roleTarget{role: "video final", id: b.nodes.Final},
		roleTarget{role: "video interpolated", id: b.nodes.Interpolated},
		roleTarget{role: "upscale model", id: b.nodes.UpscaleModel},
	)
}
