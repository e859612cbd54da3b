package renderer

import (
	"quad-engine/core"
	"quad-engine/math"
)

type drawParams struct {
	rotation float32
	origin   math.Vec2
	tint     core.Color
	flipUV   bool
	scale    float32
}

func defaultDrawParams() drawParams {
	return drawParams{tint: core.ColorWhite, scale: 1}
}

// DrawOption adjusts a single draw call.
type DrawOption func(*drawParams)

// WithRotation rotates counter-clockwise by deg degrees about the origin.
func WithRotation(deg float32) DrawOption {
	return func(p *drawParams) { p.rotation = deg }
}

// WithOrigin sets the pivot as a fraction of the quad size.
func WithOrigin(x, y float32) DrawOption {
	return func(p *drawParams) { p.origin = math.Vec2{X: x, Y: y} }
}

// WithTint multiplies the sampled texel, or sets the text color.
func WithTint(c core.Color) DrawOption {
	return func(p *drawParams) { p.tint = c }
}

func WithFlipUV(flip bool) DrawOption {
	return func(p *drawParams) { p.flipUV = flip }
}

// WithScale scales text glyphs. Ignored by quads.
func WithScale(s float32) DrawOption {
	return func(p *drawParams) { p.scale = s }
}

func applyOptions(opts []DrawOption) drawParams {
	p := defaultDrawParams()
	for _, opt := range opts {
		opt(&p)
	}
	return p
}
