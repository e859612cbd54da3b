package renderer

import (
	"golang.org/x/text/unicode/norm"

	"quad-engine/core"
	"quad-engine/math"
)

// Glyph carries the metrics of one rasterized character, in pixels.
type Glyph struct {
	Texture uint32
	// Size is the bitmap size.
	Size math.Vec2
	// Bearing is the offset from the pen position to the bitmap's left edge
	// (X) and top edge above the baseline (Y).
	Bearing math.Vec2
	Advance float32
}

// GlyphSource supplies glyph metrics by font name.
type GlyphSource interface {
	Glyph(font string, r rune) (Glyph, bool)
}

// TextStyle controls a DrawText call.
type TextStyle struct {
	Scale    float32
	Rotation float32
	Color    core.Color
}

// layoutText walks text left to right and submits one quad per glyph. Each
// glyph's offset from the anchor is rotated about the anchor, so the whole
// string turns as one piece. It returns the total scaled advance.
func layoutText(glyphs GlyphSource, font, text string, anchor math.Vec2, style TextStyle, submit func(Quad)) float32 {
	s, c := float32(0), float32(1)
	if style.Rotation != 0 {
		s, c = math.SinCos(style.Rotation)
	}

	var cursor float32
	for _, r := range norm.NFC.String(text) {
		g, ok := glyphs.Glyph(font, r)
		if !ok {
			continue
		}

		if g.Size.X > 0 && g.Size.Y > 0 {
			offset := math.Vec2{
				X: cursor + g.Bearing.X*style.Scale,
				Y: (g.Bearing.Y - g.Size.Y) * style.Scale,
			}
			if style.Rotation != 0 {
				offset = offset.RotateSC(s, c)
			}
			submit(Quad{
				Position: anchor.Add(offset),
				Size:     g.Size.Mul(style.Scale),
				Color:    style.Color,
				Rotation: style.Rotation,
				Texture:  g.Texture,
				FlipUV:   true,
			})
		}

		cursor += g.Advance * style.Scale
	}
	return cursor
}

// MeasureText returns the advance DrawText would return for the same
// arguments, without submitting anything.
func MeasureText(glyphs GlyphSource, font, text string, scale float32) float32 {
	return layoutText(glyphs, font, text, math.Vec2{}, TextStyle{Scale: scale}, func(Quad) {})
}
