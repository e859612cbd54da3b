package scene

import (
	stdmath "math"

	"quad-engine/core"
	"quad-engine/math"
)

// GridLine is one grid line as a thin axis-aligned rectangle anchored at
// its bottom-left corner.
type GridLine struct {
	Position math.Vec2
	Size     math.Vec2
	Color    core.Color
}

var (
	gridGray  = core.Color{R: 0.35, G: 0.35, B: 0.35, A: 0.5}
	gridXAxis = core.Color{R: 0.8, G: 0.15, B: 0.15, A: 0.8}
	gridYAxis = core.Color{R: 0.15, G: 0.8, B: 0.25, A: 0.8}
)

// GridLines covers view with lines every spacing world units. The line
// along y=0 is red and the one along x=0 is green; all others are gray.
// A spacing that would produce more than maxGridLines per axis yields nil.
func GridLines(view AABB, spacing, thickness float32) []GridLine {
	const maxGridLines = 512
	if spacing <= 0 {
		return nil
	}
	first := func(v float32) float32 {
		return float32(stdmath.Ceil(float64(v/spacing))) * spacing
	}
	w := view.Max.X - view.Min.X
	h := view.Max.Y - view.Min.Y
	if w/spacing > maxGridLines || h/spacing > maxGridLines {
		return nil
	}

	half := thickness / 2
	var lines []GridLine

	// Vertical lines (vary X)
	for x := first(view.Min.X); x <= view.Max.X; x += spacing {
		c := gridGray
		if x == 0 {
			c = gridYAxis
		}
		lines = append(lines, GridLine{
			Position: math.Vec2{X: x - half, Y: view.Min.Y},
			Size:     math.Vec2{X: thickness, Y: h},
			Color:    c,
		})
	}

	// Horizontal lines (vary Y)
	for y := first(view.Min.Y); y <= view.Max.Y; y += spacing {
		c := gridGray
		if y == 0 {
			c = gridXAxis
		}
		lines = append(lines, GridLine{
			Position: math.Vec2{X: view.Min.X, Y: y - half},
			Size:     math.Vec2{X: w, Y: thickness},
			Color:    c,
		})
	}
	return lines
}
