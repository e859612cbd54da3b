package main

import (
	"fmt"

	"quad-engine/core"
	"quad-engine/math"
	"quad-engine/renderer"
)

// DebugOverlay stores debug lines and draws them top-down from a corner.
type DebugOverlay struct {
	lines   []string
	Font    string
	Scale   float32
	Color   core.Color
	Visible bool
}

func NewDebugOverlay(font string) *DebugOverlay {
	return &DebugOverlay{
		Font:    font,
		Scale:   0.5,
		Color:   core.Color{R: 1, G: 1, B: 1, A: 1},
		Visible: true,
	}
}

func (do *DebugOverlay) AddLine(format string, args ...interface{}) {
	do.lines = append(do.lines, fmt.Sprintf(format, args...))
}

func (do *DebugOverlay) Clear() {
	do.lines = do.lines[:0]
}

func (do *DebugOverlay) GetText() string {
	if len(do.lines) == 0 {
		return ""
	}
	var result string
	for _, line := range do.lines {
		result += line + "\n"
	}
	return result
}

// AddStats appends one line per frame counter.
func (do *DebugOverlay) AddStats(s renderer.FrameStats) {
	do.AddLine("draw calls: %d  flushes: %d", s.DrawCalls, s.Flushes)
	do.AddLine("quads: %d  vertices: %d  indices: %d", s.Quads, s.Vertices, s.Indices)
	if s.SlotOverflows > 0 || s.DroppedQuads > 0 {
		do.AddLine("slot overflows: %d  dropped: %d", s.SlotOverflows, s.DroppedQuads)
	}
}

// Draw renders the lines with the first one at top-left, lineHeight apart.
func (do *DebugOverlay) Draw(r *renderer.Renderer, topLeft math.Vec2, lineHeight float32) {
	if !do.Visible {
		return
	}
	pos := topLeft
	for _, line := range do.lines {
		pos.Y -= lineHeight * do.Scale
		r.DrawText(do.Font, line, pos, renderer.WithScale(do.Scale), renderer.WithTint(do.Color))
	}
}
