package renderer

import (
	"testing"

	"quad-engine/core"
	"quad-engine/math"
)

type fakeGlyphs map[rune]Glyph

func (f fakeGlyphs) Glyph(font string, r rune) (Glyph, bool) {
	if font != "test" {
		return Glyph{}, false
	}
	g, ok := f[r]
	return g, ok
}

var testGlyphs = fakeGlyphs{
	'A': {Texture: 11, Size: math.Vec2{X: 10, Y: 12}, Bearing: math.Vec2{X: 1, Y: 12}, Advance: 11},
	'B': {Texture: 12, Size: math.Vec2{X: 9, Y: 12}, Bearing: math.Vec2{X: 2, Y: 12}, Advance: 10},
	'g': {Texture: 13, Size: math.Vec2{X: 8, Y: 10}, Bearing: math.Vec2{X: 0, Y: 6}, Advance: 9},
	' ': {Advance: 5},
	'\u00e9': {Texture: 14, Size: math.Vec2{X: 8, Y: 13}, Bearing: math.Vec2{X: 1, Y: 13}, Advance: 9},
}

func collect(text string, anchor math.Vec2, style TextStyle) ([]Quad, float32) {
	var quads []Quad
	adv := layoutText(testGlyphs, "test", text, anchor, style, func(q Quad) {
		quads = append(quads, q)
	})
	return quads, adv
}

func TestLayoutTwoGlyphs(t *testing.T) {
	quads, adv := collect("AB", math.Vec2{}, TextStyle{Scale: 1, Color: core.ColorWhite})
	if len(quads) != 2 {
		t.Fatalf("got %d quads, want 2", len(quads))
	}
	if adv != 21 {
		t.Errorf("advance = %v, want 21", adv)
	}
	if !(quads[0].Position.X < quads[1].Position.X) {
		t.Errorf("x origins not increasing: %v, %v", quads[0].Position.X, quads[1].Position.X)
	}
	if quads[0].Position.X != 1 || quads[1].Position.X != 13 {
		t.Errorf("x origins = %v, %v, want 1, 13", quads[0].Position.X, quads[1].Position.X)
	}
	for _, q := range quads {
		if !q.FlipUV {
			t.Errorf("glyph quads must flip UVs")
		}
		if q.Origin != (math.Vec2{}) {
			t.Errorf("glyph origin = %v, want bottom-left", q.Origin)
		}
	}
}

func TestLayoutDescender(t *testing.T) {
	quads, _ := collect("g", math.Vec2{X: 100, Y: 50}, TextStyle{Scale: 2})
	// Bearing.Y - Size.Y = -4, scaled by 2.
	if want := (math.Vec2{X: 100, Y: 42}); quads[0].Position != want {
		t.Errorf("position = %v, want %v", quads[0].Position, want)
	}
	if want := (math.Vec2{X: 16, Y: 20}); quads[0].Size != want {
		t.Errorf("size = %v, want %v", quads[0].Size, want)
	}
}

func TestLayoutScale(t *testing.T) {
	_, adv := collect("AB", math.Vec2{}, TextStyle{Scale: 0.5})
	if adv != 10.5 {
		t.Errorf("advance = %v, want 10.5", adv)
	}
}

func TestLayoutSkipsMissingAndBlank(t *testing.T) {
	quads, adv := collect("A ?B", math.Vec2{}, TextStyle{Scale: 1})
	if len(quads) != 2 {
		t.Fatalf("got %d quads, want 2", len(quads))
	}
	if adv != 26 {
		t.Errorf("advance = %v, want 26 (space advances, '?' does not)", adv)
	}
	if quads[1].Position.X != 18 {
		t.Errorf("B at x=%v, want 18", quads[1].Position.X)
	}
}

func TestLayoutUnknownFont(t *testing.T) {
	var quads []Quad
	adv := layoutText(testGlyphs, "nope", "AB", math.Vec2{}, TextStyle{Scale: 1}, func(q Quad) {
		quads = append(quads, q)
	})
	if len(quads) != 0 || adv != 0 {
		t.Errorf("unknown font produced %d quads, advance %v", len(quads), adv)
	}
}

func TestLayoutRotatesAboutAnchor(t *testing.T) {
	anchor := math.Vec2{X: 10, Y: 10}
	quads, adv := collect("AB", anchor, TextStyle{Scale: 1, Rotation: 90})
	if adv != 21 {
		t.Errorf("rotation changed the advance: %v", adv)
	}
	// Offsets (1,0) and (13,0) turn to (0,1) and (0,13).
	if !nearVec(quads[0].Position, math.Vec2{X: 10, Y: 11}) {
		t.Errorf("A at %v", quads[0].Position)
	}
	if !nearVec(quads[1].Position, math.Vec2{X: 10, Y: 23}) {
		t.Errorf("B at %v", quads[1].Position)
	}
	for _, q := range quads {
		if q.Rotation != 90 {
			t.Errorf("glyph rotation = %v, want 90", q.Rotation)
		}
	}
}

func TestLayoutNormalizesText(t *testing.T) {
	// "e" + combining acute composes to a single glyph.
	quads, adv := collect("e\u0301", math.Vec2{}, TextStyle{Scale: 1})
	if len(quads) != 1 || quads[0].Texture != 14 {
		t.Fatalf("quads = %+v", quads)
	}
	if adv != 9 {
		t.Errorf("advance = %v, want 9", adv)
	}
}

func TestMeasureTextMatchesLayout(t *testing.T) {
	for _, text := range []string{"AB g", "e\u0301", "A?B", ""} {
		_, adv := collect(text, math.Vec2{X: 40, Y: 7}, TextStyle{Scale: 2, Rotation: 30})
		if got := MeasureText(testGlyphs, "test", text, 2); got != adv {
			t.Errorf("MeasureText(%q) = %v, layout advanced %v", text, got, adv)
		}
	}
}

func TestDrawTextThroughRenderer(t *testing.T) {
	r, dev := newTestRenderer(t, DefaultOptions())
	if adv := r.DrawText("test", "AB", math.Vec2{}); adv != 0 {
		t.Errorf("DrawText without glyphs returned %v", adv)
	}

	r.SetGlyphSource(testGlyphs)
	r.BeginFrame(nil)
	adv := r.DrawText("test", "AB", math.Vec2{X: 5, Y: 5}, WithTint(core.ColorRed))
	r.EndFrame()

	if adv != 21 {
		t.Errorf("advance = %v, want 21", adv)
	}
	if len(dev.DrawCalls) != 1 {
		t.Fatalf("draw calls = %d, want 1", len(dev.DrawCalls))
	}
	v := dev.DrawCalls[0].Vertices
	if len(v) != 8 {
		t.Fatalf("vertices = %d, want 8", len(v))
	}
	if v[0].Color != core.ColorRed || v[0].TexIndex != 1 || v[4].TexIndex != 2 {
		t.Errorf("glyph vertices = %+v", v[0])
	}
	if dev.DrawCalls[0].Textures[1] != 11 || dev.DrawCalls[0].Textures[2] != 12 {
		t.Errorf("glyph textures not bound: %v", dev.DrawCalls[0].Textures)
	}
}
