package core

import (
	"unsafe"

	"quad-engine/math"
)

// Color is a normalized (0..1) RGBA color.
type Color struct {
	R, G, B, A float32
}

var (
	ColorWhite       = Color{1, 1, 1, 1}
	ColorBlack       = Color{0, 0, 0, 1}
	ColorRed         = Color{1, 0, 0, 1}
	ColorGreen       = Color{0, 1, 0, 1}
	ColorBlue        = Color{0, 0, 1, 1}
	ColorYellow      = Color{1, 1, 0, 1}
	ColorTransparent = Color{0, 0, 0, 0}
)

// RGB returns an opaque color.
func RGB(r, g, b float32) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

func RGBA(r, g, b, a float32) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// FromRGBA8 converts 8-bit channels to a normalized color.
func FromRGBA8(r, g, b, a uint8) Color {
	return Color{
		R: float32(r) / 255,
		G: float32(g) / 255,
		B: float32(b) / 255,
		A: float32(a) / 255,
	}
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float32) Color {
	c.A = a
	return c
}

// Vertex is one corner of a batched quad. The field order and sizes are the
// contract with the batch vertex shader (locations 0..3) and must not change
// without updating VertexLayout.
type Vertex struct {
	Position math.Vec2
	Color    Color
	UV       math.Vec2
	TexIndex float32
}

// VertexStride is the size in bytes of one Vertex in the GPU buffer.
const VertexStride = int32(unsafe.Sizeof(Vertex{}))

// VertexAttribute describes one float attribute of the Vertex layout.
type VertexAttribute struct {
	Location   uint32
	Components int32
	Offset     int
}

// VertexLayout returns the attribute pointers for Vertex.
func VertexLayout() []VertexAttribute {
	var v Vertex
	return []VertexAttribute{
		{Location: 0, Components: 2, Offset: int(unsafe.Offsetof(v.Position))},
		{Location: 1, Components: 4, Offset: int(unsafe.Offsetof(v.Color))},
		{Location: 2, Components: 2, Offset: int(unsafe.Offsetof(v.UV))},
		{Location: 3, Components: 1, Offset: int(unsafe.Offsetof(v.TexIndex))},
	}
}

type Rect struct {
	X, Y, Width, Height float32
}
