package renderer

import (
	"quad-engine/core"
	"quad-engine/math"
)

// Quad is one rectangle submission in world space.
type Quad struct {
	Position math.Vec2
	Size     math.Vec2
	Color    core.Color
	// Rotation is counter-clockwise degrees about Origin. Any value is accepted.
	Rotation float32
	// Origin is the pivot and anchor as a fraction of Size: (0,0) is the
	// bottom-left corner, (0.5,0.5) the center.
	Origin  math.Vec2
	Texture uint32
	FlipUV  bool
}

// Corner order shared with the static index pattern (0,1,2, 2,3,0).
const (
	cornerBL = iota
	cornerBR
	cornerTR
	cornerTL
)

var quadUVs = [4]math.Vec2{
	cornerBL: {X: 0, Y: 0},
	cornerBR: {X: 1, Y: 0},
	cornerTR: {X: 1, Y: 1},
	cornerTL: {X: 0, Y: 1},
}

// localCorners returns the corner offsets relative to the origin point.
func (q Quad) localCorners() [4]math.Vec2 {
	x0 := -q.Origin.X * q.Size.X
	x1 := (1 - q.Origin.X) * q.Size.X
	y0 := -q.Origin.Y * q.Size.Y
	y1 := (1 - q.Origin.Y) * q.Size.Y
	return [4]math.Vec2{
		cornerBL: {X: x0, Y: y0},
		cornerBR: {X: x1, Y: y0},
		cornerTR: {X: x1, Y: y1},
		cornerTL: {X: x0, Y: y1},
	}
}

// Corners returns the four world-space corners in BL, BR, TR, TL order.
func (q Quad) Corners() [4]math.Vec2 {
	corners := q.localCorners()
	if q.Rotation != 0 {
		s, c := math.SinCos(q.Rotation)
		for i := range corners {
			corners[i] = corners[i].RotateSC(s, c)
		}
	}
	for i := range corners {
		corners[i] = corners[i].Add(q.Position)
	}
	return corners
}

// appendVertices emits the quad's four vertices with the given sampler slot.
func (q Quad) appendVertices(dst []core.Vertex, slot int) []core.Vertex {
	corners := q.Corners()
	for i, p := range corners {
		uv := quadUVs[i]
		if q.FlipUV {
			uv.Y = 1 - uv.Y
		}
		dst = append(dst, core.Vertex{
			Position: p,
			Color:    q.Color,
			UV:       uv,
			TexIndex: float32(slot),
		})
	}
	return dst
}

// quadIndices builds the static index pattern for maxQuads quads.
func quadIndices(maxQuads int) []uint32 {
	indices := make([]uint32, maxQuads*6)
	var offset uint32
	for i := 0; i < len(indices); i += 6 {
		indices[i+0] = offset + 0
		indices[i+1] = offset + 1
		indices[i+2] = offset + 2
		indices[i+3] = offset + 2
		indices[i+4] = offset + 3
		indices[i+5] = offset + 0
		offset += 4
	}
	return indices
}
