package scene

import "quad-engine/math"

// AABB is an axis-aligned box in world space.
type AABB struct {
	Min, Max math.Vec2
}

// Intersects reports whether the boxes overlap. Touching edges count.
func (b AABB) Intersects(o AABB) bool {
	return b.Min.X <= o.Max.X && o.Min.X <= b.Max.X &&
		b.Min.Y <= o.Max.Y && o.Min.Y <= b.Max.Y
}

func (b AABB) Contains(p math.Vec2) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// AABBFromPoints returns the smallest box holding every point. No points
// yields the zero box.
func AABBFromPoints(pts ...math.Vec2) AABB {
	if len(pts) == 0 {
		return AABB{}
	}
	out := AABB{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		out.Min.X = min(out.Min.X, p.X)
		out.Min.Y = min(out.Min.Y, p.Y)
		out.Max.X = max(out.Max.X, p.X)
		out.Max.Y = max(out.Max.Y, p.Y)
	}
	return out
}

// RectAABB bounds a size rectangle whose pivot sits at pos, rotated by deg
// degrees about that pivot. origin is the pivot as a fraction of size, the
// same convention quads are drawn with.
func RectAABB(pos, size, origin math.Vec2, deg float32) AABB {
	s, c := math.SinCos(deg)
	x0, x1 := -origin.X*size.X, (1-origin.X)*size.X
	y0, y1 := -origin.Y*size.Y, (1-origin.Y)*size.Y
	local := [4]math.Vec2{
		{X: x0, Y: y0},
		{X: x1, Y: y0},
		{X: x1, Y: y1},
		{X: x0, Y: y1},
	}
	var pts [4]math.Vec2
	for i, l := range local {
		pts[i] = l.RotateSC(s, c).Add(pos)
	}
	return AABBFromPoints(pts[:]...)
}

// ViewAABB is the world-space area the camera currently shows.
func (c *Camera) ViewAABB() AABB {
	return AABB{
		Min: math.Vec2{X: c.position.X + c.left, Y: c.position.Y + c.bottom},
		Max: math.Vec2{X: c.position.X + c.right, Y: c.position.Y + c.top},
	}
}

// Visible reports whether box overlaps the camera's view.
func (c *Camera) Visible(box AABB) bool {
	return c.ViewAABB().Intersects(box)
}
