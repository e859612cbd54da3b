package scene

import (
	"quad-engine/math"
)

// Camera is a 2D orthographic camera. The view-projection is recomputed
// whenever the projection or position changes, so reads are free.
type Camera struct {
	left, right, bottom, top float32
	position                 math.Vec2

	projectionMatrix math.Mat4
	viewMatrix       math.Mat4
	viewProjMatrix   math.Mat4
}

// NewCamera returns a camera looking at the given world-space bounds.
func NewCamera(left, right, bottom, top float32) *Camera {
	c := &Camera{}
	c.SetProjection(left, right, bottom, top)
	return c
}

func (c *Camera) SetProjection(left, right, bottom, top float32) {
	c.left, c.right, c.bottom, c.top = left, right, bottom, top
	c.projectionMatrix = math.Mat4Orthographic(left, right, bottom, top, -1, 1)
	c.recalculate()
}

// Resize maps the projection to a pixel-sized viewport with (0,0) at the
// bottom-left.
func (c *Camera) Resize(width, height int) {
	c.SetProjection(0, float32(width), 0, float32(height))
}

func (c *Camera) SetPosition(pos math.Vec2) {
	c.position = pos
	c.recalculate()
}

func (c *Camera) Translate(delta math.Vec2) {
	c.SetPosition(c.position.Add(delta))
}

func (c *Camera) recalculate() {
	c.viewMatrix = math.Mat4Translation(c.position.Negate().ToVec3(0))
	c.viewProjMatrix = c.viewMatrix.Mul(c.projectionMatrix)
}

func (c *Camera) Position() math.Vec2 { return c.position }

// Bounds returns the projection's left, right, bottom and top.
func (c *Camera) Bounds() (left, right, bottom, top float32) {
	return c.left, c.right, c.bottom, c.top
}

func (c *Camera) ProjectionMatrix() math.Mat4     { return c.projectionMatrix }
func (c *Camera) ViewMatrix() math.Mat4           { return c.viewMatrix }
func (c *Camera) ViewProjectionMatrix() math.Mat4 { return c.viewProjMatrix }

// ScreenToWorld converts a point in pixels, origin top-left, to world space
// for a viewport of the given size.
func (c *Camera) ScreenToWorld(x, y float64, width, height int) math.Vec2 {
	if width <= 0 || height <= 0 {
		return c.position
	}
	u := float32(x) / float32(width)
	v := 1 - float32(y)/float32(height)
	return math.Vec2{
		X: c.left + u*(c.right-c.left) + c.position.X,
		Y: c.bottom + v*(c.top-c.bottom) + c.position.Y,
	}
}
