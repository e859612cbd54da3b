package math

import "math"

type Vec2 struct {
	X, Y float32
}

var (
	Vec2Zero   = Vec2{0, 0}
	Vec2One    = Vec2{1, 1}
	Vec2Center = Vec2{0.5, 0.5}
)

func NewVec2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{X: v.X - other.X, Y: v.Y - other.Y}
}

func (v Vec2) Mul(scalar float32) Vec2 {
	return Vec2{X: v.X * scalar, Y: v.Y * scalar}
}

// Scale multiplies component-wise.
func (v Vec2) Scale(other Vec2) Vec2 {
	return Vec2{X: v.X * other.X, Y: v.Y * other.Y}
}

func (v Vec2) Dot(other Vec2) float32 {
	return v.X*other.X + v.Y*other.Y
}

func (v Vec2) Length() float32 {
	return float32(math.Sqrt(float64(v.Dot(v))))
}

func (v Vec2) Normalize() Vec2 {
	length := v.Length()
	if length > 0 {
		return v.Mul(1.0 / length)
	}
	return v
}

func (v Vec2) Lerp(other Vec2, t float32) Vec2 {
	return v.Add(other.Sub(v).Mul(t))
}

func (v Vec2) Negate() Vec2 {
	return Vec2{-v.X, -v.Y}
}

// Rotate turns v counter-clockwise about the origin by deg degrees.
// The angle is used as given; callers may pass any real value.
func (v Vec2) Rotate(deg float32) Vec2 {
	if deg == 0 {
		return v
	}
	s, c := SinCos(deg)
	return v.RotateSC(s, c)
}

// RotateSC rotates v by a precomputed sine/cosine pair.
func (v Vec2) RotateSC(s, c float32) Vec2 {
	return Vec2{
		X: v.X*c - v.Y*s,
		Y: v.X*s + v.Y*c,
	}
}

func (v Vec2) ToVec3(z float32) Vec3 {
	return Vec3{X: v.X, Y: v.Y, Z: z}
}

// Radians converts degrees to radians.
func Radians(deg float32) float32 {
	return deg * math.Pi / 180
}

// SinCos returns the sine and cosine of an angle given in degrees.
func SinCos(deg float32) (float32, float32) {
	s, c := math.Sincos(float64(deg) * math.Pi / 180)
	return float32(s), float32(c)
}
