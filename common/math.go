package common

import "math"

// Gravity is the downward acceleration applied to physics-driven bodies.
const Gravity = 9.81

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Vec2 is an analog input value such as a stick or WASD axis.
type Vec2 struct {
	X float64
	Y float64
}

func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Vec3 is a world-space position or direction. Y is up.
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

var (
	Zero3 = Vec3{}
	Up    = Vec3{Y: 1}
	// Forward is the direction an actor with zero yaw looks along.
	Forward = Vec3{Z: 1}
)

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) LenSq() float64 {
	return v.Dot(v)
}

func (v Vec3) Len() float64 {
	return math.Sqrt(v.LenSq())
}

// Normalize returns the unit vector along v. ok is false for the zero vector,
// in which case the zero vector is returned unchanged.
func (v Vec3) Normalize() (Vec3, bool) {
	l := v.Len()
	if l == 0 {
		return v, false
	}
	return v.Scale(1 / l), true
}

// NormalizeOr is Normalize with an explicit fallback for the zero vector.
func (v Vec3) NormalizeOr(fallback Vec3) Vec3 {
	if n, ok := v.Normalize(); ok {
		return n
	}
	return fallback
}

// Planar drops the vertical component.
func (v Vec3) Planar() Vec3 {
	return Vec3{X: v.X, Z: v.Z}
}

// PlanarDistanceSq is the squared distance between a and b on the ground plane.
func PlanarDistanceSq(a, b Vec3) float64 {
	return b.Sub(a).Planar().LenSq()
}

// YawOf returns the heading, in radians around the up axis, of a look direction.
// Zero yaw looks along Forward.
func YawOf(dir Vec3) float64 {
	return math.Atan2(dir.X, dir.Z)
}

// DirectionOf is the planar unit vector for a yaw.
func DirectionOf(yaw float64) Vec3 {
	return Vec3{X: math.Sin(yaw), Z: math.Cos(yaw)}
}
