package render

import "math"

// Minimal spatial types shared by the scene graph and its collaborators.
// Intentionally small: real math belongs to the host rendering engine.

// Vector3 is a 3D point or direction.
type Vector3 struct {
	X, Y, Z float64
}

func V3(x, y, z float64) Vector3 { return Vector3{X: x, Y: y, Z: z} }

func (v Vector3) Add(o Vector3) Vector3 { return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vector3) Sub(o Vector3) Vector3 { return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

func (v Vector3) Scale(s float64) Vector3 { return Vector3{v.X * s, v.Y * s, v.Z * s} }

func (v Vector3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Distance computes the Euclidean distance between two points.
func Distance(a, b Vector3) float64 { return b.Sub(a).Length() }

// Box is an axis-aligned bounding box.
type Box struct {
	Min, Max Vector3
}

// Center returns the box midpoint.
func (b Box) Center() Vector3 {
	return Vector3{(b.Min.X + b.Max.X) / 2, (b.Min.Y + b.Max.Y) / 2, (b.Min.Z + b.Max.Z) / 2}
}

// Sphere is a bounding sphere.
type Sphere struct {
	Center Vector3
	Radius float64
}
