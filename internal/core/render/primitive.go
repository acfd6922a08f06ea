package render

// Primitive is the boundary contract to the host rendering engine's scene
// graph node. The engine core owns exactly one Primitive per node, mirrors
// child attach/detach onto it and maps the node's active flag to visibility.
// Everything behind this interface is out of the core's scope.
type Primitive interface {
	// Name of the underlying render node, used when selecting a named
	// sub-node out of loaded content.
	Name() string
	SetName(string)

	// Hierarchy mirroring.
	AddChild(Primitive)
	RemoveChild(Primitive)
	Children() []Primitive

	// Visibility maps to the owning node's active flag.
	Visible() bool
	SetVisible(bool)

	// Clone returns a deep copy of this primitive and its subtree.
	Clone() Primitive

	// Bounding queries are forwarded verbatim from the owning node.
	BoundingBox() Box
	BoundingSphere() Sphere

	// Geometry returns the geometry facet carried by this primitive, or
	// nil when the primitive is a plain grouping node.
	Geometry() *Geometry

	// Camera returns the camera facet, or nil.
	Camera() *Camera
}

// Geometry is the mesh/material facet of a primitive. Opaque to the core
// beyond identity and bounds.
type Geometry struct {
	Name   string
	Bounds Box
}

// Camera is the camera facet of a primitive.
type Camera struct {
	FieldOfView float64
	ZNear       float64
	ZFar        float64
}
