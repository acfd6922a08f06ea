package render

import "sync"

// Node is the in-memory reference implementation of Primitive. It backs the
// default scene, the demo binary and the test suite; a production embedding
// would adapt the host engine's node type to the Primitive interface instead.
type Node struct {
	mu       sync.RWMutex
	name     string
	visible  bool
	position Vector3
	children []Primitive
	geometry *Geometry
	camera   *Camera
}

var _ Primitive = (*Node)(nil)

func NewNode(name string) *Node {
	return &Node{name: name, visible: true}
}

// NewGeometryNode creates a node carrying a geometry facet with the given bounds.
func NewGeometryNode(name string, bounds Box) *Node {
	n := NewNode(name)
	n.geometry = &Geometry{Name: name, Bounds: bounds}
	return n
}

// NewCameraNode creates a node carrying a default camera facet.
func NewCameraNode(name string) *Node {
	n := NewNode(name)
	n.camera = &Camera{FieldOfView: 60, ZNear: 0.1, ZFar: 1000}
	return n
}

func (n *Node) Name() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.name
}

func (n *Node) SetName(name string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.name = name
}

func (n *Node) AddChild(p Primitive) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, c := range n.children {
		if c == p {
			return
		}
	}
	n.children = append(n.children, p)
}

func (n *Node) RemoveChild(p Primitive) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, c := range n.children {
		if c == p {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

func (n *Node) Children() []Primitive {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]Primitive, len(n.children))
	copy(out, n.children)
	return out
}

func (n *Node) Visible() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.visible
}

func (n *Node) SetVisible(v bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.visible = v
}

func (n *Node) Position() Vector3 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.position
}

func (n *Node) SetPosition(p Vector3) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.position = p
}

// Clone deep-copies the node, its facets and its subtree.
func (n *Node) Clone() Primitive {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := &Node{
		name:     n.name,
		visible:  n.visible,
		position: n.position,
	}
	if n.geometry != nil {
		g := *n.geometry
		out.geometry = &g
	}
	if n.camera != nil {
		c := *n.camera
		out.camera = &c
	}
	for _, c := range n.children {
		out.children = append(out.children, c.Clone())
	}
	return out
}

func (n *Node) BoundingBox() Box {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.geometry != nil {
		return n.geometry.Bounds
	}
	return Box{Min: n.position, Max: n.position}
}

func (n *Node) BoundingSphere() Sphere {
	box := n.BoundingBox()
	return Sphere{Center: box.Center(), Radius: Distance(box.Min, box.Max) / 2}
}

func (n *Node) Geometry() *Geometry {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.geometry
}

func (n *Node) Camera() *Camera {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.camera
}

// FindChild searches the subtree depth-first for a node with the given name.
func FindChild(p Primitive, name string) Primitive {
	for _, c := range p.Children() {
		if c.Name() == name {
			return c
		}
		if found := FindChild(c, name); found != nil {
			return found
		}
	}
	return nil
}
