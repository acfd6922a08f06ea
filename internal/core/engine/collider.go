package engine

import "github.com/unitykit/engine/internal/core/render"

// Collider is the shape facet the physics collaborator reports contacts
// against. The core never simulates physics; colliders exist so inbound
// contact events can be fanned out through the component cache, and so the
// rigid-body/collider priority ordering is observable.
type Collider interface {
	Component

	// Bounds returns the collision bounds in the node's space.
	Bounds() render.Box

	// ContactBegan and ContactEnded are invoked by the contact dispatcher
	// with the other node involved in the contact.
	ContactBegan(other *GameObject)
	ContactEnded(other *GameObject)
}

// ContactHandler is the capability scripted behaviours implement to receive
// the same contact fan-out colliders do.
type ContactHandler interface {
	OnContactBegan(other *GameObject)
	OnContactEnded(other *GameObject)
}

// colliderBase carries the shared contact plumbing. Concrete colliders only
// contribute a shape.
type colliderBase struct {
	BaseComponent

	// Optional user callbacks, invoked in addition to the owner's
	// ContactHandler behaviours.
	OnBegan func(other *GameObject)
	OnEnded func(other *GameObject)
}

func (c *colliderBase) Class() Class { return ClassCollider }

func (c *colliderBase) ContactBegan(other *GameObject) {
	if c.OnBegan != nil {
		c.OnBegan(other)
	}
}

func (c *colliderBase) ContactEnded(other *GameObject) {
	if c.OnEnded != nil {
		c.OnEnded(other)
	}
}

// SphereCollider is a spherical collision shape.
type SphereCollider struct {
	colliderBase
	Radius float64
}

var _ Collider = (*SphereCollider)(nil)

func (s *SphereCollider) Kind() Kind { return "SphereCollider" }

func (s *SphereCollider) Bounds() render.Box {
	center := render.Vector3{}
	if t := s.Transform(); t != nil {
		center = t.Position()
	}
	r := render.V3(s.Radius, s.Radius, s.Radius)
	return render.Box{Min: center.Sub(r), Max: center.Add(r)}
}

// BoxCollider is an axis-aligned box collision shape.
type BoxCollider struct {
	colliderBase
	Size render.Vector3
}

var _ Collider = (*BoxCollider)(nil)

func (b *BoxCollider) Kind() Kind { return "BoxCollider" }

func (b *BoxCollider) Bounds() render.Box {
	center := render.Vector3{}
	if t := b.Transform(); t != nil {
		center = t.Position()
	}
	half := b.Size.Scale(0.5)
	return render.Box{Min: center.Sub(half), Max: center.Add(half)}
}

// MeshCollider derives its bounds from the node's primitive. Falls back to
// an empty box when detached.
type MeshCollider struct {
	colliderBase
}

var _ Collider = (*MeshCollider)(nil)

func (m *MeshCollider) Kind() Kind { return "MeshCollider" }

func (m *MeshCollider) Bounds() render.Box {
	g := m.GameObject()
	if g == nil || g.Primitive() == nil {
		return render.Box{}
	}
	return g.Primitive().BoundingBox()
}
