package engine

import "github.com/unitykit/engine/internal/core/render"

// MeshFilter holds the geometry facet of a node's primitive. Reserved kind:
// created automatically when a node is built around a primitive that
// carries geometry.
type MeshFilter struct {
	BaseComponent
	geometry *render.Geometry
}

func newMeshFilter(g *render.Geometry) *MeshFilter {
	return &MeshFilter{geometry: g}
}

func (m *MeshFilter) Kind() Kind   { return KindMeshFilter }
func (m *MeshFilter) Class() Class { return ClassPriority }

func (m *MeshFilter) Geometry() *render.Geometry { return m.geometry }

// Renderer controls drawing of a node's geometry. Rendering itself is the
// host engine's job; the component only carries the enabled flag and
// forwards bounds. Reserved kind.
type Renderer struct {
	BaseComponent
	visible bool
}

func newRenderer() *Renderer {
	return &Renderer{visible: true}
}

func (r *Renderer) Kind() Kind   { return KindRenderer }
func (r *Renderer) Class() Class { return ClassRenderer }

func (r *Renderer) Visible() bool { return r.visible }

func (r *Renderer) SetVisible(v bool) {
	r.visible = v
	if g := r.GameObject(); g != nil && g.Primitive() != nil {
		g.Primitive().SetVisible(v && g.ActiveInHierarchy())
	}
}

// Bounds forwards the primitive's bounding box, absent when detached.
func (r *Renderer) Bounds() (render.Box, bool) {
	g := r.GameObject()
	if g == nil || g.Primitive() == nil {
		return render.Box{}, false
	}
	return g.Primitive().BoundingBox(), true
}

// Canvas is the UI-canvas bridge kind. The bridge itself is an external
// collaborator; only the one-per-node reservation lives here.
type Canvas struct {
	BaseComponent
}

func (c *Canvas) Kind() Kind   { return KindCanvas }
func (c *Canvas) Class() Class { return ClassPriority }
