package engine

import "github.com/unitykit/engine/internal/core/render"

// Camera binds a node to a render-engine camera facet. When a node is built
// around a primitive that already carries a camera, the component wraps that
// existing facet instead of creating a new one.
type Camera struct {
	BaseComponent
	cam *render.Camera
}

func newCamera(facet *render.Camera) *Camera {
	if facet == nil {
		facet = &render.Camera{FieldOfView: 60, ZNear: 0.1, ZFar: 1000}
	}
	return &Camera{cam: facet}
}

func (c *Camera) Kind() Kind   { return KindCamera }
func (c *Camera) Class() Class { return ClassPriority }

// Facet exposes the underlying render camera.
func (c *Camera) Facet() *render.Camera { return c.cam }
