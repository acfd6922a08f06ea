package main

import (
	"github.com/unitykit/engine/internal/core/engine"
	"github.com/unitykit/engine/internal/core/render"
)

// Rotator spins its node around the Y axis at a fixed rate while enabled.
type Rotator struct {
	engine.Behaviour
	DegreesPerSecond float64
}

func (r *Rotator) Kind() engine.Kind { return "Rotator" }

func (r *Rotator) Update() {
	t := r.Transform()
	if t == nil {
		return
	}
	rot := t.Rotation()
	t.SetRotation(render.V3(rot.X, rot.Y+r.DegreesPerSecond*engine.DeltaTime(), rot.Z))
}
