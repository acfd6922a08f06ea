package engine

import (
	"math"

	"github.com/unitykit/engine/internal/core/render"
)

// Transform is the one component every node owns, created automatically at
// construction before any user code runs. It is a reserved kind: the public
// add path refuses it.
type Transform struct {
	BaseComponent
	position render.Vector3
	rotation render.Vector3 // euler angles, degrees
	scale    render.Vector3
}

func newTransform() *Transform {
	return &Transform{scale: render.V3(1, 1, 1)}
}

func (t *Transform) Kind() Kind   { return KindTransform }
func (t *Transform) Class() Class { return ClassTransform }

func (t *Transform) Position() render.Vector3 { return t.position }
func (t *Transform) Rotation() render.Vector3 { return t.rotation }
func (t *Transform) Scale() render.Vector3    { return t.scale }

func (t *Transform) SetPosition(p render.Vector3) { t.position = p }
func (t *Transform) SetRotation(r render.Vector3) { t.rotation = r }
func (t *Transform) SetScale(s render.Vector3)    { t.scale = s }

// Translate offsets the position by the given delta.
func (t *Transform) Translate(d render.Vector3) {
	t.position = t.position.Add(d)
}

// LookAt points the transform's forward axis at the target. Only yaw and
// pitch are derived; real orientation math lives in the host engine.
func (t *Transform) LookAt(target render.Vector3) {
	dir := target.Sub(t.position)
	t.rotation = yawPitch(dir)
}

func yawPitch(dir render.Vector3) render.Vector3 {
	if dir.Length() == 0 {
		return render.Vector3{}
	}
	// Degrees, matching the host engine's euler convention.
	const rad2deg = 180.0 / math.Pi
	yaw := math.Atan2(dir.X, dir.Z) * rad2deg
	horiz := render.V3(dir.X, 0, dir.Z).Length()
	pitch := -math.Atan2(dir.Y, horiz) * rad2deg
	return render.V3(pitch, yaw, 0)
}
