package engine

// RigidBody is the pass-through handle for the physics collaborator's body.
// It carries only the parameters the host engine consumes; the priority
// ordering guarantees it exists before any collider on the same node
// queries it.
type RigidBody struct {
	BaseComponent
	Mass        float64
	IsKinematic bool
	UseGravity  bool
}

func NewRigidBody(mass float64) *RigidBody {
	return &RigidBody{Mass: mass, UseGravity: true}
}

func (r *RigidBody) Kind() Kind   { return KindRigidBody }
func (r *RigidBody) Class() Class { return ClassRigidBody }

// Vehicle is the wheeled-body handle. Like RigidBody it is a thin
// pass-through; it exists in the core for its priority slot.
type Vehicle struct {
	BaseComponent
	WheelCount int
}

func (v *Vehicle) Kind() Kind   { return KindVehicle }
func (v *Vehicle) Class() Class { return ClassVehicle }
