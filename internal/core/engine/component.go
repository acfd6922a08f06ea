package engine

// Kind names a concrete component type. Every concrete kind declares its own
// constant; the global component cache is keyed by it. No runtime reflection
// is involved: a type that does not override Kind registers as KindGeneric.
type Kind string

const (
	KindTransform  Kind = "Transform"
	KindCamera     Kind = "Camera"
	KindLight      Kind = "Light"
	KindMeshFilter Kind = "MeshFilter"
	KindRenderer   Kind = "Renderer"
	KindCanvas     Kind = "Canvas"
	KindRigidBody  Kind = "RigidBody"
	KindCollider   Kind = "Collider"
	KindVehicle    Kind = "Vehicle"
	KindGeneric    Kind = "Generic"
	KindBehaviour  Kind = "Behaviour"
)

// Class is the fixed priority classification of a component kind. Storage
// order is non-decreasing in Class, so a transform always precedes a
// renderer, a rigid body always precedes the collider that queries it, and
// scripted behaviours always run after every engine-level component.
type Class int

const (
	ClassTransform Class = iota
	ClassPriority // cameras, lights and other pre-render kinds
	ClassRenderer
	ClassRigidBody
	ClassCollider
	ClassVehicle
	ClassGeneric
	ClassBehaviour
)

func (c Class) String() string {
	switch c {
	case ClassTransform:
		return "transform"
	case ClassPriority:
		return "priority"
	case ClassRenderer:
		return "renderer"
	case ClassRigidBody:
		return "rigidbody"
	case ClassCollider:
		return "collider"
	case ClassVehicle:
		return "vehicle"
	case ClassGeneric:
		return "generic"
	case ClassBehaviour:
		return "behaviour"
	default:
		return "unknown"
	}
}

// Component is a unit of functionality attached to exactly one GameObject.
// Embed BaseComponent (or Behaviour) to get no-op defaults for everything
// except the methods a concrete kind actually needs.
//
// Lifecycle hooks are dispatched through this interface, so overriding a
// hook on a concrete type is enough; base-initiated callbacks (OnEnable and
// friends) reach the concrete type through the self reference recorded by
// Attach.
type Component interface {
	Kind() Kind
	Class() Class

	// GameObject returns the owning node, or nil when detached. The
	// reference is non-owning; the node exclusively owns its components.
	GameObject() *GameObject

	// Attach wires the component to its owner. Called by the engine during
	// AddComponent; self must be the component's own interface value.
	Attach(self Component, owner *GameObject)
	// Detach clears the owner reference.
	Detach()

	// Lifecycle hooks, all no-ops on BaseComponent.
	Awake()
	Start()
	PreUpdate()
	Update()
	FixedUpdate()
	OnDestroy()

	// flags exposes the one-shot lifecycle guards. Unexported on purpose:
	// embedding BaseComponent is the only way to implement Component, which
	// keeps awake/start exactly-once semantics with the engine.
	flags() *componentFlags
}

// componentFlags tracks the one-shot lifecycle transitions of a component.
// Awake fires once at attach; Start fires once on the first cascade that
// reaches the component afterwards.
type componentFlags struct {
	awoken  bool
	started bool
}

// Toggleable is the enabled/disabled facet of Behaviour-derived components.
// Components that are not Toggleable always update; they have no enabled
// concept at all.
type Toggleable interface {
	Enabled() bool
	SetEnabled(bool)
}

// Instantiable components are duplicated when their node is instantiated.
// Copy semantics are the component's own responsibility.
type Instantiable interface {
	CloneComponent() Component
}

// EnableHandler and DisableHandler receive behaviour state transitions.
type EnableHandler interface{ OnEnable() }
type DisableHandler interface{ OnDisable() }

// reservedKinds may only be attached through the internal construction path:
// they are created automatically when a node is built around a primitive.
var reservedKinds = map[Kind]bool{
	KindTransform:  true,
	KindMeshFilter: true,
	KindRenderer:   true,
	KindCanvas:     true,
}

// BaseComponent supplies the default Component implementation.
type BaseComponent struct {
	self  Component
	owner *GameObject
	state componentFlags
}

func (b *BaseComponent) flags() *componentFlags { return &b.state }

func (b *BaseComponent) Kind() Kind   { return KindGeneric }
func (b *BaseComponent) Class() Class { return ClassGeneric }

func (b *BaseComponent) GameObject() *GameObject { return b.owner }

func (b *BaseComponent) Attach(self Component, owner *GameObject) {
	b.self = self
	b.owner = owner
}

func (b *BaseComponent) Detach() { b.owner = nil }

func (b *BaseComponent) Awake()       {}
func (b *BaseComponent) Start()       {}
func (b *BaseComponent) PreUpdate()   {}
func (b *BaseComponent) Update()      {}
func (b *BaseComponent) FixedUpdate() {}
func (b *BaseComponent) OnDestroy()   {}

// Transform returns the owner's transform, or nil when detached.
func (b *BaseComponent) Transform() *Transform {
	if b.owner == nil {
		return nil
	}
	return b.owner.Transform()
}

// Component forwards a kind query to the owning node. With no owner the
// result is absent, never a fault.
func (b *BaseComponent) Component(kind Kind) (Component, bool) {
	if b.owner == nil {
		return nil, false
	}
	return b.owner.ComponentOfKind(kind)
}

// AddComponent forwards to the owning node. A component with no owner falls
// back to creating a freestanding node to attach to; this mirrors the host
// framework's historical quirk and is not recommended usage.
func (b *BaseComponent) AddComponent(c Component) (Component, error) {
	owner := b.owner
	if owner == nil {
		owner = NewGameObject("")
	}
	return owner.AddComponent(c)
}

// Remove asks the owning node to remove this component. No-op when detached.
func (b *BaseComponent) Remove() {
	if b.owner != nil && b.self != nil {
		b.owner.RemoveComponent(b.self)
	}
}
