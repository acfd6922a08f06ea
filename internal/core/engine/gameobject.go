package engine

import (
	"sync"

	"github.com/unitykit/engine/internal/core/events/bus"
	"github.com/unitykit/engine/internal/core/render"
	"github.com/unitykit/engine/pkg/generic"
)

// Tag labels a node for hierarchy-wide lookup. Any string besides the two
// predefined values is a custom tag.
type Tag string

const (
	TagUntagged   Tag = ""
	TagMainCamera Tag = "MainCamera"
)

// Layer is the bitmask inherited by children on assignment.
type Layer uint32

const (
	LayerDefault Layer = 1 << iota
	LayerUI
	LayerIgnoreContacts
)

// GameObject is the concrete hierarchical entity. It owns its components
// (always including exactly one Transform), its children, and exactly one
// render primitive whose attachment and visibility mirror the node's own.
// Parent and scene references are non-owning back-references maintained
// exclusively by AddChild/RemoveChild and scene construction.
//
// Cascade state (didAwake, didStart) is confined to the main loop goroutine;
// component and child storage are independently reader/writer locked so
// unrelated nodes never contend with each other.
type GameObject struct {
	Object

	Tag Tag

	hierMu   sync.RWMutex
	layer    Layer
	active   bool
	parent   *GameObject
	scene    *Scene
	children []*GameObject

	primitive render.Primitive
	transform *Transform

	didAwake bool
	didStart bool
}

// NewGameObject creates an empty node around a fresh render primitive. The
// Transform is attached before the function returns.
func NewGameObject(name string) *GameObject {
	return WrapPrimitive(render.NewNode(name))
}

// WrapPrimitive builds a node around an externally supplied render
// primitive. Geometry on the primitive yields MeshFilter and Renderer
// components; a camera facet yields a Camera component bound to it.
func WrapPrimitive(p render.Primitive) *GameObject {
	g := &GameObject{
		Object: newObject(p.Name()),
		layer:  LayerDefault,
		active: true,

		primitive: p,
	}
	t := newTransform()
	// Trusted path: reserved kinds are attached only here.
	if _, err := g.Object.addComponent(g, t, true); err != nil {
		// Construction owns the object exclusively; a failure here is a bug.
		panic(err)
	}
	g.transform = t
	if geo := p.Geometry(); geo != nil {
		_, _ = g.Object.addComponent(g, newMeshFilter(geo), true)
		_, _ = g.Object.addComponent(g, newRenderer(), true)
	}
	if cam := p.Camera(); cam != nil {
		_, _ = g.Object.addComponent(g, newCamera(cam), true)
	}
	// Loaded content arrives as a primitive subtree; every sub-node gets its
	// own wrapping. The primitives are already linked, so the node list is
	// built directly instead of through AddChild.
	for _, sub := range p.Children() {
		child := WrapPrimitive(sub)
		child.parent = g
		g.children = append(g.children, child)
	}
	return g
}

// WrapPrimitiveChild wraps one named sub-node of the supplied primitive,
// returning an absent result when no such sub-node exists.
func WrapPrimitiveChild(p render.Primitive, name string) (*GameObject, bool) {
	sub := render.FindChild(p, name)
	if sub == nil {
		return nil, false
	}
	return WrapPrimitive(sub), true
}

// Primitive returns the underlying render primitive.
func (g *GameObject) Primitive() render.Primitive { return g.primitive }

// Transform returns the node's transform component.
func (g *GameObject) Transform() *Transform { return g.transform }

// Scene returns the owning scene, or nil for freestanding nodes.
func (g *GameObject) Scene() *Scene {
	g.hierMu.RLock()
	defer g.hierMu.RUnlock()
	return g.scene
}

// Parent returns the parent node, or nil for roots and freestanding nodes.
func (g *GameObject) Parent() *GameObject {
	g.hierMu.RLock()
	defer g.hierMu.RUnlock()
	return g.parent
}

func (g *GameObject) Layer() Layer {
	g.hierMu.RLock()
	defer g.hierMu.RUnlock()
	return g.layer
}

// SetLayer assigns the layer and propagates it to every child.
func (g *GameObject) SetLayer(l Layer) {
	g.hierMu.Lock()
	g.layer = l
	g.hierMu.Unlock()
	for _, c := range g.Children() {
		c.SetLayer(l)
	}
}

// Active reports the local active flag.
func (g *GameObject) Active() bool {
	g.hierMu.RLock()
	defer g.hierMu.RUnlock()
	return g.active
}

// SetActive sets the local flag and mirrors it onto the primitive's
// visibility. No cascading side effects; ActiveInHierarchy is computed.
func (g *GameObject) SetActive(v bool) {
	g.hierMu.Lock()
	g.active = v
	g.hierMu.Unlock()
	if g.primitive != nil {
		g.primitive.SetVisible(v)
	}
}

// ActiveInHierarchy is true only when this node and every ancestor is
// locally active.
func (g *GameObject) ActiveInHierarchy() bool {
	for n := g; n != nil; n = n.Parent() {
		if !n.Active() {
			return false
		}
	}
	return true
}

// Children returns a copy of the child list in storage order.
func (g *GameObject) Children() []*GameObject {
	g.hierMu.RLock()
	defer g.hierMu.RUnlock()
	out := make([]*GameObject, len(g.children))
	copy(out, g.children)
	return out
}

// ChildCount reports the number of direct children.
func (g *GameObject) ChildCount() int {
	g.hierMu.RLock()
	defer g.hierMu.RUnlock()
	return len(g.children)
}

// AddChild appends the node as a child. Adding a node that is already a
// child is a silent no-op (identity is pointer identity, consistent with
// the removal check); adding a node parented elsewhere reparents it, so a
// node never appears in two child lists. Scene membership propagates to
// the child's whole subtree and the attach is mirrored on the render
// primitives. A child added under an already-awoken parent is awoken
// immediately, matching component attach semantics.
func (g *GameObject) AddChild(child *GameObject) {
	if child == nil || child == g {
		return
	}
	if old := child.Parent(); old != nil && old != g {
		old.RemoveChild(child)
	}
	g.hierMu.Lock()
	for _, have := range g.children {
		if have == child {
			g.hierMu.Unlock()
			return
		}
	}
	g.children = append(g.children, child)
	scene := g.scene
	g.hierMu.Unlock()

	child.hierMu.Lock()
	child.parent = g
	child.hierMu.Unlock()
	child.setSceneRecursive(scene)

	if g.primitive != nil && child.primitive != nil {
		g.primitive.AddChild(child.primitive)
	}
	if g.didAwake {
		child.awake()
	}
}

// RemoveChild removes the node from the child list and detaches the
// underlying primitive. No-op when the node is not a child.
func (g *GameObject) RemoveChild(child *GameObject) {
	if child == nil {
		return
	}
	g.hierMu.Lock()
	found := false
	for i, have := range g.children {
		if have == child {
			g.children = append(g.children[:i], g.children[i+1:]...)
			found = true
			break
		}
	}
	g.hierMu.Unlock()
	if !found {
		return
	}
	child.hierMu.Lock()
	child.parent = nil
	child.hierMu.Unlock()
	child.setSceneRecursive(nil)
	if g.primitive != nil && child.primitive != nil {
		g.primitive.RemoveChild(child.primitive)
	}
}

func (g *GameObject) setSceneRecursive(s *Scene) {
	g.hierMu.Lock()
	g.scene = s
	g.hierMu.Unlock()
	for _, c := range g.Children() {
		c.setSceneRecursive(s)
	}
}

// AddComponent attaches a component through the public path: reserved kinds
// are refused, the owner reference is set to this node, the component is
// awoken and (if Toggleable) enabled, and the global cache is updated.
func (g *GameObject) AddComponent(c Component) (Component, error) {
	out, err := g.Object.addComponent(g, c, false)
	if err != nil {
		return nil, err
	}
	g.publish(bus.TypeComponentAttached, out.Kind())
	return out, nil
}

// RemoveComponent detaches the instance; a silent no-op when absent.
func (g *GameObject) RemoveComponent(c Component) {
	if c == nil {
		return
	}
	before := g.ComponentCount()
	g.Object.RemoveComponent(c)
	if g.ComponentCount() != before {
		g.publish(bus.TypeComponentRemoved, c.Kind())
	}
}

// Add attaches a component and returns it with its concrete type intact.
func Add[T Component](g *GameObject, c T) (T, error) {
	var zero T
	if _, err := g.AddComponent(c); err != nil {
		return zero, err
	}
	return c, nil
}

// Destroy removes the node from its parent, destroys every component and
// recursively destroys all children. Destruction is explicit and recursive
// by design: a destroyed subtree holds no live components anywhere in the
// global cache. In-flight callbacks dispatched before destruction may still
// run; they observe absent owners, not faults.
func (g *GameObject) Destroy() {
	if p := g.Parent(); p != nil {
		p.RemoveChild(g)
	}
	g.publish(bus.TypeNodeDestroyed, g.Name())
	for _, c := range g.Children() {
		c.Destroy()
	}
	g.destroyComponents()
	g.transform = nil
	g.setSceneRecursive(nil)
}

// Instantiate deep-clones the node: the render primitive subtree is cloned,
// the name gains a clone marker, tag and layer are copied, and every
// component implementing Instantiable is duplicated with its own copy
// semantics. The clone is freestanding until added to a hierarchy.
func (g *GameObject) Instantiate() *GameObject {
	clone := WrapPrimitive(g.primitive.Clone())
	clone.SetName(g.Name() + " (Clone)")
	clone.Tag = g.Tag
	clone.hierMu.Lock()
	clone.layer = g.Layer()
	clone.hierMu.Unlock()
	for _, c := range g.Components() {
		inst, ok := c.(Instantiable)
		if !ok {
			continue
		}
		copied := inst.CloneComponent()
		if copied == nil {
			continue
		}
		// Reserved kinds were already recreated by WrapPrimitive.
		_, _ = clone.AddComponent(copied)
	}
	return clone
}

// childSnapshots pools the scratch slices used for cascade traversal.
var childSnapshots = generic.NewPool(func() []*GameObject {
	return make([]*GameObject, 0, 8)
})

// forEachChild iterates a stable snapshot of the child list, so structural
// mutation mid-cascade cannot skip, repeat, or recurse into a visit.
func (g *GameObject) forEachChild(fn func(*GameObject)) {
	snap := childSnapshots.Get()[:0]
	g.hierMu.RLock()
	snap = append(snap, g.children...)
	g.hierMu.RUnlock()
	for _, c := range snap {
		fn(c)
	}
	childSnapshots.Put(snap[:0])
}

// awake is one-shot: it awakens every attached component in priority order,
// then every child, depth-first. Calling it again is a no-op.
func (g *GameObject) awake() {
	if g.didAwake {
		return
	}
	g.didAwake = true
	g.forEachComponent(func(c Component) {
		if f := c.flags(); !f.awoken {
			f.awoken = true
			c.Awake()
		}
	})
	g.forEachChild(func(c *GameObject) { c.awake() })
}

// start runs the one-shot start cascade. It requires awake to have run;
// an un-awoken node ignores the call (children attached to a live hierarchy
// are awoken on add, so this only skips genuinely detached nodes).
func (g *GameObject) start() {
	if !g.didAwake || g.didStart {
		return
	}
	g.didStart = true
	g.forEachComponent(startComponent)
	g.forEachChild(func(c *GameObject) { c.start() })
}

func startComponent(c Component) {
	if f := c.flags(); !f.started {
		f.started = true
		c.Start()
	}
}

// preUpdate runs the pre-update pass: enabled components first, children
// after, mirroring the update pass ordering.
func (g *GameObject) preUpdate() {
	if !g.didAwake || !g.didStart {
		return
	}
	if !g.Active() {
		return
	}
	g.forEachComponent(func(c Component) {
		if t, ok := c.(Toggleable); ok && !t.Enabled() {
			return
		}
		c.PreUpdate()
	})
	g.forEachChild(func(c *GameObject) { c.preUpdate() })
}

// update drives the per-frame pass. A node that has not started yet uses
// the cycle to start and does not update until the next one. Components
// that are Toggleable update only while enabled; all others always update.
func (g *GameObject) update() {
	if !g.didAwake {
		return
	}
	if !g.didStart {
		g.start()
		return
	}
	if !g.Active() {
		return
	}
	g.forEachComponent(func(c Component) {
		startComponent(c) // late-attached components start on their first cycle
		if t, ok := c.(Toggleable); ok && !t.Enabled() {
			return
		}
		c.Update()
	})
	g.forEachChild(func(c *GameObject) { c.update() })
}

// fixedUpdate has the same guards as update but never triggers start; a
// node that has not completed awake/start is skipped entirely.
func (g *GameObject) fixedUpdate() {
	if !g.didAwake || !g.didStart {
		return
	}
	if !g.Active() {
		return
	}
	g.forEachComponent(func(c Component) {
		if t, ok := c.(Toggleable); ok && !t.Enabled() {
			return
		}
		c.FixedUpdate()
	})
	g.forEachChild(func(c *GameObject) { c.fixedUpdate() })
}

// GetComponentInChildren searches the children (not this node) depth-first
// for the first component of the concrete kind.
func (g *GameObject) GetComponentInChildren(kind Kind) (Component, bool) {
	for _, child := range g.Children() {
		if c, ok := child.ComponentOfKind(kind); ok {
			return c, true
		}
		if c, ok := child.GetComponentInChildren(kind); ok {
			return c, true
		}
	}
	return nil, false
}

// GetComponentsInChildren collects every matching component in the subtree
// below this node, depth-first.
func (g *GameObject) GetComponentsInChildren(kind Kind) []Component {
	var out []Component
	for _, child := range g.Children() {
		out = append(out, child.ComponentsOfKind(kind)...)
		out = append(out, child.GetComponentsInChildren(kind)...)
	}
	return out
}

// GetInChildren is the polymorphic flavor of GetComponentInChildren.
func GetInChildren[T Component](g *GameObject) (T, bool) {
	for _, child := range g.Children() {
		if t, ok := Get[T](&child.Object); ok {
			return t, true
		}
		if t, ok := GetInChildren[T](child); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

// AllInChildren is the polymorphic flavor of GetComponentsInChildren.
func AllInChildren[T Component](g *GameObject) []T {
	var out []T
	for _, child := range g.Children() {
		out = append(out, All[T](&child.Object)...)
		out = append(out, AllInChildren[T](child)...)
	}
	return out
}

func (g *GameObject) publish(t bus.Type, data any) {
	s := g.Scene()
	if s == nil {
		return
	}
	s.Events().Publish(bus.NewEvent(t, g.Name(), data))
}
