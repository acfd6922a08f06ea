package engine

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/unitykit/engine/pkg/generic"
)

// Object is the base identity unit: a process-unique ID, a display name and
// a thread-safe ordered collection of components. GameObject embeds it; the
// add/remove/query contract defined here is the canonical one.
//
// Locking discipline: reads take the read lock and may proceed concurrently;
// any mutation takes the write lock. Lifecycle hooks and cache registration
// run outside the lock so a hook can re-enter component storage without
// deadlocking, and so the object lock and the cache lock are never held
// together.
type Object struct {
	id uuid.UUID

	mu         sync.RWMutex
	name       string
	components []Component
}

func newObject(name string) Object {
	return Object{id: uuid.New(), name: name}
}

// ID returns the process-unique identifier assigned at construction.
func (o *Object) ID() uuid.UUID { return o.id }

func (o *Object) Name() string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.name
}

func (o *Object) SetName(name string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.name = name
}

// addComponent is the single insertion path. Public callers go through
// GameObject.AddComponent with trusted=false; node construction uses the
// trusted path to wire up reserved kinds (Transform, MeshFilter, Renderer,
// Canvas), which are one-per-node.
func (o *Object) addComponent(owner *GameObject, c Component, trusted bool) (Component, error) {
	if c == nil {
		return nil, ErrNilComponent
	}
	kind := c.Kind()
	if reservedKinds[kind] {
		if !trusted {
			return nil, ErrReservedKind
		}
		if _, ok := o.ComponentOfKind(kind); ok {
			return nil, ErrDuplicateReserved
		}
	}

	o.mu.Lock()
	c.Attach(c, owner)
	o.components = append(o.components, c)
	// Stable: equal classes keep insertion order.
	sort.SliceStable(o.components, func(i, j int) bool {
		return o.components[i].Class() < o.components[j].Class()
	})
	o.mu.Unlock()

	if f := c.flags(); !f.awoken {
		f.awoken = true
		c.Awake()
	}
	if t, ok := c.(Toggleable); ok {
		t.SetEnabled(true)
	}
	Cache().register(c)
	return c, nil
}

// ComponentOfKind returns the first component whose concrete kind matches,
// in storage order. For polymorphic matches use Get.
func (o *Object) ComponentOfKind(kind Kind) (Component, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	for _, c := range o.components {
		if c.Kind() == kind {
			return c, true
		}
	}
	return nil, false
}

// ComponentsOfKind returns every component of the concrete kind, preserving
// storage order.
func (o *Object) ComponentsOfKind(kind Kind) []Component {
	o.mu.RLock()
	defer o.mu.RUnlock()
	var out []Component
	for _, c := range o.components {
		if c.Kind() == kind {
			out = append(out, c)
		}
	}
	return out
}

// Components returns a copy of the component list in storage order.
func (o *Object) Components() []Component {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]Component, len(o.components))
	copy(out, o.components)
	return out
}

// ComponentCount reports the number of attached components.
func (o *Object) ComponentCount() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.components)
}

// RemoveComponent detaches the specific instance (identity match). Removing
// a component that is not attached is a silent no-op.
func (o *Object) RemoveComponent(c Component) {
	if c == nil {
		return
	}
	o.mu.Lock()
	found := false
	for i, have := range o.components {
		if have == c {
			o.components = append(o.components[:i], o.components[i+1:]...)
			found = true
			break
		}
	}
	o.mu.Unlock()
	if !found {
		return
	}
	c.OnDestroy()
	c.Detach()
	Cache().unregister(c)
}

// RemoveComponentsOfKind removes matches until none remain.
func (o *Object) RemoveComponentsOfKind(kind Kind) {
	for {
		c, ok := o.ComponentOfKind(kind)
		if !ok {
			return
		}
		o.RemoveComponent(c)
	}
}

// destroyComponents cascades removal (and OnDestroy) to every component.
// Every removal path ends here or in RemoveComponent, which is what keeps
// the global cache free of stale entries.
func (o *Object) destroyComponents() {
	for {
		o.mu.Lock()
		if len(o.components) == 0 {
			o.mu.Unlock()
			return
		}
		c := o.components[len(o.components)-1]
		o.components = o.components[:len(o.components)-1]
		o.mu.Unlock()

		c.OnDestroy()
		c.Detach()
		Cache().unregister(c)
	}
}

// componentSnapshots pools the scratch slices used for cascade iteration so
// per-frame traversal does not allocate.
var componentSnapshots = generic.NewPool(func() []Component {
	return make([]Component, 0, 8)
})

// forEachComponent iterates a stable snapshot of the component list, so a
// hook that mutates storage mid-cascade cannot skip or duplicate a visit.
func (o *Object) forEachComponent(fn func(Component)) {
	snap := componentSnapshots.Get()[:0]
	o.mu.RLock()
	snap = append(snap, o.components...)
	o.mu.RUnlock()
	for _, c := range snap {
		fn(c)
	}
	componentSnapshots.Put(snap[:0])
}

// Get returns the first attached component assignable to T, in storage
// order. A request for an interface kind matches any concrete kind
// implementing it.
func Get[T Component](o *Object) (T, bool) {
	var zero T
	o.mu.RLock()
	defer o.mu.RUnlock()
	for _, c := range o.components {
		if t, ok := c.(T); ok {
			return t, true
		}
	}
	return zero, false
}

// All returns every attached component assignable to T, in storage order.
func All[T Component](o *Object) []T {
	o.mu.RLock()
	defer o.mu.RUnlock()
	var out []T
	for _, c := range o.components {
		if t, ok := c.(T); ok {
			out = append(out, t)
		}
	}
	return out
}
