// Package physics receives inbound contact events from the physics
// collaborator and fans them out to the component graph. No simulation
// happens here.
package physics

import (
	"go.uber.org/zap"

	"github.com/unitykit/engine/internal/core/engine"
	"github.com/unitykit/engine/internal/core/events/bus"
	"github.com/unitykit/engine/internal/core/loop"
	"github.com/unitykit/engine/internal/core/observability/log"
	"github.com/unitykit/engine/internal/core/render"
)

// Contact describes one contact event between two nodes as reported by the
// host physics world.
type Contact struct {
	A, B    *engine.GameObject
	Point   render.Vector3
	Impulse float64
}

// ContactDispatcher fans contact begin/end events out through the global
// component cache to every live collider attached to either contacted node,
// then to the nodes' behaviours implementing the ContactHandler capability.
// The cache makes this an engine-wide lookup rather than a hierarchy walk.
//
// With a Dispatcher configured the fan-out is redispatched onto the main
// loop (and coalesced under backpressure like every other callback flavor);
// without one it runs inline.
type ContactDispatcher struct {
	cache      *engine.ComponentCache
	dispatcher *loop.Dispatcher
	logger     *log.Logger
}

func NewContactDispatcher(cache *engine.ComponentCache, d *loop.Dispatcher, logger *log.Logger) *ContactDispatcher {
	if cache == nil {
		cache = engine.Cache()
	}
	if logger == nil {
		logger = log.Nop()
	}
	return &ContactDispatcher{cache: cache, dispatcher: d, logger: logger}
}

// ContactBegan delivers a begin event.
func (cd *ContactDispatcher) ContactBegan(c Contact) {
	cd.deliver(c, true)
}

// ContactEnded delivers an end event.
func (cd *ContactDispatcher) ContactEnded(c Contact) {
	cd.deliver(c, false)
}

func (cd *ContactDispatcher) deliver(c Contact, began bool) {
	if c.A == nil || c.B == nil {
		return
	}
	fn := func() { cd.fanOut(c, began) }
	if cd.dispatcher != nil {
		cd.dispatcher.Submit(loop.CallbackContact, fn)
		return
	}
	fn()
}

func (cd *ContactDispatcher) fanOut(c Contact, began bool) {
	for _, col := range engine.Query[engine.Collider](cd.cache) {
		owner := col.GameObject()
		if owner == nil {
			// Destroyed between event and delivery; tolerated.
			continue
		}
		var other *engine.GameObject
		switch owner {
		case c.A:
			other = c.B
		case c.B:
			other = c.A
		default:
			continue
		}
		if owner.Layer()&engine.LayerIgnoreContacts != 0 {
			continue
		}
		if began {
			col.ContactBegan(other)
		} else {
			col.ContactEnded(other)
		}
	}

	cd.notifyHandlers(c.A, c.B, began)
	cd.notifyHandlers(c.B, c.A, began)
	cd.publish(c, began)

	cd.logger.Debug("contact delivered",
		zap.String("a", c.A.Name()),
		zap.String("b", c.B.Name()),
		zap.Bool("began", began))
}

// notifyHandlers forwards the event to the node's own components that opt
// into the ContactHandler capability (scripted behaviours, typically).
func (cd *ContactDispatcher) notifyHandlers(node, other *engine.GameObject, began bool) {
	for _, comp := range node.Components() {
		h, ok := comp.(engine.ContactHandler)
		if !ok {
			continue
		}
		if t, ok := comp.(engine.Toggleable); ok && !t.Enabled() {
			continue
		}
		if began {
			h.OnContactBegan(other)
		} else {
			h.OnContactEnded(other)
		}
	}
}

func (cd *ContactDispatcher) publish(c Contact, began bool) {
	s := c.A.Scene()
	if s == nil {
		return
	}
	t := bus.TypeContactBegan
	if !began {
		t = bus.TypeContactEnded
	}
	s.Events().Publish(bus.NewEvent(t, c.A.Name(), c))
}
