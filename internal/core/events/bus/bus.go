// Package bus is the engine's in-process pub/sub channel. Scenes publish
// lifecycle traffic (component attach/detach, node destruction, physics
// contacts) and consumers like the inspector subscribe.
//
// Delivery is synchronous: Publish runs handlers in the caller goroutine, so
// handlers must be quick or offload. All methods are safe for concurrent use.
package bus

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Type is the routing key handlers subscribe by.
type Type string

// Engine event types.
const (
	TypeComponentAttached Type = "component.attached"
	TypeComponentRemoved  Type = "component.removed"
	TypeNodeDestroyed     Type = "node.destroyed"
	TypeContactBegan      Type = "physics.contact.began"
	TypeContactEnded      Type = "physics.contact.ended"
	TypeFrameDropped      Type = "loop.frame.dropped"
)

// Event is an immutable message. Treat values as read-only.
type Event struct {
	Type   Type
	Source string
	Time   time.Time
	Data   any
}

// NewEvent stamps an event with the current time.
func NewEvent(t Type, source string, data any) Event {
	return Event{Type: t, Source: source, Time: time.Now(), Data: data}
}

// Handler is invoked once per delivered event.
type Handler func(Event)

// Subscription is the cancellation handle for a registered handler.
// Cancelling twice is safe.
type Subscription struct {
	id        string
	eventType Type
	active    bool
	cancel    func()
	mu        sync.Mutex
}

func (s *Subscription) ID() string      { return s.id }
func (s *Subscription) EventType() Type { return s.eventType }

func (s *Subscription) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *Subscription) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return
	}
	s.active = false
	s.cancel()
}

// Metrics is a best-effort snapshot of bus counters.
type Metrics struct {
	Published uint64
	Delivered uint64
}

// Bus is the in-memory implementation.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Type]map[string]Handler
	metrics  Metrics
}

func New() *Bus {
	return &Bus{handlers: make(map[Type]map[string]Handler)}
}

// Subscribe registers a handler for one event type.
func (b *Bus) Subscribe(t Type, h Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.handlers[t] == nil {
		b.handlers[t] = make(map[string]Handler)
	}
	id := uuid.NewString()
	b.handlers[t][id] = h
	sub := &Subscription{id: id, eventType: t, active: true}
	sub.cancel = func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if m, ok := b.handlers[t]; ok {
			delete(m, id)
		}
	}
	return sub
}

// Publish delivers the event synchronously to every active subscriber of its
// type. Events with no subscribers are counted and dropped.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	var snapshot []Handler
	if m := b.handlers[e.Type]; len(m) > 0 {
		snapshot = make([]Handler, 0, len(m))
		for _, h := range m {
			snapshot = append(snapshot, h)
		}
	}
	b.mu.RUnlock()

	b.mu.Lock()
	b.metrics.Published++
	b.metrics.Delivered += uint64(len(snapshot))
	b.mu.Unlock()

	for _, h := range snapshot {
		h(e)
	}
}

// PublishAsync delivers in a separate goroutine and closes the returned
// channel when delivery completes.
func (b *Bus) PublishAsync(e Event) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		b.Publish(e)
		close(done)
	}()
	return done
}

// GetMetrics returns a snapshot of the counters.
func (b *Bus) GetMetrics() Metrics {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.metrics
}

// SubscriberCount reports active handlers for a type.
func (b *Bus) SubscriberCount(t Type) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[t])
}
