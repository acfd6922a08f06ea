package bus

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBus_PublishSubscribe(t *testing.T) {
	t.Run("Delivers To Matching Type Only", func(t *testing.T) {
		b := New()

		var got []Event
		b.Subscribe(TypeComponentAttached, func(e Event) { got = append(got, e) })

		b.Publish(NewEvent(TypeComponentAttached, "node", "RigidBody"))
		b.Publish(NewEvent(TypeNodeDestroyed, "node", nil))

		require.Len(t, got, 1)
		require.Equal(t, TypeComponentAttached, got[0].Type)
		require.Equal(t, "node", got[0].Source)
		require.Equal(t, "RigidBody", got[0].Data)
		require.False(t, got[0].Time.IsZero())
	})

	t.Run("Multiple Subscribers", func(t *testing.T) {
		b := New()
		count := 0
		b.Subscribe(TypeContactBegan, func(Event) { count++ })
		b.Subscribe(TypeContactBegan, func(Event) { count++ })

		b.Publish(NewEvent(TypeContactBegan, "a", nil))
		require.Equal(t, 2, count)
		require.Equal(t, 2, b.SubscriberCount(TypeContactBegan))
	})

	t.Run("Cancel Stops Delivery", func(t *testing.T) {
		b := New()
		count := 0
		sub := b.Subscribe(TypeNodeDestroyed, func(Event) { count++ })
		require.True(t, sub.Active())

		b.Publish(NewEvent(TypeNodeDestroyed, "a", nil))
		sub.Cancel()
		sub.Cancel() // double cancel is safe
		require.False(t, sub.Active())

		b.Publish(NewEvent(TypeNodeDestroyed, "a", nil))
		require.Equal(t, 1, count)
		require.Equal(t, 0, b.SubscriberCount(TypeNodeDestroyed))
	})

	t.Run("Metrics Count Published And Delivered", func(t *testing.T) {
		b := New()
		b.Subscribe(TypeFrameDropped, func(Event) {})

		b.Publish(NewEvent(TypeFrameDropped, "loop", nil))
		b.Publish(NewEvent(TypeComponentRemoved, "node", nil)) // no subscribers

		m := b.GetMetrics()
		require.Equal(t, uint64(2), m.Published)
		require.Equal(t, uint64(1), m.Delivered)
	})

	t.Run("PublishAsync Signals Completion", func(t *testing.T) {
		b := New()
		var hit atomic.Bool
		b.Subscribe(TypeContactEnded, func(Event) { hit.Store(true) })

		<-b.PublishAsync(NewEvent(TypeContactEnded, "a", nil))
		require.True(t, hit.Load())
	})
}

func TestBus_Concurrency(t *testing.T) {
	b := New()
	var delivered atomic.Int64
	b.Subscribe(TypeComponentAttached, func(Event) { delivered.Add(1) })

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				b.Publish(NewEvent(TypeComponentAttached, "n", nil))
			}
		}()
	}
	wg.Wait()
	require.Equal(t, int64(400), delivered.Load())
}

func TestBus_SubscribeDuringPublish(t *testing.T) {
	b := New()
	// A handler that subscribes another handler must not deadlock: delivery
	// happens outside the bus lock.
	b.Subscribe(TypeNodeDestroyed, func(Event) {
		b.Subscribe(TypeNodeDestroyed, func(Event) {})
	})
	require.NotPanics(t, func() {
		b.Publish(NewEvent(TypeNodeDestroyed, "n", nil))
	})
	require.Equal(t, 2, b.SubscriberCount(TypeNodeDestroyed))
}
