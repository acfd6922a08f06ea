package loop

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDispatcher_Latch(t *testing.T) {
	t.Run("Runs Submitted Callback", func(t *testing.T) {
		d := NewDispatcher(nil)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go d.Run(ctx)

		done := make(chan struct{})
		ok := d.Submit(CallbackUpdate, func() { close(done) })
		require.True(t, ok)

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("callback never ran")
		}
	})

	t.Run("Drops While Previous In Flight", func(t *testing.T) {
		d := NewDispatcher(nil)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go d.Run(ctx)

		block := make(chan struct{})
		running := make(chan struct{})
		require.True(t, d.Submit(CallbackUpdate, func() {
			close(running)
			<-block
		}))
		<-running

		// Same kind coalesces away while the first has not finished.
		require.False(t, d.Submit(CallbackUpdate, func() {}))
		require.Equal(t, uint64(1), d.Dropped(CallbackUpdate))

		// Other kinds are unaffected.
		other := make(chan struct{})
		require.True(t, d.Submit(CallbackFixedUpdate, func() { close(other) }))

		close(block)
		select {
		case <-other:
		case <-time.After(time.Second):
			t.Fatal("independent kind was blocked")
		}
	})

	t.Run("Latch Clears After Completion", func(t *testing.T) {
		d := NewDispatcher(nil)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go d.Run(ctx)

		// The latch clears shortly after a callback returns, so each
		// submission retries until it lands.
		var ran atomic.Int64
		for i := 0; i < 5; i++ {
			done := make(chan struct{})
			require.Eventually(t, func() bool {
				return d.Submit(CallbackContact, func() {
					ran.Add(1)
					close(done)
				})
			}, time.Second, time.Millisecond)
			<-done
		}
		require.Equal(t, int64(5), ran.Load())
	})
}

func TestCallback_String(t *testing.T) {
	require.Equal(t, "preUpdate", CallbackPreUpdate.String())
	require.Equal(t, "update", CallbackUpdate.String())
	require.Equal(t, "fixedUpdate", CallbackFixedUpdate.String())
	require.Equal(t, "contact", CallbackContact.String())
}
