package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/unitykit/engine/internal/core/render"
)

func sceneCleanup(t *testing.T) {
	t.Cleanup(func() {
		ResetCache()
		ResetCurrentScene()
		ResetClock()
	})
	ResetCache()
	ResetCurrentScene()
	ResetClock()
}

func TestScene_ClockBootstrap(t *testing.T) {
	t.Run("First Update Establishes Baseline", func(t *testing.T) {
		sceneCleanup(t)
		s := NewScene(Options{Name: "clock", Mode: Instantiate})

		p := &probe{}
		holder := NewGameObject("holder")
		_, err := holder.AddComponent(p)
		require.NoError(t, err)
		s.AddGameObject(holder)

		t0 := time.Now()
		s.Update(t0)
		require.Equal(t, 1, p.starts, "first cycle starts")
		require.Equal(t, 0, p.updates, "first cycle never updates")
		require.Zero(t, DeltaTime())

		s.Update(t0.Add(16 * time.Millisecond))
		require.Equal(t, 1, p.updates)
		require.InDelta(t, 0.016, DeltaTime(), 1e-9)

		s.Update(t0.Add(48 * time.Millisecond))
		require.Equal(t, 2, p.updates)
		require.InDelta(t, 0.032, DeltaTime(), 1e-9)
	})

	t.Run("FixedUpdate Waits For Clock", func(t *testing.T) {
		sceneCleanup(t)
		s := NewScene(Options{Name: "clock", Mode: Instantiate})

		p := &fixedProbe{}
		holder := NewGameObject("holder")
		_, err := holder.AddComponent(p)
		require.NoError(t, err)
		s.AddGameObject(holder)

		t0 := time.Now()
		s.FixedUpdate(t0)
		require.Equal(t, 0, p.ticks, "no fixed pass before clock init")

		s.Update(t0)
		s.FixedUpdate(t0.Add(20 * time.Millisecond))
		require.Equal(t, 1, p.ticks)
	})

	t.Run("Clock Counters Accumulate", func(t *testing.T) {
		sceneCleanup(t)
		s := NewScene(Options{Name: "clock", Mode: Instantiate})

		t0 := time.Now()
		s.Update(t0)
		s.Update(t0.Add(10 * time.Millisecond))
		s.Update(t0.Add(30 * time.Millisecond))

		require.Equal(t, int64(2), Clock().FrameCount())
		require.Equal(t, 30*time.Millisecond, Clock().TotalTime())
	})
}

type fixedProbe struct {
	BaseComponent
	ticks int
}

func (f *fixedProbe) FixedUpdate() { f.ticks++ }

type preProbe struct {
	BaseComponent
	passes int
}

func (p *preProbe) PreUpdate() { p.passes++ }

func TestScene_PreUpdate(t *testing.T) {
	sceneCleanup(t)
	s := NewScene(Options{Name: "pre", Mode: Instantiate})

	p := &preProbe{}
	holder := NewGameObject("holder")
	_, err := holder.AddComponent(p)
	require.NoError(t, err)
	s.AddGameObject(holder)

	s.PreUpdate()
	require.Equal(t, 0, p.passes, "no pre-update before the clock baseline")

	t0 := time.Now()
	s.Update(t0)
	s.PreUpdate()
	require.Equal(t, 1, p.passes)

	s.Update(t0.Add(16 * time.Millisecond))
	require.Equal(t, 1, p.passes, "update pass does not run pre-update")
}

func TestScene_DeferStart(t *testing.T) {
	t.Run("Deferred Start Consumes Second Cycle", func(t *testing.T) {
		sceneCleanup(t)
		s := NewScene(Options{Name: "deferred", Mode: Instantiate, DeferStart: true})

		p := &probe{}
		holder := NewGameObject("holder")
		_, err := holder.AddComponent(p)
		require.NoError(t, err)
		s.AddGameObject(holder)

		t0 := time.Now()
		s.Update(t0)
		require.Equal(t, 0, p.starts, "cycle one only records the clock")

		s.Update(t0.Add(16 * time.Millisecond))
		require.Equal(t, 1, p.starts)
		require.Equal(t, 0, p.updates, "start cycle does not update")

		s.Update(t0.Add(32 * time.Millisecond))
		require.Equal(t, 1, p.updates)
	})

	t.Run("Default Starts On First Cycle", func(t *testing.T) {
		sceneCleanup(t)
		s := NewScene(Options{Name: "eager", Mode: Instantiate})

		p := &probe{}
		holder := NewGameObject("holder")
		_, err := holder.AddComponent(p)
		require.NoError(t, err)
		s.AddGameObject(holder)

		s.Update(time.Now())
		require.Equal(t, 1, p.starts)
	})
}

func TestScene_CameraGuarantee(t *testing.T) {
	t.Run("Synthesized When Missing", func(t *testing.T) {
		sceneCleanup(t)
		s := NewScene(Options{Name: "bare", Mode: Instantiate})

		cam, ok := s.FindByTag(TagMainCamera)
		require.True(t, ok)
		require.Equal(t, "Main Camera", cam.Name())
		require.Equal(t, render.V3(0, 10, 10), cam.Transform().Position())
		_, ok = cam.ComponentOfKind(KindCamera)
		require.True(t, ok)
	})

	t.Run("Loaded Camera Reused", func(t *testing.T) {
		sceneCleanup(t)
		root := render.NewNode("world")
		root.AddChild(render.NewCameraNode("Shipped Camera"))

		s := NewScene(Options{Name: "shipped", Mode: Instantiate, Root: root})

		// The untagged shipped camera is tagged and reused; no default is
		// synthesized beside it.
		cam, ok := s.FindByTag(TagMainCamera)
		require.True(t, ok)
		require.Equal(t, "Shipped Camera", cam.Name())

		cams := 0
		Walk(s.Root(), func(g *GameObject) bool {
			if _, ok := g.ComponentOfKind(KindCamera); ok {
				cams++
			}
			return true
		})
		require.Equal(t, 1, cams)
	})

	t.Run("Late Loaded Camera Supersedes Default", func(t *testing.T) {
		sceneCleanup(t)
		s := NewScene(Options{Name: "late", Mode: Instantiate})

		shipped := WrapPrimitive(render.NewCameraNode("Shipped Camera"))
		shipped.Tag = TagMainCamera
		s.AddGameObject(shipped)
		s.EnsureCamera()

		cams := s.FindAllByTag(TagMainCamera)
		require.Len(t, cams, 1)
		require.Same(t, shipped, cams[0])
	})

	t.Run("Re-Assert Without Content Is Stable", func(t *testing.T) {
		sceneCleanup(t)
		s := NewScene(Options{Name: "stable", Mode: Instantiate})
		s.EnsureCamera()
		s.EnsureCamera()
		require.Len(t, s.FindAllByTag(TagMainCamera), 1)
	})
}

func TestScene_SingletonSemantics(t *testing.T) {
	t.Run("Singleton Claims Current Slot", func(t *testing.T) {
		sceneCleanup(t)
		require.Nil(t, CurrentScene())

		first := NewScene(Options{Name: "first", Mode: Singleton})
		require.Same(t, first, CurrentScene())

		// Last writer wins, never rejected.
		second := NewScene(Options{Name: "second", Mode: Singleton})
		require.Same(t, second, CurrentScene())
	})

	t.Run("Instantiate Never Claims", func(t *testing.T) {
		sceneCleanup(t)
		keeper := NewScene(Options{Name: "keeper", Mode: Singleton})
		NewScene(Options{Name: "floater", Mode: Instantiate})
		require.Same(t, keeper, CurrentScene())
	})

	t.Run("Concurrent Instantiate Scenes Are Independent", func(t *testing.T) {
		sceneCleanup(t)
		a := NewScene(Options{Name: "a", Mode: Instantiate})
		b := NewScene(Options{Name: "b", Mode: Instantiate})

		ga := NewGameObject("only-in-a")
		a.AddGameObject(ga)

		_, ok := b.Find("only-in-a")
		require.False(t, ok)
		require.NotEqual(t, a.ID(), b.ID())
	})
}

func TestScene_ClearScene(t *testing.T) {
	sceneCleanup(t)
	s := NewScene(Options{Name: "clearable", Mode: Instantiate})

	g := NewGameObject("content")
	_, err := g.AddComponent(NewRigidBody(1))
	require.NoError(t, err)
	s.AddGameObject(g)

	before := s.Root().ChildCount()
	require.Positive(t, before)

	s.ClearScene()
	require.Equal(t, 0, s.Root().ChildCount())
	require.Empty(t, Cache().QueryKind(KindRigidBody))

	// The root survives and accepts new content.
	s.AddGameObject(NewGameObject("fresh"))
	require.Equal(t, 1, s.Root().ChildCount())
}

func TestScene_AwakensLoadedContent(t *testing.T) {
	sceneCleanup(t)
	root := render.NewNode("world")
	root.AddChild(render.NewNode("shipped"))

	s := NewScene(Options{Name: "loaded", Mode: Instantiate, Root: root})

	shipped, ok := s.Find("shipped")
	require.True(t, ok)
	require.Same(t, s, shipped.Scene())

	// Content added after construction is awoken by the add path.
	late := NewGameObject("late")
	p := &probe{}
	_, err := late.AddComponent(p)
	require.NoError(t, err)
	s.AddGameObject(late)
	require.Equal(t, 1, p.awakes)
}
