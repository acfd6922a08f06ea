package physics

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/unitykit/engine/internal/core/engine"
	"github.com/unitykit/engine/internal/core/events/bus"
	"github.com/unitykit/engine/internal/core/render"
)

func contactCleanup(t *testing.T) {
	t.Cleanup(func() {
		engine.ResetCache()
		engine.ResetCurrentScene()
	})
	engine.ResetCache()
	engine.ResetCurrentScene()
}

func TestContactDispatcher_FanOut(t *testing.T) {
	t.Run("Both Sides Receive The Other Node", func(t *testing.T) {
		contactCleanup(t)
		a := engine.NewGameObject("a")
		b := engine.NewGameObject("b")

		var aSaw, bSaw *engine.GameObject
		ca := &engine.SphereCollider{Radius: 1}
		ca.OnBegan = func(other *engine.GameObject) { aSaw = other }
		cb := &engine.BoxCollider{Size: render.V3(1, 1, 1)}
		cb.OnBegan = func(other *engine.GameObject) { bSaw = other }

		_, err := a.AddComponent(ca)
		require.NoError(t, err)
		_, err = b.AddComponent(cb)
		require.NoError(t, err)

		cd := NewContactDispatcher(engine.Cache(), nil, nil)
		cd.ContactBegan(Contact{A: a, B: b})

		require.Same(t, b, aSaw)
		require.Same(t, a, bSaw)
	})

	t.Run("End Events Use The Ended Callback", func(t *testing.T) {
		contactCleanup(t)
		a := engine.NewGameObject("a")
		b := engine.NewGameObject("b")

		began, ended := 0, 0
		c := &engine.SphereCollider{Radius: 1}
		c.OnBegan = func(*engine.GameObject) { began++ }
		c.OnEnded = func(*engine.GameObject) { ended++ }
		_, err := a.AddComponent(c)
		require.NoError(t, err)

		cd := NewContactDispatcher(engine.Cache(), nil, nil)
		cd.ContactBegan(Contact{A: a, B: b})
		cd.ContactEnded(Contact{A: a, B: b})

		require.Equal(t, 1, began)
		require.Equal(t, 1, ended)
	})

	t.Run("Uninvolved Colliders Skipped", func(t *testing.T) {
		contactCleanup(t)
		a := engine.NewGameObject("a")
		b := engine.NewGameObject("b")
		bystander := engine.NewGameObject("bystander")

		hit := 0
		c := &engine.SphereCollider{Radius: 1}
		c.OnBegan = func(*engine.GameObject) { hit++ }
		_, err := bystander.AddComponent(c)
		require.NoError(t, err)

		cd := NewContactDispatcher(engine.Cache(), nil, nil)
		cd.ContactBegan(Contact{A: a, B: b})
		require.Equal(t, 0, hit)
	})

	t.Run("Ignore Layer Suppresses Delivery", func(t *testing.T) {
		contactCleanup(t)
		a := engine.NewGameObject("a")
		b := engine.NewGameObject("b")
		a.SetLayer(engine.LayerIgnoreContacts)

		hit := 0
		c := &engine.SphereCollider{Radius: 1}
		c.OnBegan = func(*engine.GameObject) { hit++ }
		_, err := a.AddComponent(c)
		require.NoError(t, err)

		cd := NewContactDispatcher(engine.Cache(), nil, nil)
		cd.ContactBegan(Contact{A: a, B: b})
		require.Equal(t, 0, hit)
	})

	t.Run("Nil Nodes Dropped", func(t *testing.T) {
		contactCleanup(t)
		cd := NewContactDispatcher(engine.Cache(), nil, nil)
		require.NotPanics(t, func() {
			cd.ContactBegan(Contact{A: nil, B: engine.NewGameObject("b")})
			cd.ContactBegan(Contact{})
		})
	})

	t.Run("Destroyed Collider Tolerated", func(t *testing.T) {
		contactCleanup(t)
		a := engine.NewGameObject("a")
		b := engine.NewGameObject("b")

		c := &engine.SphereCollider{Radius: 1}
		_, err := a.AddComponent(c)
		require.NoError(t, err)
		a.RemoveComponent(c)

		cd := NewContactDispatcher(engine.Cache(), nil, nil)
		require.NotPanics(t, func() {
			cd.ContactBegan(Contact{A: a, B: b})
		})
	})
}

// contactScript is a behaviour opting into contact notifications.
type contactScript struct {
	engine.Behaviour
	began []string
	ended []string
}

func (c *contactScript) Kind() engine.Kind { return "ContactScript" }

func (c *contactScript) OnContactBegan(other *engine.GameObject) {
	c.began = append(c.began, other.Name())
}

func (c *contactScript) OnContactEnded(other *engine.GameObject) {
	c.ended = append(c.ended, other.Name())
}

func TestContactDispatcher_HandlerCapability(t *testing.T) {
	t.Run("Behaviours Receive Contacts", func(t *testing.T) {
		contactCleanup(t)
		a := engine.NewGameObject("a")
		b := engine.NewGameObject("b")

		script := &contactScript{}
		_, err := a.AddComponent(script)
		require.NoError(t, err)

		cd := NewContactDispatcher(engine.Cache(), nil, nil)
		cd.ContactBegan(Contact{A: a, B: b})
		cd.ContactEnded(Contact{A: b, B: a})

		require.Equal(t, []string{"b"}, script.began)
		require.Equal(t, []string{"b"}, script.ended)
	})

	t.Run("Disabled Behaviours Skipped", func(t *testing.T) {
		contactCleanup(t)
		a := engine.NewGameObject("a")
		b := engine.NewGameObject("b")

		script := &contactScript{}
		_, err := a.AddComponent(script)
		require.NoError(t, err)
		script.SetEnabled(false)

		cd := NewContactDispatcher(engine.Cache(), nil, nil)
		cd.ContactBegan(Contact{A: a, B: b})
		require.Empty(t, script.began)
	})
}

func TestContactDispatcher_PublishesOnBus(t *testing.T) {
	contactCleanup(t)
	s := engine.NewScene(engine.Options{Name: "world", Mode: engine.Instantiate})

	a := engine.NewGameObject("a")
	b := engine.NewGameObject("b")
	s.AddGameObject(a)
	s.AddGameObject(b)

	var events []bus.Event
	s.Events().Subscribe(bus.TypeContactBegan, func(e bus.Event) { events = append(events, e) })

	cd := NewContactDispatcher(engine.Cache(), nil, nil)
	cd.ContactBegan(Contact{A: a, B: b, Point: render.V3(1, 0, 0), Impulse: 2})

	require.Len(t, events, 1)
	require.Equal(t, "a", events[0].Source)
	contact, ok := events[0].Data.(Contact)
	require.True(t, ok)
	require.Equal(t, 2.0, contact.Impulse)
}
