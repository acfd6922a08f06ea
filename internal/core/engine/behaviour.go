package engine

// Behaviour is a Component with an enabled/disabled state machine. A
// behaviour starts disabled; the owning node's add path enables it, which
// fires OnEnable exactly once. The transition guard is the whole contract:
// a callback fires if and only if the flag actually changes.
type Behaviour struct {
	BaseComponent
	enabled bool
}

var _ Toggleable = (*Behaviour)(nil)

func (b *Behaviour) Kind() Kind   { return KindBehaviour }
func (b *Behaviour) Class() Class { return ClassBehaviour }

func (b *Behaviour) Enabled() bool { return b.enabled }

func (b *Behaviour) SetEnabled(v bool) {
	if v == b.enabled {
		return
	}
	b.enabled = v
	if b.self == nil {
		return
	}
	if v {
		if h, ok := b.self.(EnableHandler); ok {
			h.OnEnable()
		}
	} else {
		if h, ok := b.self.(DisableHandler); ok {
			h.OnDisable()
		}
	}
}
