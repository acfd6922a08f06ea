package engine

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/unitykit/engine/internal/core/events/bus"
	"github.com/unitykit/engine/internal/core/observability/log"
	"github.com/unitykit/engine/internal/core/render"
)

// AllocationMode governs whether a scene claims the process-wide "current"
// slot.
type AllocationMode int

const (
	// Singleton scenes become the current scene; assigning a new singleton
	// supersedes the previous one (last writer wins, never rejected).
	Singleton AllocationMode = iota
	// Instantiate scenes are independently owned and never claim the
	// current slot, allowing multiple concurrent scenes.
	Instantiate
)

// Options configures scene construction.
type Options struct {
	Name string
	Mode AllocationMode

	// DeferStart delays the root start cascade by one update cycle,
	// mirroring host engines whose first frame callback only establishes
	// the clock baseline. Off by default.
	DeferStart bool

	// Root optionally supplies loaded content as the scene's root
	// primitive. When nil an empty root node is created.
	Root render.Primitive

	Logger *log.Logger
}

// Scene owns the root node and the frame clock bootstrap. The driving loop
// calls Update/FixedUpdate once per tick with a monotonically non-decreasing
// timestamp; the scene derives delta time from consecutive calls.
type Scene struct {
	id     uuid.UUID
	name   string
	mode   AllocationMode
	defer1 bool

	root       *GameObject
	defaultCam *GameObject
	events     *bus.Bus
	logger     *log.Logger

	mu          sync.Mutex
	clockInit   bool
	rootStarted bool
	lastTime    time.Time
}

// NewScene builds a scene around the given (or a fresh) root primitive,
// propagates scene membership through any initial hierarchy, awakens it and
// guarantees exactly one MainCamera-tagged node exists. Singleton mode
// installs the scene as the process-wide current scene.
func NewScene(opts Options) *Scene {
	if opts.Name == "" {
		opts.Name = "Scene"
	}
	if opts.Logger == nil {
		opts.Logger = log.Nop()
	}
	rootPrim := opts.Root
	if rootPrim == nil {
		rootPrim = render.NewNode(opts.Name)
	}
	s := &Scene{
		id:     uuid.New(),
		name:   opts.Name,
		mode:   opts.Mode,
		defer1: opts.DeferStart,
		events: bus.New(),
		logger: opts.Logger,
	}
	s.root = WrapPrimitive(rootPrim)
	s.root.setSceneRecursive(s)
	s.EnsureCamera()
	s.root.awake()
	if opts.Mode == Singleton {
		setCurrentScene(s)
	}
	s.logger.Debug("scene created",
		zap.String("scene", s.name),
		zap.Bool("singleton", opts.Mode == Singleton))
	return s
}

// EnsureCamera re-asserts the one-camera invariant: exactly one
// MainCamera-tagged node exists. A camera shipped in loaded content wins —
// an untagged content camera is tagged and reused, and a previously
// synthesized default is removed in its favor. Only when the hierarchy
// carries no camera at all is a default synthesized at a fixed offset
// looking at the origin. Construction calls this once; loaders call it
// again after adding their content nodes.
func (s *Scene) EnsureCamera() {
	for _, g := range FindAllByTag(s.root, TagMainCamera) {
		if g != s.defaultCam {
			s.dropDefaultCamera()
			return
		}
	}
	if cam, ok := s.contentCamera(); ok {
		s.dropDefaultCamera()
		cam.Tag = TagMainCamera
		return
	}
	if s.defaultCam != nil {
		return
	}
	cam := WrapPrimitive(render.NewCameraNode("Main Camera"))
	cam.Tag = TagMainCamera
	cam.Transform().SetPosition(render.V3(0, 10, 10))
	cam.Transform().LookAt(render.Vector3{})
	s.root.AddChild(cam)
	s.defaultCam = cam
	s.logger.Debug("default camera synthesized", zap.String("scene", s.name))
}

func (s *Scene) dropDefaultCamera() {
	if s.defaultCam == nil {
		return
	}
	s.defaultCam.Destroy()
	s.defaultCam = nil
	s.logger.Debug("default camera superseded by loaded camera",
		zap.String("scene", s.name))
}

// contentCamera finds the first camera-bearing node that is not the
// synthesized default.
func (s *Scene) contentCamera() (*GameObject, bool) {
	var found *GameObject
	Walk(s.root, func(g *GameObject) bool {
		if g == s.defaultCam {
			return true
		}
		if _, ok := g.ComponentOfKind(KindCamera); ok {
			found = g
			return false
		}
		return true
	})
	return found, found != nil
}

func (s *Scene) ID() uuid.UUID { return s.id }
func (s *Scene) Name() string  { return s.name }

// Root returns the root node owning the scene's entire graph.
func (s *Scene) Root() *GameObject { return s.root }

// Events returns the scene's event bus.
func (s *Scene) Events() *bus.Bus { return s.events }

// AddGameObject attaches a node (and its subtree) under the root.
func (s *Scene) AddGameObject(g *GameObject) {
	s.root.AddChild(g)
}

// Find returns the first node in the hierarchy with the given name.
func (s *Scene) Find(name string) (*GameObject, bool) {
	return FindByName(s.root, name)
}

// FindByTag returns the first node in the hierarchy carrying the tag.
func (s *Scene) FindByTag(tag Tag) (*GameObject, bool) {
	return FindByTag(s.root, tag)
}

// FindAllByTag returns every node in the hierarchy carrying the tag.
func (s *Scene) FindAllByTag(tag Tag) []*GameObject {
	return FindAllByTag(s.root, tag)
}

// Update advances the scene one frame. The first call only records the
// timestamp and runs the root start cascade (deferred one extra cycle when
// DeferStart is set); every later call computes the elapsed delta, publishes
// it on the process clock and runs the update cascade. The pre-update
// cascade is its own pass, see PreUpdate.
func (s *Scene) Update(at time.Time) {
	s.mu.Lock()
	if !s.clockInit {
		s.clockInit = true
		s.lastTime = at
		deferStart := s.defer1
		if !deferStart {
			s.rootStarted = true
		}
		s.mu.Unlock()
		if !deferStart {
			s.root.start()
		}
		return
	}
	delta := at.Sub(s.lastTime)
	s.lastTime = at
	started := s.rootStarted
	if !started {
		s.rootStarted = true
	}
	s.mu.Unlock()

	if !started {
		// Deferred start consumes this cycle; updates begin next frame.
		s.root.start()
		return
	}
	Clock().publish(delta)
	s.root.update()
}

// PreUpdate runs the pre-update cascade. It is a no-op until the first
// Update call has established the clock baseline and the root has started.
func (s *Scene) PreUpdate() {
	s.mu.Lock()
	ready := s.clockInit && s.rootStarted
	s.mu.Unlock()
	if !ready {
		return
	}
	s.root.preUpdate()
}

// FixedUpdate forwards the physics-cadence pass to the root, but only after
// the clock has been initialized by the first Update call.
func (s *Scene) FixedUpdate(at time.Time) {
	s.mu.Lock()
	ready := s.clockInit
	s.mu.Unlock()
	if !ready {
		return
	}
	s.root.fixedUpdate()
}

// ClearScene destroys every direct child of the root; the root itself
// survives.
func (s *Scene) ClearScene() {
	for _, c := range s.root.Children() {
		c.Destroy()
	}
}

// The process-wide current scene. Singleton-mode construction overwrites
// it; Instantiate-mode scenes never touch it.
var (
	currentSceneMu sync.RWMutex
	currentScene   *Scene
)

func setCurrentScene(s *Scene) {
	currentSceneMu.Lock()
	defer currentSceneMu.Unlock()
	currentScene = s
}

// CurrentScene returns the process-wide current scene, or nil when no
// singleton scene has been constructed.
func CurrentScene() *Scene {
	currentSceneMu.RLock()
	defer currentSceneMu.RUnlock()
	return currentScene
}

// ResetCurrentScene clears the current-scene slot. Intended for test
// teardown.
func ResetCurrentScene() {
	setCurrentScene(nil)
}
