// Package script hosts Lua-backed behaviours. A LuaBehaviour owns one VM
// whose global functions become the behaviour's lifecycle hooks. VM access
// is confined to the main loop goroutine, like every other lifecycle hook.
package script

import (
	"fmt"
	"os"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/unitykit/engine/internal/core/engine"
	"github.com/unitykit/engine/internal/core/observability/log"
)

// Hook function names a script may define. Missing hooks are skipped.
const (
	fnAwake       = "awake"
	fnStart       = "start"
	fnUpdate      = "update"
	fnFixedUpdate = "fixed_update"
	fnOnEnable    = "on_enable"
	fnOnDisable   = "on_disable"
	fnOnDestroy   = "on_destroy"
	fnOnContact   = "on_contact"
)

// LuaBehaviour runs game logic written in Lua. update and fixed_update
// receive the current frame delta in seconds; on_contact receives the other
// node's name.
type LuaBehaviour struct {
	engine.Behaviour
	name   string
	vm     *lua.LState
	logger *log.Logger
	closed bool
}

var (
	_ engine.EnableHandler  = (*LuaBehaviour)(nil)
	_ engine.DisableHandler = (*LuaBehaviour)(nil)
	_ engine.ContactHandler = (*LuaBehaviour)(nil)
)

// New compiles the chunk and keeps the VM warm. The script's global
// functions are looked up per hook, so a script may install them lazily.
func New(name, source string, logger *log.Logger) (*LuaBehaviour, error) {
	if logger == nil {
		logger = log.Nop()
	}
	vm := lua.NewState()
	b := &LuaBehaviour{name: name, vm: vm, logger: logger}
	b.bindAPI()
	if err := vm.DoString(source); err != nil {
		vm.Close()
		return nil, fmt.Errorf("script %q: %w", name, err)
	}
	return b, nil
}

// FromFile loads the chunk from disk.
func FromFile(name, path string, logger *log.Logger) (*LuaBehaviour, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script %q: %w", name, err)
	}
	return New(name, string(src), logger)
}

func (b *LuaBehaviour) Kind() engine.Kind { return "LuaBehaviour" }

// ScriptName identifies the loaded chunk.
func (b *LuaBehaviour) ScriptName() string { return b.name }

// bindAPI installs the host functions scripts may call.
func (b *LuaBehaviour) bindAPI() {
	b.vm.SetGlobal("log", b.vm.NewFunction(func(L *lua.LState) int {
		b.logger.Info("lua", zap.String("script", b.name), zap.String("msg", L.CheckString(1)))
		return 0
	}))
	b.vm.SetGlobal("object_name", b.vm.NewFunction(func(L *lua.LState) int {
		name := ""
		if g := b.GameObject(); g != nil {
			name = g.Name()
		}
		L.Push(lua.LString(name))
		return 1
	}))
	b.vm.SetGlobal("set_active", b.vm.NewFunction(func(L *lua.LState) int {
		if g := b.GameObject(); g != nil {
			g.SetActive(L.CheckBool(1))
		}
		return 0
	}))
}

func (b *LuaBehaviour) call(fn string, args ...lua.LValue) {
	if b.closed {
		return
	}
	val := b.vm.GetGlobal(fn)
	if val.Type() != lua.LTFunction {
		return
	}
	err := b.vm.CallByParam(lua.P{Fn: val, NRet: 0, Protect: true}, args...)
	if err != nil {
		b.logger.Warn("lua hook failed",
			zap.String("script", b.name),
			zap.String("hook", fn),
			zap.Error(err))
	}
}

func (b *LuaBehaviour) Awake() { b.call(fnAwake) }
func (b *LuaBehaviour) Start() { b.call(fnStart) }

func (b *LuaBehaviour) Update() {
	b.call(fnUpdate, lua.LNumber(engine.DeltaTime()))
}

func (b *LuaBehaviour) FixedUpdate() {
	b.call(fnFixedUpdate, lua.LNumber(engine.DeltaTime()))
}

func (b *LuaBehaviour) OnEnable()  { b.call(fnOnEnable) }
func (b *LuaBehaviour) OnDisable() { b.call(fnOnDisable) }

func (b *LuaBehaviour) OnContactBegan(other *engine.GameObject) {
	b.call(fnOnContact, lua.LString(other.Name()), lua.LTrue)
}

func (b *LuaBehaviour) OnContactEnded(other *engine.GameObject) {
	b.call(fnOnContact, lua.LString(other.Name()), lua.LFalse)
}

func (b *LuaBehaviour) OnDestroy() {
	b.call(fnOnDestroy)
	b.closed = true
	b.vm.Close()
}
