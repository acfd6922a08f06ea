// Package server exposes a running scene over HTTP for inspection. The
// inspector is read-only debug tooling: it observes the hierarchy and the
// component cache, it never mutates them.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/unitykit/engine/internal/core/engine"
	"github.com/unitykit/engine/internal/core/events/bus"
	"github.com/unitykit/engine/internal/core/observability/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// Inspector serves scene snapshots over /snapshot and /cache and streams
// periodic snapshots plus live engine events to websocket clients on /ws.
type Inspector struct {
	scene    *engine.Scene
	cache    *engine.ComponentCache
	logger   *log.Logger
	interval time.Duration

	server  *http.Server
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
	subs    []*bus.Subscription
}

func NewInspector(scene *engine.Scene, cache *engine.ComponentCache, interval time.Duration, logger *log.Logger) *Inspector {
	if cache == nil {
		cache = engine.Cache()
	}
	if interval <= 0 {
		interval = time.Second
	}
	if logger == nil {
		logger = log.Nop()
	}
	return &Inspector{
		scene:    scene,
		cache:    cache,
		logger:   logger,
		interval: interval,
		clients:  make(map[*websocket.Conn]bool),
	}
}

// Start begins serving on addr and launches the broadcast loop. It returns
// once the listener goroutine is running; the loop stops when ctx ends.
func (i *Inspector) Start(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", i.handleWS)
	mux.HandleFunc("/snapshot", i.handleSnapshot)
	mux.HandleFunc("/cache", i.handleCache)

	i.server = &http.Server{Addr: addr, Handler: mux}

	i.subscribe()

	go func() {
		if err := i.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			i.logger.Error("inspector listen failed", zap.Error(err))
		}
	}()
	go i.broadcastLoop(ctx)

	i.logger.Info("inspector serving", zap.String("addr", addr))
	return nil
}

// Stop shuts the listener down and drops every client.
func (i *Inspector) Stop(ctx context.Context) error {
	for _, sub := range i.subs {
		sub.Cancel()
	}
	i.mu.Lock()
	for conn := range i.clients {
		_ = conn.Close()
	}
	i.clients = make(map[*websocket.Conn]bool)
	i.mu.Unlock()
	if i.server == nil {
		return nil
	}
	return i.server.Shutdown(ctx)
}

// subscribe forwards structural engine events to connected clients so the
// inspector view reacts between snapshot ticks.
func (i *Inspector) subscribe() {
	events := i.scene.Events()
	forward := func(e bus.Event) {
		i.broadcast(map[string]any{
			"kind":   "event",
			"type":   string(e.Type),
			"source": e.Source,
			"time":   e.Time,
		})
	}
	for _, t := range []bus.Type{
		bus.TypeComponentAttached,
		bus.TypeComponentRemoved,
		bus.TypeNodeDestroyed,
		bus.TypeContactBegan,
		bus.TypeContactEnded,
	} {
		i.subs = append(i.subs, events.Subscribe(t, forward))
	}
}

func (i *Inspector) broadcastLoop(ctx context.Context) {
	ticker := time.NewTicker(i.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if i.clientCount() == 0 {
				continue
			}
			i.broadcast(map[string]any{
				"kind":     "snapshot",
				"snapshot": TakeSnapshot(i.scene, i.cache),
			})
		}
	}
}

func (i *Inspector) clientCount() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.clients)
}

func (i *Inspector) broadcast(payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		i.logger.Warn("inspector encode failed", zap.Error(err))
		return
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	for conn := range i.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			delete(i.clients, conn)
			_ = conn.Close()
		}
	}
}

func (i *Inspector) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		i.logger.Warn("inspector upgrade failed", zap.Error(err))
		return
	}
	i.mu.Lock()
	i.clients[conn] = true
	i.mu.Unlock()
	i.logger.Debug("inspector client connected", zap.String("remote", conn.RemoteAddr().String()))

	// Reads are drained only to notice disconnects.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				i.mu.Lock()
				delete(i.clients, conn)
				i.mu.Unlock()
				_ = conn.Close()
				return
			}
		}
	}()
}

func (i *Inspector) handleSnapshot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, TakeSnapshot(i.scene, i.cache), i.logger)
}

func (i *Inspector) handleCache(w http.ResponseWriter, _ *http.Request) {
	kinds := i.cache.Kinds()
	out := make(map[string]int, len(kinds))
	for _, k := range kinds {
		out[string(k)] = len(i.cache.QueryKind(k))
	}
	writeJSON(w, map[string]any{
		"total": i.cache.Len(),
		"kinds": out,
	}, i.logger)
}

func writeJSON(w http.ResponseWriter, v any, logger *log.Logger) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("inspector write failed", zap.Error(err))
	}
}
