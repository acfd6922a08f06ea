package server

import (
	"time"

	"github.com/unitykit/engine/internal/core/engine"
	"github.com/unitykit/engine/pkg/sequence"
)

// Snapshot is one serialized view of a scene, sent to inspector clients.
type Snapshot struct {
	Scene      string       `json:"scene"`
	TakenAt    time.Time    `json:"taken_at"`
	Delta      float64      `json:"delta"`
	NodeCount  int          `json:"node_count"`
	CacheSize  int          `json:"cache_size"`
	CacheKinds []string     `json:"cache_kinds"`
	Root       NodeSnapshot `json:"root"`
}

// NodeSnapshot mirrors one node of the hierarchy.
type NodeSnapshot struct {
	Name       string         `json:"name"`
	Tag        string         `json:"tag,omitempty"`
	Layer      uint32         `json:"layer"`
	Active     bool           `json:"active"`
	Components []string       `json:"components,omitempty"`
	Children   []NodeSnapshot `json:"children,omitempty"`
}

// TakeSnapshot walks the scene and the component cache into a Snapshot.
// Structural mutation during the walk is tolerated the same way lifecycle
// cascades tolerate it: each child list is read once.
func TakeSnapshot(s *engine.Scene, cache *engine.ComponentCache) Snapshot {
	snap := Snapshot{
		Scene:      s.Name(),
		TakenAt:    time.Now(),
		Delta:      engine.DeltaTime(),
		CacheSize:  cache.Len(),
		CacheKinds: sequence.Map(sequence.From(cache.Kinds()), kindString).Collect(),
		Root:       snapshotNode(s.Root()),
	}
	engine.Walk(s.Root(), func(*engine.GameObject) bool {
		snap.NodeCount++
		return true
	})
	return snap
}

func kindString(k engine.Kind) string { return string(k) }

func snapshotNode(g *engine.GameObject) NodeSnapshot {
	n := NodeSnapshot{
		Name:   g.Name(),
		Tag:    string(g.Tag),
		Layer:  uint32(g.Layer()),
		Active: g.Active(),
	}
	for _, c := range g.Components() {
		n.Components = append(n.Components, string(c.Kind()))
	}
	for _, child := range g.Children() {
		n.Children = append(n.Children, snapshotNode(child))
	}
	return n
}
