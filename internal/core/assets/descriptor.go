package assets

// YAML descriptor schema for nodes and scenes. Reserved component kinds
// never appear here: transforms come with every node, mesh/renderer/camera
// components fall out of the geometry and camera flags.

// NodeDescriptor describes one node and its subtree.
type NodeDescriptor struct {
	Name     string                `yaml:"name"`
	Tag      string                `yaml:"tag,omitempty"`
	Layer    uint32                `yaml:"layer,omitempty"`
	Active   *bool                 `yaml:"active,omitempty"`
	Geometry bool                  `yaml:"geometry,omitempty"`
	Camera   bool                  `yaml:"camera,omitempty"`
	Position []float64             `yaml:"position,omitempty"`
	Children []*NodeDescriptor     `yaml:"children,omitempty"`
	Units    []ComponentDescriptor `yaml:"components,omitempty"`
}

// ComponentDescriptor describes one attachable component.
type ComponentDescriptor struct {
	Kind    string         `yaml:"kind"`
	Enabled *bool          `yaml:"enabled,omitempty"`
	Script  string         `yaml:"script,omitempty"`
	Params  map[string]any `yaml:"params,omitempty"`
}

// SceneDescriptor describes a whole scene file.
type SceneDescriptor struct {
	Name  string            `yaml:"name"`
	Nodes []*NodeDescriptor `yaml:"nodes"`
}

// Float reads a numeric parameter with a default. YAML numbers decode as
// int or float64 depending on their spelling.
func (c ComponentDescriptor) Float(key string, def float64) float64 {
	switch v := c.Params[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return def
	}
}
