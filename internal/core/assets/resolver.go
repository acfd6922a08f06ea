// Package assets is the resource-loading collaborator: it resolves logical
// names to files and builds node hierarchies from YAML descriptors. Failure
// to resolve is an absent result, never a fault.
package assets

import (
	"os"
	"path/filepath"
	"strings"
)

// Resolver maps a logical resource name to a file path by probing search
// paths and extensions in order.
type Resolver struct {
	SearchPaths []string
	Extensions  []string
}

// NewResolver probes the given directories for .yaml/.yml/.lua resources.
func NewResolver(searchPaths ...string) *Resolver {
	return &Resolver{
		SearchPaths: searchPaths,
		Extensions:  []string{".yaml", ".yml", ".lua"},
	}
}

// Resolve returns the first existing path for the name, or absence. Names
// that already carry an extension are probed as-is.
func (r *Resolver) Resolve(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	candidates := make([]string, 0, len(r.Extensions)+1)
	if strings.Contains(filepath.Base(name), ".") {
		candidates = append(candidates, name)
	} else {
		for _, ext := range r.Extensions {
			candidates = append(candidates, name+ext)
		}
	}
	for _, dir := range r.SearchPaths {
		for _, c := range candidates {
			path := filepath.Join(dir, c)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, true
			}
		}
	}
	return "", false
}
