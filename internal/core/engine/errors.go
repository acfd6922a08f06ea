package engine

import "errors"

// Contract violations are refused with a typed error; absence and redundant
// operations are never errors (absent results and silent no-ops instead).
var (
	// ErrReservedKind is returned when a reserved component kind
	// (Transform, MeshFilter, Renderer, Canvas) is attached through the
	// public add path. Reserved kinds exist only through node construction.
	ErrReservedKind = errors.New("engine: reserved component kind cannot be added directly")

	// ErrDuplicateReserved is returned by the internal add path when a
	// second instance of a one-per-node kind is attached.
	ErrDuplicateReserved = errors.New("engine: node already owns a component of this reserved kind")

	// ErrNilComponent is returned when a nil component is attached.
	ErrNilComponent = errors.New("engine: nil component")

	// ErrResourceNotFound is returned by load-time construction paths when
	// the resource collaborator cannot resolve a name.
	ErrResourceNotFound = errors.New("engine: resource not found")
)
