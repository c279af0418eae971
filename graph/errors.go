package graph

import "errors"

// Error types for fragment validation.
var (
	// ErrDuplicateInstance is returned when two instances share an id.
	ErrDuplicateInstance = errors.New("duplicate instance id")

	// ErrDanglingChild is returned when an id child reference does not
	// resolve to an instance in the fragment.
	ErrDanglingChild = errors.New("child reference to unknown instance")

	// ErrDanglingProp is returned when a prop references an unknown instance.
	ErrDanglingProp = errors.New("prop references unknown instance")

	// ErrDanglingSelection is returned when a style source selection
	// references an unknown instance or style source.
	ErrDanglingSelection = errors.New("style source selection reference unresolved")

	// ErrDanglingStyle is returned when a style declaration references an
	// unknown style source or breakpoint.
	ErrDanglingStyle = errors.New("style declaration reference unresolved")
)
