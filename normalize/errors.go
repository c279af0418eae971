package normalize

import "errors"

// Error types for the normalize package.
var (
	// ErrNilRoot is returned when Normalize is called with a nil root node.
	ErrNilRoot = errors.New("nil root node")

	// ErrDuplicateIdentifier is returned when two distinct nodes carry the
	// same explicit @id attribute. Explicit ids are a caller contract;
	// rejecting the collision up front beats last-write-wins in downstream
	// maps.
	ErrDuplicateIdentifier = errors.New("duplicate explicit identifier")
)
