package template

// The typed attribute values. Each wrapper carries the payload for one prop
// kind; the normalizer dispatches on the concrete type. Plain string, number,
// and bool attribute values need no wrapper, and any value outside this set
// normalizes to the opaque json prop kind.

// Expression is a live expression evaluated against the consuming runtime's
// variable scope.
type Expression struct {
	Code string
}

// Parameter binds an attribute to a named parameter exposed by the
// surrounding component.
type Parameter struct {
	Name string
}

// Resource references an external data resource by identifier.
type Resource struct {
	ID string
}

// Action is an event-handler descriptor: a discriminant, the argument names
// the handler code receives, and the code body itself.
type Action struct {
	Type string
	Args []string
	Code string
}

// Asset references an uploaded asset by identifier.
type Asset struct {
	ID string
}

// Page is a navigation target: a page identifier plus an optional instance
// anchor within that page. With an empty Instance the prop value is the bare
// page identifier.
type Page struct {
	ID       string
	Instance string
}

// StyleDecl is one inline style declaration attached via the reserved
// @style attribute.
type StyleDecl struct {
	Property string
	Value    any
}
