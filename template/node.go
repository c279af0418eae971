// Package template defines the declarative input tree consumed by the
// normalizer: element nodes with ordered attributes, text and expression
// leaves, and a closed set of typed attribute values.
//
// Trees are built once by the caller and never mutated by this module.
package template

// FragmentTag marks a transparent grouping node. A fragment produces no
// instance of its own; its children are spliced into the surrounding
// sibling sequence during normalization.
const FragmentTag = "Fragment"

// Reserved attribute names. These are consumed by the normalizer directly
// and never become props.
const (
	AttrID    = "@id"    // explicit instance identifier override
	AttrLabel = "@label" // human-readable instance label
	AttrStyle = "@style" // inline local style declarations
)

// Node is one element of the input tree: a component tag, an ordered
// attribute list, and an ordered child sequence. Attribute order is
// insertion order and is preserved through normalization.
type Node struct {
	Component string
	Attrs     []Attr
	Children  []Child
}

// IsFragment reports whether the node is a transparent fragment.
func (n *Node) IsFragment() bool {
	return n.Component == FragmentTag
}

// Attr is a single named attribute. Value is either one of the typed
// wrapper values declared in value.go, a plain string/number/bool, or any
// other JSON-shaped value (which normalizes to the json prop kind).
type Attr struct {
	Name  string
	Value any
}

// Child is the sealed union of node children: *Node, Text, or Expr.
type Child interface {
	child()
}

func (*Node) child() {}

// Text is a literal string child. Placeholder marks editor placeholder
// text that is distinguished from real content downstream.
type Text struct {
	Value       string
	Placeholder bool
}

func (Text) child() {}

// Expr is an inline expression child evaluated by the consuming runtime.
type Expr struct {
	Code string
}

func (Expr) child() {}
