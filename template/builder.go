package template

// Construction helpers for building template trees in code.
//
// Example:
//
//	tree := template.FragmentOf(
//	    template.New("Box", template.ID("root"), template.Label("Root")).
//	        Append(
//	            template.New("Text").Append(template.TextOf("Hello")),
//	            template.New("Box", template.A("data-x", 3)),
//	        ),
//	)

// New creates an element node with the given component tag and attributes.
func New(component string, attrs ...Attr) *Node {
	return &Node{Component: component, Attrs: attrs}
}

// Fragment creates an empty transparent grouping node.
func Fragment() *Node {
	return &Node{Component: FragmentTag}
}

// FragmentOf creates a transparent grouping node wrapping the given children.
func FragmentOf(children ...Child) *Node {
	return &Node{Component: FragmentTag, Children: children}
}

// Append adds children to the node and returns it for chaining.
func (n *Node) Append(children ...Child) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// TextOf creates a literal text child.
func TextOf(s string) Text {
	return Text{Value: s}
}

// PlaceholderOf creates a placeholder text child.
func PlaceholderOf(s string) Text {
	return Text{Value: s, Placeholder: true}
}

// ExprOf creates an inline expression child.
func ExprOf(code string) Expr {
	return Expr{Code: code}
}

// A creates an attribute with an arbitrary value.
func A(name string, value any) Attr {
	return Attr{Name: name, Value: value}
}

// ID creates the reserved explicit-identifier attribute.
func ID(id string) Attr {
	return Attr{Name: AttrID, Value: id}
}

// Label creates the reserved label attribute.
func Label(label string) Attr {
	return Attr{Name: AttrLabel, Value: label}
}

// Styles creates the reserved local-style attribute from an ordered list of
// declarations.
func Styles(decls ...StyleDecl) Attr {
	return Attr{Name: AttrStyle, Value: decls}
}

// Style creates one style declaration for use with Styles.
func Style(property string, value any) StyleDecl {
	return StyleDecl{Property: property, Value: value}
}
