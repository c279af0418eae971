// Package normalize lowers a declarative template tree into the flat
// relational graph model: one deterministic, single-pass, depth-first
// traversal that assigns stable identifiers, splices fragments away,
// classifies attribute values into typed props, and wires inline styles to
// a lazily-created default breakpoint.
//
// The pass holds no state across calls; normalizing independent trees
// concurrently is safe.
package normalize

import (
	"fmt"
	"strconv"

	"github.com/stencil-xyz/go-stencil/graph"
	"github.com/stencil-xyz/go-stencil/template"
)

// Normalize lowers the tree rooted at root into a fragment.
//
// The root is conceptually wrapped in one implicit fragment: a fragment
// root contributes its flattened children as the fragment's top-level
// children list, while a concrete root produces its own instance and the
// top-level list is exactly one id reference to it.
//
// Explicit @id attributes are validated for uniqueness before lowering;
// a collision returns ErrDuplicateIdentifier.
func Normalize(root *template.Node) (*graph.Fragment, error) {
	if root == nil {
		return nil, ErrNilRoot
	}
	claimed, err := checkExplicitIDs(root)
	if err != nil {
		return nil, err
	}

	p := &pass{
		ids:     make(map[*template.Node]string),
		claimed: claimed,
		frag:    graph.NewFragment(),
	}
	if root.IsFragment() {
		p.frag.Children = append(p.frag.Children, p.splice(root)...)
	} else {
		p.frag.Children = append(p.frag.Children, p.lower(root))
	}
	return p.frag, nil
}

// NormalizeMaps lowers the tree and returns the identifier-keyed projection
// of its instance and prop collections.
func NormalizeMaps(root *template.Node) (graph.Maps, error) {
	frag, err := Normalize(root)
	if err != nil {
		return graph.Maps{}, err
	}
	return frag.Maps(), nil
}

// pass is the per-invocation state: the synthesized-id counter, the
// identity-keyed identifier cache, the explicit ids claimed anywhere in the
// tree, and the fragment under construction.
type pass struct {
	next    int
	ids     map[*template.Node]string
	claimed map[string]bool
	frag    *graph.Fragment
	base    bool
}

// identifierFor returns the identifier for a node, honoring a previously
// recorded assignment, then an explicit @id attribute, then synthesizing
// the next decimal counter value. Counter values already claimed by an
// explicit id elsewhere in the tree are skipped so synthesized ids never
// collide with caller-supplied ones. The assignment is recorded so the
// same node yields the same identifier for the rest of the traversal.
func (p *pass) identifierFor(n *template.Node) string {
	if id, ok := p.ids[n]; ok {
		return id
	}
	id := explicitID(n)
	if id == "" {
		for p.claimed[strconv.Itoa(p.next)] {
			p.next++
		}
		id = strconv.Itoa(p.next)
		p.next++
	}
	p.ids[n] = id
	return id
}

// explicitID returns the node's @id attribute value, or "".
func explicitID(n *template.Node) string {
	for _, a := range n.Attrs {
		if a.Name == template.AttrID {
			if s, ok := a.Value.(string); ok {
				return s
			}
		}
	}
	return ""
}

// lower materializes one concrete node: instance, props, styles, children.
// The instance slot is appended before descending so the instances
// collection stays in pre-order. A node reached through a second reference
// was already materialized and only contributes its reference again,
// keeping instance ids unique.
func (p *pass) lower(n *template.Node) graph.ChildRef {
	if id, ok := p.ids[n]; ok {
		return graph.ChildRef{Type: graph.ChildID, Value: id}
	}
	id := p.identifierFor(n)

	idx := len(p.frag.Instances)
	p.frag.Instances = append(p.frag.Instances, graph.Instance{
		ID:        id,
		Component: n.Component,
		Children:  []graph.ChildRef{},
	})

	for _, a := range n.Attrs {
		switch a.Name {
		case template.AttrID:
			// consumed by identifierFor
		case template.AttrLabel:
			if s, ok := a.Value.(string); ok {
				p.frag.Instances[idx].Label = s
			}
		case template.AttrStyle:
			p.attachStyles(id, a.Value)
		default:
			p.frag.Props = append(p.frag.Props, classifyProp(id, a.Name, a.Value))
		}
	}

	p.frag.Instances[idx].Children = p.lowerChildren(n.Children)
	return graph.ChildRef{Type: graph.ChildID, Value: id}
}

// lowerChildren lowers a concrete node's child sequence in order. Fragment
// children are spliced in place; text and expression leaves become literal
// child references.
func (p *pass) lowerChildren(children []template.Child) []graph.ChildRef {
	refs := make([]graph.ChildRef, 0, len(children))
	for _, c := range children {
		switch c := c.(type) {
		case *template.Node:
			if c.IsFragment() {
				refs = append(refs, p.splice(c)...)
			} else {
				refs = append(refs, p.lower(c))
			}
		case template.Text:
			refs = append(refs, graph.ChildRef{
				Type:        graph.ChildText,
				Value:       c.Value,
				Placeholder: c.Placeholder,
			})
		case template.Expr:
			refs = append(refs, graph.ChildRef{
				Type:  graph.ChildExpression,
				Value: c.Code,
			})
		}
	}
	return refs
}

// splice flattens a fragment into the reference list it contributes to its
// enclosing sequence. Fragments do not wrap text or expression leaves into
// instances, so those children are dropped; nested fragments flatten
// recursively, leaving no trace of the grouping.
func (p *pass) splice(n *template.Node) []graph.ChildRef {
	var refs []graph.ChildRef
	for _, c := range n.Children {
		child, ok := c.(*template.Node)
		if !ok {
			continue
		}
		if child.IsFragment() {
			refs = append(refs, p.splice(child)...)
		} else {
			refs = append(refs, p.lower(child))
		}
	}
	return refs
}

// attachStyles wires a node's inline style declarations: one local style
// source per declaring instance, one selection, and one declaration per
// entry, all on the single lazily-created base breakpoint.
func (p *pass) attachStyles(instanceID string, v any) {
	decls, ok := v.([]template.StyleDecl)
	if !ok || len(decls) == 0 {
		return
	}

	sourceID := instanceID + ":" + template.AttrStyle
	p.frag.StyleSources = append(p.frag.StyleSources, graph.StyleSource{
		ID:   sourceID,
		Type: graph.StyleSourceLocal,
	})
	p.frag.StyleSourceSelections = append(p.frag.StyleSourceSelections, graph.StyleSourceSelection{
		InstanceID: instanceID,
		Values:     []string{sourceID},
	})

	bp := p.breakpoint()
	for _, d := range decls {
		p.frag.Styles = append(p.frag.Styles, graph.StyleDecl{
			BreakpointID:  bp,
			StyleSourceID: sourceID,
			Property:      d.Property,
			Value:         d.Value,
		})
	}
}

// breakpoint returns the default breakpoint id, creating the single base
// breakpoint on first use. No styles declared means no breakpoint created.
func (p *pass) breakpoint() string {
	if !p.base {
		p.frag.Breakpoints = append(p.frag.Breakpoints, graph.Breakpoint{ID: graph.BreakpointBase})
		p.base = true
	}
	return graph.BreakpointBase
}

// checkExplicitIDs walks the tree, rejects two distinct nodes carrying the
// same explicit identifier, and returns the set of all explicit ids so the
// synthesized counter can steer around them. The same node reached through
// multiple references is a single identity and is allowed.
func checkExplicitIDs(root *template.Node) (map[string]bool, error) {
	seen := make(map[*template.Node]bool)
	owners := make(map[string]*template.Node)
	claimed := make(map[string]bool)

	var walk func(n *template.Node) error
	walk = func(n *template.Node) error {
		if seen[n] {
			return nil
		}
		seen[n] = true
		if id := explicitID(n); id != "" {
			if other, ok := owners[id]; ok && other != n {
				return fmt.Errorf("%w: %q", ErrDuplicateIdentifier, id)
			}
			owners[id] = n
			claimed[id] = true
		}
		for _, c := range n.Children {
			if child, ok := c.(*template.Node); ok {
				if err := walk(child); err != nil {
					return err
				}
			}
		}
		return nil
	}
	if err := walk(root); err != nil {
		return nil, err
	}
	return claimed, nil
}
