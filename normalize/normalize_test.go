package normalize

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stencil-xyz/go-stencil/graph"
	"github.com/stencil-xyz/go-stencil/template"
)

// TestNormalize covers the walker: identifier assignment, pre-order
// collection ordering, labels, and top-level children handling.
func TestNormalize(t *testing.T) {
	t.Run("concrete root produces one top-level id reference", func(t *testing.T) {
		root := template.New("Box", template.ID("root"))
		frag, err := Normalize(root)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(frag.Children) != 1 {
			t.Fatalf("expected 1 top-level child, got %d", len(frag.Children))
		}
		want := graph.ChildRef{Type: graph.ChildID, Value: "root"}
		if frag.Children[0] != want {
			t.Errorf("expected %+v, got %+v", want, frag.Children[0])
		}
		if len(frag.Instances) != 1 {
			t.Fatalf("expected 1 instance, got %d", len(frag.Instances))
		}
		if frag.Instances[0].Component != "Box" {
			t.Errorf("expected component Box, got %q", frag.Instances[0].Component)
		}
	})

	t.Run("fragment root splices children to top level", func(t *testing.T) {
		root := template.FragmentOf(
			template.New("Box"),
			template.New("Text"),
		)
		frag, err := Normalize(root)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(frag.Children) != 2 {
			t.Fatalf("expected 2 top-level children, got %d", len(frag.Children))
		}
		if len(frag.Instances) != 2 {
			t.Fatalf("expected 2 instances, got %d", len(frag.Instances))
		}
	})

	t.Run("synthesized identifiers count up from zero", func(t *testing.T) {
		root := template.FragmentOf(
			template.New("A"),
			template.New("B"),
			template.New("C"),
		)
		frag, err := Normalize(root)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i, want := range []string{"0", "1", "2"} {
			if frag.Instances[i].ID != want {
				t.Errorf("instance %d: expected id %q, got %q", i, want, frag.Instances[i].ID)
			}
		}
	})

	t.Run("explicit id honored verbatim", func(t *testing.T) {
		root := template.FragmentOf(
			template.New("A"),
			template.New("B", template.ID("custom")),
			template.New("C"),
		)
		frag, err := Normalize(root)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if frag.Instances[1].ID != "custom" {
			t.Errorf("expected id custom, got %q", frag.Instances[1].ID)
		}
		// Counter is unaffected by explicit ids.
		if frag.Instances[2].ID != "1" {
			t.Errorf("expected id 1, got %q", frag.Instances[2].ID)
		}
	})

	t.Run("label attribute sets instance label", func(t *testing.T) {
		root := template.New("Box", template.Label("Hero section"))
		frag, err := Normalize(root)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if frag.Instances[0].Label != "Hero section" {
			t.Errorf("expected label, got %q", frag.Instances[0].Label)
		}
	})

	t.Run("instances are in pre-order", func(t *testing.T) {
		root := template.New("Root", template.ID("r")).Append(
			template.New("Left", template.ID("l")).Append(
				template.New("LeftChild", template.ID("lc")),
			),
			template.New("Right", template.ID("rt")),
		)
		frag, err := Normalize(root)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var order []string
		for _, inst := range frag.Instances {
			order = append(order, inst.ID)
		}
		want := []string{"r", "l", "lc", "rt"}
		if !reflect.DeepEqual(order, want) {
			t.Errorf("expected order %v, got %v", want, order)
		}
	})

	t.Run("text and expression children become literal references", func(t *testing.T) {
		root := template.New("Text").Append(
			template.TextOf("Hello"),
			template.PlaceholderOf("Type here"),
			template.ExprOf("count + 1"),
		)
		frag, err := Normalize(root)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		children := frag.Instances[0].Children
		want := []graph.ChildRef{
			{Type: graph.ChildText, Value: "Hello"},
			{Type: graph.ChildText, Value: "Type here", Placeholder: true},
			{Type: graph.ChildExpression, Value: "count + 1"},
		}
		if !reflect.DeepEqual(children, want) {
			t.Errorf("expected %+v, got %+v", want, children)
		}
	})

	t.Run("nil root", func(t *testing.T) {
		if _, err := Normalize(nil); !errors.Is(err, ErrNilRoot) {
			t.Errorf("expected ErrNilRoot, got %v", err)
		}
	})

	t.Run("empty placeholder collections are non-nil", func(t *testing.T) {
		frag, err := Normalize(template.New("Box"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if frag.Assets == nil || frag.DataSources == nil || frag.Resources == nil {
			t.Error("placeholder collections must be allocated")
		}
		if len(frag.Breakpoints) != 0 {
			t.Errorf("no styles declared, expected no breakpoints, got %d", len(frag.Breakpoints))
		}
	})
}

// TestFragmentTransparency verifies that nested fragments flatten away with
// no residual trace.
func TestFragmentTransparency(t *testing.T) {
	t.Run("nested fragments splice in place", func(t *testing.T) {
		nested := template.FragmentOf(
			template.New("A", template.ID("a")),
			template.FragmentOf(
				template.New("B", template.ID("b")),
				template.New("C", template.ID("c")),
			),
			template.New("D", template.ID("d")),
		)
		flat := template.FragmentOf(
			template.New("A", template.ID("a")),
			template.New("B", template.ID("b")),
			template.New("C", template.ID("c")),
			template.New("D", template.ID("d")),
		)

		nestedFrag, err := Normalize(nested)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		flatFrag, err := Normalize(flat)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !reflect.DeepEqual(nestedFrag.Children, flatFrag.Children) {
			t.Errorf("sibling order differs: %+v vs %+v", nestedFrag.Children, flatFrag.Children)
		}
		if len(nestedFrag.Instances) != len(flatFrag.Instances) {
			t.Errorf("instance count differs: %d vs %d", len(nestedFrag.Instances), len(flatFrag.Instances))
		}
		for _, inst := range nestedFrag.Instances {
			if inst.Component == template.FragmentTag {
				t.Error("fragment marker leaked into instances")
			}
		}
	})

	t.Run("fragment inside a concrete node splices into its children", func(t *testing.T) {
		root := template.New("Box", template.ID("box")).Append(
			template.New("A", template.ID("a")),
			template.FragmentOf(
				template.New("B", template.ID("b")),
				template.New("C", template.ID("c")),
			),
			template.New("D", template.ID("d")),
		)
		frag, err := Normalize(root)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var order []string
		for _, c := range frag.Instances[0].Children {
			order = append(order, c.Value)
		}
		want := []string{"a", "b", "c", "d"}
		if !reflect.DeepEqual(order, want) {
			t.Errorf("expected children %v, got %v", want, order)
		}
	})

	t.Run("fragments drop text and expression leaves", func(t *testing.T) {
		root := template.FragmentOf(
			template.TextOf("stray"),
			template.New("Box", template.ID("box")),
			template.ExprOf("x"),
		)
		frag, err := Normalize(root)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(frag.Children) != 1 {
			t.Fatalf("expected 1 top-level child, got %d", len(frag.Children))
		}
		if frag.Children[0].Value != "box" {
			t.Errorf("expected box reference, got %+v", frag.Children[0])
		}
	})
}

// TestIdentityStability verifies identifier idempotence across repeated
// traversals and repeated references to the same node.
func TestIdentityStability(t *testing.T) {
	t.Run("same tree normalizes identically twice", func(t *testing.T) {
		root := template.FragmentOf(
			template.New("Box", template.A("data-x", 3)).Append(
				template.New("Text").Append(template.TextOf("hi")),
			),
			template.New("Box", template.Styles(template.Style("color", "red"))),
		)
		first, err := Normalize(root)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := Normalize(root)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Error("normalizing the same tree twice produced different fragments")
		}
		if first.CID() != second.CID() {
			t.Error("CID differs across identical traversals")
		}
	})

	t.Run("shared node keeps one identifier", func(t *testing.T) {
		shared := template.New("Shared")
		root := template.New("Root").Append(shared, shared)
		frag, err := Normalize(root)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		children := frag.Instances[0].Children
		if len(children) != 2 {
			t.Fatalf("expected 2 children, got %d", len(children))
		}
		if children[0].Value != children[1].Value {
			t.Errorf("same node yielded different identifiers: %q vs %q", children[0].Value, children[1].Value)
		}
	})

	t.Run("no state leaks between invocations", func(t *testing.T) {
		frag1, _ := Normalize(template.New("A"))
		frag2, _ := Normalize(template.New("B"))
		if frag1.Instances[0].ID != "0" || frag2.Instances[0].ID != "0" {
			t.Errorf("counter leaked: %q, %q", frag1.Instances[0].ID, frag2.Instances[0].ID)
		}
	})
}

// TestDuplicateIdentifier verifies the up-front explicit-id collision check.
func TestDuplicateIdentifier(t *testing.T) {
	t.Run("two distinct nodes with the same explicit id", func(t *testing.T) {
		root := template.FragmentOf(
			template.New("A", template.ID("dup")),
			template.New("B", template.ID("dup")),
		)
		_, err := Normalize(root)
		if !errors.Is(err, ErrDuplicateIdentifier) {
			t.Errorf("expected ErrDuplicateIdentifier, got %v", err)
		}
	})

	t.Run("same node referenced twice is allowed", func(t *testing.T) {
		shared := template.New("Shared", template.ID("s"))
		root := template.New("Root").Append(shared, shared)
		if _, err := Normalize(root); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("counter skips an explicit numeric id", func(t *testing.T) {
		root := template.FragmentOf(
			template.New("A", template.ID("1")),
			template.New("B"),
			template.New("C"),
		)
		frag, err := Normalize(root)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var order []string
		for _, inst := range frag.Instances {
			order = append(order, inst.ID)
		}
		want := []string{"1", "0", "2"}
		if !reflect.DeepEqual(order, want) {
			t.Errorf("expected ids %v, got %v", want, order)
		}
		if err := frag.Validate(); err != nil {
			t.Errorf("fragment failed validation: %v", err)
		}
	})

	t.Run("explicit numeric id later in the tree never collides", func(t *testing.T) {
		root := template.FragmentOf(
			template.New("A"),
			template.New("B", template.ID("0")),
		)
		frag, err := Normalize(root)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		seen := make(map[string]bool)
		for _, inst := range frag.Instances {
			if seen[inst.ID] {
				t.Errorf("duplicate instance id %q", inst.ID)
			}
			seen[inst.ID] = true
		}
		if frag.Instances[1].ID != "0" {
			t.Errorf("explicit id not honored: got %q", frag.Instances[1].ID)
		}
		if err := frag.Validate(); err != nil {
			t.Errorf("fragment failed validation: %v", err)
		}
	})
}

// TestReferentialIntegrity verifies that every id child reference resolves
// to exactly one produced instance.
func TestReferentialIntegrity(t *testing.T) {
	root := template.FragmentOf(
		template.New("Box").Append(
			template.New("Text").Append(template.TextOf("a")),
			template.FragmentOf(template.New("Image")),
		),
		template.New("List").Append(
			template.New("ListItem"),
			template.New("ListItem"),
		),
	)
	frag, err := Normalize(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := frag.Validate(); err != nil {
		t.Errorf("fragment failed validation: %v", err)
	}
}

// TestStyleAttachment verifies the lazy style source, selection, and
// breakpoint wiring.
func TestStyleAttachment(t *testing.T) {
	t.Run("two declarations share one source and one breakpoint", func(t *testing.T) {
		root := template.New("Box", template.ID("box"), template.Styles(
			template.Style("color", "red"),
			template.Style("margin", "8px"),
		))
		frag, err := Normalize(root)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(frag.StyleSources) != 1 {
			t.Fatalf("expected 1 style source, got %d", len(frag.StyleSources))
		}
		source := frag.StyleSources[0]
		if source.ID != "box:@style" {
			t.Errorf("expected source id box:@style, got %q", source.ID)
		}
		if source.Type != graph.StyleSourceLocal {
			t.Errorf("expected local source, got %q", source.Type)
		}

		if len(frag.StyleSourceSelections) != 1 {
			t.Fatalf("expected 1 selection, got %d", len(frag.StyleSourceSelections))
		}
		sel := frag.StyleSourceSelections[0]
		if sel.InstanceID != "box" || len(sel.Values) != 1 || sel.Values[0] != source.ID {
			t.Errorf("unexpected selection %+v", sel)
		}

		if len(frag.Styles) != 2 {
			t.Fatalf("expected 2 declarations, got %d", len(frag.Styles))
		}
		for _, d := range frag.Styles {
			if d.BreakpointID != graph.BreakpointBase {
				t.Errorf("expected base breakpoint, got %q", d.BreakpointID)
			}
			if d.StyleSourceID != source.ID {
				t.Errorf("expected source %q, got %q", source.ID, d.StyleSourceID)
			}
		}

		if len(frag.Breakpoints) != 1 {
			t.Fatalf("expected 1 breakpoint, got %d", len(frag.Breakpoints))
		}
		if frag.Breakpoints[0].ID != graph.BreakpointBase || frag.Breakpoints[0].Label != "" {
			t.Errorf("unexpected breakpoint %+v", frag.Breakpoints[0])
		}
	})

	t.Run("breakpoint is reused across styled nodes", func(t *testing.T) {
		root := template.FragmentOf(
			template.New("A", template.Styles(template.Style("color", "red"))),
			template.New("B", template.Styles(template.Style("color", "blue"))),
		)
		frag, err := Normalize(root)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(frag.Breakpoints) != 1 {
			t.Errorf("expected 1 breakpoint regardless of styled node count, got %d", len(frag.Breakpoints))
		}
		if len(frag.StyleSources) != 2 {
			t.Errorf("expected one source per styled node, got %d", len(frag.StyleSources))
		}
	})

	t.Run("no styles means no breakpoint and no sources", func(t *testing.T) {
		frag, err := Normalize(template.New("Box", template.A("data-x", 3)))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(frag.Breakpoints) != 0 || len(frag.StyleSources) != 0 || len(frag.Styles) != 0 {
			t.Errorf("unexpected style records: %d breakpoints, %d sources, %d decls",
				len(frag.Breakpoints), len(frag.StyleSources), len(frag.Styles))
		}
	})
}

// TestNormalizeExample is the worked end-to-end example: a fragment holding
// a labelled Box with a Text child and a numeric-prop Box child.
func TestNormalizeExample(t *testing.T) {
	root := template.FragmentOf(
		template.New("Box", template.ID("root"), template.Label("Root")).Append(
			template.New("Text").Append(template.TextOf("Hello")),
			template.New("Box", template.A("data-x", 3)),
		),
	)
	frag, err := Normalize(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(frag.Instances) != 3 {
		t.Fatalf("expected 3 instances, got %d", len(frag.Instances))
	}
	rootInst := frag.Instances[0]
	if rootInst.ID != "root" || rootInst.Component != "Box" || rootInst.Label != "Root" {
		t.Errorf("unexpected root instance %+v", rootInst)
	}
	if len(rootInst.Children) != 2 {
		t.Fatalf("expected 2 children on root, got %d", len(rootInst.Children))
	}

	if len(frag.Props) != 1 {
		t.Fatalf("expected 1 prop, got %d", len(frag.Props))
	}
	p := frag.Props[0]
	if p.Name != "data-x" || p.Type != graph.PropNumber || p.Value != 3.0 {
		t.Errorf("unexpected prop %+v", p)
	}
	if p.InstanceID != rootInst.Children[1].Value {
		t.Errorf("prop attached to %q, expected %q", p.InstanceID, rootInst.Children[1].Value)
	}

	if len(frag.Breakpoints) != 0 || len(frag.StyleSources) != 0 {
		t.Error("no styles declared, expected empty style collections")
	}
}

// TestNormalizeMaps verifies the keyed-map projection entry point.
func TestNormalizeMaps(t *testing.T) {
	root := template.New("Box", template.ID("box"), template.A("title", "hi"))
	m, err := NormalizeMaps(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := m.Instances["box"]; !ok {
		t.Error("instance box missing from projection")
	}
	p, ok := m.Props["box:title"]
	if !ok {
		t.Fatal("prop box:title missing from projection")
	}
	if p.Type != graph.PropString || p.Value != "hi" {
		t.Errorf("unexpected prop %+v", p)
	}
}
