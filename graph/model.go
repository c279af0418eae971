// Package graph defines the normalized, relational output of template
// lowering: flat collections of instances, props, style sources, style
// declarations, and breakpoints, connected by stable string identifiers.
//
// All records are plain serializable data with no behavior attached; they
// are created once during normalization and never mutated.
package graph

// ChildRef type discriminants.
const (
	ChildID         = "id"
	ChildText       = "text"
	ChildExpression = "expression"
)

// ChildRef is one entry in an instance's (or the fragment's top-level)
// ordered children list: a reference to another instance by id, a literal
// text value, or an inline expression.
type ChildRef struct {
	Type        string `json:"type"`
	Value       string `json:"value"`
	Placeholder bool   `json:"placeholder,omitempty"`
}

// Instance is the flattened representation of one concrete template node.
type Instance struct {
	ID        string     `json:"id"`
	Component string     `json:"component"`
	Label     string     `json:"label,omitempty"`
	Children  []ChildRef `json:"children"`
}

// Prop type discriminants.
const (
	PropExpression = "expression"
	PropParameter  = "parameter"
	PropResource   = "resource"
	PropAction     = "action"
	PropAsset      = "asset"
	PropPage       = "page"
	PropString     = "string"
	PropNumber     = "number"
	PropBoolean    = "boolean"
	PropJSON       = "json"
)

// Prop is one typed, named attribute attached to an instance. ID is derived
// from the owning instance id and the attribute name, so re-deriving it for
// the same (instance, name) pair always yields the same value.
type Prop struct {
	ID         string `json:"id"`
	InstanceID string `json:"instanceId"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Value      any    `json:"value"`
}

// ActionValue is the payload of an action prop.
type ActionValue struct {
	Type string   `json:"type"`
	Args []string `json:"args"`
	Code string   `json:"code"`
}

// PageRef is the structured payload of a page prop that targets an instance
// anchor within a page. A page prop without an anchor carries the bare page
// identifier string instead.
type PageRef struct {
	PageID     string `json:"pageId"`
	InstanceID string `json:"instanceId"`
}

// StyleSourceLocal is the only style source type this core produces.
const StyleSourceLocal = "local"

// StyleSource is a style bucket. Local sources are created lazily, one per
// instance that declares inline styles, with id <instanceID>:@style.
type StyleSource struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// StyleSourceSelection links an instance to the ordered style sources that
// apply to it.
type StyleSourceSelection struct {
	InstanceID string   `json:"instanceId"`
	Values     []string `json:"values"`
}

// StyleDecl is one resolved style declaration.
type StyleDecl struct {
	BreakpointID  string `json:"breakpointId"`
	StyleSourceID string `json:"styleSourceId"`
	Property      string `json:"property"`
	Value         any    `json:"value"`
}

// BreakpointBase is the id of the single lazily-created default breakpoint.
const BreakpointBase = "base"

// Breakpoint is a named condition bucket for style declarations.
type Breakpoint struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Asset, DataSource, and Resource are placeholder collections: this core
// never populates them, but the aggregate carries them so downstream
// consumers see a uniform document shape.
type Asset struct {
	ID string `json:"id"`
}

type DataSource struct {
	ID string `json:"id"`
}

type Resource struct {
	ID string `json:"id"`
}

// Fragment is the aggregate normalization result. Collection order is
// first-encountered order from a depth-first, pre-order traversal and is
// deterministic for a given input tree.
type Fragment struct {
	Children              []ChildRef             `json:"children"`
	Instances             []Instance             `json:"instances"`
	Props                 []Prop                 `json:"props"`
	StyleSources          []StyleSource          `json:"styleSources"`
	StyleSourceSelections []StyleSourceSelection `json:"styleSourceSelections"`
	Styles                []StyleDecl            `json:"styles"`
	Breakpoints           []Breakpoint           `json:"breakpoints"`
	Assets                []Asset                `json:"assets"`
	DataSources           []DataSource           `json:"dataSources"`
	Resources             []Resource             `json:"resources"`
}

// NewFragment returns an empty fragment with all collections allocated, so
// the JSON form serializes every collection as [] rather than null.
func NewFragment() *Fragment {
	return &Fragment{
		Children:              []ChildRef{},
		Instances:             []Instance{},
		Props:                 []Prop{},
		StyleSources:          []StyleSource{},
		StyleSourceSelections: []StyleSourceSelection{},
		Styles:                []StyleDecl{},
		Breakpoints:           []Breakpoint{},
		Assets:                []Asset{},
		DataSources:           []DataSource{},
		Resources:             []Resource{},
	}
}
