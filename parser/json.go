// Package parser handles JSON import/export for template trees and
// normalized fragments.
package parser

import (
	"encoding/json"
	"fmt"

	"github.com/stencil-xyz/go-stencil/graph"
	"github.com/stencil-xyz/go-stencil/template"
)

// FromJSON parses a template tree from JSON bytes. The document format:
//
//	{
//	  "component": "Box",
//	  "attrs": [
//	    {"name": "@id", "value": "root"},
//	    {"name": "data-x", "value": 3},
//	    {"name": "onClick", "value": {"$action": {"type": "execute", "args": ["event"], "code": "..."}}},
//	    {"name": "@style", "value": [{"property": "color", "value": "red"}]}
//	  ],
//	  "children": [
//	    "Hello",
//	    {"$text": "hint", "placeholder": true},
//	    {"$expr": "count + 1"},
//	    {"component": "Box", "children": []}
//	  ]
//	}
//
// Attributes are an ordered array because attribute order is significant to
// normalization. Typed values use $-keyed wrapper objects ($expr, $param,
// $resource, $action, $asset, $page); a structured $page carries a
// {"target": ..., "instance": ...} pair. Any other value shape is kept
// as-is and normalizes to the json prop kind.
func FromJSON(data []byte) (*template.Node, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("JSON root must be an object")
	}

	return decodeNode(m)
}

func decodeNode(m map[string]any) (*template.Node, error) {
	component, ok := m["component"].(string)
	if !ok || component == "" {
		return nil, fmt.Errorf("node requires a component tag")
	}
	node := &template.Node{Component: component}

	if attrsRaw, found := m["attrs"]; found {
		attrsSlice, ok := attrsRaw.([]any)
		if !ok {
			return nil, fmt.Errorf("attrs must be an array")
		}
		for _, ai := range attrsSlice {
			amap, ok := ai.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("attr entry must be an object")
			}
			name, ok := amap["name"].(string)
			if !ok || name == "" {
				return nil, fmt.Errorf("attr entry requires a name")
			}
			node.Attrs = append(node.Attrs, template.Attr{
				Name:  name,
				Value: decodeValue(name, amap["value"]),
			})
		}
	}

	if childrenRaw, found := m["children"]; found {
		childrenSlice, ok := childrenRaw.([]any)
		if !ok {
			return nil, fmt.Errorf("children must be an array")
		}
		for _, ci := range childrenSlice {
			child, err := decodeChild(ci)
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, child)
		}
	}

	return node, nil
}

func decodeChild(v any) (template.Child, error) {
	switch c := v.(type) {
	case string:
		return template.Text{Value: c}, nil
	case map[string]any:
		if text, ok := c["$text"].(string); ok {
			placeholder, _ := c["placeholder"].(bool)
			return template.Text{Value: text, Placeholder: placeholder}, nil
		}
		if code, ok := c["$expr"].(string); ok {
			return template.Expr{Code: code}, nil
		}
		return decodeNode(c)
	default:
		return nil, fmt.Errorf("unsupported child shape %T", v)
	}
}

// decodeValue maps $-keyed wrapper objects onto the typed value set and
// the @style attribute onto style declarations. Unrecognized shapes pass
// through unchanged; the normalizer's dispatch handles them as json.
func decodeValue(name string, v any) any {
	if name == template.AttrStyle {
		return decodeStyles(v)
	}

	m, ok := v.(map[string]any)
	if !ok {
		return v
	}

	if code, ok := m["$expr"].(string); ok {
		return template.Expression{Code: code}
	}
	if param, ok := m["$param"].(string); ok {
		return template.Parameter{Name: param}
	}
	if id, ok := m["$resource"].(string); ok {
		return template.Resource{ID: id}
	}
	if actionRaw, found := m["$action"]; found {
		if amap, ok := actionRaw.(map[string]any); ok {
			action := template.Action{}
			if s, ok := amap["type"].(string); ok {
				action.Type = s
			}
			if args, ok := amap["args"].([]any); ok {
				for _, arg := range args {
					if s, ok := arg.(string); ok {
						action.Args = append(action.Args, s)
					}
				}
			}
			if s, ok := amap["code"].(string); ok {
				action.Code = s
			}
			return action
		}
	}
	if id, ok := m["$asset"].(string); ok {
		return template.Asset{ID: id}
	}
	if pageRaw, found := m["$page"]; found {
		switch pg := pageRaw.(type) {
		case string:
			return template.Page{ID: pg}
		case map[string]any:
			page := template.Page{}
			if s, ok := pg["target"].(string); ok {
				page.ID = s
			}
			if s, ok := pg["instance"].(string); ok {
				page.Instance = s
			}
			return page
		}
	}

	return v
}

func decodeStyles(v any) any {
	slice, ok := v.([]any)
	if !ok {
		return v
	}
	decls := make([]template.StyleDecl, 0, len(slice))
	for _, di := range slice {
		dmap, ok := di.(map[string]any)
		if !ok {
			continue
		}
		decl := template.StyleDecl{}
		if s, ok := dmap["property"].(string); ok {
			decl.Property = s
		}
		decl.Value = dmap["value"]
		decls = append(decls, decl)
	}
	return decls
}

// ToJSON serializes a template tree to JSON bytes, the inverse of FromJSON.
func ToJSON(node *template.Node) ([]byte, error) {
	return json.MarshalIndent(encodeNode(node), "", "  ")
}

func encodeNode(n *template.Node) map[string]any {
	result := map[string]any{"component": n.Component}

	if len(n.Attrs) > 0 {
		attrs := make([]any, 0, len(n.Attrs))
		for _, a := range n.Attrs {
			attrs = append(attrs, map[string]any{
				"name":  a.Name,
				"value": encodeValue(a.Value),
			})
		}
		result["attrs"] = attrs
	}

	if len(n.Children) > 0 {
		children := make([]any, 0, len(n.Children))
		for _, c := range n.Children {
			children = append(children, encodeChild(c))
		}
		result["children"] = children
	}

	return result
}

func encodeChild(c template.Child) any {
	switch c := c.(type) {
	case *template.Node:
		return encodeNode(c)
	case template.Text:
		if c.Placeholder {
			return map[string]any{"$text": c.Value, "placeholder": true}
		}
		return c.Value
	case template.Expr:
		return map[string]any{"$expr": c.Code}
	default:
		return nil
	}
}

func encodeValue(v any) any {
	switch v := v.(type) {
	case template.Expression:
		return map[string]any{"$expr": v.Code}
	case template.Parameter:
		return map[string]any{"$param": v.Name}
	case template.Resource:
		return map[string]any{"$resource": v.ID}
	case template.Action:
		return map[string]any{"$action": map[string]any{
			"type": v.Type,
			"args": v.Args,
			"code": v.Code,
		}}
	case template.Asset:
		return map[string]any{"$asset": v.ID}
	case template.Page:
		if v.Instance == "" {
			return map[string]any{"$page": v.ID}
		}
		return map[string]any{"$page": map[string]any{
			"target":   v.ID,
			"instance": v.Instance,
		}}
	case []template.StyleDecl:
		decls := make([]any, 0, len(v))
		for _, d := range v {
			decls = append(decls, map[string]any{
				"property": d.Property,
				"value":    d.Value,
			})
		}
		return decls
	default:
		return v
	}
}

// FragmentToJSON serializes a normalized fragment. The fragment is plain
// data, so this is a direct encoding.
func FragmentToJSON(f *graph.Fragment) ([]byte, error) {
	return json.MarshalIndent(f, "", "  ")
}

// FragmentFromJSON parses a normalized fragment from JSON bytes.
func FragmentFromJSON(data []byte) (*graph.Fragment, error) {
	var f graph.Fragment
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("invalid fragment JSON: %w", err)
	}
	return &f, nil
}
