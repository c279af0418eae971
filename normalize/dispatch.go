package normalize

import (
	"encoding/json"

	"github.com/stencil-xyz/go-stencil/graph"
	"github.com/stencil-xyz/go-stencil/template"
)

// classifyProp maps one attribute value onto exactly one prop kind. The
// typed wrappers from the template package match first, then plain string,
// number, and bool; everything else degrades to the opaque json kind. This
// is total: there is no unsupported-value failure path.
func classifyProp(instanceID, name string, v any) graph.Prop {
	p := graph.Prop{
		ID:         instanceID + ":" + name,
		InstanceID: instanceID,
		Name:       name,
	}

	switch v := v.(type) {
	case template.Expression:
		p.Type = graph.PropExpression
		p.Value = v.Code
	case template.Parameter:
		p.Type = graph.PropParameter
		p.Value = v.Name
	case template.Resource:
		p.Type = graph.PropResource
		p.Value = v.ID
	case template.Action:
		p.Type = graph.PropAction
		p.Value = graph.ActionValue{Type: v.Type, Args: v.Args, Code: v.Code}
	case template.Asset:
		p.Type = graph.PropAsset
		p.Value = v.ID
	case template.Page:
		p.Type = graph.PropPage
		if v.Instance == "" {
			p.Value = v.ID
		} else {
			p.Value = graph.PageRef{PageID: v.ID, InstanceID: v.Instance}
		}
	case string:
		p.Type = graph.PropString
		p.Value = v
	case bool:
		p.Type = graph.PropBoolean
		p.Value = v
	default:
		if f, ok := asFloat64(v); ok {
			p.Type = graph.PropNumber
			p.Value = f
		} else {
			p.Type = graph.PropJSON
			p.Value = v
		}
	}

	return p
}

// asFloat64 attempts to convert a value to float64.
func asFloat64(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return f, true
		}
		return 0, false
	default:
		return 0, false
	}
}
