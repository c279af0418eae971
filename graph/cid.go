package graph

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
)

// CID computes the content-addressed identifier for this fragment.
// Any change to the fragment changes the CID. Collections are sorted into
// a canonical order before hashing, so two fragments that differ only in
// traversal order share a CID; the fragment itself is not modified.
func (f *Fragment) CID() string {
	data, err := json.Marshal(f.canonical())
	if err != nil {
		return ""
	}

	hash := sha256.Sum256(data)
	return "cid:" + hex.EncodeToString(hash[:])
}

// IdentityHash computes a structural fingerprint for matching. Two
// fragments with the same instances, props, and styles have the same
// identity hash even if labels differ.
func (f *Fragment) IdentityHash() string {
	c := f.canonical()
	for i := range c.Instances {
		c.Instances[i].Label = ""
	}

	structural := struct {
		Instances []Instance  `json:"instances"`
		Props     []Prop      `json:"props"`
		Styles    []StyleDecl `json:"styles"`
	}{
		Instances: c.Instances,
		Props:     c.Props,
		Styles:    c.Styles,
	}

	data, err := json.Marshal(structural)
	if err != nil {
		return ""
	}

	hash := sha256.Sum256(data)
	return "idh:" + hex.EncodeToString(hash[:16])
}

// canonical returns a deterministically ordered copy for hashing.
func (f *Fragment) canonical() *Fragment {
	c := &Fragment{
		Children:              f.Children,
		Instances:             make([]Instance, len(f.Instances)),
		Props:                 make([]Prop, len(f.Props)),
		StyleSources:          make([]StyleSource, len(f.StyleSources)),
		StyleSourceSelections: make([]StyleSourceSelection, len(f.StyleSourceSelections)),
		Styles:                make([]StyleDecl, len(f.Styles)),
		Breakpoints:           make([]Breakpoint, len(f.Breakpoints)),
		Assets:                f.Assets,
		DataSources:           f.DataSources,
		Resources:             f.Resources,
	}
	copy(c.Instances, f.Instances)
	copy(c.Props, f.Props)
	copy(c.StyleSources, f.StyleSources)
	copy(c.StyleSourceSelections, f.StyleSourceSelections)
	copy(c.Styles, f.Styles)
	copy(c.Breakpoints, f.Breakpoints)

	sort.Slice(c.Instances, func(i, j int) bool {
		return c.Instances[i].ID < c.Instances[j].ID
	})
	sort.Slice(c.Props, func(i, j int) bool {
		return c.Props[i].ID < c.Props[j].ID
	})
	sort.Slice(c.StyleSources, func(i, j int) bool {
		return c.StyleSources[i].ID < c.StyleSources[j].ID
	})
	sort.Slice(c.StyleSourceSelections, func(i, j int) bool {
		return c.StyleSourceSelections[i].InstanceID < c.StyleSourceSelections[j].InstanceID
	})
	sort.Slice(c.Styles, func(i, j int) bool {
		if c.Styles[i].StyleSourceID != c.Styles[j].StyleSourceID {
			return c.Styles[i].StyleSourceID < c.Styles[j].StyleSourceID
		}
		return c.Styles[i].Property < c.Styles[j].Property
	})
	sort.Slice(c.Breakpoints, func(i, j int) bool {
		return c.Breakpoints[i].ID < c.Breakpoints[j].ID
	})

	return c
}

// Equal returns true if two fragments have the same CID.
func (f *Fragment) Equal(other *Fragment) bool {
	if other == nil {
		return false
	}
	return f.CID() == other.CID()
}

// StructurallyEqual returns true if two fragments have the same structure.
func (f *Fragment) StructurallyEqual(other *Fragment) bool {
	if other == nil {
		return false
	}
	return f.IdentityHash() == other.IdentityHash()
}
