package graph

import "fmt"

// Validate checks the referential integrity of the fragment: instance ids
// are unique, every id child reference resolves to exactly one instance,
// and every prop, selection, and style declaration points at records that
// exist. The normalizer produces valid fragments by construction; Validate
// exists for fragments that crossed a serialization or editing boundary.
func (f *Fragment) Validate() error {
	instances := make(map[string]bool, len(f.Instances))
	for _, inst := range f.Instances {
		if instances[inst.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicateInstance, inst.ID)
		}
		instances[inst.ID] = true
	}

	checkChildren := func(owner string, children []ChildRef) error {
		for _, c := range children {
			if c.Type == ChildID && !instances[c.Value] {
				return fmt.Errorf("%w: %q in children of %s", ErrDanglingChild, c.Value, owner)
			}
		}
		return nil
	}

	if err := checkChildren("fragment root", f.Children); err != nil {
		return err
	}
	for _, inst := range f.Instances {
		if err := checkChildren("instance "+inst.ID, inst.Children); err != nil {
			return err
		}
	}

	for _, p := range f.Props {
		if !instances[p.InstanceID] {
			return fmt.Errorf("%w: prop %q -> instance %q", ErrDanglingProp, p.ID, p.InstanceID)
		}
	}

	sources := make(map[string]bool, len(f.StyleSources))
	for _, s := range f.StyleSources {
		sources[s.ID] = true
	}
	for _, sel := range f.StyleSourceSelections {
		if !instances[sel.InstanceID] {
			return fmt.Errorf("%w: selection -> instance %q", ErrDanglingSelection, sel.InstanceID)
		}
		for _, v := range sel.Values {
			if !sources[v] {
				return fmt.Errorf("%w: selection -> style source %q", ErrDanglingSelection, v)
			}
		}
	}

	breakpoints := make(map[string]bool, len(f.Breakpoints))
	for _, bp := range f.Breakpoints {
		breakpoints[bp.ID] = true
	}
	for _, d := range f.Styles {
		if !sources[d.StyleSourceID] {
			return fmt.Errorf("%w: declaration %q -> style source %q", ErrDanglingStyle, d.Property, d.StyleSourceID)
		}
		if !breakpoints[d.BreakpointID] {
			return fmt.Errorf("%w: declaration %q -> breakpoint %q", ErrDanglingStyle, d.Property, d.BreakpointID)
		}
	}

	return nil
}
