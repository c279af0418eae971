package graph

// Maps is the identifier-keyed projection of a fragment's two primary
// collections, for call sites that only need direct lookup.
type Maps struct {
	Instances map[string]Instance
	Props     map[string]Prop
}

// Maps re-keys the instance and prop collections by id. It performs no
// validation: if duplicate ids exist the later entry overwrites the earlier
// one. Callers rely on the normalizer's uniqueness guarantee, or run
// Validate first.
func (f *Fragment) Maps() Maps {
	m := Maps{
		Instances: make(map[string]Instance, len(f.Instances)),
		Props:     make(map[string]Prop, len(f.Props)),
	}
	for _, inst := range f.Instances {
		m.Instances[inst.ID] = inst
	}
	for _, p := range f.Props {
		m.Props[p.ID] = p
	}
	return m
}
