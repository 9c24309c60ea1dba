package inherit

import (
	"cmp"
	"maps"
	"slices"

	"vehicle-catalogue/core/override"
	"vehicle-catalogue/core/warn"
)

// table holds the properties being resolved, keyed by canonical key.
type table map[string]override.Property

// Resolve applies inheritance to props and returns the surviving properties
// in canonical key order. props is not modified.
func Resolve(props []override.Property, w *warn.List) []override.Property {
	t := make(table, len(props))
	for _, p := range props {
		t[p.ID.Key()] = p.Clone()
	}

	for {
		t.pruneMissingParents(w)
		victim, ok := t.findCycle()
		if !ok {
			break
		}
		w.Addf("Skipped %q due to a circular dependency.", t[victim].ID.String())
		delete(t, victim)
	}

	depths := t.depths()
	order := slices.Collect(maps.Keys(t))
	slices.SortFunc(order, func(a, b string) int {
		if c := cmp.Compare(depths[a], depths[b]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	for _, key := range order {
		child := t[key]
		if parentKey, ok := parentOf(child); ok {
			inherit(child, t[parentKey])
		}
	}

	out := make([]override.Property, 0, len(t))
	for _, key := range slices.Sorted(maps.Keys(t)) {
		out = append(out, t[key])
	}
	return out
}

func parentOf(p override.Property) (string, bool) {
	if p.InheritsFrom == "" {
		return "", false
	}
	return override.KeyOf(p.InheritsFrom), true
}

// pruneMissingParents removes properties whose parent is unknown until no
// such property remains.
func (t table) pruneMissingParents(w *warn.List) {
	for {
		var missing []string
		for key, p := range t {
			if parentKey, ok := parentOf(p); ok {
				if _, found := t[parentKey]; !found {
					missing = append(missing, key)
				}
			}
		}
		if len(missing) == 0 {
			return
		}
		slices.Sort(missing)
		for _, key := range missing {
			p := t[key]
			w.Addf("Skipped %q because there are no data files for the property %q (from which it inherits values).", p.ID.String(), p.InheritsFrom)
			delete(t, key)
		}
	}
}

// descendants returns the transitive children of every property that has
// any.
func (t table) descendants() map[string]map[string]bool {
	closure := map[string]map[string]bool{}
	for key, p := range t {
		if parentKey, ok := parentOf(p); ok {
			if closure[parentKey] == nil {
				closure[parentKey] = map[string]bool{}
			}
			closure[parentKey][key] = true
		}
	}

	for changed := true; changed; {
		changed = false
		for _, kids := range closure {
			for _, kid := range slices.Collect(maps.Keys(kids)) {
				for grandkid := range closure[kid] {
					if !kids[grandkid] {
						kids[grandkid] = true
						changed = true
					}
				}
			}
		}
	}
	return closure
}

// findCycle returns the first property, in key order, that is its own
// descendant.
func (t table) findCycle() (string, bool) {
	closure := t.descendants()
	for _, key := range slices.Sorted(maps.Keys(t)) {
		if closure[key][key] {
			return key, true
		}
	}
	return "", false
}

// depths assigns 0 to roots and parent+1 to everything else. The graph must
// be acyclic with every parent present.
func (t table) depths() map[string]int {
	depth := make(map[string]int, len(t))
	for key, p := range t {
		if _, ok := parentOf(p); !ok {
			depth[key] = 0
		}
	}
	for len(depth) < len(t) {
		progressed := false
		for key, p := range t {
			if _, done := depth[key]; done {
				continue
			}
			parentKey, _ := parentOf(p)
			if d, ok := depth[parentKey]; ok {
				depth[key] = d + 1
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}
	return depth
}

// inherit copies parent rows into child following the merge rule. child's
// value map is updated in place.
func inherit(child, parent override.Property) {
	for entity, parentRows := range parent.Values {
		own := child.Values[entity]
		if slices.ContainsFunc(own, func(r override.ExtraOverride) bool { return !r.Version.Valid }) {
			continue
		}

		merged := slices.Clone(own)
		for _, row := range parentRows {
			exists := slices.ContainsFunc(own, func(r override.ExtraOverride) bool {
				return r.Version == row.Version
			})
			if !exists {
				row.Entity = entity
				merged = append(merged, row)
			}
		}
		override.SortRows(merged)
		child.Values[entity] = merged
	}
}
