package snapshot

import (
	"maps"
	"slices"
	"strings"

	"vehicle-catalogue/core/override"
	"vehicle-catalogue/core/warn"
)

// Input is everything Build needs. Builtins and Properties come from
// override.MergeBuiltins and inherit.Resolve.
type Input struct {
	GameVersion   int
	Builtins      override.BuiltinTable
	Properties    []override.Property
	DefaultAuthor string
	// Warnings receives the problems found by Build. Warnings already in
	// the list become part of the snapshot too. May be nil.
	Warnings *warn.List
}

// Build resolves the catalogue at in.GameVersion. It never fails; vehicles
// and values that cannot be resolved are left out with a warning.
func Build(in Input) *Snapshot {
	w := in.Warnings
	if w == nil {
		w = &warn.List{}
	}

	s := &Snapshot{
		gameVersion:   in.GameVersion,
		defaultAuthor: in.DefaultAuthor,
		index:         map[string]int{},
	}

	for _, entity := range in.Builtins.Entities() {
		v, ok := resolveVehicle(entity, in.Builtins[entity], in.GameVersion, w)
		if !ok {
			continue
		}
		v.defaultAuthor = in.DefaultAuthor
		v.extras = map[string]extraValue{}
		s.index[entity] = len(s.vehicles)
		s.vehicles = append(s.vehicles, v)
	}

	props := slices.Clone(in.Properties)
	slices.SortStableFunc(props, func(a, b override.Property) int {
		return strings.Compare(a.ID.Key(), b.ID.Key())
	})
	for _, p := range props {
		if s.applyProperty(p, in.Builtins, w) {
			s.properties = append(s.properties, PropertyInfo{ID: p.ID, Descriptions: maps.Clone(p.Descriptions)})
		}
	}

	s.warnings = w.All()
	return s
}

func resolveVehicle(entity string, rows []override.BuiltinOverride, version int, w *warn.List) (Vehicle, bool) {
	v := Vehicle{id: entity}
	var country, tier, class, category bool
	applicable := 0

	for _, row := range rows {
		if !row.Version.AppliesAt(version) {
			continue
		}
		applicable++
		if row.Country != nil {
			v.country, country = *row.Country, true
		}
		if row.Tier != nil {
			v.tier, tier = *row.Tier, true
		}
		if row.Class != nil {
			v.class, class = *row.Class, true
		}
		if row.Category != nil {
			v.category, category = *row.Category, true
		}
	}

	if applicable == 0 {
		return v, false
	}
	var missing []string
	for name, set := range map[string]bool{"country": country, "tier": tier, "class": class, "category": category} {
		if !set {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		w.Addf("Skipped %q because its %s could not be determined for game version #%d.", entity, strings.Join(missing, ", "), version)
		return v, false
	}
	return v, true
}

// applyProperty stores p's applicable values and reports whether it
// contributed any.
func (s *Snapshot) applyProperty(p override.Property, builtins override.BuiltinTable, w *warn.List) bool {
	key := p.ID.Key()
	used := false
	var orphans []string

	for _, entity := range slices.Sorted(maps.Keys(p.Values)) {
		if _, known := builtins[entity]; !known {
			orphans = append(orphans, entity)
			continue
		}
		i, ok := s.index[entity]
		if !ok {
			continue
		}
		value, ok := lastApplicable(p.Values[entity], s.gameVersion)
		if !ok {
			continue
		}
		s.vehicles[i].extras[key] = extraValue{property: p.ID, value: value}
		used = true
	}

	if len(orphans) > 0 {
		w.Addf("Ignored values of %q for vehicles that have no built-in data: %s.", p.ID.String(), strings.Join(orphans, ", "))
	}
	return used
}

func lastApplicable(rows []override.ExtraOverride, version int) (string, bool) {
	value, found := "", false
	for _, row := range rows {
		if row.Version.AppliesAt(version) {
			value, found = row.Value, true
		}
	}
	return value, found
}
