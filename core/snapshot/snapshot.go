package snapshot

import (
	"maps"
	"slices"
	"strconv"

	"vehicle-catalogue/core/override"
)

var romanNumerals = []string{"", "I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX", "X"}

// PropertyInfo describes an extra property that contributed to a snapshot.
type PropertyInfo struct {
	ID override.PropertyID
	// Descriptions maps a language code to a description.
	Descriptions map[string]string
}

// Snapshot is the resolved catalogue for one game version.
type Snapshot struct {
	gameVersion   int
	defaultAuthor string
	vehicles      []Vehicle
	index         map[string]int
	properties    []PropertyInfo
	warnings      []string
}

// GameVersion returns the game version the snapshot was resolved for.
func (s *Snapshot) GameVersion() int { return s.gameVersion }

// DefaultAuthor returns the author preferred by Vehicle.ExtraByName.
func (s *Snapshot) DefaultAuthor() string { return s.defaultAuthor }

// Vehicles returns every vehicle ordered by id.
func (s *Snapshot) Vehicles() []Vehicle {
	return slices.Clone(s.vehicles)
}

// Vehicle looks up a vehicle by its exact id.
func (s *Snapshot) Vehicle(id string) (Vehicle, bool) {
	i, ok := s.index[id]
	if !ok {
		return Vehicle{}, false
	}
	return s.vehicles[i], true
}

// Properties returns the properties that contributed at least one value,
// in canonical order.
func (s *Snapshot) Properties() []PropertyInfo {
	out := make([]PropertyInfo, len(s.properties))
	for i, p := range s.properties {
		out[i] = PropertyInfo{ID: p.ID, Descriptions: maps.Clone(p.Descriptions)}
	}
	return out
}

// Warnings returns every warning raised while resolving the snapshot.
func (s *Snapshot) Warnings() []string {
	return slices.Clone(s.warnings)
}

// Vehicle is one fully resolved catalogue entry.
type Vehicle struct {
	id       string
	country  override.Country
	tier     int
	class    override.Class
	category override.Category

	// extras is keyed by PropertyID.Key and shared read-only between
	// copies of the vehicle.
	extras        map[string]extraValue
	defaultAuthor string
}

type extraValue struct {
	property override.PropertyID
	value    string
}

func (v Vehicle) ID() string { return v.id }
func (v Vehicle) Country() override.Country { return v.country }
func (v Vehicle) Tier() int { return v.tier }
func (v Vehicle) Class() override.Class { return v.class }
func (v Vehicle) Category() override.Category { return v.category }

// Extra returns the value of an extra property. The two tier pseudo
// properties are always available.
func (v Vehicle) Extra(id override.PropertyID) (string, bool) {
	switch id.Key() {
	case override.TierArabic.Key():
		if v.tier == 0 {
			return "", true
		}
		return strconv.Itoa(v.tier), true
	case override.TierRoman.Key():
		return romanNumerals[v.tier], true
	}
	e, ok := v.extras[id.Key()]
	return e.value, ok
}

// ExtraByName finds an extra value by "file[/column]" or by the full
// canonical id, ignoring case. When the author is omitted and several
// authors provide the property, the snapshot's default author is preferred,
// then the first in canonical order.
func (v Vehicle) ExtraByName(name string) (string, bool) {
	want := override.KeyOf(name)
	var matches []extraValue
	for _, key := range slices.Sorted(maps.Keys(v.extras)) {
		e := v.extras[key]
		if key == want || override.KeyOf(e.property.Name()) == want {
			matches = append(matches, e)
		}
	}
	if len(matches) == 0 {
		return "", false
	}
	for _, e := range matches {
		if override.KeyOf(e.property.Author) == override.KeyOf(v.defaultAuthor) {
			return e.value, true
		}
	}
	return matches[0].value, true
}

// Extras returns the vehicle's extra values keyed by canonical property id.
func (v Vehicle) Extras() map[string]string {
	out := make(map[string]string, len(v.extras))
	for _, e := range v.extras {
		out[e.property.String()] = e.value
	}
	return out
}
