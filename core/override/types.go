package override

import (
	"maps"
	"slices"
)

// ClientFileVersion is the file version of data extracted from the game
// client. It always has the lowest precedence.
const ClientFileVersion = 0

// InheritNone is the {{Inherit}} cell value that cancels a parent set by an
// earlier file version.
const InheritNone = "del"

// BuiltinOverride sets some of a vehicle's built-in attributes, or deletes
// its earlier data. Nil attributes are left unspecified.
type BuiltinOverride struct {
	Entity   string
	Country  *Country
	Tier     *int
	Class    *Class
	Category *Category
	Version  Version
	Delete   bool
}

func (r BuiltinOverride) entityID() string     { return r.Entity }
func (r BuiltinOverride) gameVersion() Version { return r.Version }

// ExtraOverride sets one extra property value for one vehicle. Rows compare
// by content.
type ExtraOverride struct {
	Entity  string
	Value   string
	Version Version
}

func (r ExtraOverride) entityID() string     { return r.Entity }
func (r ExtraOverride) gameVersion() Version { return r.Version }

// BuiltinFile is the parsed content of one built-in override file.
type BuiltinFile struct {
	// Name is used in warnings, normally the file name.
	Name        string
	FileVersion int
	Rows        []BuiltinOverride
}

// ExtraColumn is one property column of an extra override file.
type ExtraColumn struct {
	// Name is used in warnings, normally the file name.
	Name        string
	FileVersion int
	Property    PropertyID
	// Descriptions maps a language code to a description.
	Descriptions map[string]string
	// InheritsFrom is the canonical id of the parent property, InheritNone,
	// or empty when the file does not say.
	InheritsFrom string
	Rows         []ExtraOverride
}

// BuiltinTable maps a vehicle id to its resolved built-in rows, ordered so
// that later rows take precedence.
type BuiltinTable map[string][]BuiltinOverride

// Entities returns the vehicle ids in sorted order.
func (t BuiltinTable) Entities() []string {
	return slices.Sorted(maps.Keys(t))
}

// Property is an extra property after cross-file resolution.
type Property struct {
	ID           PropertyID
	Descriptions map[string]string
	// InheritsFrom is the canonical id of the parent property, or empty.
	InheritsFrom string
	// Values maps a vehicle id to its rows, ordered by version with the
	// unversioned row first.
	Values map[string][]ExtraOverride
}

// Clone returns a deep copy of p.
func (p Property) Clone() Property {
	out := Property{
		ID:           p.ID,
		Descriptions: maps.Clone(p.Descriptions),
		InheritsFrom: p.InheritsFrom,
		Values:       make(map[string][]ExtraOverride, len(p.Values)),
	}
	if out.Descriptions == nil {
		out.Descriptions = map[string]string{}
	}
	for entity, rows := range p.Values {
		out.Values[entity] = slices.Clone(rows)
	}
	return out
}

// SortRows orders rows by version, unversioned first, keeping the relative
// order of equal versions.
func SortRows(rows []ExtraOverride) {
	slices.SortStableFunc(rows, func(a, b ExtraOverride) int {
		return a.Version.Compare(b.Version)
	})
}
