package override

import (
	"cmp"
	"maps"
	"slices"
	"strings"

	"vehicle-catalogue/core/warn"
)

// MergeBuiltins resolves built-in rows across files. Files apply in
// ascending file version so that higher versions take precedence. Within
// a file, unversioned rows apply before versioned ones:
//
//   - an unversioned delete clears everything known about the vehicle;
//   - an unversioned add is appended, and attributes it leaves unset fall
//     back to earlier rows;
//   - a versioned delete at #V removes the rows at #V and later;
//   - a versioned add at #V removes the rows at #V and later, then is
//     appended.
//
// The input is not modified.
func MergeBuiltins(files []BuiltinFile, w *warn.List) BuiltinTable {
	ordered := slices.Clone(files)
	slices.SortStableFunc(ordered, func(a, b BuiltinFile) int {
		return cmp.Compare(a.FileVersion, b.FileVersion)
	})

	table := BuiltinTable{}
	for _, file := range ordered {
		rows := ReconcileBuiltin(file, w)
		rows = slices.Clone(rows)
		slices.SortStableFunc(rows, compareBuiltinApply)
		for _, row := range rows {
			table.apply(row)
		}
	}

	maps.DeleteFunc(table, func(_ string, rows []BuiltinOverride) bool {
		return len(rows) == 0
	})
	return table
}

func compareBuiltinApply(a, b BuiltinOverride) int {
	if c := cmp.Compare(builtinRank(a), builtinRank(b)); c != 0 {
		return c
	}
	return a.Version.Compare(b.Version)
}

func builtinRank(r BuiltinOverride) int {
	switch {
	case !r.Version.Valid && !r.Delete:
		return 0
	case !r.Version.Valid:
		return 1
	default:
		return 2
	}
}

func (t BuiltinTable) apply(row BuiltinOverride) {
	if !row.Version.Valid {
		if row.Delete {
			t[row.Entity] = nil
			return
		}
		t[row.Entity] = append(t[row.Entity], row)
		return
	}

	rows := slices.DeleteFunc(t[row.Entity], func(r BuiltinOverride) bool {
		return r.Version.AtOrAfter(row.Version)
	})
	if !row.Delete {
		rows = append(rows, row)
	}
	t[row.Entity] = rows
}

// MergeExtras resolves extra columns into one Property per property id,
// matched case-insensitively. Within a property, columns apply in
// ascending file version: an unversioned value replaces everything known
// for the vehicle, a versioned value at #V replaces the values at #V and
// later. The latest file that names a parent wins, and "del" removes it.
// Properties are returned in canonical key order.
func MergeExtras(columns []ExtraColumn, w *warn.List) []Property {
	groups := map[string][]ExtraColumn{}
	for _, col := range columns {
		key := col.Property.Key()
		groups[key] = append(groups[key], col)
	}

	props := make([]Property, 0, len(groups))
	for _, key := range slices.Sorted(maps.Keys(groups)) {
		group := groups[key]
		slices.SortStableFunc(group, func(a, b ExtraColumn) int {
			return cmp.Compare(a.FileVersion, b.FileVersion)
		})
		props = append(props, mergeProperty(group, w))
	}
	return props
}

func mergeProperty(group []ExtraColumn, w *warn.List) Property {
	prop := Property{
		ID:           group[0].Property,
		Descriptions: map[string]string{},
		Values:       map[string][]ExtraOverride{},
	}

	for _, col := range group {
		switch {
		case strings.EqualFold(col.InheritsFrom, InheritNone):
			prop.InheritsFrom = ""
		case col.InheritsFrom != "":
			prop.InheritsFrom = col.InheritsFrom
		}
		maps.Copy(prop.Descriptions, col.Descriptions)

		rows := slices.Clone(ReconcileExtra(col, w))
		SortRows(rows)
		for _, row := range rows {
			if !row.Version.Valid {
				prop.Values[row.Entity] = []ExtraOverride{row}
				continue
			}
			kept := slices.DeleteFunc(prop.Values[row.Entity], func(r ExtraOverride) bool {
				return r.Version.AtOrAfter(row.Version)
			})
			prop.Values[row.Entity] = append(kept, row)
		}
	}

	for _, rows := range prop.Values {
		SortRows(rows)
	}
	return prop
}
