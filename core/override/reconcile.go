package override

import (
	"slices"

	"vehicle-catalogue/core/warn"
)

// versionedRow is implemented by both override row kinds.
type versionedRow interface {
	entityID() string
	gameVersion() Version
}

type rowKey struct {
	entity  string
	version Version
}

// ReconcileBuiltin cleans the rows of one built-in file: duplicate
// (vehicle, version) pairs keep their last row and runs of consecutive
// deletes collapse to their first row. The result keeps file order.
func ReconcileBuiltin(file BuiltinFile, w *warn.List) []BuiltinOverride {
	rows := dedupeVersions(file.Name, file.Rows, w)
	return dropRedundantDeletes(file.Name, rows, w)
}

// ReconcileExtra removes duplicate (vehicle, version) pairs from one extra
// column, keeping the last row of each.
func ReconcileExtra(col ExtraColumn, w *warn.List) []ExtraOverride {
	label := col.Name + " [" + col.Property.String() + "]"
	return dedupeVersions(label, col.Rows, w)
}

func dedupeVersions[R versionedRow](label string, rows []R, w *warn.List) []R {
	last := make(map[rowKey]int, len(rows))
	var dupes []rowKey
	seen := make(map[rowKey]bool)
	for i, row := range rows {
		key := rowKey{row.entityID(), row.gameVersion()}
		if _, ok := last[key]; ok && !seen[key] {
			seen[key] = true
			dupes = append(dupes, key)
		}
		last[key] = i
	}
	for _, key := range dupes {
		w.Addf("%s: found multiple entries for %q for game version %s; only the last one is used", label, key.entity, key.version)
	}

	out := make([]R, 0, len(rows))
	for i, row := range rows {
		if last[rowKey{row.entityID(), row.gameVersion()}] == i {
			out = append(out, row)
		}
	}
	return out
}

func dropRedundantDeletes(label string, rows []BuiltinOverride, w *warn.List) []BuiltinOverride {
	byEntity := map[string][]int{}
	var order []string
	for i, row := range rows {
		if _, ok := byEntity[row.Entity]; !ok {
			order = append(order, row.Entity)
		}
		byEntity[row.Entity] = append(byEntity[row.Entity], i)
	}

	drop := map[int]bool{}
	for _, entity := range order {
		idx := byEntity[entity]
		slices.SortStableFunc(idx, func(a, b int) int {
			return rows[a].Version.Compare(rows[b].Version)
		})
		for start := 0; start < len(idx); {
			if !rows[idx[start]].Delete {
				start++
				continue
			}
			end := start + 1
			for end < len(idx) && rows[idx[end]].Delete {
				drop[idx[end]] = true
				end++
			}
			if end-start > 1 {
				w.Addf("%s: found redundant \"del\" entries for %q; only the first one is used", label, entity)
			}
			start = end
		}
	}
	if len(drop) == 0 {
		return rows
	}

	out := make([]BuiltinOverride, 0, len(rows)-len(drop))
	for i, row := range rows {
		if !drop[i] {
			out = append(out, row)
		}
	}
	return out
}
