package override

import (
	"slices"
	"testing"

	"vehicle-catalogue/core/warn"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeBuiltins_HigherFileVersionWins(t *testing.T) {
	files := []BuiltinFile{
		{Name: "v2", FileVersion: 2, Rows: []BuiltinOverride{add("T1", At(100), 8)}},
		{Name: "v1", FileVersion: 1, Rows: []BuiltinOverride{add("T1", At(100), 7)}},
	}

	table := MergeBuiltins(files, &warn.List{})

	assert.Equal(t, []int{8}, tiers(table["T1"]))
	assert.Equal(t, "v2", files[0].Name, "input order must be untouched")
}

func TestMergeBuiltins_UnversionedAddKeepsHistory(t *testing.T) {
	full := BuiltinOverride{
		Entity:   "T1",
		Country:  ptr(CountryGermany),
		Tier:     ptr(5),
		Class:    ptr(ClassHeavy),
		Category: ptr(CategoryNormal),
	}
	files := []BuiltinFile{
		{FileVersion: 1, Rows: []BuiltinOverride{full}},
		{FileVersion: 2, Rows: []BuiltinOverride{add("T1", Unversioned(), 6)}},
	}

	table := MergeBuiltins(files, nil)

	require.Len(t, table["T1"], 2)
	assert.Equal(t, full, table["T1"][0])
	assert.Equal(t, []int{5, 6}, tiers(table["T1"]))
}

func TestMergeBuiltins_UnversionedDeleteClears(t *testing.T) {
	files := []BuiltinFile{
		{FileVersion: 1, Rows: []BuiltinOverride{add("T1", Unversioned(), 5), add("T2", Unversioned(), 3)}},
		{FileVersion: 2, Rows: []BuiltinOverride{del("T1", Unversioned())}},
	}

	table := MergeBuiltins(files, nil)

	assert.NotContains(t, table, "T1")
	assert.Equal(t, []string{"T2"}, table.Entities())
}

func TestMergeBuiltins_VersionedDelete(t *testing.T) {
	base := BuiltinFile{FileVersion: 1, Rows: []BuiltinOverride{
		add("T1", Unversioned(), 5),
		add("T1", At(100), 6),
		add("T1", At(200), 7),
	}}
	cut := BuiltinFile{FileVersion: 2, Rows: []BuiltinOverride{del("T1", At(150))}}
	readd := BuiltinFile{FileVersion: 3, Rows: []BuiltinOverride{add("T1", At(200), 8)}}

	table := MergeBuiltins([]BuiltinFile{base, cut}, nil)
	assert.Equal(t, []int{5, 6}, tiers(table["T1"]))
	for _, row := range table["T1"] {
		assert.False(t, row.Delete, "delete markers are not kept")
	}

	table = MergeBuiltins([]BuiltinFile{readd, cut, base}, nil)
	assert.Equal(t, []int{5, 6, 8}, tiers(table["T1"]))
}

func TestMergeBuiltins_VersionedAddReplacesLater(t *testing.T) {
	files := []BuiltinFile{
		{FileVersion: 1, Rows: []BuiltinOverride{add("T1", At(100), 5), add("T1", At(200), 6)}},
		{FileVersion: 2, Rows: []BuiltinOverride{add("T1", At(150), 9)}},
	}

	table := MergeBuiltins(files, nil)

	require.Len(t, table["T1"], 2)
	assert.Equal(t, At(100), table["T1"][0].Version)
	assert.Equal(t, At(150), table["T1"][1].Version)
}

func TestMergeBuiltins_UnversionedAppliesBeforeVersioned(t *testing.T) {
	files := []BuiltinFile{{Name: "v1", FileVersion: 1, Rows: []BuiltinOverride{
		add("T1", At(100), 6),
		del("T1", Unversioned()),
		add("T1", Unversioned(), 5),
	}}}
	w := &warn.List{}

	table := MergeBuiltins(files, w)

	// the last unversioned row survives and applies before #100
	assert.Equal(t, []int{5, 6}, tiers(table["T1"]))
	require.Equal(t, 1, w.Len())
	assert.Contains(t, w.All()[0], "multiple entries")
	assert.Contains(t, w.All()[0], "<unspecified>")
}

func TestCompareBuiltinApply(t *testing.T) {
	rows := []BuiltinOverride{
		add("T1", At(200), 7),
		del("T1", Unversioned()),
		add("T1", At(100), 6),
		add("T1", Unversioned(), 5),
	}

	slices.SortStableFunc(rows, compareBuiltinApply)

	assert.False(t, rows[0].Delete)
	assert.False(t, rows[0].Version.Valid)
	assert.True(t, rows[1].Delete)
	assert.Equal(t, At(100), rows[2].Version)
	assert.Equal(t, At(200), rows[3].Version)
}

func TestMergeExtras(t *testing.T) {
	older := ExtraColumn{
		FileVersion:  1,
		Property:     PropertyID{FileID: "Speed", Author: "Me"},
		Descriptions: map[string]string{"en": "Speed", "ru": "Скорость"},
		InheritsFrom: "Speed/WG",
		Rows: []ExtraOverride{
			{Entity: "T1", Value: "40"},
			{Entity: "T1", Value: "45", Version: At(100)},
			{Entity: "T1", Value: "50", Version: At(200)},
			{Entity: "T2", Value: "30", Version: At(100)},
		},
	}
	newer := ExtraColumn{
		FileVersion:  2,
		Property:     PropertyID{FileID: "SPEED", Author: "me"},
		Descriptions: map[string]string{"en": "Top speed"},
		Rows: []ExtraOverride{
			{Entity: "T1", Value: "47", Version: At(150)},
			{Entity: "T2", Value: "35"},
		},
	}
	other := ExtraColumn{FileVersion: 1, Property: PropertyID{FileID: "Armor", Author: "Me"}}

	props := MergeExtras([]ExtraColumn{newer, other, older}, nil)
	require.Len(t, props, 2)
	assert.Equal(t, "Armor", props[0].ID.FileID)

	speed := props[1]
	assert.Equal(t, PropertyID{FileID: "Speed", Author: "Me"}, speed.ID)
	assert.Equal(t, "Speed/WG", speed.InheritsFrom)
	assert.Equal(t, map[string]string{"en": "Top speed", "ru": "Скорость"}, speed.Descriptions)
	assert.Equal(t, []ExtraOverride{
		{Entity: "T1", Value: "40"},
		{Entity: "T1", Value: "45", Version: At(100)},
		{Entity: "T1", Value: "47", Version: At(150)},
	}, speed.Values["T1"])
	assert.Equal(t, []ExtraOverride{{Entity: "T2", Value: "35"}}, speed.Values["T2"])
}

func TestMergeExtras_InheritDel(t *testing.T) {
	id := PropertyID{FileID: "Speed", Author: "Me"}
	props := MergeExtras([]ExtraColumn{
		{FileVersion: 1, Property: id, InheritsFrom: "Speed/WG"},
		{FileVersion: 2, Property: id, InheritsFrom: InheritNone},
		{FileVersion: 3, Property: id},
	}, nil)

	require.Len(t, props, 1)
	assert.Empty(t, props[0].InheritsFrom)
}

func TestMergeExtras_UnversionedInFileAppliesFirst(t *testing.T) {
	col := ExtraColumn{
		Property: PropertyID{FileID: "Speed", Author: "Me"},
		Rows: []ExtraOverride{
			{Entity: "T1", Value: "45", Version: At(100)},
			{Entity: "T1", Value: "40"},
		},
	}

	props := MergeExtras([]ExtraColumn{col}, nil)

	assert.Equal(t, []ExtraOverride{
		{Entity: "T1", Value: "40"},
		{Entity: "T1", Value: "45", Version: At(100)},
	}, props[0].Values["T1"])
}
