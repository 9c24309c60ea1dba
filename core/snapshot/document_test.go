package snapshot

import (
	"testing"

	"vehicle-catalogue/core/override"
	"vehicle-catalogue/core/warn"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInput() Input {
	return Input{
		GameVersion: 120,
		Builtins: override.BuiltinTable{
			"T1": {fullRow("T1", 5), {Entity: "T1", Tier: ptr(6), Version: override.At(100)}},
			"T2": {fullRow("T2", 3)},
			"T3": {{Entity: "T3", Tier: ptr(2)}},
		},
		Properties: []override.Property{
			property("Speed", "Me", value("T1", "40", override.Unversioned()), value("T2", "30", override.At(110))),
			{
				ID:           override.PropertyID{FileID: "Names", ColumnID: "Full", Author: "WG"},
				Descriptions: map[string]string{"en": "Full name", "ru": "Полное имя"},
				Values:       map[string][]override.ExtraOverride{"T1": {value("T1", "Tiger", override.Unversioned())}},
			},
		},
		DefaultAuthor: "Me",
		Warnings:      &warn.List{},
	}
}

func TestSnapshot_Idempotent(t *testing.T) {
	first := Build(sampleInput())
	second := Build(sampleInput())

	a, err := first.Encode()
	require.NoError(t, err)
	b, err := second.Encode()
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, first.Warnings(), second.Warnings())

	da, err := first.Digest()
	require.NoError(t, err)
	db, err := second.Digest()
	require.NoError(t, err)
	assert.Equal(t, da, db)
	assert.Len(t, da, 64)
}

func TestSnapshot_DigestChangesWithContent(t *testing.T) {
	in := sampleInput()
	before, err := Build(in).Digest()
	require.NoError(t, err)

	in = sampleInput()
	in.GameVersion = 99
	after, err := Build(in).Digest()
	require.NoError(t, err)

	assert.NotEqual(t, before, after)
}

func TestDecode_RoundTrip(t *testing.T) {
	orig := Build(sampleInput())
	data, err := orig.Encode()
	require.NoError(t, err)

	restored, err := Decode(data)
	require.NoError(t, err)

	again, err := restored.Encode()
	require.NoError(t, err)
	assert.Equal(t, data, again)

	v, ok := restored.Vehicle("T1")
	require.True(t, ok)
	assert.Equal(t, 6, v.Tier())
	name, ok := v.ExtraByName("names/full")
	assert.True(t, ok)
	assert.Equal(t, "Tiger", name)
	assert.Equal(t, orig.Warnings(), restored.Warnings())
}

func TestDocument_Shape(t *testing.T) {
	doc := Build(sampleInput()).Document()

	assert.Equal(t, 120, doc.GameVersion)
	require.Len(t, doc.Vehicles, 2)
	assert.Equal(t, "T1", doc.Vehicles[0].ID)
	assert.Equal(t, map[string]string{"Names/Full/WG": "Tiger", "Speed/Me": "40"}, doc.Vehicles[0].Extras)
	require.Len(t, doc.Properties, 2)
	assert.Equal(t, "Names/Full/WG", doc.Properties[0].ID)
	assert.Equal(t, "Full", doc.Properties[0].ColumnID)
	require.Len(t, doc.Warnings, 1)
}

func TestFromDocument_Rejects(t *testing.T) {
	_, err := FromDocument(Document{Vehicles: []VehicleDoc{{ID: "T1"}, {ID: "T1"}}})
	assert.Error(t, err)

	_, err = FromDocument(Document{Vehicles: []VehicleDoc{{ID: "T1", Extras: map[string]string{"X/Y": "1"}}}})
	assert.Error(t, err)

	_, err = FromDocument(Document{Vehicles: []VehicleDoc{{ID: "T1", Tier: 42}}})
	assert.Error(t, err)

	_, err = Decode([]byte{0xff})
	assert.Error(t, err)
}
