package override

import (
	"strings"
	"testing"

	"vehicle-catalogue/core/dataerr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExtraFile_MultipleColumns(t *testing.T) {
	src := strings.Join([]string{
		"WOT-DATA,2",
		"{{ID}},Full,Short",
		"{{Inherit}},Names/Full/Other,",
		"{{En}},Full name,Short name",
		"{{Ru}},Полное имя",
		"T1,Tiger,Tg",
		"T1,Tiger II,,#100",
	}, "\n")

	cols, err := ParseExtraFile("WotData-Names-Me-2.csv", "Names", "Me", 2, strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, cols, 2)

	full := cols[0]
	assert.Equal(t, PropertyID{FileID: "Names", ColumnID: "Full", Author: "Me"}, full.Property)
	assert.Equal(t, "WotData-Names-Me-2.csv", full.Name)
	assert.Equal(t, 2, full.FileVersion)
	assert.Equal(t, "Names/Full/Other", full.InheritsFrom)
	assert.Equal(t, map[string]string{"en": "Full name", "ru": "Полное имя"}, full.Descriptions)
	assert.Equal(t, []ExtraOverride{
		{Entity: "T1", Value: "Tiger"},
		{Entity: "T1", Value: "Tiger II", Version: At(100)},
	}, full.Rows)

	short := cols[1]
	assert.Equal(t, "Short", short.Property.ColumnID)
	assert.Empty(t, short.InheritsFrom)
	assert.Equal(t, map[string]string{"en": "Short name"}, short.Descriptions)
	assert.Equal(t, []ExtraOverride{{Entity: "T1", Value: "Tg"}}, short.Rows)
}

func TestParseExtraFile_SingleColumn(t *testing.T) {
	src := "WOT-DATA,2\nT1,42\nT1,43,#10\nT2,\n"

	cols, err := ParseExtraFile("f.csv", "Speed", "Me", 1, strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, cols, 1)

	assert.Equal(t, PropertyID{FileID: "Speed", Author: "Me"}, cols[0].Property)
	assert.Equal(t, []ExtraOverride{
		{Entity: "T1", Value: "42"},
		{Entity: "T1", Value: "43", Version: At(10)},
	}, cols[0].Rows)
}

func TestParseExtraFile_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
	}{
		{name: "WrongSignature", src: "WOT-BUILTIN,2\n", line: 1},
		{name: "HeaderAfterData", src: "WOT-DATA,2\nT1,1\n{{En}},Speed\n", line: 3},
		{name: "DuplicateIDHeader", src: "WOT-DATA,2\n{{ID}},a\n{{id}},b\n", line: 3},
		{name: "DuplicateColumnIDs", src: "WOT-DATA,2\n{{ID}},Speed,SPEED\n", line: 2},
		{name: "EmptyColumnID", src: "WOT-DATA,2\n{{ID}},a,,b\n", line: 2},
		{name: "UnknownHeader", src: "WOT-DATA,2\n{{Description}},x\n", line: 2},
		{name: "TooManyDescriptions", src: "WOT-DATA,2\n{{En}},a,b\nT1,1\n", line: 3},
		{name: "TooManyColumns", src: "WOT-DATA,2\nT1,1,2,3\n", line: 2},
		{name: "BadVersion", src: "WOT-DATA,2\nT1,1,v2\n", line: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseExtraFile("f.csv", "Speed", "Me", 1, strings.NewReader(tt.src))
			require.Error(t, err)
			ue, ok := dataerr.As(err)
			require.True(t, ok)
			assert.Equal(t, tt.line, ue.Line)
		})
	}
}
