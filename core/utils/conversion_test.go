package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	tree := map[string]any{
		"speed": map[string]any{"forward": 40.0},
		"name":  "T1",
	}

	v, ok := Lookup(tree, "speed", "forward")
	assert.True(t, ok)
	assert.Equal(t, 40.0, v)

	_, ok = Lookup(tree, "speed", "reverse")
	assert.False(t, ok)
	_, ok = Lookup(tree, "name", "deeper")
	assert.False(t, ok)
}

func TestToString(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
		ok   bool
	}{
		{"String", "abc", "abc", true},
		{"WholeFloat", 40.0, "40", true},
		{"Fraction", 2.5, "2.5", true},
		{"Int", 7, "7", true},
		{"JSONNumber", json.Number("12.75"), "12.75", true},
		{"Bool", true, "true", true},
		{"Nil", nil, "", false},
		{"Map", map[string]any{}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToString(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToInt(t *testing.T) {
	n, ok := ToInt("12")
	assert.True(t, ok)
	assert.Equal(t, 12, n)

	n, ok = ToInt(3.9)
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	_, ok = ToInt("x")
	assert.False(t, ok)
}

func TestToBool(t *testing.T) {
	assert.True(t, ToBool(true))
	assert.True(t, ToBool(1.0))
	assert.True(t, ToBool("TRUE"))
	assert.True(t, ToBool("1"))
	assert.False(t, ToBool(0))
	assert.False(t, ToBool("no"))
	assert.False(t, ToBool(nil))
}
