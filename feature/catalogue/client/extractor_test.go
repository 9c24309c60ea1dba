package client

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONExtractor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vehicles.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"id": "R04_T-34", "country": "ussr", "level": 5},
		{"id": "A01_T1_Cunningham", "country": "usa", "level": 1}
	]`), 0o644))

	vehicles, err := NewJSONExtractor(path).Extract(context.Background())
	require.NoError(t, err)
	require.Len(t, vehicles, 2)
	assert.Equal(t, "R04_T-34", vehicles[0]["id"])
	assert.Equal(t, json.Number("5"), vehicles[0]["level"])
}

func TestJSONExtractor_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := NewJSONExtractor(filepath.Join(t.TempDir(), "nope.json")).Extract(context.Background())
		assert.ErrorContains(t, err, "open vehicle list")
	})

	t.Run("not an array", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "vehicles.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"id": 1}`), 0o644))
		_, err := NewJSONExtractor(path).Extract(context.Background())
		assert.ErrorContains(t, err, "decode vehicle list")
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewJSONExtractor("whatever").Extract(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
