package client

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// RawVehicle is one vehicle's decoded attribute tree as dumped from the
// game client.
type RawVehicle map[string]any

// Extractor produces the raw vehicle list of a game client.
type Extractor interface {
	Extract(ctx context.Context) ([]RawVehicle, error)
}

// JSONExtractor reads a vehicle dump: a JSON array with one object per
// vehicle.
type JSONExtractor struct {
	Path string
}

// NewJSONExtractor returns an extractor for the dump at path.
func NewJSONExtractor(path string) *JSONExtractor {
	return &JSONExtractor{Path: path}
}

// Extract implements Extractor.
func (e *JSONExtractor) Extract(ctx context.Context) ([]RawVehicle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(e.Path)
	if err != nil {
		return nil, fmt.Errorf("open vehicle list: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.UseNumber()

	var vehicles []RawVehicle
	if err := dec.Decode(&vehicles); err != nil {
		return nil, fmt.Errorf("decode vehicle list %s: %w", e.Path, err)
	}
	return vehicles, nil
}
