package snapshot

import (
	"fmt"
	"maps"

	"vehicle-catalogue/core/codec"
	"vehicle-catalogue/core/override"
)

// Document is the serializable form of a Snapshot.
type Document struct {
	GameVersion   int           `cbor:"game_version" json:"game_version"`
	DefaultAuthor string        `cbor:"default_author" json:"default_author"`
	Vehicles      []VehicleDoc  `cbor:"vehicles" json:"vehicles"`
	Properties    []PropertyDoc `cbor:"properties" json:"properties"`
	Warnings      []string      `cbor:"warnings" json:"warnings"`
}

// VehicleDoc is one vehicle of a Document. Extras is keyed by canonical
// property id.
type VehicleDoc struct {
	ID       string            `cbor:"id" json:"id"`
	Country  string            `cbor:"country" json:"country"`
	Tier     int               `cbor:"tier" json:"tier"`
	Class    string            `cbor:"class" json:"class"`
	Category string            `cbor:"category" json:"category"`
	Extras   map[string]string `cbor:"extras" json:"extras"`
}

// PropertyDoc is one used property of a Document.
type PropertyDoc struct {
	ID           string            `cbor:"id" json:"id"`
	FileID       string            `cbor:"file_id" json:"file_id"`
	ColumnID     string            `cbor:"column_id,omitempty" json:"column_id,omitempty"`
	Author       string            `cbor:"author" json:"author"`
	Descriptions map[string]string `cbor:"descriptions" json:"descriptions"`
}

// NewVehicleDoc converts a single vehicle.
func NewVehicleDoc(v Vehicle) VehicleDoc {
	return VehicleDoc{
		ID:       v.id,
		Country:  string(v.country),
		Tier:     v.tier,
		Class:    string(v.class),
		Category: string(v.category),
		Extras:   v.Extras(),
	}
}

// NewPropertyDoc converts a single property description.
func NewPropertyDoc(p PropertyInfo) PropertyDoc {
	desc := maps.Clone(p.Descriptions)
	if desc == nil {
		desc = map[string]string{}
	}
	return PropertyDoc{
		ID:           p.ID.String(),
		FileID:       p.ID.FileID,
		ColumnID:     p.ID.ColumnID,
		Author:       p.ID.Author,
		Descriptions: desc,
	}
}

// Document returns the serializable form of s.
func (s *Snapshot) Document() Document {
	doc := Document{
		GameVersion:   s.gameVersion,
		DefaultAuthor: s.defaultAuthor,
		Vehicles:      make([]VehicleDoc, 0, len(s.vehicles)),
		Properties:    make([]PropertyDoc, 0, len(s.properties)),
		Warnings:      s.Warnings(),
	}
	if doc.Warnings == nil {
		doc.Warnings = []string{}
	}
	for _, v := range s.vehicles {
		doc.Vehicles = append(doc.Vehicles, NewVehicleDoc(v))
	}
	for _, p := range s.properties {
		doc.Properties = append(doc.Properties, NewPropertyDoc(p))
	}
	return doc
}

// Encode returns the deterministic CBOR encoding of s.
func (s *Snapshot) Encode() ([]byte, error) {
	data, err := codec.Marshal(s.Document())
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

// Digest returns the content digest of s.
func (s *Snapshot) Digest() (string, error) {
	data, err := s.Encode()
	if err != nil {
		return "", err
	}
	return codec.Digest(data), nil
}

// Decode restores a snapshot from its encoding.
func Decode(data []byte) (*Snapshot, error) {
	var doc Document
	if err := codec.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return FromDocument(doc)
}

// FromDocument rebuilds a snapshot from its serializable form.
func FromDocument(doc Document) (*Snapshot, error) {
	s := &Snapshot{
		gameVersion:   doc.GameVersion,
		defaultAuthor: doc.DefaultAuthor,
		index:         make(map[string]int, len(doc.Vehicles)),
		warnings:      doc.Warnings,
	}

	ids := make(map[string]override.PropertyID, len(doc.Properties))
	for _, p := range doc.Properties {
		id := override.PropertyID{FileID: p.FileID, ColumnID: p.ColumnID, Author: p.Author}
		ids[id.String()] = id
		s.properties = append(s.properties, PropertyInfo{ID: id, Descriptions: p.Descriptions})
	}

	for _, vd := range doc.Vehicles {
		if _, dup := s.index[vd.ID]; dup {
			return nil, fmt.Errorf("duplicate vehicle %q in snapshot document", vd.ID)
		}
		v := Vehicle{
			id:            vd.ID,
			country:       override.Country(vd.Country),
			tier:          vd.Tier,
			class:         override.Class(vd.Class),
			category:      override.Category(vd.Category),
			extras:        make(map[string]extraValue, len(vd.Extras)),
			defaultAuthor: doc.DefaultAuthor,
		}
		if vd.Tier < 0 || vd.Tier > override.MaxTier {
			return nil, fmt.Errorf("vehicle %q has invalid tier %d", vd.ID, vd.Tier)
		}
		for name, value := range vd.Extras {
			id, ok := ids[name]
			if !ok {
				return nil, fmt.Errorf("vehicle %q references unknown property %q", vd.ID, name)
			}
			v.extras[id.Key()] = extraValue{property: id, value: value}
		}
		s.index[vd.ID] = len(s.vehicles)
		s.vehicles = append(s.vehicles, v)
	}
	return s, nil
}
