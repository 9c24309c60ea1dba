package override

import (
	"strings"

	"golang.org/x/text/cases"

	"vehicle-catalogue/core/dataerr"
)

// PropertyID identifies an extra property. Its canonical string form is the
// literal token used to name a property as an inheritance parent.
type PropertyID struct {
	// FileID names the data file family. Never empty.
	FileID string
	// ColumnID distinguishes several properties defined by one file. Empty
	// when the file defines a single unnamed column.
	ColumnID string
	// Author identifies who maintains the file. Never empty.
	Author string
}

// Pseudo properties computed from the built-in tier instead of data files.
var (
	TierArabic = PropertyID{FileID: "Tier (Arabic)", Author: "(built-in)"}
	TierRoman  = PropertyID{FileID: "Tier (Roman)", Author: "(built-in)"}
)

// String returns the canonical form "file[/column]/author".
func (p PropertyID) String() string {
	return p.Name() + "/" + p.Author
}

// Name returns "file[/column]", the form used when the author is omitted.
func (p PropertyID) Name() string {
	if p.ColumnID == "" {
		return p.FileID
	}
	return p.FileID + "/" + p.ColumnID
}

// Key returns the case-folded canonical form used for lookups.
func (p PropertyID) Key() string {
	return KeyOf(p.String())
}

// KeyOf case-folds a property reference so that lookups ignore case.
func KeyOf(s string) string {
	return cases.Fold().String(s)
}

// ParsePropertyID parses "file/author" or "file/column/author".
func ParsePropertyID(s string) (PropertyID, error) {
	parts := strings.Split(s, "/")
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			return PropertyID{}, dataerr.Newf("invalid property reference %q", s)
		}
	}
	switch len(parts) {
	case 2:
		return PropertyID{FileID: parts[0], Author: parts[1]}, nil
	case 3:
		return PropertyID{FileID: parts[0], ColumnID: parts[1], Author: parts[2]}, nil
	default:
		return PropertyID{}, dataerr.Newf("invalid property reference %q: expected file/author or file/column/author", s)
	}
}
