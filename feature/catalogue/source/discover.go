package source

import (
	"slices"
	"strconv"
	"strings"

	"vehicle-catalogue/core/warn"
)

// File name prefixes and extensions of the recognized data files.
const (
	BuiltinPrefix     = "WotBuiltIn-"
	ExtraPrefix       = "WotData-"
	GameVersionPrefix = "WotGameVersion-"

	DataExt        = ".csv"
	GameVersionExt = ".yaml"
)

// BuiltinRef names a built-in override file.
type BuiltinRef struct {
	Name        string
	FileVersion int
}

// ExtraRef names an extra property file.
type ExtraRef struct {
	Name         string
	PropertyName string
	Author       string
	FileVersion  int
}

// GameVersionRef names a game version config file.
type GameVersionRef struct {
	Name          string
	GameVersionID int
}

// Catalog is the classified content of a data source.
type Catalog struct {
	Builtins     []BuiltinRef
	Extras       []ExtraRef
	GameVersions []GameVersionRef
}

// Discover classifies file names. Names that match a known prefix and
// extension but are otherwise malformed are skipped with a warning; any
// other name is ignored.
func Discover(names []string, w *warn.List) Catalog {
	sorted := slices.Clone(names)
	slices.Sort(sorted)

	var c Catalog
	for _, name := range sorted {
		switch {
		case strings.HasPrefix(name, BuiltinPrefix) && strings.HasSuffix(name, DataExt):
			if ref, ok := parseBuiltinName(name, w); ok {
				c.Builtins = append(c.Builtins, ref)
			}
		case strings.HasPrefix(name, ExtraPrefix) && strings.HasSuffix(name, DataExt):
			if ref, ok := parseExtraName(name, w); ok {
				c.Extras = append(c.Extras, ref)
			}
		case strings.HasPrefix(name, GameVersionPrefix) && strings.HasSuffix(name, GameVersionExt):
			if ref, ok := parseGameVersionName(name, w); ok {
				c.GameVersions = append(c.GameVersions, ref)
			}
		}
	}
	return c
}

func nameParts(name, ext string, want int, w *warn.List) ([]string, bool) {
	parts := strings.Split(strings.TrimSuffix(name, ext), "-")
	if len(parts) != want {
		w.Addf("Skipped %q because it has the wrong number of filename parts (expected: %d, actual %d).", name, want, len(parts))
		return nil, false
	}
	return parts, true
}

func parseFileVersion(name, part string, w *warn.List) (int, bool) {
	v, err := strconv.Atoi(part)
	if err != nil || v < 1 {
		w.Addf("Skipped %q because it has an unparseable file version part in the filename, or the file version is less than 1: %q.", name, part)
		return 0, false
	}
	return v, true
}

func parseBuiltinName(name string, w *warn.List) (BuiltinRef, bool) {
	parts, ok := nameParts(name, DataExt, 2, w)
	if !ok {
		return BuiltinRef{}, false
	}
	v, ok := parseFileVersion(name, parts[1], w)
	if !ok {
		return BuiltinRef{}, false
	}
	return BuiltinRef{Name: name, FileVersion: v}, true
}

func parseExtraName(name string, w *warn.List) (ExtraRef, bool) {
	parts, ok := nameParts(name, DataExt, 4, w)
	if !ok {
		return ExtraRef{}, false
	}
	v, ok := parseFileVersion(name, parts[3], w)
	if !ok {
		return ExtraRef{}, false
	}
	prop := strings.TrimSpace(parts[1])
	if prop == "" {
		w.Addf("Skipped %q because it has an empty property name part in the filename.", name)
		return ExtraRef{}, false
	}
	author := strings.TrimSpace(parts[2])
	if author == "" {
		w.Addf("Skipped %q because it has an empty author part in the filename.", name)
		return ExtraRef{}, false
	}
	return ExtraRef{Name: name, PropertyName: prop, Author: author, FileVersion: v}, true
}

func parseGameVersionName(name string, w *warn.List) (GameVersionRef, bool) {
	parts, ok := nameParts(name, GameVersionExt, 2, w)
	if !ok {
		return GameVersionRef{}, false
	}
	digits, hasHash := strings.CutPrefix(parts[1], "#")
	id, err := strconv.Atoi(digits)
	if !hasHash || err != nil || id < 0 {
		w.Addf("Skipped %q because it has an unparseable game version part in the filename: %q.", name, parts[1])
		return GameVersionRef{}, false
	}
	return GameVersionRef{Name: name, GameVersionID: id}, true
}
