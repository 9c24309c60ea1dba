package override

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"

	"vehicle-catalogue/core/dataerr"
)

// Version is an optional game version id. The zero value is "unversioned",
// meaning the row applies from the beginning of time until superseded.
type Version struct {
	ID    int
	Valid bool
}

// At returns the version with the given id.
func At(id int) Version {
	return Version{ID: id, Valid: true}
}

// Unversioned returns the empty version.
func Unversioned() Version {
	return Version{}
}

// Compare orders versions with unversioned before every concrete id.
func (v Version) Compare(o Version) int {
	switch {
	case !v.Valid && !o.Valid:
		return 0
	case !v.Valid:
		return -1
	case !o.Valid:
		return 1
	}
	return cmp.Compare(v.ID, o.ID)
}

// Less reports whether v sorts before o.
func (v Version) Less(o Version) bool {
	return v.Compare(o) < 0
}

// AtOrAfter reports whether both versions are set and v.ID >= o.ID. An
// unversioned row is never at or after anything.
func (v Version) AtOrAfter(o Version) bool {
	return v.Valid && o.Valid && v.ID >= o.ID
}

// AppliesAt reports whether a row with this version is in effect for the
// given target game version.
func (v Version) AppliesAt(target int) bool {
	return !v.Valid || v.ID <= target
}

func (v Version) String() string {
	if !v.Valid {
		return "<unspecified>"
	}
	return "#" + strconv.Itoa(v.ID)
}

// Tag renders the version the way data files write it, or "" if unversioned.
func (v Version) Tag() string {
	if !v.Valid {
		return ""
	}
	return "#" + strconv.Itoa(v.ID)
}

// ParseTag parses a "#<integer>" version cell.
func ParseTag(s string) (Version, error) {
	rest, ok := strings.CutPrefix(s, "#")
	if !ok {
		return Version{}, dataerr.Newf("the game version %q must be a number preceded by a #, e.g. #123", s)
	}
	id, err := strconv.Atoi(rest)
	if err != nil || id < 0 {
		return Version{}, dataerr.Newf("the game version %q must be a number preceded by a #, e.g. #123", s)
	}
	return At(id), nil
}

// MustTag is ParseTag for constants in tests and fixtures.
func MustTag(s string) Version {
	v, err := ParseTag(s)
	if err != nil {
		panic(fmt.Sprintf("override: %v", err))
	}
	return v
}
