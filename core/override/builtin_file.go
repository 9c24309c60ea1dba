package override

import (
	"io"

	"vehicle-catalogue/core/csvline"
	"vehicle-catalogue/core/dataerr"
)

// Signatures and format version expected in the first row of data files.
const (
	BuiltinSignature = "WOT-BUILTIN"
	ExtraSignature   = "WOT-DATA"
	FormatVersion    = "2"

	deleteMarker = "del"
)

// ParseBuiltinFile reads a built-in override file. Any malformed row makes
// the whole file invalid; the returned *dataerr.UserError carries the line.
func ParseBuiltinFile(name string, fileVersion int, r io.Reader) (BuiltinFile, error) {
	file := BuiltinFile{Name: name, FileVersion: fileVersion}

	lines, err := csvline.NewReader(r).ReadAll()
	if err != nil {
		return file, err
	}
	if err := checkSignature(lines, BuiltinSignature); err != nil {
		return file, err
	}

	for _, line := range lines[1:] {
		row, err := parseBuiltinRow(line.Fields)
		if err != nil {
			return file, dataerr.AtLine(line.Number, err)
		}
		file.Rows = append(file.Rows, row)
	}
	return file, nil
}

func checkSignature(lines []csvline.Line, signature string) error {
	if len(lines) == 0 {
		return dataerr.New("expected at least one line")
	}
	header := lines[0]
	if len(header.Fields) < 2 {
		return dataerr.AtLine(header.Number, dataerr.New("expected at least two columns in the first row"))
	}
	if header.Fields[0] != signature {
		return dataerr.AtLine(header.Number, dataerr.Newf("expected %q in the first column of the first row", signature))
	}
	if header.Fields[1] != FormatVersion {
		return dataerr.AtLine(header.Number, dataerr.Newf("the second column of the first row must be %q (format version)", FormatVersion))
	}
	return nil
}

func parseBuiltinRow(fields []string) (BuiltinOverride, error) {
	row := BuiltinOverride{Entity: fields[0]}
	if row.Entity == "" {
		return row, dataerr.New("the vehicle id must not be empty")
	}

	cell := func(i int) string {
		if i < len(fields) {
			return fields[i]
		}
		return ""
	}

	if s := cell(1); s != "" {
		c, err := ParseCountry(s)
		if err != nil {
			return row, err
		}
		row.Country = &c
	}
	if s := cell(2); s != "" {
		t, err := ParseTier(s)
		if err != nil {
			return row, err
		}
		row.Tier = &t
	}
	if s := cell(3); s != "" {
		c, err := ParseClass(s)
		if err != nil {
			return row, err
		}
		row.Class = &c
	}
	if s := cell(4); s != "" {
		c, err := ParseCategory(s)
		if err != nil {
			return row, err
		}
		row.Category = &c
	}
	if s := cell(5); s != "" {
		v, err := ParseTag(s)
		if err != nil {
			return row, err
		}
		row.Version = v
	}
	switch cell(6) {
	case "":
	case deleteMarker:
		row.Delete = true
	default:
		return row, dataerr.Newf("the very last column must contain the text %q or nothing", deleteMarker)
	}
	return row, nil
}
