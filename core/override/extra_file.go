package override

import (
	"io"
	"strings"

	"golang.org/x/text/language"

	"vehicle-catalogue/core/csvline"
	"vehicle-catalogue/core/dataerr"
)

const (
	headerID      = "{{id}}"
	headerInherit = "{{inherit}}"
)

// extraHeaders collects the optional header rows of an extra file.
type extraHeaders struct {
	ids          []string
	inherit      []string
	descriptions map[string][]string
	langOrder    []string
}

// ParseExtraFile reads an extra property file and returns one column per
// property it defines. name and author come from the file name.
func ParseExtraFile(fileName, name, author string, fileVersion int, r io.Reader) ([]ExtraColumn, error) {
	lines, err := csvline.NewReader(r).ReadAll()
	if err != nil {
		return nil, err
	}
	if err := checkSignature(lines, ExtraSignature); err != nil {
		return nil, err
	}

	h := extraHeaders{descriptions: map[string][]string{}}
	headersDone := false
	entries := map[string][]ExtraOverride{}

	for _, line := range lines[1:] {
		fields := line.Fields
		isHeader := strings.HasPrefix(fields[0], "{{")

		if isHeader {
			if headersDone {
				return nil, dataerr.AtLine(line.Number, dataerr.New("headers must not be mixed with the rest of the data"))
			}
			if err := h.add(fields); err != nil {
				return nil, dataerr.AtLine(line.Number, err)
			}
			continue
		}

		if !headersDone {
			headersDone = true
			if err := h.finish(); err != nil {
				return nil, dataerr.AtLine(line.Number, err)
			}
		}
		if err := h.addRow(fields, entries); err != nil {
			return nil, dataerr.AtLine(line.Number, err)
		}
	}
	if !headersDone {
		if err := h.finish(); err != nil {
			return nil, err
		}
	}

	columns := make([]ExtraColumn, 0, len(h.ids))
	for i, id := range h.ids {
		col := ExtraColumn{
			Name:         fileName,
			FileVersion:  fileVersion,
			Property:     PropertyID{FileID: name, ColumnID: id, Author: author},
			Descriptions: map[string]string{},
			Rows:         entries[id],
		}
		for _, lang := range h.langOrder {
			if values := h.descriptions[lang]; i < len(values) && values[i] != "" {
				col.Descriptions[lang] = values[i]
			}
		}
		if i < len(h.inherit) {
			col.InheritsFrom = h.inherit[i]
		}
		columns = append(columns, col)
	}
	return columns, nil
}

func (h *extraHeaders) add(fields []string) error {
	marker := fields[0]
	values := fields[1:]

	switch strings.ToLower(marker) {
	case headerID:
		if h.ids != nil {
			return dataerr.New("there must be at most one ID header in the file")
		}
		if len(values) == 0 {
			return dataerr.New("if present, the ID header must have at least one value")
		}
		seen := map[string]bool{}
		for _, v := range values {
			if v == "" {
				return dataerr.New("ID header fields must not be empty")
			}
			if seen[KeyOf(v)] {
				return dataerr.New("duplicate column IDs are not allowed")
			}
			seen[KeyOf(v)] = true
		}
		h.ids = values
	case headerInherit:
		if h.inherit != nil {
			return dataerr.New("there must be at most one Inherit header in the file")
		}
		h.inherit = values
	default:
		lang, ok := parseLanguageHeader(marker)
		if !ok {
			return dataerr.Newf("unrecognized header: %s (must be {{ID}}, {{Inherit}} or a language code such as {{En}} or {{Ru}})", marker)
		}
		if _, dup := h.descriptions[lang]; !dup {
			h.langOrder = append(h.langOrder, lang)
		}
		h.descriptions[lang] = values
	}
	return nil
}

// finish validates the headers once the first data row is reached.
func (h *extraHeaders) finish() error {
	if h.ids == nil {
		// a single unnamed column
		h.ids = []string{""}
	}
	if len(h.inherit) > len(h.ids) {
		return dataerr.New("the inherit header contains too many columns")
	}
	for _, values := range h.descriptions {
		if len(values) > len(h.ids) {
			return dataerr.New("one of the description headers contains too many columns")
		}
	}
	return nil
}

func (h *extraHeaders) addRow(fields []string, entries map[string][]ExtraOverride) error {
	n := len(h.ids)
	if len(fields) > n+2 {
		return dataerr.New("the data row contains too many columns (for multiple columns, add an {{ID}} header)")
	}
	entity := fields[0]
	if entity == "" {
		return dataerr.New("the vehicle id must not be empty")
	}

	var version Version
	if len(fields) == n+2 && fields[n+1] != "" {
		v, err := ParseTag(fields[n+1])
		if err != nil {
			return err
		}
		version = v
	}
	for i, id := range h.ids {
		if i+1 < len(fields) && fields[i+1] != "" {
			entries[id] = append(entries[id], ExtraOverride{Entity: entity, Value: fields[i+1], Version: version})
		}
	}
	return nil
}

// parseLanguageHeader turns "{{En}}" into the canonical tag "en".
func parseLanguageHeader(marker string) (string, bool) {
	if !strings.HasPrefix(marker, "{{") || !strings.HasSuffix(marker, "}}") || len(marker) <= 4 {
		return "", false
	}
	tag, err := language.Parse(marker[2 : len(marker)-2])
	if err != nil {
		return "", false
	}
	return tag.String(), true
}
