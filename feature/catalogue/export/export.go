package export

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"vehicle-catalogue/core/csvline"
	"vehicle-catalogue/core/override"
)

// File name patterns of exported data.
const (
	BuiltinFileName = "Exported-WotBuiltIn-0.csv"
	builtinGlob     = "Exported-WotBuiltIn-*.csv"
	extraGlob       = "Exported-WotData-*.csv"
)

// ExtraFileName returns the export file name of one (file, author) group.
func ExtraFileName(fileID, author string) string {
	return fmt.Sprintf("Exported-WotData-%s-%s-0.csv", fileID, author)
}

// Write replaces the exported files in dir with the given client data and
// returns the paths written, built-in file first.
func Write(dir string, builtin override.BuiltinFile, columns []override.ExtraColumn) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}
	if err := removeStale(dir); err != nil {
		return nil, err
	}

	path := filepath.Join(dir, BuiltinFileName)
	if err := writeFile(path, func(w io.Writer) error { return WriteBuiltin(w, builtin) }); err != nil {
		return nil, err
	}
	written := []string{path}

	for _, group := range groupColumns(columns) {
		id := group[0].Property
		path := filepath.Join(dir, ExtraFileName(id.FileID, id.Author))
		if err := writeFile(path, func(w io.Writer) error { return WriteExtra(w, group) }); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

func removeStale(dir string) error {
	for _, pattern := range []string{builtinGlob, extraGlob} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return err
		}
		for _, m := range matches {
			if err := os.Remove(m); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("remove previous export: %w", err)
			}
		}
	}
	return nil
}

func writeFile(path string, fill func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	bw := bufio.NewWriter(f)
	if err := fill(bw); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// WriteBuiltin writes a built-in data file with rows ordered by vehicle id.
func WriteBuiltin(w io.Writer, file override.BuiltinFile) error {
	rows := slices.Clone(file.Rows)
	slices.SortStableFunc(rows, func(a, b override.BuiltinOverride) int {
		return cmp.Compare(a.Entity, b.Entity)
	})

	lines := []string{override.BuiltinSignature + "," + override.FormatVersion}
	for _, r := range rows {
		cells := []string{
			csvline.EscapeField(r.Entity),
			optional(r.Country),
			"",
			optional(r.Class),
			optional(r.Category),
		}
		if r.Tier != nil {
			cells[2] = strconv.Itoa(*r.Tier)
		}
		if r.Version.Valid {
			cells = append(cells, r.Version.Tag())
		}
		if r.Delete {
			if !r.Version.Valid {
				cells = append(cells, "")
			}
			cells = append(cells, "del")
		}
		lines = append(lines, strings.Join(cells, ","))
	}
	return writeLines(w, lines)
}

func optional[T ~string](v *T) string {
	if v == nil {
		return ""
	}
	return string(*v)
}

// WriteExtra writes the columns of one (file, author) group as a single
// data file. Columns are ordered by column id.
func WriteExtra(w io.Writer, group []override.ExtraColumn) error {
	cols := slices.Clone(group)
	slices.SortStableFunc(cols, func(a, b override.ExtraColumn) int {
		return cmp.Compare(a.Property.ColumnID, b.Property.ColumnID)
	})

	lines := []string{override.ExtraSignature + "," + override.FormatVersion}
	headerRow := func(marker string, cell func(c override.ExtraColumn) string) string {
		cells := []string{marker}
		for _, c := range cols {
			cells = append(cells, csvline.EscapeField(cell(c)))
		}
		return strings.Join(cells, ",")
	}

	if slices.ContainsFunc(cols, func(c override.ExtraColumn) bool { return c.Property.ColumnID != "" }) {
		lines = append(lines, headerRow("{{ID}}", func(c override.ExtraColumn) string { return c.Property.ColumnID }))
	}

	langs := map[string]bool{}
	for _, c := range cols {
		for lang := range c.Descriptions {
			langs[lang] = true
		}
	}
	for _, lang := range slices.Sorted(maps.Keys(langs)) {
		marker := "{{" + strings.ToUpper(lang) + "}}"
		lines = append(lines, headerRow(marker, func(c override.ExtraColumn) string { return c.Descriptions[lang] }))
	}

	if slices.ContainsFunc(cols, func(c override.ExtraColumn) bool { return c.InheritsFrom != "" }) {
		lines = append(lines, headerRow("{{Inherit}}", func(c override.ExtraColumn) string { return c.InheritsFrom }))
	}

	// First row per vehicle in each column.
	first := make([]map[string]override.ExtraOverride, len(cols))
	entities := map[string]bool{}
	for i, c := range cols {
		first[i] = map[string]override.ExtraOverride{}
		for _, r := range c.Rows {
			if _, seen := first[i][r.Entity]; !seen {
				first[i][r.Entity] = r
			}
			entities[r.Entity] = true
		}
	}

	for _, entity := range slices.Sorted(maps.Keys(entities)) {
		cells := []string{csvline.EscapeField(entity)}
		var version override.Version
		for i := range cols {
			r, ok := first[i][entity]
			if !ok {
				cells = append(cells, "")
				continue
			}
			cells = append(cells, csvline.EscapeField(r.Value))
			if !version.Valid {
				version = r.Version
			}
		}
		if version.Valid {
			cells = append(cells, version.Tag())
		}
		lines = append(lines, strings.Join(cells, ","))
	}
	return writeLines(w, lines)
}

func writeLines(w io.Writer, lines []string) error {
	for _, l := range lines {
		if _, err := io.WriteString(w, l+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// groupColumns groups columns by file id and author, in sorted order.
func groupColumns(columns []override.ExtraColumn) [][]override.ExtraColumn {
	groups := map[string][]override.ExtraColumn{}
	for _, c := range columns {
		key := c.Property.FileID + "-" + c.Property.Author
		groups[key] = append(groups[key], c)
	}
	out := make([][]override.ExtraColumn, 0, len(groups))
	for _, key := range slices.Sorted(maps.Keys(groups)) {
		out = append(out, groups[key])
	}
	return out
}
