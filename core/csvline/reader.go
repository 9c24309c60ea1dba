package csvline

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"vehicle-catalogue/core/dataerr"
)

// maxLineSize bounds a single line; community files never come close.
const maxLineSize = 1 << 20

// Line is one data line of a file.
type Line struct {
	// Number is the 1-based position of the line in the raw file, counting
	// skipped blank and comment lines.
	Number int
	// Fields holds the unquoted field values.
	Fields []string
}

// Reader yields the data lines of a single source. Each Reader is one lazy,
// finite pass; create a new one to read again.
type Reader struct {
	sc  *bufio.Scanner
	num int
}

// NewReader creates a Reader over r.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Reader{sc: sc}
}

// Read returns the next data line, or io.EOF when the source is exhausted.
func (r *Reader) Read() (Line, error) {
	for r.sc.Scan() {
		r.num++
		text := r.sc.Text()
		if r.num == 1 {
			text = strings.TrimPrefix(text, "\uFEFF")
		}
		trimmed := strings.TrimSpace(text)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		fields, ok := Split(trimmed)
		if !ok {
			return Line{}, dataerr.AtLine(r.num, dataerr.New("couldn't parse the line; check the quotes"))
		}
		return Line{Number: r.num, Fields: fields}, nil
	}
	if err := r.sc.Err(); err != nil {
		return Line{}, fmt.Errorf("reading line %d: %w", r.num+1, err)
	}
	return Line{}, io.EOF
}

// ReadAll reads every remaining data line.
func (r *Reader) ReadAll() ([]Line, error) {
	var lines []Line
	for {
		line, err := r.Read()
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
}

// ReadFile reads all data lines of the file at path.
func ReadFile(path string) ([]Line, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	return NewReader(f).ReadAll()
}

// Split splits a single line into unquoted fields. It reports false when the
// raw segments it recognised do not re-join into the original line.
func Split(line string) ([]string, bool) {
	var raws, fields []string
	pos := 0
	for {
		raw, value, next, ok := scanField(line, pos)
		if !ok {
			break
		}
		raws = append(raws, raw)
		fields = append(fields, value)
		if next >= len(line) || line[next] != ',' {
			break
		}
		pos = next + 1
		if pos == len(line) {
			// trailing comma: one final empty field
			raws = append(raws, "")
			fields = append(fields, "")
			break
		}
	}
	if strings.Join(raws, ",") != line {
		return nil, false
	}
	return fields, true
}

// scanField recognises one field starting at pos. It returns the raw text,
// the unquoted value and the index just past the raw text.
func scanField(line string, pos int) (raw, value string, next int, ok bool) {
	i := pos
	for i < len(line) && line[i] == ' ' {
		i++
	}
	if i < len(line) && line[i] == '"' {
		var b strings.Builder
		j := i + 1
		for {
			if j >= len(line) {
				return "", "", 0, false
			}
			if line[j] == '"' {
				if j+1 < len(line) && line[j+1] == '"' {
					b.WriteByte('"')
					j += 2
					continue
				}
				j++
				break
			}
			b.WriteByte(line[j])
			j++
		}
		for j < len(line) && line[j] == ' ' {
			j++
		}
		return line[pos:j], b.String(), j, true
	}

	end := strings.IndexByte(line[pos:], ',')
	if end < 0 {
		end = len(line)
	} else {
		end += pos
	}
	raw = line[pos:end]
	if strings.ContainsRune(raw, '"') {
		return "", "", 0, false
	}
	return raw, strings.TrimSpace(raw), end, true
}

// EscapeField quotes s when it contains a comma or a quote.
func EscapeField(s string) string {
	if strings.ContainsAny(s, ",\"") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
