package motable

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"vehicle-catalogue/core/dataerr"
)

// Magic is the little-endian signature at offset 0.
const Magic uint32 = 0x950412DE

const (
	countOffset       = 8
	reservedOffset    = 12
	descriptorsOffset = 28
	descriptorSize    = 8
)

// ErrInvalid is wrapped by every structural decoding failure.
var ErrInvalid = errors.New("not a valid .mo file")

// Header holds the fixed-position integers of a table.
type Header struct {
	// Count is the number of key/value entries.
	Count int
	// Reserved holds the four 32-bit fields following the count. Their meaning
	// is not relied upon.
	Reserved [4]int32
}

// DecodeHeader validates the magic and reads the header fields.
func DecodeHeader(data []byte) (Header, error) {
	var h Header
	magic, err := readUint32(data, 0)
	if err != nil {
		return h, err
	}
	if magic != Magic {
		return h, invalid("bad magic 0x%08X", magic)
	}
	count, err := readInt32(data, countOffset)
	if err != nil {
		return h, err
	}
	if count < 0 {
		return h, invalid("negative entry count %d", count)
	}
	if tables := descriptorsOffset + 2*int64(count)*descriptorSize; tables > int64(len(data)) {
		return h, invalid("entry count %d does not fit in %d bytes", count, len(data))
	}
	h.Count = int(count)
	for i := range h.Reserved {
		v, err := readInt32(data, reservedOffset+4*i)
		if err != nil {
			return h, err
		}
		h.Reserved[i] = v
	}
	return h, nil
}

// Decode parses a whole table held in memory.
func Decode(data []byte) (map[string]string, error) {
	h, err := DecodeHeader(data)
	if err != nil {
		return nil, err
	}

	result := make(map[string]string, h.Count)
	for i := 0; i < h.Count; i++ {
		key, err := readString(data, descriptorsOffset+descriptorSize*i)
		if err != nil {
			return nil, err
		}
		value, err := readString(data, descriptorsOffset+descriptorSize*(i+h.Count))
		if err != nil {
			return nil, err
		}
		result[key] = value
	}
	return result, nil
}

// Read decodes a table from r.
func Read(r io.Reader) (map[string]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading string table: %w", err)
	}
	return Decode(data)
}

// ReadFile decodes the table stored at path.
func ReadFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	table, err := Decode(data)
	if err != nil {
		return nil, dataerr.InFile(path, err)
	}
	return table, nil
}

func readString(data []byte, descriptor int) (string, error) {
	length, err := readInt32(data, descriptor)
	if err != nil {
		return "", err
	}
	offset, err := readInt32(data, descriptor+4)
	if err != nil {
		return "", err
	}
	if length < 0 || offset < 0 {
		return "", invalid("negative string descriptor at offset %d", descriptor)
	}
	end := int64(offset) + int64(length)
	if end > int64(len(data)) {
		return "", invalid("string at offset %d runs past the end of the data", offset)
	}
	return string(data[offset:end]), nil
}

func readUint32(data []byte, offset int) (uint32, error) {
	if offset < 0 || offset+4 > len(data) {
		return 0, invalid("unexpected end of data at offset %d", offset)
	}
	return binary.LittleEndian.Uint32(data[offset:]), nil
}

func readInt32(data []byte, offset int) (int32, error) {
	v, err := readUint32(data, offset)
	return int32(v), err
}

func invalid(format string, args ...any) error {
	return &dataerr.UserError{
		Msg: fmt.Sprintf("%s: %s", ErrInvalid, fmt.Sprintf(format, args...)),
		Err: ErrInvalid,
	}
}
