// Package motable decodes the game's compiled string tables (.mo files).
//
// A table is a little-endian binary file laid out as:
//
//	offset 0   uint32 magic (0x950412DE)
//	offset 8   int32  entry count N
//	offset 12  4 × int32 reserved
//	offset 28  N × (int32 length, int32 offset)   key descriptors
//	           N × (int32 length, int32 offset)   value descriptors
//
// Each descriptor points at an absolute run of UTF-8 bytes elsewhere in the
// file. Decoding yields a key → value map; a repeated key keeps the last value.
//
// Any structural problem (wrong magic, negative sizes, reading past the end of
// the data) is fatal and reported as a *dataerr.UserError wrapping ErrInvalid.
package motable
