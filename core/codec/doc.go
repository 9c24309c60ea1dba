// Package codec provides the deterministic binary encoding used for resolved
// snapshots, and the content digest derived from it.
//
// Encoding uses CBOR with Core Deterministic Encoding (RFC 8949 §4.2): map
// keys are sorted and integers take their smallest form, so the same logical
// value always yields the same bytes. Digest hashes those bytes with BLAKE3,
// which makes "did anything change between two runs" a string comparison.
package codec
