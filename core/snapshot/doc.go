// Package snapshot projects resolved override data onto one game version and
// freezes the result.
//
// Build takes the output of the earlier stages (the merged built-in table and
// the inherited extra properties) together with a target game version. For
// every vehicle it keeps the rows that apply at that version and resolves
// each of the four built-in attributes independently: the last applicable
// row that sets an attribute wins. A vehicle with no applicable rows simply
// does not exist in that version; a vehicle with applicable rows but an
// attribute left unset is dropped with a warning.
//
// Extra property values are resolved the same way, one property at a time,
// and only for vehicles that made it into the snapshot. A property is listed
// in Properties only if it contributed at least one value.
//
// A Snapshot is never modified after Build returns. Every accessor hands out
// copies, so a snapshot can be shared between goroutines freely.
//
// Document, Encode and Decode convert a snapshot to and from its CBOR form
// (see package codec). Encoding is deterministic; Digest identifies the
// content of a snapshot.
package snapshot
