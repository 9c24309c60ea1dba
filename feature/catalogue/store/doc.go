// Package store keeps resolved snapshots in a relational database (MySQL or
// SQLite through gorm) so that a service can answer queries before, or
// without, re-reading the data files.
//
// Each record holds the snapshot's deterministic encoding and its digest.
// Saving the same content twice for a game version writes nothing.
package store
