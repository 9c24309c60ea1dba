// Package database handles database connections and schema inspection.
//
// It wraps GORM to open either MySQL or SQLite depending on the configured
// driver. The catalogue uses the database only to persist finished
// snapshots, so a failed connection is reported to the caller and never
// stops resolution.
//
// # Schema Inspection
//
// GetTableColumns lists a table's columns in a driver neutral form (SHOW
// COLUMNS on MySQL, PRAGMA table_info on SQLite). HasColumns builds on it to
// verify that a migrated table carries the columns the store relies on.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("Persistence disabled", zap.Error(err))
//	}
//
//	missing, err := database.HasColumns(db, "catalogue_snapshots", "digest", "payload")
package database
