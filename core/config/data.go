package config

import "fmt"

// Data source kinds.
const (
	SourceDir    = "dir"
	SourceBucket = "bucket"
)

// DataConfig holds the settings of the catalogue resolution pass.
type DataConfig struct {
	// Dir is the directory holding the override and game version files.
	Dir string `mapstructure:"dir" default:"data"`
	// Source selects where data files are read from (dir or bucket).
	Source string `mapstructure:"source" default:"dir"`
	// Installation is the game installation directory (with version.xml).
	Installation string `mapstructure:"installation" default:""`
	// GameVersion overrides the game version detected from the
	// installation. Zero means detect.
	GameVersion int `mapstructure:"game_version" default:"0"`
	// DefaultAuthor is preferred when an extra property is requested
	// without an author and several authors provide it.
	DefaultAuthor string `mapstructure:"default_author" default:"Wargaming"`
	// ClientFile is the decoded vehicle dump. Empty means take the path
	// from the game version config.
	ClientFile string `mapstructure:"client_file" default:""`
	// MoDir holds the .mo translation tables. Empty means take the path
	// from the game version config.
	MoDir string `mapstructure:"mo_dir" default:""`
	// ExportDir receives the client data export.
	ExportDir string `mapstructure:"export_dir" default:"export"`
	// CacheTTLSeconds is how long the server keeps a resolved snapshot.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"300"`
}

// Validate checks the fields that have a fixed set of values.
func (c DataConfig) Validate() error {
	switch c.Source {
	case SourceDir, SourceBucket:
	default:
		return fmt.Errorf("invalid data source %q (expected %q or %q)", c.Source, SourceDir, SourceBucket)
	}
	if c.GameVersion < 0 {
		return fmt.Errorf("invalid game version %d", c.GameVersion)
	}
	if c.CacheTTLSeconds < 0 {
		return fmt.Errorf("invalid cache ttl %d", c.CacheTTLSeconds)
	}
	return nil
}
