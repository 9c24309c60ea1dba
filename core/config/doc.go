// Package config provides configuration management for the vehicle catalogue.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Defaults come from the `default` struct tags of each
// section, registered by reflection so that every key can also be set from
// the environment (DATA_DIR, SERVER_PORT, DATABASE_DRIVER, ...).
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Storage: S3/MinIO credentials, bucket and key prefix of the data files
//   - Log: Logging level and format
//   - Database: snapshot persistence (mysql, sqlite or none)
//   - Data: data directory, game installation, default author, export
//     directory and snapshot cache lifetime
//
// A loaded Config is passed explicitly to whatever needs it; nothing reads
// configuration from package state.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Data.Dir)
package config
