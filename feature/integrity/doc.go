// Package integrity provides health checks for the catalogue data source.
//
// Unlike the 'catalogue' package, which merges the data files into a
// snapshot, this package only validates that the inputs are usable.
//
// # Checks Provided
//
//   - Structure: the bucket exists and holds at least one built-in file and one game version config.
//   - Files: every recognized data file parses on its own. Malformed names are reported as skipped.
//   - Installation: the game client version can be detected and the vehicle dump exists.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/structure : Runs the structure check (404 for directory sources).
//   - GET /integrity/files : Runs the data file check.
//   - GET /integrity/installation : Runs the installation check.
package integrity
