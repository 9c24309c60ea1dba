// Package catalogue resolves the vehicle catalogue and serves it over HTTP.
//
// A Loader performs one resolution pass: it classifies the files of a data
// source, extracts the baseline from the game client, parses and merges all
// override files, resolves property inheritance and builds an immutable
// snapshot for one game version. Problems with individual files become
// warnings; only a missing game version or an unreadable source fails the
// pass.
//
// The Service caches one snapshot per game version, resolving each at most
// once per TTL even under concurrent requests, and optionally persists
// snapshots through the store package. The Feature exposes it read-only:
//
//	GET /catalogue/:version/vehicles
//	GET /catalogue/:version/vehicles/:id
//	GET /catalogue/:version/properties
//	GET /catalogue/:version/warnings
//
// where :version is a game version id or "current".
package catalogue
