// Package export writes the data extracted from the game client back out as
// ordinary data files, so that it can be inspected, diffed and used as a
// starting point for hand-maintained overrides.
//
// Write produces Exported-WotBuiltIn-0.csv and one
// Exported-WotData-<file>-<author>-0.csv per property family. Every run
// replaces the previous export. An Uploader mirrors the files into object
// storage.
package export
