// Package source locates the data files of a catalogue.
//
// A Source hides where files live: DirSource reads a local directory and
// BucketSource reads objects under a key prefix of an S3/MinIO bucket.
// Discover then classifies the listed names by their pattern:
//
//	WotBuiltIn-<fileVersion>.csv                 built-in overrides
//	WotData-<property>-<author>-<fileVersion>.csv extra properties
//	WotGameVersion-#<gameVersionId>.yaml         game version settings
//
// File versions start at 1; version 0 is reserved for data taken from the
// game client.
package source
