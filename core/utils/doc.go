// Package utils provides conversion helpers for decoded attribute trees.
//
// Client data arrives as nested map[string]any values whose leaves may be
// strings, numbers or bools depending on the extractor. The helpers here
// turn those leaves into the textual form stored in extra properties.
package utils
