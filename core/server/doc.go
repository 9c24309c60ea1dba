// Package server holds the HTTP server configuration.
//
// The start command builds the Fiber application itself; this package only
// defines the settings it reads (listen port, API key, read timeout) and
// validates them before the server starts.
package server
