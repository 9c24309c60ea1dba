// Package gameversion identifies the installed game client and the settings
// that apply to it.
//
// DetectInstallation reads the client's version.xml to learn its build id.
// Game version configs are small YAML files named
// WotGameVersion-#<id>.yaml; each applies from its id onwards, so Select
// picks the newest one that is not newer than the installed client.
package gameversion
