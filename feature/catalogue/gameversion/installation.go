package gameversion

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
)

var versionPattern = regexp.MustCompile(`^\s*(?:v\.)?(?P<name>.*?)\s+#(?P<build>\d+)(?P<suffix>.*?)\s*$`)

// Installation describes a game client directory.
type Installation struct {
	Path string
	// GameVersionID is the client's build id, or nil when the directory
	// does not hold a recognizable client.
	GameVersionID *int
	// GameVersionName is the human readable version, empty when
	// GameVersionID is nil.
	GameVersionName string
}

type versionFile struct {
	Version string `xml:"version"`
}

// DetectInstallation reads <path>/version.xml. Problems with the file are
// not errors: the returned installation simply has no version.
func DetectInstallation(path string) Installation {
	inst := Installation{Path: path}

	data, err := os.ReadFile(filepath.Join(path, "version.xml"))
	if err != nil {
		return inst
	}
	var vf versionFile
	if err := xml.Unmarshal(data, &vf); err != nil {
		return inst
	}

	name, build, ok := ParseVersionString(vf.Version)
	if !ok {
		return inst
	}
	inst.GameVersionID = &build
	inst.GameVersionName = name
	return inst
}

// ParseVersionString splits a client version string such as
// "v.0.9.15.1 #1090" into its name and build id.
func ParseVersionString(s string) (name string, build int, ok bool) {
	m := versionPattern.FindStringSubmatch(s)
	if m == nil {
		return "", 0, false
	}
	build, err := strconv.Atoi(m[versionPattern.SubexpIndex("build")])
	if err != nil {
		return "", 0, false
	}
	return m[versionPattern.SubexpIndex("name")], build, true
}

func (i Installation) String() string {
	name := i.GameVersionName
	if i.GameVersionID == nil {
		name = "?"
	}
	return name + ":  " + i.Path
}
