package checks

import (
	"os"
	"path/filepath"

	"vehicle-catalogue/feature/catalogue/gameversion"
)

// InstallationReport describes the detected game client.
type InstallationReport struct {
	Path            string `json:"path"`
	Detected        bool   `json:"detected"`
	GameVersionID   int    `json:"game_version_id,omitempty"`
	GameVersionName string `json:"game_version_name,omitempty"`

	// ClientFile is the vehicle dump that would be used, if any.
	ClientFile        string `json:"client_file,omitempty"`
	ClientFilePresent bool   `json:"client_file_present"`
}

// CheckInstallation detects the client at path. clientFile, when not
// empty, is checked for existence.
func CheckInstallation(path, clientFile string) InstallationReport {
	inst := gameversion.DetectInstallation(path)
	report := InstallationReport{Path: path, ClientFile: clientFile}
	if inst.GameVersionID != nil {
		report.Detected = true
		report.GameVersionID = *inst.GameVersionID
		report.GameVersionName = inst.GameVersionName
	}
	if clientFile != "" {
		if !filepath.IsAbs(clientFile) && path != "" {
			clientFile = filepath.Join(path, clientFile)
		}
		if info, err := os.Stat(clientFile); err == nil && !info.IsDir() {
			report.ClientFilePresent = true
		}
	}
	return report
}
