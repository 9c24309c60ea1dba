package checks

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckInstallation(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "version.xml"), []byte("<r><version>v.1.2 #300</version></r>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vehicles.json"), []byte("[]"), 0o644))

	report := CheckInstallation(dir, "vehicles.json")
	assert.True(t, report.Detected)
	assert.Equal(t, 300, report.GameVersionID)
	assert.Equal(t, "1.2", report.GameVersionName)
	assert.True(t, report.ClientFilePresent)

	report = CheckInstallation(dir, "other.json")
	assert.False(t, report.ClientFilePresent)
}

func TestCheckInstallation_NotDetected(t *testing.T) {
	report := CheckInstallation(t.TempDir(), "")
	assert.False(t, report.Detected)
	assert.Zero(t, report.GameVersionID)
	assert.False(t, report.ClientFilePresent)
}
