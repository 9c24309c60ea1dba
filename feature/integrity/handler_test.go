package integrity

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"vehicle-catalogue/feature/catalogue/source"
	"vehicle-catalogue/feature/integrity/checks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(svc *Service) *fiber.App {
	app := fiber.New()
	_ = NewFeature(svc).Load(app)
	return app
}

func get(t *testing.T, app *fiber.App, url string, out any) int {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", url, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if out != nil {
		require.NoError(t, json.Unmarshal(body, out), string(body))
	}
	return resp.StatusCode
}

func TestHandleFilesCheck(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"WotBuiltIn-1.csv":   "WOT-BUILTIN,2\n",
		"WotBuiltIn-bad.csv": "WOT-BUILTIN,2\n",
	})
	app := newApp(NewService(source.NewDirSource(dir), Options{}, nil))

	var report checks.FilesReport
	status := get(t, app, "/integrity/files", &report)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 1, report.Builtins)
	assert.Len(t, report.Skipped, 1)
}

func TestHandleFilesCheck_Error(t *testing.T) {
	app := newApp(NewService(source.NewDirSource(filepath.Join(t.TempDir(), "missing")), Options{}, nil))

	var body map[string]string
	status := get(t, app, "/integrity/files", &body)
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Contains(t, body["error"], "failed to list data directory")
}

func TestHandleStructureCheck_NoBucket(t *testing.T) {
	app := newApp(NewService(source.NewDirSource(t.TempDir()), Options{}, nil))

	status := get(t, app, "/integrity/structure", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestHandleInstallationCheck(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "version.xml"), []byte("<r><version>v.1.0 #42</version></r>"), 0o644))
	app := newApp(NewService(source.NewDirSource(t.TempDir()), Options{Installation: dir}, nil))

	var report checks.InstallationReport
	status := get(t, app, "/integrity/installation", &report)
	assert.Equal(t, fiber.StatusOK, status)
	assert.True(t, report.Detected)
	assert.Equal(t, 42, report.GameVersionID)
}

func TestHandleIntegrityCheck(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"WotBuiltIn-1.csv": "WOT-BUILTIN,2\n",
	})
	app := newApp(NewService(source.NewDirSource(dir), Options{}, nil))

	var report Report
	status := get(t, app, "/integrity", &report)
	assert.Equal(t, fiber.StatusOK, status)
	assert.True(t, report.Healthy)
	require.NotNil(t, report.Files)
	assert.Equal(t, 1, report.Files.Builtins)
}

func TestFeature(t *testing.T) {
	f := NewFeature(nil)
	assert.Equal(t, "integrity", f.Name())
	assert.False(t, f.IsEnabled())
}
