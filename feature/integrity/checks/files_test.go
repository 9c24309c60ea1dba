package checks

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"vehicle-catalogue/feature/catalogue/source"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckFiles(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"WotBuiltIn-1.csv":        "WOT-BUILTIN,2\nusa-T1,usa,1,light,normal\n",
		"WotBuiltIn-2.csv":        "WOT-BUILTIN,1\n",
		"WotData-Names-Me-1.csv":  "WOT-DATA,2\nusa-T1,T1\n",
		"WotGameVersion-#10.yaml": "path_mods: mods\n",
		"WotGameVersion-#11.yaml": "nonsense: true\n",
		"WotBuiltIn-zero.csv":     "WOT-BUILTIN,2\n",
		"notes.txt":               "ignored",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	report, err := CheckFiles(context.Background(), source.NewDirSource(dir))
	require.NoError(t, err)

	assert.Equal(t, 7, report.Total)
	assert.Equal(t, 2, report.Builtins)
	assert.Equal(t, 1, report.Extras)
	assert.Equal(t, 2, report.GameVersions)
	require.Len(t, report.Skipped, 1)
	assert.Contains(t, report.Skipped[0], "WotBuiltIn-zero.csv")

	require.Len(t, report.Invalid, 2)
	assert.Equal(t, "WotBuiltIn-2.csv", report.Invalid[0].Name)
	assert.Equal(t, "WotGameVersion-#11.yaml", report.Invalid[1].Name)
}

func TestCheckFiles_Empty(t *testing.T) {
	report, err := CheckFiles(context.Background(), source.NewDirSource(t.TempDir()))
	require.NoError(t, err)
	assert.Zero(t, report.Total)
	assert.NotNil(t, report.Skipped)
	assert.NotNil(t, report.Invalid)
}

func TestCheckFiles_ListError(t *testing.T) {
	_, err := CheckFiles(context.Background(), source.NewDirSource(filepath.Join(t.TempDir(), "missing")))
	assert.Error(t, err)
}
