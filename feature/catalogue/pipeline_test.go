package catalogue

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vehicle-catalogue/core/dataerr"
	"vehicle-catalogue/core/override"
	"vehicle-catalogue/core/warn"
	"vehicle-catalogue/feature/catalogue/source"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

const clientDump = `[
	{"id": "Tiger", "country": "germany", "tags": "heavyTank", "level": 7,
	 "userString": "Tiger", "speedLimits": {"forward": 40, "backward": 12}}
]`

// fixture lays out an installation reporting build 100 and a data dir.
func fixture(t *testing.T) (installation, data string) {
	t.Helper()
	root := t.TempDir()
	installation = filepath.Join(root, "game")
	data = filepath.Join(root, "data")

	writeFiles(t, installation, map[string]string{
		"version.xml":   "<root><version>v.1.0.0 #100</version></root>",
		"vehicles.json": clientDump,
	})
	writeFiles(t, data, map[string]string{
		"WotGameVersion-#90.yaml": "path_vehicle_list: vehicles.json\npath_mo_files: mo\n",
		"WotBuiltIn-1.csv":        "WOT-BUILTIN,2\ngermany-Tiger,germany,7,heavy,normal\nusa-T1,usa,1,light,normal\n",
		"WotBuiltIn-2.csv":        "WOT-BUILTIN,2\ngermany-Tiger,,8,,,#100\n",
		"WotData-Nick-Me-1.csv":   "WOT-DATA,2\n{{EN}},Nicknames\n{{Inherit}},NameFull/Wargaming\ngermany-Tiger,Tiger I\n",
		"WotData-Broken-Me-1.csv": "WOT-DATA,2\n{{Description}},x\n",
		"WotData-bad-name.csv":    "WOT-DATA,2\n",
		"README.txt":              "not data",
	})
	return installation, data
}

func TestLoader_Load(t *testing.T) {
	installation, data := fixture(t)
	core, logs := observer.New(zapcore.InfoLevel)

	l := NewLoader(source.NewDirSource(data), LoaderConfig{Installation: installation, DefaultAuthor: "Wargaming"}, zap.New(core))
	snap, err := l.Load(context.Background(), Options{})
	require.NoError(t, err)

	assert.Equal(t, 100, snap.GameVersion())
	require.Len(t, snap.Vehicles(), 2)

	tiger, ok := snap.Vehicle("germany-Tiger")
	require.True(t, ok)
	assert.Equal(t, 8, tiger.Tier())
	assert.Equal(t, override.CountryGermany, tiger.Country())

	nick, ok := tiger.ExtraByName("Nick")
	require.True(t, ok)
	assert.Equal(t, "Tiger I", nick)

	name, ok := tiger.ExtraByName("NameFull")
	require.True(t, ok)
	assert.Equal(t, "Tiger", name)

	speed, ok := tiger.ExtraByName("Speed/Forward")
	require.True(t, ok)
	assert.Equal(t, "40", speed)

	_, ok = snap.Vehicle("usa-T1")
	assert.True(t, ok)

	warnings := strings.Join(snap.Warnings(), "\n")
	assert.Contains(t, warnings, `Skipped "WotData-Broken-Me-1.csv" because the file could not be parsed`)
	assert.Contains(t, warnings, `Skipped "WotData-bad-name.csv" because it has the wrong number of filename parts`)
	assert.NotContains(t, warnings, NoFilesAvailable)

	assert.Equal(t, 1, logs.FilterMessage("Catalogue resolved").Len())
	assert.Equal(t, 1, logs.FilterMessage("Catalogue resolved with warnings").Len())
}

func TestLoader_Load_ExplicitGameVersion(t *testing.T) {
	installation, data := fixture(t)

	l := NewLoader(source.NewDirSource(data), LoaderConfig{Installation: installation}, nil)
	snap, err := l.Load(context.Background(), Options{GameVersion: 99})
	require.NoError(t, err)

	assert.Equal(t, 99, snap.GameVersion())
	tiger, ok := snap.Vehicle("germany-Tiger")
	require.True(t, ok)
	assert.Equal(t, 7, tiger.Tier())
}

func TestLoader_Load_NoGameVersion(t *testing.T) {
	l := NewLoader(source.NewDirSource(t.TempDir()), LoaderConfig{Installation: t.TempDir()}, nil)

	_, err := l.Load(context.Background(), Options{})
	require.Error(t, err)
	assert.True(t, dataerr.IsUserError(err))
}

func TestLoader_Load_NoFiles(t *testing.T) {
	installation := t.TempDir()
	writeFiles(t, installation, map[string]string{
		"version.xml": "<root><version>1.0 #5</version></root>",
	})

	l := NewLoader(source.NewDirSource(t.TempDir()), LoaderConfig{Installation: installation}, nil)
	snap, err := l.Load(context.Background(), Options{})
	require.NoError(t, err)

	assert.Empty(t, snap.Vehicles())
	assert.Equal(t, []string{NoFilesAvailable}, snap.Warnings())
}

func TestLoader_Load_ClientDumpMissing(t *testing.T) {
	installation, data := fixture(t)

	cfg := LoaderConfig{Installation: installation, ClientFile: filepath.Join(installation, "missing.json")}
	snap, err := NewLoader(source.NewDirSource(data), cfg, nil).Load(context.Background(), Options{})
	require.NoError(t, err)

	assert.Contains(t, strings.Join(snap.Warnings(), "\n"), "Could not load the game client data")
	// Without the client baseline the inherited names are gone.
	tiger, ok := snap.Vehicle("germany-Tiger")
	require.True(t, ok)
	_, ok = tiger.ExtraByName("NameFull")
	assert.False(t, ok)
}

func TestLoader_ClientData(t *testing.T) {
	installation, data := fixture(t)
	w := &warn.List{}

	cd, err := NewLoader(source.NewDirSource(data), LoaderConfig{Installation: installation}, nil).
		ClientData(context.Background(), Options{}, w)
	require.NoError(t, err)

	assert.True(t, cd.Loaded)
	assert.Equal(t, 100, cd.GameVersion)
	require.NotNil(t, cd.Config)
	assert.Equal(t, 90, cd.Config.GameVersionID)
	require.Len(t, cd.Builtin.Rows, 1)
	assert.Equal(t, "germany-Tiger", cd.Builtin.Rows[0].Entity)
	assert.NotEmpty(t, cd.Columns)
}

func TestLoader_Load_BadGameVersionConfig(t *testing.T) {
	installation, data := fixture(t)
	writeFiles(t, data, map[string]string{"WotGameVersion-#95.yaml": "unknown_key: 1\n"})

	snap, err := NewLoader(source.NewDirSource(data), LoaderConfig{Installation: installation}, nil).
		Load(context.Background(), Options{})
	require.NoError(t, err)

	assert.Contains(t, strings.Join(snap.Warnings(), "\n"), `Skipped "WotGameVersion-#95.yaml" because the file could not be parsed`)
	// The older config still applies.
	tiger, _ := snap.Vehicle("germany-Tiger")
	_, ok := tiger.ExtraByName("NameFull")
	assert.True(t, ok)
}
