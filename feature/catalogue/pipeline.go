package catalogue

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"time"

	"vehicle-catalogue/core/dataerr"
	"vehicle-catalogue/core/inherit"
	"vehicle-catalogue/core/logger"
	"vehicle-catalogue/core/override"
	"vehicle-catalogue/core/snapshot"
	"vehicle-catalogue/core/warn"
	"vehicle-catalogue/feature/catalogue/client"
	"vehicle-catalogue/feature/catalogue/gameversion"
	"vehicle-catalogue/feature/catalogue/source"

	"go.uber.org/zap"
)

// NoFilesAvailable is warned when the data source lacks built-in or game
// version files.
const NoFilesAvailable = "Could not load any game version data files and/or any built-in property data files."

// Options tune a single resolution.
type Options struct {
	// GameVersion selects the game version to resolve for. Zero means the
	// version of the detected installation.
	GameVersion int
	// DefaultAuthor overrides the loader's default author when set.
	DefaultAuthor string
}

// LoaderConfig configures a Loader.
type LoaderConfig struct {
	// Installation is the game client directory.
	Installation string
	// ClientFile is the vehicle dump. Empty means use the path from the
	// game version config, relative to the installation.
	ClientFile string
	// MoDir holds the string tables. Empty means use the path from the game
	// version config, relative to the installation.
	MoDir         string
	DefaultAuthor string
}

// ClientData is what the game client contributes to a resolution.
type ClientData struct {
	Installation gameversion.Installation
	Config       *gameversion.Config
	GameVersion  int
	Builtin      override.BuiltinFile
	Columns      []override.ExtraColumn
	// Loaded is false when no client dump was available.
	Loaded bool
}

// Loader runs the resolution pass: it reads every data file from a source,
// adds the client baseline and builds a snapshot.
type Loader struct {
	src    source.Source
	cfg    LoaderConfig
	logger *zap.Logger
}

// NewLoader creates a loader reading data files from src.
func NewLoader(src source.Source, cfg LoaderConfig, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{src: src, cfg: cfg, logger: logger}
}

// Load resolves the catalogue. Recoverable problems end up in the
// snapshot's warnings; a missing game version is a UserError.
func (l *Loader) Load(ctx context.Context, opts Options) (*snapshot.Snapshot, error) {
	start := time.Now()
	w := &warn.List{}

	names, err := l.src.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list data files in %s: %w", l.src, err)
	}
	catalog := source.Discover(names, w)

	data, err := l.clientData(ctx, catalog, opts, w)
	if err != nil {
		return nil, err
	}

	builtins := []override.BuiltinFile{}
	if data.Loaded {
		builtins = append(builtins, data.Builtin)
	}
	for _, ref := range catalog.Builtins {
		raw, err := source.ReadAll(ctx, l.src, ref.Name)
		if err != nil {
			return nil, err
		}
		file, err := override.ParseBuiltinFile(ref.Name, ref.FileVersion, bytes.NewReader(raw))
		if err != nil {
			skipUnparsable(w, ref.Name, err)
			continue
		}
		builtins = append(builtins, file)
	}

	columns := append([]override.ExtraColumn{}, data.Columns...)
	for _, ref := range catalog.Extras {
		raw, err := source.ReadAll(ctx, l.src, ref.Name)
		if err != nil {
			return nil, err
		}
		cols, err := override.ParseExtraFile(ref.Name, ref.PropertyName, ref.Author, ref.FileVersion, bytes.NewReader(raw))
		if err != nil {
			skipUnparsable(w, ref.Name, err)
			continue
		}
		columns = append(columns, cols...)
	}

	if len(catalog.Builtins) == 0 || len(catalog.GameVersions) == 0 {
		w.Add(NoFilesAvailable)
	}

	table := override.MergeBuiltins(builtins, w)
	props := inherit.Resolve(override.MergeExtras(columns, w), w)

	author := l.cfg.DefaultAuthor
	if opts.DefaultAuthor != "" {
		author = opts.DefaultAuthor
	}
	snap := snapshot.Build(snapshot.Input{
		GameVersion:   data.GameVersion,
		Builtins:      table,
		Properties:    props,
		DefaultAuthor: author,
		Warnings:      w,
	})

	logger.WithWarnings(l.logger, "Catalogue resolved with warnings", snap.Warnings())
	l.logger.Info("Catalogue resolved",
		zap.Int("game_version", snap.GameVersion()),
		zap.Int("vehicles", len(snap.Vehicles())),
		zap.Int("properties", len(snap.Properties())),
		zap.Duration("duration", time.Since(start)))
	return snap, nil
}

// ClientData detects the installation and extracts its baseline data.
// Warnings go to w.
func (l *Loader) ClientData(ctx context.Context, opts Options, w *warn.List) (ClientData, error) {
	names, err := l.src.List(ctx)
	if err != nil {
		return ClientData{}, fmt.Errorf("failed to list data files in %s: %w", l.src, err)
	}
	return l.clientData(ctx, source.Discover(names, w), opts, w)
}

func (l *Loader) clientData(ctx context.Context, catalog source.Catalog, opts Options, w *warn.List) (ClientData, error) {
	data := ClientData{Installation: gameversion.DetectInstallation(l.cfg.Installation)}

	switch {
	case opts.GameVersion > 0:
		data.GameVersion = opts.GameVersion
	case data.Installation.GameVersionID != nil:
		data.GameVersion = *data.Installation.GameVersionID
	default:
		return data, dataerr.Newf("could not determine the game version of the installation at %q", l.cfg.Installation)
	}

	configs, err := l.loadConfigs(ctx, catalog.GameVersions, w)
	if err != nil {
		return data, err
	}
	data.Config = gameversion.Select(configs, data.GameVersion)

	dump := l.clientPath(l.cfg.ClientFile, data.Config, func(c *gameversion.Config) string { return c.PathVehicleList })
	if dump == "" {
		l.logger.Debug("No client vehicle list configured")
		return data, nil
	}

	vehicles, err := client.NewJSONExtractor(dump).Extract(ctx)
	if err != nil {
		w.Addf("Could not load the game client data: %v", err)
		return data, nil
	}

	var names client.Resolver
	if moDir := l.clientPath(l.cfg.MoDir, data.Config, func(c *gameversion.Config) string { return c.PathMoFiles }); moDir != "" {
		names = client.NewLocalizer(moDir, w)
	}
	data.Builtin, data.Columns = client.Baseline(vehicles, names, data.GameVersion, w)
	data.Loaded = true
	return data, nil
}

// clientPath prefers an explicit path, then the game version config's path
// relative to the installation.
func (l *Loader) clientPath(explicit string, cfg *gameversion.Config, fromConfig func(*gameversion.Config) string) string {
	if explicit != "" {
		return explicit
	}
	if cfg == nil || fromConfig(cfg) == "" {
		return ""
	}
	return filepath.Join(l.cfg.Installation, filepath.FromSlash(fromConfig(cfg)))
}

func (l *Loader) loadConfigs(ctx context.Context, refs []source.GameVersionRef, w *warn.List) ([]*gameversion.Config, error) {
	configs := make([]*gameversion.Config, 0, len(refs))
	for _, ref := range refs {
		raw, err := source.ReadAll(ctx, l.src, ref.Name)
		if err != nil {
			return nil, err
		}
		cfg, err := gameversion.Load(bytes.NewReader(raw), ref.GameVersionID)
		if err != nil {
			skipUnparsable(w, ref.Name, err)
			continue
		}
		configs = append(configs, cfg)
	}
	gameversion.Sort(configs)
	return configs, nil
}

func skipUnparsable(w *warn.List, name string, err error) {
	w.Addf("Skipped %q because the file could not be parsed: %s", name, err)
}
