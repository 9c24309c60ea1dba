package cmd

import (
	"context"
	"fmt"

	"vehicle-catalogue/core/config"
	"vehicle-catalogue/core/database"
	"vehicle-catalogue/core/logger"
	"vehicle-catalogue/core/storage"
	"vehicle-catalogue/feature/catalogue"
	"vehicle-catalogue/feature/catalogue/source"
	"vehicle-catalogue/feature/catalogue/store"
	"vehicle-catalogue/feature/integrity"

	"go.uber.org/zap"
)

// runtime bundles what every command needs.
type runtime struct {
	cfg    *config.Config
	logger *zap.Logger
}

func newRuntime() (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return &runtime{cfg: cfg, logger: logg}, nil
}

// storageClient connects to object storage.
func (r *runtime) storageClient() (storage.Client, error) {
	client, err := storage.NewClient(r.cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return client, nil
}

// source returns the configured data file source.
func (r *runtime) source() (source.Source, error) {
	if r.cfg.Data.Source != config.SourceBucket {
		return source.NewDirSource(r.cfg.Data.Dir), nil
	}
	client, err := r.storageClient()
	if err != nil {
		return nil, err
	}
	return source.NewBucketSource(client, r.cfg.Storage.Bucket, r.cfg.Storage.Prefix), nil
}

func (r *runtime) loader() (*catalogue.Loader, error) {
	src, err := r.source()
	if err != nil {
		return nil, err
	}
	return catalogue.NewLoader(src, catalogue.LoaderConfig{
		Installation:  r.cfg.Data.Installation,
		ClientFile:    r.cfg.Data.ClientFile,
		MoDir:         r.cfg.Data.MoDir,
		DefaultAuthor: r.cfg.Data.DefaultAuthor,
	}, r.logger), nil
}

// integrity builds the data source checks. The structure check needs a
// bucket client and is only wired for bucket sources.
func (r *runtime) integrity() (*integrity.Service, error) {
	src, err := r.source()
	if err != nil {
		return nil, err
	}
	opts := integrity.Options{
		Installation: r.cfg.Data.Installation,
		ClientFile:   r.cfg.Data.ClientFile,
	}
	if r.cfg.Data.Source == config.SourceBucket {
		client, err := r.storageClient()
		if err != nil {
			return nil, err
		}
		opts.Client = client
		opts.Bucket = r.cfg.Storage.Bucket
		opts.Prefix = r.cfg.Storage.Prefix
	}
	return integrity.NewService(src, opts, r.logger), nil
}

// store opens snapshot persistence. required controls whether a failure is
// an error or only disables persistence.
func (r *runtime) store(ctx context.Context, required bool) (*store.Store, error) {
	if !r.cfg.Database.Enabled() {
		if required {
			return nil, fmt.Errorf("database persistence is disabled (driver %q)", r.cfg.Database.Driver)
		}
		return nil, nil
	}

	st, err := r.connectStore(ctx)
	if err != nil {
		if required {
			return nil, err
		}
		r.logger.Warn("Optional database connection failed, snapshots will not be persisted", zap.Error(err))
		return nil, nil
	}
	return st, nil
}

func (r *runtime) connectStore(ctx context.Context) (*store.Store, error) {
	db, err := database.Connect(r.cfg.Database)
	if err != nil {
		return nil, err
	}
	st := store.New(db)
	if err := st.Migrate(ctx); err != nil {
		return nil, err
	}
	r.logger.Info("Connected to snapshot database", zap.String("driver", r.cfg.Database.Driver))
	return st, nil
}
