package cmd

import (
	"fmt"

	"vehicle-catalogue/core/logger"
	"vehicle-catalogue/core/storage"
	"vehicle-catalogue/core/warn"
	"vehicle-catalogue/feature/catalogue"
	"vehicle-catalogue/feature/catalogue/export"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var exportUpload bool

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the data extracted from the game client",
	Long: `Writes the client's built-in data and extra properties as data files into
the export directory, replacing any previous export. With --upload the files
are also published to the storage bucket.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		l, err := rt.loader()
		if err != nil {
			return err
		}

		w := &warn.List{}
		data, err := l.ClientData(ctx, catalogue.Options{GameVersion: rt.cfg.Data.GameVersion}, w)
		if err != nil {
			return err
		}
		logger.WithWarnings(rt.logger, "Client data loaded with warnings", w.All())
		if !data.Loaded {
			return fmt.Errorf("no game client data available for game version #%d", data.GameVersion)
		}

		files, err := export.Write(rt.cfg.Data.ExportDir, data.Builtin, data.Columns)
		if err != nil {
			return err
		}
		rt.logger.Info("Client data exported",
			zap.String("dir", rt.cfg.Data.ExportDir),
			zap.Int("files", len(files)),
			zap.Int("vehicles", len(data.Builtin.Rows)))

		if exportUpload {
			client, err := rt.storageClient()
			if err != nil {
				return err
			}
			if err := storage.EnsureBucket(ctx, client, rt.cfg.Storage.Bucket, rt.cfg.Storage.Region); err != nil {
				return err
			}
			prefix := storage.ObjectKey(rt.cfg.Storage.Prefix, "export")
			keys, err := export.NewUploader(client, rt.cfg.Storage.Bucket, prefix).Upload(ctx, files)
			if err != nil {
				return err
			}
			rt.logger.Info("Export uploaded", zap.String("bucket", rt.cfg.Storage.Bucket), zap.Strings("keys", keys))
		}

		for _, f := range files {
			fmt.Println(f)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().BoolVar(&exportUpload, "upload", false, "Upload the exported files to the storage bucket")
	RootCmd.AddCommand(exportCmd)
}
