package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"vehicle-catalogue/core/snapshot"
	"vehicle-catalogue/feature/catalogue"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	resolveGameVersion int
	resolvePersist     bool
	resolveOut         string
)

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve the catalogue once and print a summary",
	Long: `Reads every data file, resolves the catalogue for one game version and
prints a summary with all warnings. Use --out to save the snapshot (.json for
a readable document, anything else for the binary encoding).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		startTime := time.Now()

		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		l, err := rt.loader()
		if err != nil {
			return err
		}

		version := resolveGameVersion
		if version == 0 {
			version = rt.cfg.Data.GameVersion
		}
		snap, err := l.Load(ctx, catalogue.Options{GameVersion: version})
		if err != nil {
			return fmt.Errorf("resolution failed: %w", err)
		}

		digest, err := snap.Digest()
		if err != nil {
			return err
		}

		if resolveOut != "" {
			if err := writeSnapshot(resolveOut, snap); err != nil {
				return err
			}
			rt.logger.Info("Snapshot saved", zap.String("file", resolveOut))
		}

		if resolvePersist {
			st, err := rt.store(ctx, true)
			if err != nil {
				return err
			}
			rec, created, err := st.Save(ctx, snap)
			if err != nil {
				return err
			}
			rt.logger.Info("Snapshot persisted", zap.String("snapshot_id", rec.ID), zap.Bool("created", created))
		}

		fmt.Println("\n=== Catalogue ===")
		fmt.Printf("Game Version: #%d\n", snap.GameVersion())
		fmt.Printf("Vehicles: %d\n", len(snap.Vehicles()))
		fmt.Printf("Properties: %d\n", len(snap.Properties()))
		fmt.Printf("Digest: %s\n", digest)
		fmt.Printf("Execution Time: %s\n", time.Since(startTime).String())
		if warnings := snap.Warnings(); len(warnings) > 0 {
			fmt.Printf("\nWarnings (%d):\n", len(warnings))
			for _, w := range warnings {
				fmt.Printf("  - %s\n", w)
			}
		}
		return nil
	},
}

func writeSnapshot(path string, snap *snapshot.Snapshot) error {
	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err = json.MarshalIndent(snap.Document(), "", "  ")
	} else {
		data, err = snap.Encode()
	}
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

func init() {
	resolveCmd.Flags().IntVar(&resolveGameVersion, "game-version", 0, "Game version to resolve for (default: detected from the installation)")
	resolveCmd.Flags().BoolVar(&resolvePersist, "persist", false, "Save the snapshot to the database")
	resolveCmd.Flags().StringVar(&resolveOut, "out", "", "Write the snapshot to this file")
	RootCmd.AddCommand(resolveCmd)
}
