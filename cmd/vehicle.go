package cmd

import (
	"fmt"
	"maps"
	"slices"

	"vehicle-catalogue/core/override"
	"vehicle-catalogue/feature/catalogue"

	"github.com/spf13/cobra"
)

var vehicleGameVersion int

// vehicleCmd represents the vehicle command
var vehicleCmd = &cobra.Command{
	Use:   "vehicle <id>",
	Short: "Show one resolved vehicle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		l, err := rt.loader()
		if err != nil {
			return err
		}

		version := vehicleGameVersion
		if version == 0 {
			version = rt.cfg.Data.GameVersion
		}
		snap, err := l.Load(cmd.Context(), catalogue.Options{GameVersion: version})
		if err != nil {
			return fmt.Errorf("resolution failed: %w", err)
		}

		v, ok := snap.Vehicle(args[0])
		if !ok {
			return fmt.Errorf("vehicle %q is not in the catalogue for game version #%d", args[0], snap.GameVersion())
		}

		fmt.Printf("\n=== %s ===\n", v.ID())
		fmt.Printf("Country: %s\n", v.Country())
		fmt.Printf("Tier: %d\n", v.Tier())
		fmt.Printf("Class: %s\n", v.Class())
		fmt.Printf("Category: %s\n", v.Category())
		if roman, ok := v.Extra(override.TierRoman); ok {
			fmt.Printf("Tier (Roman): %s\n", roman)
		}

		extras := v.Extras()
		if len(extras) > 0 {
			fmt.Println("\nExtras:")
			for _, key := range slices.Sorted(maps.Keys(extras)) {
				fmt.Printf("  %s = %s\n", key, extras[key])
			}
		}
		return nil
	},
}

func init() {
	vehicleCmd.Flags().IntVar(&vehicleGameVersion, "game-version", 0, "Game version to resolve for (default: detected from the installation)")
	RootCmd.AddCommand(vehicleCmd)
}
