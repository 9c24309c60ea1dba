package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"vehicle-catalogue/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check the catalogue data source",
	Long:  `Checks that the data files parse, that the bucket holds the required files and that the game client can be detected.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		svc, err := rt.integrity()
		if err != nil {
			return err
		}

		report := svc.CheckAll(cmd.Context())

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return fmt.Errorf("failed to encode report: %w", err)
			}
		} else {
			printIntegrityReport(report)
		}

		rt.logger.Info("Integrity check completed", zap.Bool("healthy", report.Healthy))
		if !report.Healthy {
			return errors.New("integrity checks found problems")
		}
		return nil
	},
}

func printIntegrityReport(report *integrity.Report) {
	if s := report.Structure; s != nil {
		fmt.Println("\n=== Bucket Structure ===")
		if s.Error != "" {
			fmt.Printf("Error: %s\n", s.Error)
		} else {
			fmt.Printf("Missing: %d\n", len(s.Missing))
			for _, m := range s.Missing {
				fmt.Printf("  - %s*\n", m)
			}
		}
	}

	fmt.Println("\n=== Data Files ===")
	if report.FilesError != "" {
		fmt.Printf("Error: %s\n", report.FilesError)
	} else if f := report.Files; f != nil {
		fmt.Printf("Total Files: %d\n", f.Total)
		fmt.Printf("Built-in: %d\n", f.Builtins)
		fmt.Printf("Extra: %d\n", f.Extras)
		fmt.Printf("Game Versions: %d\n", f.GameVersions)
		fmt.Printf("Skipped: %d\n", len(f.Skipped))
		for _, s := range f.Skipped {
			fmt.Printf("  - %s\n", s)
		}
		fmt.Printf("Invalid: %d\n", len(f.Invalid))
		for _, issue := range f.Invalid {
			fmt.Printf("  - %s: %s\n", issue.Name, issue.Error)
		}
	}

	if inst := report.Installation; inst != nil {
		fmt.Println("\n=== Installation ===")
		fmt.Printf("Path: %s\n", inst.Path)
		if inst.Detected {
			fmt.Printf("Game Version: %s (#%d)\n", inst.GameVersionName, inst.GameVersionID)
		} else {
			fmt.Println("Game Version: not detected")
		}
		if inst.ClientFile != "" {
			fmt.Printf("Client File: %s (present: %t)\n", inst.ClientFile, inst.ClientFilePresent)
		}
	}
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.Flags().Bool("json", false, "Print the report as JSON")
}
