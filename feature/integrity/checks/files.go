package checks

import (
	"bytes"
	"context"

	"vehicle-catalogue/core/override"
	"vehicle-catalogue/core/warn"
	"vehicle-catalogue/feature/catalogue/gameversion"
	"vehicle-catalogue/feature/catalogue/source"
)

// FileIssue describes a data file that could not be parsed.
type FileIssue struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

// FilesReport summarizes the data files of a source.
type FilesReport struct {
	Total        int         `json:"total"`
	Builtins     int         `json:"builtins"`
	Extras       int         `json:"extras"`
	GameVersions int         `json:"game_versions"`
	Skipped      []string    `json:"skipped"`
	Invalid      []FileIssue `json:"invalid"`
}

// CheckFiles classifies and parses every data file of src without merging
// them. Badly named files end up in Skipped, unparsable ones in Invalid.
func CheckFiles(ctx context.Context, src source.Source) (*FilesReport, error) {
	names, err := src.List(ctx)
	if err != nil {
		return nil, err
	}

	w := &warn.List{}
	catalog := source.Discover(names, w)
	report := &FilesReport{
		Total:        len(names),
		Builtins:     len(catalog.Builtins),
		Extras:       len(catalog.Extras),
		GameVersions: len(catalog.GameVersions),
		Skipped:      w.All(),
		Invalid:      []FileIssue{},
	}
	if report.Skipped == nil {
		report.Skipped = []string{}
	}

	check := func(name string, parse func(raw []byte) error) error {
		raw, err := source.ReadAll(ctx, src, name)
		if err != nil {
			return err
		}
		if err := parse(raw); err != nil {
			report.Invalid = append(report.Invalid, FileIssue{Name: name, Error: err.Error()})
		}
		return nil
	}

	for _, ref := range catalog.Builtins {
		err := check(ref.Name, func(raw []byte) error {
			_, err := override.ParseBuiltinFile(ref.Name, ref.FileVersion, bytes.NewReader(raw))
			return err
		})
		if err != nil {
			return nil, err
		}
	}
	for _, ref := range catalog.Extras {
		err := check(ref.Name, func(raw []byte) error {
			_, err := override.ParseExtraFile(ref.Name, ref.PropertyName, ref.Author, ref.FileVersion, bytes.NewReader(raw))
			return err
		})
		if err != nil {
			return nil, err
		}
	}
	for _, ref := range catalog.GameVersions {
		err := check(ref.Name, func(raw []byte) error {
			_, err := gameversion.Load(bytes.NewReader(raw), ref.GameVersionID)
			return err
		})
		if err != nil {
			return nil, err
		}
	}

	return report, nil
}
