package gameversion

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"gopkg.in/yaml.v3"
)

// Config holds the settings that may change between game versions. It
// applies from GameVersionID onwards.
type Config struct {
	// GameVersionID comes from the file name, not the content.
	GameVersionID int `yaml:"-"`

	PathMods          string `yaml:"path_mods"`
	PathVehicleList   string `yaml:"path_vehicle_list"`
	PathMoFiles       string `yaml:"path_mo_files"`
	PathDestination   string `yaml:"path_destination"`
	TankIconExtension string `yaml:"tank_icon_extension"`
}

// Load decodes a game version config. Unknown keys are rejected.
func Load(r io.Reader, gameVersionID int) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	cfg := &Config{}
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	cfg.GameVersionID = gameVersionID

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the fields that have a fixed set of values.
func (c *Config) Validate() error {
	switch c.TankIconExtension {
	case "", "png", "tga":
		return nil
	default:
		return fmt.Errorf("tank_icon_extension must be png or tga, got %q", c.TankIconExtension)
	}
}

// Select returns the config with the highest game version not above the
// installed one, or nil if there is none.
func Select(configs []*Config, installed int) *Config {
	var best *Config
	for _, c := range configs {
		if c.GameVersionID > installed {
			continue
		}
		if best == nil || c.GameVersionID > best.GameVersionID {
			best = c
		}
	}
	return best
}

// Sort orders configs by game version.
func Sort(configs []*Config) {
	slices.SortFunc(configs, func(a, b *Config) int {
		return a.GameVersionID - b.GameVersionID
	})
}
