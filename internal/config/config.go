package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultSteps     = 10
	DefaultLat       = 40.0
	DefaultLon       = -120.0
	DefaultInterp    = "nearest"
	DefaultTimeIndex = 0
)

// Config describes one trajectory run: where the particle starts, how many
// steps to take, and which velocity field backs the integration. An empty
// MetFile selects the built-in reference rotation field.
type Config struct {
	MetFile   string       `yaml:"met_file"`
	TimeIndex int          `yaml:"time_index"`
	Interp    string       `yaml:"interp"`
	Steps     int          `yaml:"steps"`
	Start     StartConfig  `yaml:"start"`
	Subset    SubsetConfig `yaml:"subset"`
	Aliases   []AliasRule  `yaml:"aliases"`
}

type StartConfig struct {
	Lat float64 `yaml:"lat"`
	Lon float64 `yaml:"lon"`
}

// SubsetConfig optionally narrows the dataset before integration. The zero
// value disables subsetting.
type SubsetConfig struct {
	TimeStart string  `yaml:"time_start"`
	TimeEnd   string  `yaml:"time_end"`
	LatMin    float64 `yaml:"lat_min"`
	LatMax    float64 `yaml:"lat_max"`
	LonMin    float64 `yaml:"lon_min"`
	LonMax    float64 `yaml:"lon_max"`
}

func (s SubsetConfig) Enabled() bool {
	return s.TimeStart != "" && s.TimeEnd != ""
}

// AliasRule overrides one canonical variable's alias list.
type AliasRule struct {
	Canonical string   `yaml:"canonical"`
	Aliases   []string `yaml:"aliases"`
}

func DefaultConfig() *Config {
	return &Config{
		TimeIndex: DefaultTimeIndex,
		Interp:    DefaultInterp,
		Steps:     DefaultSteps,
		Start: StartConfig{
			Lat: DefaultLat,
			Lon: DefaultLon,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
