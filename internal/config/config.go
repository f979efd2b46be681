package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"drug-spend-forecast/internal/model"
)

// Config is the on-disk configuration shape (YAML). Every field has a
// default, so the tool runs with no config file at all.
type Config struct {
	Data     DataConfig     `yaml:"data"`
	History  HistoryConfig  `yaml:"history"`
	Forecast ForecastConfig `yaml:"forecast"`
	Log      LogConfig      `yaml:"log"`
}

type DataConfig struct {
	// Path to the local JSON dataset the pipeline reads.
	Path string `yaml:"path"`
	// CMS data API settings, used by the fetch tool only.
	DatasetID string `yaml:"dataset_id"`
	BaseURL   string `yaml:"base_url"`
}

type HistoryConfig struct {
	StartYear int `yaml:"start_year"`
	EndYear   int `yaml:"end_year"`
}

type ForecastConfig struct {
	HorizonYears int `yaml:"horizon_years"`
	// Optional CSV export path; empty means no file output.
	OutCSV string `yaml:"out_csv"`
}

type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Path: "drug_data.json",
		},
		History: HistoryConfig{
			StartYear: 2018,
			EndYear:   2022,
		},
		Forecast: ForecastConfig{
			HorizonYears: 3,
		},
		Log: LogConfig{
			File:  "drug_predictor.log",
			Level: "info",
		},
	}
}

// Load reads, defaults, and validates a config file.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads a config and fills defaults, but does not validate it.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, err
	}
	c.fillDefaults()
	return c, nil
}

// fillDefaults restores defaults for fields an explicit config zeroed out.
func (c *Config) fillDefaults() {
	def := Default()
	if c.Data.Path == "" {
		c.Data.Path = def.Data.Path
	}
	if c.History.StartYear == 0 && c.History.EndYear == 0 {
		c.History = def.History
	}
	if c.Forecast.HorizonYears == 0 {
		c.Forecast.HorizonYears = def.Forecast.HorizonYears
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Data.Path == "" {
		return errors.New("data.path is required")
	}
	if err := c.Schema().Validate(); err != nil {
		return fmt.Errorf("history config invalid: %w", err)
	}
	if c.Forecast.HorizonYears <= 0 {
		return errors.New("forecast.horizon_years must be > 0")
	}
	return nil
}

// Schema builds the dataset schema from the configured history window.
func (c *Config) Schema() model.Schema {
	return model.Schema{
		StartYear: c.History.StartYear,
		EndYear:   c.History.EndYear,
	}
}

// ForecastStartYear is the first predicted year, the year after the history
// window ends.
func (c *Config) ForecastStartYear() int {
	return c.History.EndYear + 1
}
