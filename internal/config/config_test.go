package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drug-spend-forecast/internal/config"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, "drug_data.json", cfg.Data.Path)
	assert.Equal(t, 2018, cfg.History.StartYear)
	assert.Equal(t, 2022, cfg.History.EndYear)
	assert.Equal(t, 3, cfg.Forecast.HorizonYears)
	assert.Equal(t, "drug_predictor.log", cfg.Log.File)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 2023, cfg.ForecastStartYear())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
data:
  path: my_data.json
forecast:
  horizon_years: 5
  out_csv: results/forecast.csv
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "my_data.json", cfg.Data.Path)
	assert.Equal(t, 5, cfg.Forecast.HorizonYears)
	assert.Equal(t, "results/forecast.csv", cfg.Forecast.OutCSV)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Untouched sections keep their defaults.
	assert.Equal(t, 2018, cfg.History.StartYear)
	assert.Equal(t, 2022, cfg.History.EndYear)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
history:
  start_year: 2022
  end_year: 2018
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "history")
}

func TestSchemaFromConfig(t *testing.T) {
	cfg := config.Default()
	schema := cfg.Schema()
	assert.Equal(t, []int{2018, 2019, 2020, 2021, 2022}, schema.Years())
}
