package data

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-gota/gota/dataframe"

	"drug-spend-forecast/internal/model"
)

// LoadLocalJSON reads a JSON array of drug records into a Dataset. The load
// is all-or-nothing: on any read, parse, or schema error no Dataset is
// returned.
func LoadLocalJSON(path string, schema model.Schema) (*model.Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset file: %w", err)
	}
	df := dataframe.ReadJSON(bytes.NewReader(raw))
	if df.Err != nil {
		return nil, fmt.Errorf("parse dataset JSON: %w", df.Err)
	}
	if err := schema.CheckFrame(df); err != nil {
		return nil, err
	}
	return &model.Dataset{Frame: df}, nil
}

// SaveDataset writes raw records to a JSON file the pipeline can load.
func SaveDataset(records []map[string]any, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	raw, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}

	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write dataset file: %w", err)
	}

	return nil
}
