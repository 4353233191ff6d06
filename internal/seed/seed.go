// Package seed reads the initial dataset of the grid from a YAML or JSON file.
// Seeds are read once at startup; edited data is never written back.
package seed

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/tabula/pkg/columns"
	"github.com/aretw0/tabula/pkg/schema"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// File represents the structure of a seed file.
type File struct {
	Rows []map[string]any `yaml:"rows" json:"rows"`
}

// RowError reports a seed row that does not conform to the column schema.
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Load reads path and decodes its rows into records, validating every row
// against the registry's schema first.
func Load[R any](path string, reg *columns.Registry[R]) ([]R, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var f File
	ext := strings.ToLower(filepath.Ext(path))

	if ext == ".json" {
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		// Default to YAML
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	return Decode(f.Rows, reg)
}

// Decode validates raw rows and converts them into records.
func Decode[R any](rows []map[string]any, reg *columns.Registry[R]) ([]R, error) {
	s := reg.Schema()
	out := make([]R, 0, len(rows))

	for i, raw := range rows {
		if err := schema.Validate(s, raw); err != nil {
			return nil, &RowError{Row: i, Err: err}
		}

		var rec R
		if err := mapstructure.Decode(raw, &rec); err != nil {
			return nil, &RowError{Row: i, Err: fmt.Errorf("decode: %w", err)}
		}
		out = append(out, rec)
	}

	return out, nil
}
