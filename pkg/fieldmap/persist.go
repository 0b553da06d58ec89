package fieldmap

import (
	"encoding/json"
	"fmt"
	"os"
)

// SaveMapping writes a result to path as indented JSON. Serialization
// failures surface as hard errors; they indicate a broken resource, not a
// matching-quality issue.
func SaveMapping(path string, r *Result) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode mapping: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write mapping %s: %w", path, err)
	}
	return nil
}

// LoadMapping reads a result previously written by SaveMapping.
func LoadMapping(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mapping %s: %w", path, err)
	}
	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode mapping %s: %w", path, err)
	}
	return &r, nil
}
