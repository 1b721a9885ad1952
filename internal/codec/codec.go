// Package codec decodes the JSON and YAML files the tools read.
package codec

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Unmarshal decodes data into v. ext selects the format: ".yaml" and ".yml"
// are YAML, anything else is JSON.
func Unmarshal(data []byte, ext string, v any) error {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, v)
	default:
		return json.Unmarshal(data, v)
	}
}

// ReadFile decodes the file at path into v, picking the format from its
// extension. Fields v already holds and the file omits are left alone.
func ReadFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := Unmarshal(data, filepath.Ext(path), v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
