package io

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

func ReadFile(path string) ([]byte, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	return bytes, nil
}

func WriteBytesToFile(path string, bytes []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("error creating directory for %s: %w", path, err)
	}
	return os.WriteFile(path, bytes, 0644)
}

func WriteStringToFile(path string, str string) error {
	return WriteBytesToFile(path, []byte(str))
}

func WriteStructToFile(path string, object interface{}) error {
	if bytes, err := json.MarshalIndent(object, "", "  "); err != nil {
		return fmt.Errorf("error marshalling object: %w", err)
	} else {
		return WriteBytesToFile(path, bytes)
	}
}
