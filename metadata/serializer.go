package metadata

import (
	"encoding/json"
	"fmt"
	"os"
)

// Serialize converts a batch of records to indented JSON. The output is
// deterministic: identical input always produces byte-identical output,
// which matters for caching and change detection downstream.
func Serialize(funcs []FunctionMetadata) ([]byte, error) {
	if funcs == nil {
		return nil, fmt.Errorf("metadata cannot be nil")
	}

	data, err := json.MarshalIndent(funcs, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize metadata: %w", err)
	}

	return data, nil
}

// WriteFile serializes a batch of records and writes it to path
func WriteFile(path string, funcs []FunctionMetadata) error {
	data, err := Serialize(funcs)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write metadata file: %w", err)
	}

	return nil
}
