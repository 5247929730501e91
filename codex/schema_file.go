package codex

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"
)

// outputSchemaFile is a scoped temp file holding the serialized output
// schema for one turn. cleanup must run on every exit path.
type outputSchemaFile struct {
	path    string
	cleanup func()
}

// createOutputSchemaFile writes schema to a fresh temp directory and
// returns its path plus a cleanup action. A nil schema yields no path and
// a no-op cleanup.
func createOutputSchemaFile(schema map[string]any) (*outputSchemaFile, error) {
	if schema == nil {
		return &outputSchemaFile{cleanup: func() {}}, nil
	}

	dir, err := os.MkdirTemp("", "codex-output-schema-")
	if err != nil {
		return nil, fmt.Errorf("failed to create schema directory: %w", err)
	}
	cleanup := func() {
		_ = os.RemoveAll(dir)
	}

	data, err := json.Marshal(schema)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("failed to serialize output schema: %w", err)
	}

	path := filepath.Join(dir, "schema.json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		cleanup()
		return nil, fmt.Errorf("failed to write output schema: %w", err)
	}

	return &outputSchemaFile{path: path, cleanup: cleanup}, nil
}

// OutputSchemaFor derives a JSON schema object from a Go struct type,
// suitable for WithOutputSchema. Field shapes follow json and jsonschema
// struct tags.
//
// Example:
//
//	type Review struct {
//	    Summary string `json:"summary" jsonschema:"required"`
//	    Score   int    `json:"score" jsonschema:"required,minimum=1,maximum=10"`
//	}
//
//	schema, err := codex.OutputSchemaFor[Review]()
func OutputSchemaFor[T any]() (map[string]any, error) {
	reflector := &jsonschema.Reflector{
		DoNotReference: true, // inline definitions instead of $ref
		ExpandedStruct: true,
	}

	var zero T
	schema := reflector.Reflect(zero)

	data, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to generate schema for %T: %w", zero, err)
	}

	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("failed to generate schema for %T: %w", zero, err)
	}
	return obj, nil
}
