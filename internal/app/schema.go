package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Schema is a compiled JSON schema that parsed namespaces can be checked
// against, to pin the shape a declaration produces.
type Schema struct {
	schema *jsonschema.Schema
}

// LoadSchema compiles the JSON schema stored at path.
func LoadSchema(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	url := "schema://namespace.json"
	if err := compiler.AddResource(url, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to load schema %s: %w", path, err)
	}
	s, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %s: %w", path, err)
	}
	return &Schema{schema: s}, nil
}

// Check validates v, a namespace or a value looked up in one. The value goes
// through JSON first so that the validator sees the types it expects.
func (s *Schema) Check(v any) error {
	data, err := json.Marshal(plain(v))
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return err
	}
	if err := s.schema.Validate(doc); err != nil {
		return fmt.Errorf("namespace does not match schema: %w", err)
	}
	return nil
}
