package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "schema://crema-analysis/config.json"

// compiledSchema compiles the embedded schema once.
var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	def, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	return compiled, nil
})

// ErrSchema reports a config document that does not match the schema.
type ErrSchema struct {
	Err error
}

func (e *ErrSchema) Error() string {
	return fmt.Sprintf("config does not match schema: %v", e.Err)
}

func (e *ErrSchema) Unwrap() error { return e.Err }

// validateSchema checks a decoded YAML document against the embedded
// schema. The document round-trips through JSON so numbers and maps take
// the shapes the validator expects.
func validateSchema(doc any) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("config schema: %w", err)
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return &ErrSchema{Err: fmt.Errorf("convert to JSON: %w", err)}
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return &ErrSchema{Err: fmt.Errorf("parse JSON: %w", err)}
	}

	if err := schema.Validate(inst); err != nil {
		return &ErrSchema{Err: err}
	}
	return nil
}
