package bundle

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

const schemaURL = "schema://liver-risk/bundle.json"

// ErrSchema marks a bundle whose document shape is wrong, before any
// dimension checks run.
var ErrSchema = errors.New("model bundle does not match schema")

//go:embed bundle.schema.json
var schemaDoc []byte

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func bundleSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var doc any
		if err := json.Unmarshal(schemaDoc, &doc); err != nil {
			schemaErr = fmt.Errorf("parse bundle schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			schemaErr = fmt.Errorf("add bundle schema: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

// checkSchema validates the raw YAML or JSON document. The parsed YAML is
// re-encoded as JSON so the validator only ever sees JSON value types.
func checkSchema(raw []byte) error {
	sch, err := bundleSchema()
	if err != nil {
		return err
	}

	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decode model bundle: %w", err)
	}
	asJSON, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}
	var parsed any
	if err := json.Unmarshal(asJSON, &parsed); err != nil {
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}

	if err := sch.Validate(parsed); err != nil {
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}
	return nil
}
