package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiledSchemas caches compiled schemas by Schema.Name, with an
// ".accept" suffix for Accept definitions. Names are assumed to identify a
// definition for the life of the process.
var compiledSchemas = struct {
	sync.Mutex
	byName map[string]*jsonschema.Schema
}{byName: map[string]*jsonschema.Schema{}}

// ValidateContent validates raw JSON against schema without a provider
// round trip, so structured payloads can be checked against fixtures.
func ValidateContent(schema *Schema, raw json.RawMessage) error {
	return validateResponse(schema, raw)
}

// validateResponse returns *ErrInvalidResponse when raw is empty, is not
// JSON, or breaks schema. A nil schema accepts anything.
func validateResponse(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return &ErrInvalidResponse{Err: fmt.Errorf("empty payload")}
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	compiled, err := compileSchema(schema)
	if err != nil {
		return &ErrInvalidResponse{Content: raw, Err: err}
	}
	if err := compiled.Validate(doc); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("%s: %w", schema.Name, err)}
	}
	return nil
}

func compileSchema(schema *Schema) (*jsonschema.Schema, error) {
	key, definition := schema.Name, schema.Definition
	if schema.Accept != nil {
		key, definition = schema.Name+".accept", schema.Accept
	}

	compiledSchemas.Lock()
	defer compiledSchemas.Unlock()

	if s, ok := compiledSchemas.byName[key]; ok {
		return s, nil
	}

	// Round-trip through JSON so Go values like []string become the
	// generic types the compiler walks.
	def, err := json.Marshal(definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema %s: %w", schema.Name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(def))
	if err != nil {
		return nil, fmt.Errorf("parse schema %s: %w", schema.Name, err)
	}

	url := "mem://schemas/" + key + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add schema %s: %w", schema.Name, err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", schema.Name, err)
	}

	compiledSchemas.byName[key] = compiled
	return compiled, nil
}
