package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const taskFileSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "description", "completed"],
    "properties": {
      "id": {"type": "integer", "minimum": 0},
      "description": {"type": "string"},
      "completed": {"type": "boolean"}
    }
  }
}`

var taskFile = jsonschema.MustCompileString("tasks.schema.json", taskFileSchema)

// validateTaskFile checks that data is JSON shaped like a task list.
func validateTaskFile(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected content after top-level value")
	}

	if err := taskFile.Validate(doc); err != nil {
		return schemaError(err)
	}
	return nil
}

// schemaError reduces a schema validation error to its first leaf cause.
func schemaError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}

	leaf := ve
	for len(leaf.Causes) > 0 {
		leaf = leaf.Causes[0]
	}

	path := strings.TrimPrefix(leaf.InstanceLocation, "/")
	if path == "" {
		return errors.New(leaf.Message)
	}
	return fmt.Errorf("%s: %s", strings.ReplaceAll(path, "/", "."), leaf.Message)
}
