package validation

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// ErrMalformed wraps bodies that are not JSON at all.
type ErrMalformed struct {
	Err error
}

func (e *ErrMalformed) Error() string { return fmt.Sprintf("malformed JSON: %v", e.Err) }
func (e *ErrMalformed) Unwrap() error { return e.Err }

// SchemaError lists every schema violation of a document.
type SchemaError struct {
	Violations []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("data validation failed: %v", e.Violations)
}

// Schema is a compiled JSON schema.
type Schema struct {
	schema *gojsonschema.Schema
}

func mustCompile(source string) *Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(source))
	if err != nil {
		panic(fmt.Sprintf("invalid schema: %v", err))
	}
	return &Schema{schema: s}
}

// Decode checks body against the schema and unmarshals it into out.
func (s *Schema) Decode(body []byte, out interface{}) error {
	if !json.Valid(body) {
		var probe interface{}
		return &ErrMalformed{Err: json.Unmarshal(body, &probe)}
	}

	result, err := s.schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return &ErrMalformed{Err: err}
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return &SchemaError{Violations: errs}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &ErrMalformed{Err: err}
	}
	return nil
}

// Submission is the quiz submission body.
var Submission = mustCompile(`{
  "type": "object",
  "required": ["email", "responses"],
  "properties": {
    "email": {"type": "string", "minLength": 1},
    "responses": {
      "type": "object",
      "minProperties": 1,
      "additionalProperties": {"type": ["string", "number", "boolean", "null"]}
    },
    "subscribe": {"type": "boolean"}
  }
}`)

// Checkout is the checkout session body. Email presence is checked by the
// payment client so the development sentinel wins over a missing email.
var Checkout = mustCompile(`{
  "type": "object",
  "properties": {
    "email": {"type": "string"},
    "estimatedIncome": {"type": ["number", "string", "null"]},
    "badge": {"type": ["string", "null"]}
  }
}`)

// Answer is a wizard answer body.
var Answer = mustCompile(`{
  "type": "object",
  "required": ["questionId", "value"],
  "properties": {
    "questionId": {"type": "string", "minLength": 1},
    "value": {"type": "string"}
  }
}`)

// EmailGate is the wizard email submission body.
var EmailGate = mustCompile(`{
  "type": "object",
  "required": ["email"],
  "properties": {
    "email": {"type": "string"},
    "subscribe": {"type": "boolean"}
  }
}`)
