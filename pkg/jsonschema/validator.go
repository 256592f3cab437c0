// Package jsonschema wraps santhosh-tekuri/jsonschema with a compile-once
// validator and a flattened error list.
package jsonschema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ValidationErrors is a flat list of schema violations, one error per
// offending instance location.
type ValidationErrors []error

// Error implements the error interface for ValidationErrors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, err := range ve {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// Validator holds one compiled schema for repeated use. Compiling a schema
// is the expensive step; validating against a compiled one is cheap, so
// long-lived callers should construct a Validator once and share it.
type Validator struct {
	schema *jsonschema.Schema
}

// New compiles schemaStr into a reusable Validator. The name appears in
// validation error messages as the schema location.
func New(name, schemaStr string) (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, strings.NewReader(schemaStr)); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}

	schema, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}

	return &Validator{schema: schema}, nil
}

// MustNew is New for compile-time constant schemas; it panics on a schema
// error.
func MustNew(name, schemaStr string) *Validator {
	v, err := New(name, schemaStr)
	if err != nil {
		panic(err)
	}
	return v
}

// ValidateJSON checks a raw JSON document against the schema. A nil return
// means the document conforms.
func (v *Validator) ValidateJSON(doc []byte) ValidationErrors {
	var data interface{}
	if err := json.Unmarshal(doc, &data); err != nil {
		return ValidationErrors{fmt.Errorf("invalid JSON: %w", err)}
	}
	return v.Validate(data)
}

// Validate checks an already-decoded JSON document (maps, slices, and
// primitives as produced by encoding/json) against the schema.
func (v *Validator) Validate(data interface{}) ValidationErrors {
	err := v.schema.Validate(data)
	if err == nil {
		return nil
	}

	if validationErr, ok := err.(*jsonschema.ValidationError); ok {
		return extractValidationErrors(validationErr)
	}
	return ValidationErrors{err}
}

// extractValidationErrors flattens a jsonschema.ValidationError tree into a
// list, one entry per leaf message.
func extractValidationErrors(err *jsonschema.ValidationError) ValidationErrors {
	var errors ValidationErrors

	if err.Message != "" {
		errors = append(errors, fmt.Errorf("validation error at %s: %s", err.InstanceLocation, err.Message))
	}

	for _, childErr := range err.Causes {
		errors = append(errors, extractValidationErrors(childErr)...)
	}

	return errors
}
