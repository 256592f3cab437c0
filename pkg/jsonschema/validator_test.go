package jsonschema

import (
	"strings"
	"testing"
)

const personSchema = `{
	"type": "object",
	"properties": {
		"name": { "type": "string" },
		"age": { "type": "integer", "minimum": 0 }
	},
	"required": ["name"]
}`

func TestNewInvalidSchema(t *testing.T) {
	if _, err := New("bad.json", `{"type": ["unclosed"`); err == nil {
		t.Error("Expected error for malformed schema, got nil")
	}
}

func TestMustNewPanicsOnBadSchema(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustNew did not panic on an invalid schema")
		}
	}()
	MustNew("bad.json", `{`)
}

func TestValidateJSON(t *testing.T) {
	v, err := New("person.json", personSchema)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	tests := []struct {
		name      string
		doc       string
		wantValid bool
	}{
		{
			name:      "valid object",
			doc:       `{"name": "Ada", "age": 36}`,
			wantValid: true,
		},
		{
			name:      "missing required property",
			doc:       `{"age": 36}`,
			wantValid: false,
		},
		{
			name:      "wrong type",
			doc:       `{"name": "Ada", "age": "thirty-six"}`,
			wantValid: false,
		},
		{
			name:      "constraint violation",
			doc:       `{"name": "Ada", "age": -1}`,
			wantValid: false,
		},
		{
			name:      "malformed JSON",
			doc:       `{"name": `,
			wantValid: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			errs := v.ValidateJSON([]byte(tc.doc))
			if tc.wantValid && errs != nil {
				t.Errorf("expected valid, got: %v", errs)
			}
			if !tc.wantValid && errs == nil {
				t.Error("expected validation errors, got none")
			}
		})
	}
}

func TestValidatorIsReusable(t *testing.T) {
	v := MustNew("person.json", personSchema)

	if errs := v.ValidateJSON([]byte(`{"age": 1}`)); errs == nil {
		t.Error("first validation missed a violation")
	}
	// A failed validation must not poison the compiled schema.
	if errs := v.ValidateJSON([]byte(`{"name": "Ada"}`)); errs != nil {
		t.Errorf("second validation failed unexpectedly: %v", errs)
	}
}

func TestValidationErrorsMessage(t *testing.T) {
	v := MustNew("person.json", personSchema)

	errs := v.ValidateJSON([]byte(`{"name": 3, "age": -2}`))
	if errs == nil {
		t.Fatal("expected validation errors, got none")
	}

	msg := errs.Error()
	if !strings.Contains(msg, "validation error at") {
		t.Errorf("message %q missing instance locations", msg)
	}

	if (ValidationErrors{}).Error() != "" {
		t.Error("empty ValidationErrors should render as an empty string")
	}
}
