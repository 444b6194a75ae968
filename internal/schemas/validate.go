// Package schemas provides JSON Schema validation for configuration documents.
package schemas

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// ValidateBytes validates a JSON document against schema content.
func ValidateBytes(schema, document []byte) error {
	return validate(gojsonschema.NewBytesLoader(schema), gojsonschema.NewBytesLoader(document))
}

func validate(schemaLoader, documentLoader gojsonschema.JSONLoader) error {
	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Path:    "(embedded schema)",
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
