package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["id"],
	"properties": {
		"id": {"type": "string"},
		"limit": {"type": "integer", "minimum": 0}
	}
}`

func TestValidateBytes_Valid(t *testing.T) {
	assert.NoError(t, ValidateBytes([]byte(testSchema), []byte(`{"id": "go", "limit": 2}`)))
}

func TestValidateBytes_MissingField(t *testing.T) {
	err := ValidateBytes([]byte(testSchema), []byte(`{"limit": 2}`))
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	require.Len(t, validationErr.Errors, 1)
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)
	assert.Contains(t, validationErr.Error(), "validation failed")
}

func TestValidateBytes_WrongType(t *testing.T) {
	err := ValidateBytes([]byte(testSchema), []byte(`{"id": 3}`))
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Equal(t, "id", validationErr.Errors[0].Field)
}

func TestValidateBytes_MalformedDocument(t *testing.T) {
	err := ValidateBytes([]byte(testSchema), []byte("{ invalid json }"))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidateBytes_BrokenSchema(t *testing.T) {
	err := ValidateBytes([]byte(`{"type": `), []byte(`{}`))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, loadErr.Error(), "(embedded schema)")
}

func TestValidateBytes_CollectsEveryError(t *testing.T) {
	err := ValidateBytes([]byte(testSchema), []byte(`{"limit": -1}`))
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Len(t, validationErr.Errors, 2)
	assert.Contains(t, err.Error(), "2. ")
}
