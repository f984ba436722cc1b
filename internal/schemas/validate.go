// Package schemas validates model output against embedded JSON Schemas.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed recommendation.schema.json
var recommendationSchema string

var compiledRecommendation = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return compile("recommendation.schema.json", recommendationSchema)
})

// RecommendationSchema returns the JSON Schema of a career recommendation bundle.
func RecommendationSchema() string {
	return recommendationSchema
}

// FieldError is one schema violation.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every violation found in a document.
type ValidationError struct {
	Schema string
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return fmt.Sprintf("%s validation failed: %s", e.Schema, strings.Join(parts, "; "))
}

// SchemaError means a schema could not be compiled.
type SchemaError struct {
	Schema string
	Cause  error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid schema %s: %v", e.Schema, e.Cause)
}

func (e *SchemaError) Unwrap() error { return e.Cause }

// DocumentError means the document is not readable JSON.
type DocumentError struct {
	Cause error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("document is not valid JSON: %v", e.Cause)
}

func (e *DocumentError) Unwrap() error { return e.Cause }

// ValidateRecommendation checks a recommendation bundle document.
func ValidateRecommendation(doc string) error {
	schema, err := compiledRecommendation()
	if err != nil {
		return err
	}
	return validate("recommendation.schema.json", schema, doc)
}

// ValidateJSONString checks doc against the schema source.
func ValidateJSONString(schemaSource, doc string) error {
	schema, err := compile("(inline)", schemaSource)
	if err != nil {
		return err
	}
	return validate("(inline)", schema, doc)
}

func compile(name, source string) (*gojsonschema.Schema, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(source))
	if err != nil {
		return nil, &SchemaError{Schema: name, Cause: err}
	}
	return schema, nil
}

func validate(name string, schema *gojsonschema.Schema, doc string) error {
	result, err := schema.Validate(gojsonschema.NewStringLoader(doc))
	if err != nil {
		return &DocumentError{Cause: err}
	}
	if result.Valid() {
		return nil
	}

	ve := &ValidationError{Schema: name, Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		ve.Errors = append(ve.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return ve
}
