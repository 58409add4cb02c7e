// Package schema describes the exported prompt record as an OpenAPI schema
// and validates documents against it.
package schema

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-promptgen/pkg/config"
)

// RecordSchemaName is the component name of the record schema.
const RecordSchemaName = "PromptRecord"

const (
	objectIDPattern  = `^[0-9a-f]{24}$`
	timestampPattern = `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z$`
)

// Record builds the schema of the record document generated for cfg. Every
// configured field must be present in prompt_parameters as a string; other
// parameter keys are rejected.
func Record(cfg config.Config) *openapi3.Schema {
	params := openapi3.NewObjectSchema().WithoutAdditionalProperties()
	for _, spec := range cfg.Fields() {
		prop := openapi3.NewStringSchema()
		prop.Title = spec.Label
		params.WithProperty(spec.Name, prop)
	}
	params.Required = cfg.Names()

	record := openapi3.NewObjectSchema().
		WithProperty("_id", wrapped("$oid", openapi3.NewStringSchema().WithPattern(objectIDPattern))).
		WithProperty("name", openapi3.NewStringSchema().WithMinLength(1)).
		WithProperty("category", openapi3.NewStringSchema().WithMinLength(1)).
		WithProperty("ai_type", openapi3.NewStringSchema().WithEnum(cfg.AIType())).
		WithProperty("prompt_parameters", params).
		WithProperty("prompt_template", openapi3.NewStringSchema()).
		WithProperty("createdAt", timestamp()).
		WithProperty("updatedAt", timestamp()).
		WithProperty("_class", openapi3.NewStringSchema().WithEnum(cfg.Class()))
	record.Required = []string{
		"_id", "name", "category", "ai_type", "prompt_parameters",
		"prompt_template", "createdAt", "updatedAt", "_class",
	}
	record.Title = "Prompt record"
	return record
}

// Document wraps the record schema in an OpenAPI document so it can be
// published or loaded by other tooling.
func Document(cfg config.Config) *openapi3.T {
	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   "promptgen record",
			Version: "1.0.0",
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{
				RecordSchemaName: openapi3.NewSchemaRef("", Record(cfg)),
			},
		},
	}
}

// MarshalDocument renders Document(cfg) as indented JSON after checking it
// is a valid OpenAPI document.
func MarshalDocument(ctx context.Context, cfg config.Config) ([]byte, error) {
	doc := Document(cfg)
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("schema: validate document: %w", err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("schema: encode document: %w", err)
	}
	return data, nil
}

// Validate checks a raw record document against schema.
func Validate(schema *openapi3.Schema, raw []byte) error {
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	if err := schema.VisitJSON(value); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	return nil
}

func wrapped(key string, inner *openapi3.Schema) *openapi3.Schema {
	s := openapi3.NewObjectSchema().WithProperty(key, inner).WithoutAdditionalProperties()
	s.Required = []string{key}
	return s
}

func timestamp() *openapi3.Schema {
	return wrapped("$date", openapi3.NewStringSchema().WithPattern(timestampPattern))
}
