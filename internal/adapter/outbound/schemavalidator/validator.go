// Package schemavalidator validates tool arguments against their JSON schema.
package schemavalidator

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/i2y/figma-mcp/internal/domain"
)

// Validator implements usecase.ArgumentValidator with gojsonschema.
// Compiled schemas are cached by their JSON text.
type Validator struct {
	mu     sync.Mutex
	cache  map[string]*gojsonschema.Schema
	logger *slog.Logger
}

// New creates a Validator.
func New(logger *slog.Logger) *Validator {
	return &Validator{
		cache:  make(map[string]*gojsonschema.Schema),
		logger: logger.With("component", "schema_validator"),
	}
}

// Validate returns an error describing every violation, or nil.
func (v *Validator) Validate(schema domain.JSONSchemaProps, args map[string]interface{}) error {
	compiled, err := v.compile(schema)
	if err != nil {
		return err
	}
	if args == nil {
		args = map[string]interface{}{}
	}

	result, err := compiled.Validate(gojsonschema.NewGoLoader(args))
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}

	errs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		errs = append(errs, desc.String())
	}
	return fmt.Errorf("%s", strings.Join(errs, "; "))
}

func (v *Validator) compile(schema domain.JSONSchemaProps) (*gojsonschema.Schema, error) {
	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	key := string(raw)

	v.mu.Lock()
	defer v.mu.Unlock()
	if s, ok := v.cache[key]; ok {
		return s, nil
	}
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		v.logger.Error("Failed to compile schema", slog.Any("error", err))
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	v.cache[key] = s
	return s, nil
}
