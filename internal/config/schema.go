package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var schemaJSON string

// GetSchemaJSON returns the JSON Schema for completers configuration.
func GetSchemaJSON() string {
	return schemaJSON
}

// ValidationError represents a validation error with details
type ValidationError struct {
	Field   string
	Message string
}

// ValidationResult contains the results of config validation
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

// ValidateWithSchema validates a config file against the JSON Schema.
func ValidateWithSchema(path string, content []byte) (*ValidationResult, error) {
	result := &ValidationResult{
		Valid:  true,
		Errors: []ValidationError{},
	}

	// Convert the document to a JSON-compatible structure first.
	var data interface{}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		if err := yaml.Unmarshal(content, &data); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, ValidationError{
				Field:   "syntax",
				Message: fmt.Sprintf("Invalid YAML syntax: %v", err),
			})
			return result, nil
		}
	case ".json":
		if err := json.Unmarshal(content, &data); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, ValidationError{
				Field:   "syntax",
				Message: fmt.Sprintf("Invalid JSON syntax: %v", err),
			})
			return result, nil
		}
	case ".toml":
		// TOML goes through the regular loader, which also applies the
		// value checks.
		cfg, err := Load(path)
		if err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, ValidationError{
				Field:   "syntax",
				Message: fmt.Sprintf("Invalid TOML config: %v", err),
			})
			return result, nil
		}
		data = map[string]interface{}{
			"page_size":        cfg.PageSize,
			"poll_interval_ms": cfg.PollIntervalMs,
			"word_boundaries":  cfg.WordBoundaries,
			"completers":       cfg.Completers,
			"scoring": map[string]interface{}{
				"letter_match":     cfg.Scoring.LetterMatch,
				"word_start_bonus": cfg.Scoring.WordStartBonus,
				"subsequent_bonus": cfg.Scoring.SubsequentBonus,
			},
			"fs": map[string]interface{}{
				"depth_limit": cfg.Fs.DepthLimit,
			},
		}
	default:
		return nil, fmt.Errorf("unsupported file format")
	}

	schemaLoader := gojsonschema.NewStringLoader(GetSchemaJSON())
	documentLoader := gojsonschema.NewGoLoader(data)

	validationResult, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	if !validationResult.Valid() {
		result.Valid = false
		for _, desc := range validationResult.Errors() {
			result.Errors = append(result.Errors, ValidationError{
				Field:   desc.Field(),
				Message: desc.Description(),
			})
		}
	}

	return result, nil
}
