package taxonomy

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// LoadError represents a failure to read, validate, or parse a taxonomy file.
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("taxonomy %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("taxonomy %s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// fileFormat is the on-disk JSON shape of a taxonomy override file.
type fileFormat struct {
	Synonyms     map[string][]string     `json:"synonyms"`
	Stacks       map[string][]string     `json:"stacks"`
	Dependencies map[string][]Dependency `json:"dependencies"`
	Estimates    []LearningEstimate      `json:"estimates"`
	Categories   map[string]string       `json:"categories"`
}

// Load reads a taxonomy override file, validates it against the JSON schema
// when a schema path is provided, and builds an immutable Taxonomy from it.
func Load(path, schemaPath string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "failed to read file", Cause: err}
	}

	if schemaPath != "" {
		if err := validateAgainstSchema(data, schemaPath); err != nil {
			return nil, &LoadError{Path: path, Message: "schema validation failed", Cause: err}
		}
	}

	var raw fileFormat
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &LoadError{Path: path, Message: "failed to parse JSON", Cause: err}
	}

	return New(raw.Synonyms, raw.Stacks, raw.Dependencies, raw.Estimates, raw.Categories), nil
}

// validateAgainstSchema checks the document against the taxonomy JSON schema.
func validateAgainstSchema(document []byte, schemaPath string) error {
	schemaBytes, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to read schema %s: %w", schemaPath, err)
	}

	schemaLoader := gojsonschema.NewBytesLoader(schemaBytes)
	documentLoader := gojsonschema.NewBytesLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}

	if !result.Valid() {
		messages := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			messages = append(messages, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
		}
		return fmt.Errorf("invalid taxonomy document: %s", strings.Join(messages, "; "))
	}

	return nil
}
