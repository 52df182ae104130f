// Package validation checks job payloads against the JSON schemas under
// schemas/.
package validation

import (
	"embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.json
var schemaFS embed.FS

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Summary joins the errors into one line, e.g. for a BPMN error message.
func (r *ValidationResult) Summary() string {
	parts := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		parts[i] = e.Field + ": " + e.Message
	}
	return strings.Join(parts, "; ")
}

// Schema is a compiled JSON schema.
type Schema struct {
	name   string
	schema *gojsonschema.Schema
}

func Compile(name string, raw []byte) (*Schema, error) {
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}
	return &Schema{name: name, schema: s}, nil
}

func (s *Schema) Name() string {
	return s.name
}

// Validate checks doc, which may be any value encoding/json can marshal.
// Errors are sorted by field so results are stable.
func (s *Schema) Validate(doc interface{}) (*ValidationResult, error) {
	result, err := s.schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("validate against %s: %w", s.name, err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
			Code:    desc.Type(),
		})
	}
	sort.SliceStable(out.Errors, func(i, j int) bool { return out.Errors[i].Field < out.Errors[j].Field })
	return out, nil
}

var (
	builtinOnce    sync.Once
	builtinSchemas map[string]*Schema
	builtinErr     error
)

func loadBuiltin() {
	builtinSchemas = make(map[string]*Schema)
	for _, name := range []string{"intake", "submission"} {
		raw, err := schemaFS.ReadFile("schemas/" + name + ".schema.json")
		if err != nil {
			builtinErr = err
			return
		}
		s, err := Compile(name, raw)
		if err != nil {
			builtinErr = err
			return
		}
		builtinSchemas[name] = s
	}
}

func builtin(name string) *Schema {
	builtinOnce.Do(loadBuiltin)
	if builtinErr != nil {
		panic(builtinErr)
	}
	return builtinSchemas[name]
}

// IntakeSchema validates intake records as sent by the questionnaire.
func IntakeSchema() *Schema {
	return builtin("intake")
}

// SubmissionSchema validates the normalized submission payload.
func SubmissionSchema() *Schema {
	return builtin("submission")
}
