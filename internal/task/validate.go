package task

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed tasks.schema.json
var schemaJSON []byte

// ValidationError is a validation error with its location in the blob.
type ValidationError struct {
	Path string // JSON path to the error location
	Err  error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationResult contains the outcome of validating a persisted blob.
type ValidationResult struct {
	Valid      bool
	Errors     []error
	Warnings   []string
	UsedSchema bool // true if JSON Schema validation was performed
}

// ValidateBlob checks a persisted task blob against the embedded JSON
// Schema, falling back to minimal structural checks if the schema
// cannot be compiled. Tolerant loading never requires this to pass; it
// exists so `doctor` can report exactly what a lossy load would drop.
func ValidateBlob(data []byte) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{
			Err: fmt.Errorf("not valid JSON: %w", err),
		})
		return result
	}

	schema, err := compileSchema()
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("JSON Schema validation not available (%v), using minimal checks", err))
		validateMinimal(data, result)
		return result
	}

	result.UsedSchema = true
	if err := schema.Validate(doc); err != nil {
		result.Valid = false
		appendSchemaErrors(result, err)
	}
	return result
}

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource("tasks.schema.json", bytes.NewReader(schemaJSON)); err != nil {
		return nil, err
	}
	return compiler.Compile("tasks.schema.json")
}

// validateMinimal performs the structural checks the tolerant decoder
// relies on, without JSON Schema.
func validateMinimal(data []byte, result *ValidationResult) {
	var raw rawStoreFile
	if err := json.Unmarshal(data, &raw); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{
			Err: fmt.Errorf("unexpected top-level structure: %w", err),
		})
		return
	}

	if len(raw.TaskIDCounter) > 0 {
		var n int
		if err := json.Unmarshal(raw.TaskIDCounter, &n); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{
				Path: "taskIdCounter",
				Err:  fmt.Errorf("not an integer"),
			})
		} else if n < 0 {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{
				Path: "taskIdCounter",
				Err:  fmt.Errorf("must be >= 0, got %d", n),
			})
		}
	}

	for i, msg := range raw.Tasks {
		path := fmt.Sprintf("tasks[%d]", i)
		var t Task
		if err := json.Unmarshal(msg, &t); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{
				Path: path,
				Err:  fmt.Errorf("malformed entry"),
			})
			continue
		}
		if t.ID <= 0 {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{
				Path: path + ".id",
				Err:  fmt.Errorf("must be a positive integer"),
			})
		}
		if strings.TrimSpace(t.Text) == "" {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{
				Path: path + ".text",
				Err:  fmt.Errorf("missing or empty"),
			})
		}
	}
}

func appendSchemaErrors(result *ValidationResult, err error) {
	if err == nil {
		return
	}

	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		result.Errors = append(result.Errors, err)
		return
	}

	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *ValidationResult, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}

	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Path: jsonPointerToPath(err.InstanceLocation),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}

	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}

// jsonPointerToPath converts a JSON Pointer like "/tasks/0/id" to the
// dot notation "tasks[0].id" used in error messages.
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	parts := strings.Split(ptr, "/")
	path := ""
	for _, part := range parts {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			path += fmt.Sprintf("[%d]", idx)
			continue
		}
		if path == "" {
			path = part
		} else {
			path += "." + part
		}
	}

	return path
}
