package analysis

import (
	"errors"
	"strings"
)

var (
	ErrAnalysisParse    = errors.New("Failed to parse the model response as JSON")
	ErrSchemaValidation = errors.New("Model response is missing required fields")
	ErrModelRequest     = errors.New("Model request failed. Please retry.")
)

const (
	ErrorCodeAnalysisParse    = "analysis_parse_error"
	ErrorCodeSchemaValidation = "schema_validation_error"
	ErrorCodeModelRequest     = "model_request_failed"
	ErrorCodeEmptyResponse    = "empty_model_response"
)

// SchemaError lists the required fields that were absent after normalization.
type SchemaError struct {
	Fields []string
}

func (e *SchemaError) Error() string {
	return ErrSchemaValidation.Error() + ": " + strings.Join(e.Fields, ", ")
}

func (e *SchemaError) Is(target error) bool {
	return target == ErrSchemaValidation
}
