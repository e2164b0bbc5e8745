package triage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"issue-assistant/internal/analysis"
	"issue-assistant/internal/issues"
	"issue-assistant/internal/llm"
)

const (
	ErrorCodeValidation = "validation_error"
	ErrorCodeInternal   = "internal"
)

const emptyResponseDetail = "Model returned an empty response. Please retry."

var clientVisible = []error{
	issues.ErrInvalidRepoURL,
	issues.ErrIssueNotFound,
	issues.ErrRateLimitExceeded,
	issues.ErrRequestTimedOut,
	issues.ErrUpstreamUnreachable,
	analysis.ErrModelRequest,
	analysis.ErrAnalysisParse,
}

// Describe returns the stable code and human-readable detail for a pipeline failure.
func Describe(err error) (code, detail string) {
	if code = issues.ErrorCode(err); code == "" {
		code = analysis.ErrorCode(err)
	}
	if code == "" {
		code = ErrorCodeInternal
	}

	var schemaErr *analysis.SchemaError
	if errors.As(err, &schemaErr) {
		return code, schemaErr.Error()
	}
	if errors.Is(err, llm.ErrEmptyResponse) {
		return code, emptyResponseDetail
	}
	for _, sentinel := range clientVisible {
		if errors.Is(err, sentinel) {
			return code, sentinel.Error()
		}
	}
	return code, err.Error()
}

var fieldNames = map[string]string{
	"RepoURL":     "repo_url",
	"IssueNumber": "issue_number",
}

// validationDetail renders binding errors in terms of the JSON field names.
func validationDetail(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid request body: " + err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		name := fieldNames[fe.Field()]
		if name == "" {
			name = fe.Field()
		}
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", name))
		case "url":
			msgs = append(msgs, fmt.Sprintf("%s must be a valid URL", name))
		case "gt":
			msgs = append(msgs, fmt.Sprintf("%s must be greater than %s", name, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", name))
		}
	}
	return strings.Join(msgs, "; ")
}
