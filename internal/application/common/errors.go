package common

import "fmt"

// ServiceError represents a service-level error with context
type ServiceError struct {
	Operation string
	Cause     error
}

// Error implements the error interface
func (e ServiceError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Operation, e.Cause)
}

// Unwrap returns the underlying error
func (e ServiceError) Unwrap() error {
	return e.Cause
}

// WrapServiceError wraps an error with service operation context
func WrapServiceError(operation string, err error) error {
	if err == nil {
		return nil
	}
	return ServiceError{
		Operation: operation,
		Cause:     err,
	}
}

// ValidationError represents a request validation failure for a single field.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a validation error for the given field.
func NewValidationError(field, message string) error {
	return ValidationError{Field: field, Message: message}
}

// Common error operations for consistent messaging
const (
	OpParseSource        = "parse source"
	OpAnalyzeSource      = "analyze source"
	OpSynthesizeTests    = "synthesize test cases"
	OpRenderTestCode     = "render test code"
	OpCreateAnalysis     = "create analysis"
	OpUpdateAnalysis     = "update analysis"
	OpDeleteAnalysis     = "delete analysis"
	OpRetrieveAnalysis   = "retrieve analysis"
	OpListAnalyses       = "retrieve analyses"
	OpSaveAnalysis       = "save analysis"
	OpSaveTestCases      = "save test cases"
	OpRetrieveTestCases  = "retrieve test cases"
	OpPublishJob         = "publish analysis job"
	OpResolveTemplate    = "resolve template"
	OpProcessAnalysisJob = "process analysis job"
)
