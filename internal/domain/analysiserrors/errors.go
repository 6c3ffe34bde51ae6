// Package analysiserrors defines the structured error kinds produced while
// validating and parsing source submitted for analysis. Callers classify
// failures with errors.As against the exported types or with the Is* helpers.
package analysiserrors

import (
	"errors"
	"fmt"
)

// ErrorCategory represents the category of an analysis error.
type ErrorCategory string

const (
	// Input validation failures (empty source, bad encoding).
	ErrorCategoryInvalidInput ErrorCategory = "invalid_input"

	// Source exceeding the configured size limit.
	ErrorCategorySizeLimit ErrorCategory = "size_limit_exceeded"

	// Syntax errors detected in an otherwise parseable source.
	ErrorCategorySyntax ErrorCategory = "syntax"

	// Constructs the analyzer recognizes but does not support.
	ErrorCategoryUnsupported ErrorCategory = "unsupported_construct"
)

// AnalysisError is a structured error with enough context for API error
// payloads and log fields.
type AnalysisError struct {
	Message  string        `json:"message"`
	Category ErrorCategory `json:"category"`

	// Best-effort source location, zero when unknown. Line is 1-based.
	Line   int `json:"line,omitempty"`
	Column int `json:"column,omitempty"`

	// Populated for size limit errors.
	SourceLength int `json:"source_length,omitempty"`
	Limit        int `json:"limit,omitempty"`

	Cause error `json:"-"`
}

func (e *AnalysisError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: %s (line %d, column %d)", e.Category, e.Message, e.Line, e.Column)
	}
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

func (e *AnalysisError) Unwrap() error {
	return e.Cause
}

// NewInvalidInputError creates an error for source that fails pre-parse
// validation.
func NewInvalidInputError(message string) *AnalysisError {
	return &AnalysisError{
		Message:  message,
		Category: ErrorCategoryInvalidInput,
	}
}

// NewSizeLimitError creates an error for source larger than the configured
// maximum. Size checks run before any parsing work.
func NewSizeLimitError(sourceLength, limit int) *AnalysisError {
	return &AnalysisError{
		Message:      fmt.Sprintf("source size %d bytes exceeds limit of %d bytes", sourceLength, limit),
		Category:     ErrorCategorySizeLimit,
		SourceLength: sourceLength,
		Limit:        limit,
	}
}

// NewSyntaxError creates an error for a syntax problem at a known location.
// Pass zero line when the location could not be determined.
func NewSyntaxError(message string, line, column int) *AnalysisError {
	return &AnalysisError{
		Message:  message,
		Category: ErrorCategorySyntax,
		Line:     line,
		Column:   column,
	}
}

// NewUnsupportedConstructError creates an error for a recognized but
// unsupported language construct.
func NewUnsupportedConstructError(construct string, line int) *AnalysisError {
	return &AnalysisError{
		Message:  fmt.Sprintf("unsupported construct: %s", construct),
		Category: ErrorCategoryUnsupported,
		Line:     line,
	}
}

func isCategory(err error, category ErrorCategory) bool {
	var analysisErr *AnalysisError
	if errors.As(err, &analysisErr) {
		return analysisErr.Category == category
	}
	return false
}

// IsInvalidInput reports whether err is an input validation failure.
func IsInvalidInput(err error) bool {
	return isCategory(err, ErrorCategoryInvalidInput)
}

// IsSizeLimitExceeded reports whether err is a source size limit failure.
func IsSizeLimitExceeded(err error) bool {
	return isCategory(err, ErrorCategorySizeLimit)
}

// IsSyntaxError reports whether err is a syntax failure.
func IsSyntaxError(err error) bool {
	return isCategory(err, ErrorCategorySyntax)
}

// IsUnsupportedConstruct reports whether err is an unsupported construct
// failure.
func IsUnsupportedConstruct(err error) bool {
	return isCategory(err, ErrorCategoryUnsupported)
}
