package dto

import "time"

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error     string      `json:"error"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
	Timestamp time.Time   `json:"timestamp,omitempty"`
}

// ErrorCode represents standard error codes.
type ErrorCode string

const (
	// ErrorCodeInvalidRequest indicates that the request contains invalid parameters or data.
	ErrorCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
	// ErrorCodeInvalidInput indicates that the submitted source failed validation.
	ErrorCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrorCodeSizeLimitExceeded indicates that the submitted source is too large.
	ErrorCodeSizeLimitExceeded ErrorCode = "SIZE_LIMIT_EXCEEDED"
	// ErrorCodeSyntaxError indicates that the submitted source contains syntax errors.
	ErrorCodeSyntaxError ErrorCode = "SYNTAX_ERROR"
	// ErrorCodeUnsupportedLanguage indicates that the requested language is not supported.
	ErrorCodeUnsupportedLanguage ErrorCode = "UNSUPPORTED_LANGUAGE"
	// ErrorCodeAnalysisNotFound indicates that the requested analysis could not be found.
	ErrorCodeAnalysisNotFound ErrorCode = "ANALYSIS_NOT_FOUND"
	// ErrorCodeInternalError indicates an unexpected internal server error occurred.
	ErrorCodeInternalError ErrorCode = "INTERNAL_ERROR"
	// ErrorCodeServiceUnavailable indicates that the service is temporarily unavailable.
	ErrorCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
)

// NewErrorResponse creates a new error response.
func NewErrorResponse(code ErrorCode, message string, details interface{}) ErrorResponse {
	return ErrorResponse{
		Error:     string(code),
		Message:   message,
		Details:   details,
		Timestamp: time.Now(),
	}
}

// ValidationError represents a validation error with field details.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

// ValidationErrorDetails represents multiple validation errors.
type ValidationErrorDetails struct {
	Errors []ValidationError `json:"errors"`
}
