package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"testsmith/internal/application/common/slogger"
	"testsmith/internal/application/dto"
	"testsmith/internal/application/service"
	"testsmith/internal/domain/analysiserrors"
)

// ErrorHandler maps service-layer errors onto HTTP error responses.
type ErrorHandler interface {
	// HandleValidationError writes a 400 response for malformed or invalid request payloads.
	HandleValidationError(w http.ResponseWriter, r *http.Request, err error)
	// HandleServiceError maps a service-layer error to the appropriate HTTP response.
	HandleServiceError(w http.ResponseWriter, r *http.Request, err error)
}

// errorHandlingConfig describes how a class of error maps onto an HTTP response.
type errorHandlingConfig struct {
	httpStatus int
	errorCode  dto.ErrorCode
	message    string
	// useCauseMessage exposes the underlying error text to the client.
	// Safe only for domain errors whose messages carry no internals.
	useCauseMessage bool
}

// DefaultErrorHandler provides the standard error-to-response mapping.
type DefaultErrorHandler struct{}

// NewDefaultErrorHandler creates a DefaultErrorHandler.
func NewDefaultErrorHandler() *DefaultErrorHandler {
	return &DefaultErrorHandler{}
}

func (h *DefaultErrorHandler) HandleValidationError(w http.ResponseWriter, r *http.Request, err error) {
	slogger.Info(r.Context(), "Request validation failed", slogger.Field("error", err.Error()))
	writeErrorResponse(w, http.StatusBadRequest, dto.ErrorCodeInvalidRequest, err.Error())
}

func (h *DefaultErrorHandler) HandleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	cfg := h.classify(err)

	fields := slogger.Fields{
		"error":       err.Error(),
		"error_code":  string(cfg.errorCode),
		"http_status": cfg.httpStatus,
	}
	if cfg.httpStatus >= http.StatusInternalServerError {
		slogger.Error(r.Context(), "Request failed", fields)
	} else {
		slogger.Info(r.Context(), "Request rejected", fields)
	}

	message := cfg.message
	if cfg.useCauseMessage {
		var analysisErr *analysiserrors.AnalysisError
		if errors.As(err, &analysisErr) {
			message = analysisErr.Message
		}
	}
	writeErrorResponse(w, cfg.httpStatus, cfg.errorCode, message)
}

func (h *DefaultErrorHandler) classify(err error) errorHandlingConfig {
	switch {
	case errors.Is(err, service.ErrAnalysisNotFound):
		return errorHandlingConfig{
			httpStatus: http.StatusNotFound,
			errorCode:  dto.ErrorCodeAnalysisNotFound,
			message:    "analysis not found",
		}
	case analysiserrors.IsSizeLimitExceeded(err):
		return errorHandlingConfig{
			httpStatus:      http.StatusRequestEntityTooLarge,
			errorCode:       dto.ErrorCodeSizeLimitExceeded,
			message:         "source exceeds the maximum allowed size",
			useCauseMessage: true,
		}
	case analysiserrors.IsSyntaxError(err):
		return errorHandlingConfig{
			httpStatus:      http.StatusUnprocessableEntity,
			errorCode:       dto.ErrorCodeSyntaxError,
			message:         "source contains syntax errors",
			useCauseMessage: true,
		}
	case analysiserrors.IsUnsupportedConstruct(err):
		return errorHandlingConfig{
			httpStatus:      http.StatusUnprocessableEntity,
			errorCode:       dto.ErrorCodeSyntaxError,
			message:         "source contains unsupported constructs",
			useCauseMessage: true,
		}
	case analysiserrors.IsInvalidInput(err):
		return errorHandlingConfig{
			httpStatus:      http.StatusBadRequest,
			errorCode:       dto.ErrorCodeInvalidInput,
			message:         "invalid source input",
			useCauseMessage: true,
		}
	default:
		return errorHandlingConfig{
			httpStatus: http.StatusInternalServerError,
			errorCode:  dto.ErrorCodeInternalError,
			message:    "an internal error occurred",
		}
	}
}

func writeErrorResponse(w http.ResponseWriter, status int, code dto.ErrorCode, message string) {
	writeJSONResponse(w, status, dto.NewErrorResponse(code, message, nil))
}

func writeJSONResponse(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slogger.ErrorNoCtx("Failed to encode response body", slogger.Field("error", err.Error()))
	}
}
