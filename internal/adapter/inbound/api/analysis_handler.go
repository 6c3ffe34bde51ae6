package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"testsmith/internal/application/common"
	"testsmith/internal/application/dto"
	"testsmith/internal/port/inbound"

	"github.com/google/uuid"
)

const (
	// maxSourceNameLength bounds the optional source_name field.
	maxSourceNameLength = 255
	// maxFrameworkLength bounds the optional framework field.
	maxFrameworkLength = 100
	// maxAnalysisListLimit caps the page size for listing analyses.
	maxAnalysisListLimit = 100
)

// AnalysisHandler handles HTTP requests for analysis operations.
type AnalysisHandler struct {
	analysisService inbound.AnalysisService
	testCaseService inbound.TestCaseService
	errorHandler    ErrorHandler
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(
	analysisService inbound.AnalysisService,
	testCaseService inbound.TestCaseService,
	errorHandler ErrorHandler,
) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
		testCaseService: testCaseService,
		errorHandler:    errorHandler,
	}
}

// Analyze handles POST /analyze.
//
//	@Summary		Analyze source synchronously
//	@Description	Parses the submitted source, builds its structural inventory, and synthesizes test case descriptors in a single request.
//	@Tags			Analyses
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.AnalyzeRequest	true	"Analysis request"
//	@Success		200		{object}	dto.AnalyzeResponse	"Inventory with synthesized test cases"
//	@Failure		400		{object}	dto.ErrorResponse	"Invalid request or source input"
//	@Failure		413		{object}	dto.ErrorResponse	"Source exceeds size limit"
//	@Failure		422		{object}	dto.ErrorResponse	"Source has syntax errors"
//	@Router			/analyze [post]
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var request dto.AnalyzeRequest
	if err := h.decodeAndValidateJSON(r, &request); err != nil {
		h.errorHandler.HandleValidationError(w, r, err)
		return
	}

	if err := validateSubmission(request.Language, request.Source, request.SourceName, request.Framework); err != nil {
		h.errorHandler.HandleValidationError(w, r, err)
		return
	}

	response, err := h.analysisService.Analyze(r.Context(), request)
	if err != nil {
		h.errorHandler.HandleServiceError(w, r, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, response)
}

// CreateAnalysis handles POST /analyses.
//
//	@Summary		Submit source for asynchronous analysis
//	@Description	Persists a pending analysis and enqueues it for background processing. Poll the returned analysis ID for completion.
//	@Tags			Analyses
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateAnalysisRequest	true	"Analysis creation request"
//	@Success		202		{object}	dto.AnalysisResponse		"Analysis accepted for processing"
//	@Failure		400		{object}	dto.ErrorResponse			"Invalid request"
//	@Router			/analyses [post]
func (h *AnalysisHandler) CreateAnalysis(w http.ResponseWriter, r *http.Request) {
	var request dto.CreateAnalysisRequest
	if err := h.decodeAndValidateJSON(r, &request); err != nil {
		h.errorHandler.HandleValidationError(w, r, err)
		return
	}

	if err := validateSubmission(request.Language, request.Source, request.SourceName, request.Framework); err != nil {
		h.errorHandler.HandleValidationError(w, r, err)
		return
	}

	response, err := h.analysisService.CreateAnalysis(r.Context(), request)
	if err != nil {
		h.errorHandler.HandleServiceError(w, r, err)
		return
	}

	writeJSONResponse(w, http.StatusAccepted, response)
}

// GetAnalysis handles GET /analyses/{id}.
//
//	@Summary		Get analysis details
//	@Description	Returns the analysis job including its status and, once completed, the structural inventory.
//	@Tags			Analyses
//	@Produce		json
//	@Param			id	path		string					true	"Analysis UUID"
//	@Success		200	{object}	dto.AnalysisResponse	"Analysis details"
//	@Failure		404	{object}	dto.ErrorResponse		"Analysis not found"
//	@Router			/analyses/{id} [get]
func (h *AnalysisHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	id, err := extractAnalysisIDFromPath(r)
	if err != nil {
		h.errorHandler.HandleValidationError(w, r, err)
		return
	}

	response, err := h.analysisService.GetAnalysis(r.Context(), id)
	if err != nil {
		h.errorHandler.HandleServiceError(w, r, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, response)
}

// ListAnalyses handles GET /analyses.
//
//	@Summary		List analyses
//	@Description	Returns a paginated list of analysis jobs, optionally filtered by status.
//	@Tags			Analyses
//	@Produce		json
//	@Param			status	query		string	false	"Filter by status"	enum(pending,running,completed,failed,cancelled)
//	@Param			limit	query		int		false	"Maximum number of analyses to return (1-100)"	default(20)
//	@Param			offset	query		int		false	"Number of analyses to skip"					default(0)
//	@Param			sort	query		string	false	"Sort field and direction"						enum(created_at:asc,created_at:desc)	default(created_at:desc)
//	@Success		200		{object}	dto.AnalysisListResponse	"List of analyses"
//	@Router			/analyses [get]
func (h *AnalysisHandler) ListAnalyses(w http.ResponseWriter, r *http.Request) {
	query := h.parseAnalysisListQuery(r)
	if err := h.validateAnalysisListQuery(query); err != nil {
		h.errorHandler.HandleValidationError(w, r, err)
		return
	}

	response, err := h.analysisService.ListAnalyses(r.Context(), query)
	if err != nil {
		h.errorHandler.HandleServiceError(w, r, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, response)
}

// DeleteAnalysis handles DELETE /analyses/{id}.
//
//	@Summary		Delete analysis
//	@Description	Removes an analysis and all of its synthesized test cases.
//	@Tags			Analyses
//	@Param			id	path	string	true	"Analysis UUID"
//	@Success		204	"Analysis successfully deleted"
//	@Failure		404	{object}	dto.ErrorResponse	"Analysis not found"
//	@Router			/analyses/{id} [delete]
func (h *AnalysisHandler) DeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	id, err := extractAnalysisIDFromPath(r)
	if err != nil {
		h.errorHandler.HandleValidationError(w, r, err)
		return
	}

	if err := h.analysisService.DeleteAnalysis(r.Context(), id); err != nil {
		h.errorHandler.HandleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetAnalysisTestCases handles GET /analyses/{id}/test-cases.
//
//	@Summary		Get synthesized test cases
//	@Description	Returns every test case descriptor synthesized for a completed analysis, in synthesis order.
//	@Tags			TestCases
//	@Produce		json
//	@Param			id	path		string						true	"Analysis UUID"
//	@Success		200	{object}	dto.TestCaseListResponse	"List of test cases"
//	@Failure		404	{object}	dto.ErrorResponse			"Analysis not found"
//	@Router			/analyses/{id}/test-cases [get]
func (h *AnalysisHandler) GetAnalysisTestCases(w http.ResponseWriter, r *http.Request) {
	id, err := extractAnalysisIDFromPath(r)
	if err != nil {
		h.errorHandler.HandleValidationError(w, r, err)
		return
	}

	response, err := h.testCaseService.GetAnalysisTestCases(r.Context(), id)
	if err != nil {
		h.errorHandler.HandleServiceError(w, r, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, response)
}

// parseAnalysisListQuery extracts query parameters for analysis listing.
func (h *AnalysisHandler) parseAnalysisListQuery(r *http.Request) dto.AnalysisListQuery {
	query := dto.DefaultAnalysisListQuery()

	if status := r.URL.Query().Get("status"); status != "" {
		query.Status = status
	}
	query.Limit = parseIntQueryParam(r, "limit", query.Limit)
	query.Offset = parseIntQueryParam(r, "offset", query.Offset)
	if sort := r.URL.Query().Get("sort"); sort != "" {
		query.Sort = sort
	}
	return query
}

// validateAnalysisListQuery validates the analysis list query parameters.
func (h *AnalysisHandler) validateAnalysisListQuery(query dto.AnalysisListQuery) error {
	if query.Limit < 1 {
		return common.NewValidationError("limit", "limit must be at least 1")
	}
	if query.Limit > maxAnalysisListLimit {
		return common.NewValidationError("limit", fmt.Sprintf("limit cannot exceed %d", maxAnalysisListLimit))
	}
	if query.Offset < 0 {
		return common.NewValidationError("offset", "offset must be non-negative (0 or greater)")
	}
	if query.Sort != "" && query.Sort != "created_at:asc" && query.Sort != "created_at:desc" {
		return common.NewValidationError("sort", "sort must be one of: created_at:asc, created_at:desc")
	}
	return nil
}

// validateSubmission validates the fields shared by both submission requests.
// Semantic source validation (encoding, size, syntax) happens in the parser.
func validateSubmission(language, source, sourceName, framework string) error {
	if language == "" {
		return common.NewValidationError("language", "language is required and cannot be empty")
	}
	if source == "" {
		return common.NewValidationError("source", "source is required and cannot be empty")
	}
	if len(sourceName) > maxSourceNameLength {
		return common.NewValidationError("source_name",
			fmt.Sprintf("source_name is too long (maximum %d characters)", maxSourceNameLength))
	}
	if len(framework) > maxFrameworkLength {
		return common.NewValidationError("framework",
			fmt.Sprintf("framework is too long (maximum %d characters)", maxFrameworkLength))
	}
	return nil
}

// decodeAndValidateJSON decodes JSON from the request body with strict parsing.
func (h *AnalysisHandler) decodeAndValidateJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return common.NewValidationError("body", "Request body is required")
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(v); err != nil {
		return common.NewValidationError("body", fmt.Sprintf("Invalid JSON format: %v", err))
	}
	return nil
}

// extractAnalysisIDFromPath extracts and validates the analysis UUID path value.
func extractAnalysisIDFromPath(r *http.Request) (uuid.UUID, error) {
	value := r.PathValue("id")
	if value == "" {
		return uuid.Nil, common.NewValidationError("id", "analysis ID is required in URL path")
	}

	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, common.NewValidationError("id", fmt.Sprintf("invalid analysis UUID format: %s", value))
	}
	return id, nil
}

// parseIntQueryParam parses an integer query parameter with a default value.
func parseIntQueryParam(r *http.Request, name string, defaultValue int) int {
	if raw := r.URL.Query().Get(name); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil {
			return value
		}
	}
	return defaultValue
}
