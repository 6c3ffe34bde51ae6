package dto

import (
	"time"

	"testsmith/internal/domain/valueobject"

	"github.com/google/uuid"
)

// AnalyzeRequest represents a synchronous analyze-and-synthesize request.
type AnalyzeRequest struct {
	Language   string `json:"language"              validate:"required"`
	SourceName string `json:"source_name,omitempty" validate:"omitempty,max=255"`
	Source     string `json:"source"                validate:"required"`
	Framework  string `json:"framework,omitempty"   validate:"omitempty,max=100"`
}

// AnalyzeResponse represents the full synchronous result: the structural
// inventory plus every synthesized test case descriptor.
type AnalyzeResponse struct {
	Result    *valueobject.AnalysisResult      `json:"result"`
	TestCases []valueobject.TestCaseDescriptor `json:"test_cases"`
}

// CreateAnalysisRequest represents the request to enqueue an asynchronous
// analysis job.
type CreateAnalysisRequest struct {
	Language   string `json:"language"              validate:"required"`
	SourceName string `json:"source_name,omitempty" validate:"omitempty,max=255"`
	Source     string `json:"source"                validate:"required"`
	Framework  string `json:"framework,omitempty"   validate:"omitempty,max=100"`
}

// AnalysisResponse represents the response containing analysis job information.
type AnalysisResponse struct {
	ID           uuid.UUID                   `json:"id"`
	Language     string                      `json:"language"`
	SourceName   string                      `json:"source_name"`
	Framework    string                      `json:"framework"`
	Status       string                      `json:"status"`
	Result       *valueobject.AnalysisResult `json:"result,omitempty"`
	ErrorMessage *string                     `json:"error_message,omitempty"`
	StartedAt    *time.Time                  `json:"started_at,omitempty"`
	CompletedAt  *time.Time                  `json:"completed_at,omitempty"`
	CreatedAt    time.Time                   `json:"created_at"`
	UpdatedAt    time.Time                   `json:"updated_at"`
}

// AnalysisListResponse represents the response for listing analyses.
type AnalysisListResponse struct {
	Analyses   []AnalysisResponse `json:"analyses"`
	Pagination PaginationResponse `json:"pagination"`
}

// AnalysisListQuery represents query parameters for listing analyses.
type AnalysisListQuery struct {
	Status string `form:"status" validate:"omitempty,oneof=pending running completed failed cancelled"`
	Limit  int    `form:"limit"  validate:"omitempty,min=1,max=100"`
	Offset int    `form:"offset" validate:"omitempty,min=0"`
	Sort   string `form:"sort"   validate:"omitempty,oneof='created_at:asc' 'created_at:desc'"`
}

// DefaultAnalysisListQuery returns default values for the analysis list query.
func DefaultAnalysisListQuery() AnalysisListQuery {
	return AnalysisListQuery{
		Limit:  20,
		Offset: 0,
		Sort:   "created_at:desc",
	}
}

// PaginationResponse represents pagination metadata.
type PaginationResponse struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	Total   int  `json:"total"`
	HasMore bool `json:"has_more"`
}
