package dto

import (
	"time"

	"github.com/google/uuid"
)

// TestCaseResponse represents one persisted synthesized test case.
type TestCaseResponse struct {
	ID             uuid.UUID      `json:"id"`
	AnalysisID     uuid.UUID      `json:"analysis_id"`
	OwnerName      string         `json:"owner_name"`
	Kind           string         `json:"kind"`
	Description    string         `json:"description"`
	InputData      map[string]any `json:"input_data"`
	ExpectedOutput string         `json:"expected_output"`
	RenderedCode   string         `json:"rendered_code"`
	Priority       string         `json:"priority"`
	Status         string         `json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
}

// TestCaseListResponse represents the test cases belonging to one analysis.
type TestCaseListResponse struct {
	AnalysisID uuid.UUID          `json:"analysis_id"`
	TestCases  []TestCaseResponse `json:"test_cases"`
	Total      int                `json:"total"`
}
