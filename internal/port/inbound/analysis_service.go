// Package inbound defines the inbound ports (interfaces) for the application layer.
// These ports represent the entry points into the application's core business logic.
package inbound

import (
	"context"

	"testsmith/internal/application/dto"

	"github.com/google/uuid"
)

// AnalysisService defines the inbound port for analysis operations.
type AnalysisService interface {
	// Analyze runs the full pipeline synchronously and returns the
	// structural inventory with all synthesized test cases.
	Analyze(ctx context.Context, request dto.AnalyzeRequest) (*dto.AnalyzeResponse, error)

	// CreateAnalysis persists a pending analysis and enqueues it for a worker.
	CreateAnalysis(ctx context.Context, request dto.CreateAnalysisRequest) (*dto.AnalysisResponse, error)
	GetAnalysis(ctx context.Context, id uuid.UUID) (*dto.AnalysisResponse, error)
	ListAnalyses(ctx context.Context, query dto.AnalysisListQuery) (*dto.AnalysisListResponse, error)
	DeleteAnalysis(ctx context.Context, id uuid.UUID) error
}

// TestCaseService defines the inbound port for reading synthesized test cases.
type TestCaseService interface {
	GetAnalysisTestCases(ctx context.Context, analysisID uuid.UUID) (*dto.TestCaseListResponse, error)
}

// HealthService defines the inbound port for health check operations.
type HealthService interface {
	GetHealth(ctx context.Context) (*dto.HealthResponse, error)
}
