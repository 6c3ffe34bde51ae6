package api

import (
	"context"
	"time"

	"testsmith/internal/application/dto"

	"github.com/google/uuid"
)

// fakeAnalysisService returns canned responses and records received requests.
type fakeAnalysisService struct {
	analyzeResponse *dto.AnalyzeResponse
	analyzeErr      error

	createResponse *dto.AnalysisResponse
	createErr      error

	getResponse *dto.AnalysisResponse
	getErr      error

	listResponse *dto.AnalysisListResponse
	listErr      error
	lastQuery    dto.AnalysisListQuery

	deleteErr error
	deletedID uuid.UUID
}

func (s *fakeAnalysisService) Analyze(
	_ context.Context,
	_ dto.AnalyzeRequest,
) (*dto.AnalyzeResponse, error) {
	if s.analyzeErr != nil {
		return nil, s.analyzeErr
	}
	if s.analyzeResponse != nil {
		return s.analyzeResponse, nil
	}
	return &dto.AnalyzeResponse{}, nil
}

func (s *fakeAnalysisService) CreateAnalysis(
	_ context.Context,
	_ dto.CreateAnalysisRequest,
) (*dto.AnalysisResponse, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	if s.createResponse != nil {
		return s.createResponse, nil
	}
	return &dto.AnalysisResponse{ID: uuid.New(), Status: "pending", CreatedAt: time.Now()}, nil
}

func (s *fakeAnalysisService) GetAnalysis(
	_ context.Context,
	_ uuid.UUID,
) (*dto.AnalysisResponse, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	if s.getResponse != nil {
		return s.getResponse, nil
	}
	return &dto.AnalysisResponse{ID: uuid.New(), Status: "completed"}, nil
}

func (s *fakeAnalysisService) ListAnalyses(
	_ context.Context,
	query dto.AnalysisListQuery,
) (*dto.AnalysisListResponse, error) {
	s.lastQuery = query
	if s.listErr != nil {
		return nil, s.listErr
	}
	if s.listResponse != nil {
		return s.listResponse, nil
	}
	return &dto.AnalysisListResponse{Analyses: []dto.AnalysisResponse{}}, nil
}

func (s *fakeAnalysisService) DeleteAnalysis(_ context.Context, id uuid.UUID) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deletedID = id
	return nil
}

// fakeTestCaseService returns canned test case listings.
type fakeTestCaseService struct {
	response *dto.TestCaseListResponse
	err      error
}

func (s *fakeTestCaseService) GetAnalysisTestCases(
	_ context.Context,
	analysisID uuid.UUID,
) (*dto.TestCaseListResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.response != nil {
		return s.response, nil
	}
	return &dto.TestCaseListResponse{AnalysisID: analysisID, TestCases: []dto.TestCaseResponse{}}, nil
}

// fakeHealthService returns a canned health response.
type fakeHealthService struct {
	response *dto.HealthResponse
	err      error
}

func (s *fakeHealthService) GetHealth(context.Context) (*dto.HealthResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.response != nil {
		return s.response, nil
	}
	return &dto.HealthResponse{Status: string(dto.HealthStatusHealthy), Timestamp: time.Now()}, nil
}
