package service

import (
	"context"

	"testsmith/internal/application/common"
	"testsmith/internal/application/dto"
	"testsmith/internal/port/outbound"

	"github.com/google/uuid"
)

// DefaultTestCaseService implements the TestCaseService inbound port.
type DefaultTestCaseService struct {
	analysisRepo outbound.AnalysisRepository
	testCaseRepo outbound.TestCaseRepository
}

// NewDefaultTestCaseService creates a test case service.
func NewDefaultTestCaseService(
	analysisRepo outbound.AnalysisRepository,
	testCaseRepo outbound.TestCaseRepository,
) *DefaultTestCaseService {
	if analysisRepo == nil {
		panic("NewDefaultTestCaseService: analysisRepo cannot be nil")
	}
	if testCaseRepo == nil {
		panic("NewDefaultTestCaseService: testCaseRepo cannot be nil")
	}
	return &DefaultTestCaseService{
		analysisRepo: analysisRepo,
		testCaseRepo: testCaseRepo,
	}
}

// GetAnalysisTestCases returns the synthesized test cases of one analysis.
func (s *DefaultTestCaseService) GetAnalysisTestCases(
	ctx context.Context,
	analysisID uuid.UUID,
) (*dto.TestCaseListResponse, error) {
	analysis, err := s.analysisRepo.FindByID(ctx, analysisID)
	if err != nil {
		return nil, common.WrapServiceError(common.OpRetrieveAnalysis, err)
	}
	if analysis == nil {
		return nil, ErrAnalysisNotFound
	}

	testCases, err := s.testCaseRepo.FindByAnalysisID(ctx, analysisID)
	if err != nil {
		return nil, common.WrapServiceError(common.OpRetrieveTestCases, err)
	}

	responses := make([]dto.TestCaseResponse, 0, len(testCases))
	for _, testCase := range testCases {
		responses = append(responses, testCaseToDTO(testCase))
	}

	return &dto.TestCaseListResponse{
		AnalysisID: analysisID,
		TestCases:  responses,
		Total:      len(responses),
	}, nil
}
