package service

import (
	"testsmith/internal/application/dto"
	"testsmith/internal/domain/entity"
)

func analysisToDTO(analysis *entity.Analysis) dto.AnalysisResponse {
	return dto.AnalysisResponse{
		ID:           analysis.ID(),
		Language:     analysis.Language().Name(),
		SourceName:   analysis.SourceName(),
		Framework:    analysis.Framework(),
		Status:       analysis.Status().String(),
		Result:       analysis.Result(),
		ErrorMessage: analysis.ErrorMessage(),
		StartedAt:    analysis.StartedAt(),
		CompletedAt:  analysis.CompletedAt(),
		CreatedAt:    analysis.CreatedAt(),
		UpdatedAt:    analysis.UpdatedAt(),
	}
}

func testCaseToDTO(testCase *entity.TestCase) dto.TestCaseResponse {
	descriptor := testCase.Descriptor()
	return dto.TestCaseResponse{
		ID:             testCase.ID(),
		AnalysisID:     testCase.AnalysisID(),
		OwnerName:      descriptor.OwnerName,
		Kind:           string(descriptor.Kind),
		Description:    descriptor.Description,
		InputData:      descriptor.InputData,
		ExpectedOutput: descriptor.ExpectedOutput,
		RenderedCode:   descriptor.RenderedCode,
		Priority:       string(descriptor.Priority),
		Status:         descriptor.Status,
		CreatedAt:      testCase.CreatedAt(),
	}
}
