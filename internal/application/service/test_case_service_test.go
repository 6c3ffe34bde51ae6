package service

import (
	"context"
	"testing"

	"testsmith/internal/domain/entity"
	"testsmith/internal/domain/valueobject"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAnalysisTestCases(t *testing.T) {
	analysisRepo := newFakeAnalysisRepo()
	testCaseRepo := newFakeTestCaseRepo()
	svc := NewDefaultTestCaseService(analysisRepo, testCaseRepo)

	analysis := entity.NewAnalysis(valueobject.LanguageJavaScript, "add.js", "const a = 1;", "jest")
	require.NoError(t, analysisRepo.Save(context.Background(), analysis))
	require.NoError(t, testCaseRepo.SaveAll(context.Background(), []*entity.TestCase{
		entity.NewTestCase(analysis.ID(), descriptorFixture("add")),
		entity.NewTestCase(analysis.ID(), descriptorFixture("subtract")),
	}))

	response, err := svc.GetAnalysisTestCases(context.Background(), analysis.ID())
	require.NoError(t, err)

	assert.Equal(t, analysis.ID(), response.AnalysisID)
	assert.Equal(t, 2, response.Total)
	require.Len(t, response.TestCases, 2)
	assert.Equal(t, "add", response.TestCases[0].OwnerName)
	assert.Equal(t, "unit", response.TestCases[0].Kind)
	assert.Equal(t, "generated", response.TestCases[0].Status)
}

func TestGetAnalysisTestCases_EmptyForAnalysisWithoutResults(t *testing.T) {
	analysisRepo := newFakeAnalysisRepo()
	testCaseRepo := newFakeTestCaseRepo()
	svc := NewDefaultTestCaseService(analysisRepo, testCaseRepo)

	analysis := entity.NewAnalysis(valueobject.LanguageJavaScript, "", "const a = 1;", "jest")
	require.NoError(t, analysisRepo.Save(context.Background(), analysis))

	response, err := svc.GetAnalysisTestCases(context.Background(), analysis.ID())
	require.NoError(t, err)
	assert.Equal(t, 0, response.Total)
	assert.Empty(t, response.TestCases)
}

func TestGetAnalysisTestCases_AnalysisNotFound(t *testing.T) {
	svc := NewDefaultTestCaseService(newFakeAnalysisRepo(), newFakeTestCaseRepo())

	response, err := svc.GetAnalysisTestCases(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrAnalysisNotFound)
	assert.Nil(t, response)
}
