package service

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"testsmith/internal/application/dto"
	"testsmith/internal/domain/entity"
	"testsmith/internal/domain/valueobject"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serviceFixture struct {
	analysisRepo *fakeAnalysisRepo
	testCaseRepo *fakeTestCaseRepo
	parser       *fakeParser
	analyzer     *fakeAnalyzer
	synthesizer  *fakeSynthesizer
	publisher    *fakePublisher
	service      *DefaultAnalysisService
}

func newServiceFixture() *serviceFixture {
	f := &serviceFixture{
		analysisRepo: newFakeAnalysisRepo(),
		testCaseRepo: newFakeTestCaseRepo(),
		parser:       &fakeParser{},
		analyzer:     &fakeAnalyzer{result: analysisResultFixture()},
		synthesizer:  &fakeSynthesizer{descriptors: []valueobject.TestCaseDescriptor{descriptorFixture("add")}},
		publisher:    &fakePublisher{},
	}
	f.service = NewDefaultAnalysisService(
		f.analysisRepo,
		f.testCaseRepo,
		f.parser,
		f.analyzer,
		f.synthesizer,
		f.publisher,
		"jest",
	)
	return f
}

func TestAnalyze_RunsPipelineWithoutPersisting(t *testing.T) {
	f := newServiceFixture()

	response, err := f.service.Analyze(context.Background(), dto.AnalyzeRequest{
		Language: "javascript",
		Source:   "function add(a, b) { return a + b; }",
	})
	require.NoError(t, err)
	require.NotNil(t, response)

	assert.Equal(t, 1, response.Result.Metrics.FunctionsCount)
	require.Len(t, response.TestCases, 1)
	assert.Equal(t, "add", response.TestCases[0].OwnerName)

	assert.Empty(t, f.analysisRepo.analyses)
	assert.Empty(t, f.publisher.published)
}

func TestAnalyze_ResponseWithNaNInputEncodesAsJSON(t *testing.T) {
	f := newServiceFixture()
	descriptor := descriptorFixture("calculate")
	descriptor.InputData = map[string]any{"rate": math.NaN(), "amount": 100.50}
	f.synthesizer.descriptors = []valueobject.TestCaseDescriptor{descriptor}

	response, err := f.service.Analyze(context.Background(), dto.AnalyzeRequest{
		Language: "javascript",
		Source:   "function calculate(rate, amount) { return rate * amount; }",
	})
	require.NoError(t, err)

	data, err := json.Marshal(response)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"rate":"NaN"`)
	assert.Contains(t, string(data), `"amount":100.5`)
}

func TestAnalyze_UsesDefaultFrameworkWhenUnset(t *testing.T) {
	f := newServiceFixture()

	_, err := f.service.Analyze(context.Background(), dto.AnalyzeRequest{
		Language: "javascript",
		Source:   "const a = 1;",
	})
	require.NoError(t, err)
	require.Len(t, f.synthesizer.frameworks, 1)
	assert.Equal(t, "jest", f.synthesizer.frameworks[0])
}

func TestAnalyze_PassesRequestedFramework(t *testing.T) {
	f := newServiceFixture()

	_, err := f.service.Analyze(context.Background(), dto.AnalyzeRequest{
		Language:  "javascript",
		Source:    "const a = 1;",
		Framework: "mocha",
	})
	require.NoError(t, err)
	require.Len(t, f.synthesizer.frameworks, 1)
	assert.Equal(t, "mocha", f.synthesizer.frameworks[0])
}

func TestAnalyze_UnsupportedLanguage(t *testing.T) {
	f := newServiceFixture()

	response, err := f.service.Analyze(context.Background(), dto.AnalyzeRequest{
		Language: "cobol",
		Source:   "const a = 1;",
	})
	require.Error(t, err)
	assert.Nil(t, response)
	assert.Equal(t, 0, f.parser.calls)
}

func TestAnalyze_ParserErrorPropagatesUnwrapped(t *testing.T) {
	f := newServiceFixture()
	parseErr := errors.New("syntax: unexpected token")
	f.parser.err = parseErr

	response, err := f.service.Analyze(context.Background(), dto.AnalyzeRequest{
		Language: "javascript",
		Source:   "function broken(",
	})
	require.ErrorIs(t, err, parseErr)
	assert.Nil(t, response)
}

func TestCreateAnalysis_SavesAndPublishes(t *testing.T) {
	f := newServiceFixture()

	response, err := f.service.CreateAnalysis(context.Background(), dto.CreateAnalysisRequest{
		Language:   "javascript",
		SourceName: "add.js",
		Source:     "function add(a, b) { return a + b; }",
	})
	require.NoError(t, err)
	require.NotNil(t, response)

	assert.Equal(t, "pending", response.Status)
	assert.Equal(t, "JavaScript", response.Language)
	assert.Equal(t, "add.js", response.SourceName)
	assert.Equal(t, "jest", response.Framework)

	require.Len(t, f.analysisRepo.order, 1)
	require.Len(t, f.publisher.published, 1)
	assert.Equal(t, response.ID, f.publisher.published[0])
}

func TestCreateAnalysis_PublishFailureReturnsError(t *testing.T) {
	f := newServiceFixture()
	f.publisher.err = errors.New("stream unavailable")

	response, err := f.service.CreateAnalysis(context.Background(), dto.CreateAnalysisRequest{
		Language: "javascript",
		Source:   "const a = 1;",
	})
	require.Error(t, err)
	assert.Nil(t, response)
}

func TestGetAnalysis_NotFound(t *testing.T) {
	f := newServiceFixture()

	response, err := f.service.GetAnalysis(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrAnalysisNotFound)
	assert.Nil(t, response)
}

func TestGetAnalysis_ReturnsStoredAnalysis(t *testing.T) {
	f := newServiceFixture()
	analysis := entity.NewAnalysis(valueobject.LanguageJavaScript, "add.js", "const a = 1;", "jest")
	require.NoError(t, f.analysisRepo.Save(context.Background(), analysis))

	response, err := f.service.GetAnalysis(context.Background(), analysis.ID())
	require.NoError(t, err)
	assert.Equal(t, analysis.ID(), response.ID)
	assert.Equal(t, "pending", response.Status)
}

func TestListAnalyses_AppliesDefaults(t *testing.T) {
	f := newServiceFixture()
	for range 3 {
		analysis := entity.NewAnalysis(valueobject.LanguageJavaScript, "", "const a = 1;", "jest")
		require.NoError(t, f.analysisRepo.Save(context.Background(), analysis))
	}

	response, err := f.service.ListAnalyses(context.Background(), dto.AnalysisListQuery{})
	require.NoError(t, err)

	assert.Len(t, response.Analyses, 3)
	assert.Equal(t, 20, response.Pagination.Limit)
	assert.Equal(t, 3, response.Pagination.Total)
	assert.False(t, response.Pagination.HasMore)
}

func TestListAnalyses_Pagination(t *testing.T) {
	f := newServiceFixture()
	for range 5 {
		analysis := entity.NewAnalysis(valueobject.LanguageJavaScript, "", "const a = 1;", "jest")
		require.NoError(t, f.analysisRepo.Save(context.Background(), analysis))
	}

	response, err := f.service.ListAnalyses(context.Background(), dto.AnalysisListQuery{Limit: 2, Offset: 2})
	require.NoError(t, err)

	assert.Len(t, response.Analyses, 2)
	assert.Equal(t, 5, response.Pagination.Total)
	assert.True(t, response.Pagination.HasMore)
}

func TestListAnalyses_InvalidStatusFilter(t *testing.T) {
	f := newServiceFixture()

	response, err := f.service.ListAnalyses(context.Background(), dto.AnalysisListQuery{Status: "archived"})
	require.Error(t, err)
	assert.Nil(t, response)
}

func TestDeleteAnalysis_RemovesTestCasesFirst(t *testing.T) {
	f := newServiceFixture()
	analysis := entity.NewAnalysis(valueobject.LanguageJavaScript, "", "const a = 1;", "jest")
	require.NoError(t, f.analysisRepo.Save(context.Background(), analysis))
	require.NoError(t, f.testCaseRepo.SaveAll(context.Background(), []*entity.TestCase{
		entity.NewTestCase(analysis.ID(), descriptorFixture("add")),
	}))

	require.NoError(t, f.service.DeleteAnalysis(context.Background(), analysis.ID()))

	assert.Equal(t, []uuid.UUID{analysis.ID()}, f.testCaseRepo.deletedAnalyses)
	assert.Equal(t, 1, f.analysisRepo.deleteCalls)
	assert.Empty(t, f.analysisRepo.analyses)
}

func TestDeleteAnalysis_NotFound(t *testing.T) {
	f := newServiceFixture()

	err := f.service.DeleteAnalysis(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrAnalysisNotFound)
	assert.Equal(t, 0, f.analysisRepo.deleteCalls)
}
