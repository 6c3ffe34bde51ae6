package service

import (
	"context"
	"errors"

	"testsmith/internal/application/common"
	"testsmith/internal/application/common/logging"
	"testsmith/internal/application/common/slogger"
	"testsmith/internal/application/dto"
	"testsmith/internal/domain/entity"
	"testsmith/internal/domain/valueobject"
	"testsmith/internal/port/outbound"

	"github.com/google/uuid"
)

// ErrAnalysisNotFound is returned when the requested analysis does not exist
// or has been deleted.
var ErrAnalysisNotFound = errors.New("analysis not found")

// DefaultAnalysisService implements the AnalysisService inbound port.
type DefaultAnalysisService struct {
	analysisRepo     outbound.AnalysisRepository
	testCaseRepo     outbound.TestCaseRepository
	parser           outbound.SourceParser
	analyzer         outbound.StructuralAnalyzer
	synthesizer      outbound.TestCaseSynthesizer
	publisher        outbound.MessagePublisher
	defaultFramework string
}

// NewDefaultAnalysisService creates an analysis service. All dependencies are
// required.
func NewDefaultAnalysisService(
	analysisRepo outbound.AnalysisRepository,
	testCaseRepo outbound.TestCaseRepository,
	parser outbound.SourceParser,
	analyzer outbound.StructuralAnalyzer,
	synthesizer outbound.TestCaseSynthesizer,
	publisher outbound.MessagePublisher,
	defaultFramework string,
) *DefaultAnalysisService {
	if analysisRepo == nil {
		panic("NewDefaultAnalysisService: analysisRepo cannot be nil")
	}
	if testCaseRepo == nil {
		panic("NewDefaultAnalysisService: testCaseRepo cannot be nil")
	}
	if parser == nil {
		panic("NewDefaultAnalysisService: parser cannot be nil")
	}
	if analyzer == nil {
		panic("NewDefaultAnalysisService: analyzer cannot be nil")
	}
	if synthesizer == nil {
		panic("NewDefaultAnalysisService: synthesizer cannot be nil")
	}
	if publisher == nil {
		panic("NewDefaultAnalysisService: publisher cannot be nil")
	}

	return &DefaultAnalysisService{
		analysisRepo:     analysisRepo,
		testCaseRepo:     testCaseRepo,
		parser:           parser,
		analyzer:         analyzer,
		synthesizer:      synthesizer,
		publisher:        publisher,
		defaultFramework: defaultFramework,
	}
}

// Analyze runs the full pipeline synchronously. Nothing is persisted; the
// caller owns the returned inventory and descriptors.
func (s *DefaultAnalysisService) Analyze(
	ctx context.Context,
	request dto.AnalyzeRequest,
) (*dto.AnalyzeResponse, error) {
	ctx, _ = logging.EnsureCorrelationID(ctx)

	language, err := valueobject.NewLanguage(request.Language)
	if err != nil {
		return nil, err
	}
	framework := s.framework(request.Framework)

	result, testCases, err := s.runPipeline(ctx, language, request.Source, framework)
	if err != nil {
		return nil, err
	}

	slogger.Info(ctx, "synchronous analysis completed", slogger.Fields{
		"source_name": request.SourceName,
		"functions":   result.Metrics.FunctionsCount,
		"test_cases":  len(testCases),
	})

	// Invalid-parameter descriptors can carry NaN, which encoding/json rejects.
	return &dto.AnalyzeResponse{
		Result:    result,
		TestCases: valueobject.JSONSafeDescriptors(testCases),
	}, nil
}

// CreateAnalysis persists a pending analysis and enqueues it for a worker.
func (s *DefaultAnalysisService) CreateAnalysis(
	ctx context.Context,
	request dto.CreateAnalysisRequest,
) (*dto.AnalysisResponse, error) {
	ctx, _ = logging.EnsureCorrelationID(ctx)

	language, err := valueobject.NewLanguage(request.Language)
	if err != nil {
		return nil, err
	}

	analysis := entity.NewAnalysis(language, request.SourceName, request.Source, s.framework(request.Framework))

	if err := s.analysisRepo.Save(ctx, analysis); err != nil {
		return nil, common.WrapServiceError(common.OpSaveAnalysis, err)
	}

	if err := s.publisher.PublishAnalysisJob(ctx, analysis.ID(), language.Name()); err != nil {
		return nil, common.WrapServiceError(common.OpPublishJob, err)
	}

	slogger.Info(ctx, "analysis created", slogger.Fields{
		"analysis_id": analysis.ID().String(),
		"language":    language.Name(),
	})

	response := analysisToDTO(analysis)
	return &response, nil
}

// GetAnalysis returns one analysis by ID.
func (s *DefaultAnalysisService) GetAnalysis(
	ctx context.Context,
	id uuid.UUID,
) (*dto.AnalysisResponse, error) {
	analysis, err := s.analysisRepo.FindByID(ctx, id)
	if err != nil {
		return nil, common.WrapServiceError(common.OpRetrieveAnalysis, err)
	}
	if analysis == nil {
		return nil, ErrAnalysisNotFound
	}

	response := analysisToDTO(analysis)
	return &response, nil
}

// ListAnalyses returns analyses matching the query.
func (s *DefaultAnalysisService) ListAnalyses(
	ctx context.Context,
	query dto.AnalysisListQuery,
) (*dto.AnalysisListResponse, error) {
	defaults := dto.DefaultAnalysisListQuery()
	if query.Limit <= 0 {
		query.Limit = defaults.Limit
	}
	if query.Sort == "" {
		query.Sort = defaults.Sort
	}

	filters := outbound.AnalysisFilters{
		Limit:  query.Limit,
		Offset: query.Offset,
		Sort:   query.Sort,
	}
	if query.Status != "" {
		status, err := valueobject.NewAnalysisStatus(query.Status)
		if err != nil {
			return nil, err
		}
		filters.Status = &status
	}

	analyses, total, err := s.analysisRepo.FindAll(ctx, filters)
	if err != nil {
		return nil, common.WrapServiceError(common.OpListAnalyses, err)
	}

	responses := make([]dto.AnalysisResponse, 0, len(analyses))
	for _, analysis := range analyses {
		responses = append(responses, analysisToDTO(analysis))
	}

	return &dto.AnalysisListResponse{
		Analyses: responses,
		Pagination: dto.PaginationResponse{
			Limit:   query.Limit,
			Offset:  query.Offset,
			Total:   total,
			HasMore: query.Offset+len(responses) < total,
		},
	}, nil
}

// DeleteAnalysis removes an analysis and its synthesized test cases.
func (s *DefaultAnalysisService) DeleteAnalysis(ctx context.Context, id uuid.UUID) error {
	analysis, err := s.analysisRepo.FindByID(ctx, id)
	if err != nil {
		return common.WrapServiceError(common.OpRetrieveAnalysis, err)
	}
	if analysis == nil {
		return ErrAnalysisNotFound
	}

	if err := s.testCaseRepo.DeleteByAnalysisID(ctx, id); err != nil {
		return common.WrapServiceError(common.OpDeleteAnalysis, err)
	}
	if err := s.analysisRepo.Delete(ctx, id); err != nil {
		return common.WrapServiceError(common.OpDeleteAnalysis, err)
	}

	slogger.Info(ctx, "analysis deleted", slogger.Fields{
		"analysis_id": id.String(),
	})
	return nil
}

// runPipeline executes parse, analyze, and synthesize against one source.
func (s *DefaultAnalysisService) runPipeline(
	ctx context.Context,
	language valueobject.Language,
	source string,
	framework string,
) (*valueobject.AnalysisResult, []valueobject.TestCaseDescriptor, error) {
	tree, err := s.parser.Parse(ctx, language, source)
	if err != nil {
		return nil, nil, err
	}

	result, err := s.analyzer.Analyze(ctx, tree)
	if err != nil {
		return nil, nil, common.WrapServiceError(common.OpAnalyzeSource, err)
	}

	testCases, err := s.synthesizer.Synthesize(ctx, result, framework)
	if err != nil {
		return nil, nil, common.WrapServiceError(common.OpSynthesizeTests, err)
	}

	return result, testCases, nil
}

func (s *DefaultAnalysisService) framework(requested string) string {
	if requested != "" {
		return requested
	}
	return s.defaultFramework
}
