package service

import (
	"context"
	"fmt"
	"sync"

	"testsmith/internal/domain/entity"
	"testsmith/internal/domain/valueobject"
	"testsmith/internal/port/outbound"

	"github.com/google/uuid"
)

// fakeAnalysisRepo is an in-memory AnalysisRepository with injectable errors.
type fakeAnalysisRepo struct {
	mu       sync.Mutex
	analyses map[uuid.UUID]*entity.Analysis
	order    []uuid.UUID

	saveErr   error
	findErr   error
	updateErr error
	deleteErr error

	updateCalls int
	deleteCalls int
}

func newFakeAnalysisRepo() *fakeAnalysisRepo {
	return &fakeAnalysisRepo{analyses: make(map[uuid.UUID]*entity.Analysis)}
}

func (r *fakeAnalysisRepo) Save(_ context.Context, analysis *entity.Analysis) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.analyses[analysis.ID()] = analysis
	r.order = append(r.order, analysis.ID())
	return nil
}

func (r *fakeAnalysisRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Analysis, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.analyses[id], nil
}

func (r *fakeAnalysisRepo) FindAll(
	_ context.Context,
	filters outbound.AnalysisFilters,
) ([]*entity.Analysis, int, error) {
	if r.findErr != nil {
		return nil, 0, r.findErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	matching := make([]*entity.Analysis, 0, len(r.order))
	for _, id := range r.order {
		analysis := r.analyses[id]
		if filters.Status != nil && analysis.Status() != *filters.Status {
			continue
		}
		matching = append(matching, analysis)
	}

	total := len(matching)
	if filters.Offset >= len(matching) {
		return nil, total, nil
	}
	matching = matching[filters.Offset:]
	if filters.Limit > 0 && filters.Limit < len(matching) {
		matching = matching[:filters.Limit]
	}
	return matching, total, nil
}

func (r *fakeAnalysisRepo) Update(_ context.Context, analysis *entity.Analysis) error {
	r.updateCalls++
	if r.updateErr != nil {
		return r.updateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.analyses[analysis.ID()] = analysis
	return nil
}

func (r *fakeAnalysisRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.deleteCalls++
	if r.deleteErr != nil {
		return r.deleteErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.analyses, id)
	return nil
}

// fakeTestCaseRepo is an in-memory TestCaseRepository.
type fakeTestCaseRepo struct {
	mu        sync.Mutex
	byID      map[uuid.UUID][]*entity.TestCase
	saveErr   error
	findErr   error
	deleteErr error

	deletedAnalyses []uuid.UUID
}

func newFakeTestCaseRepo() *fakeTestCaseRepo {
	return &fakeTestCaseRepo{byID: make(map[uuid.UUID][]*entity.TestCase)}
}

func (r *fakeTestCaseRepo) SaveAll(_ context.Context, testCases []*entity.TestCase) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, testCase := range testCases {
		r.byID[testCase.AnalysisID()] = append(r.byID[testCase.AnalysisID()], testCase)
	}
	return nil
}

func (r *fakeTestCaseRepo) FindByAnalysisID(
	_ context.Context,
	analysisID uuid.UUID,
) ([]*entity.TestCase, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[analysisID], nil
}

func (r *fakeTestCaseRepo) DeleteByAnalysisID(_ context.Context, analysisID uuid.UUID) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deletedAnalyses = append(r.deletedAnalyses, analysisID)
	delete(r.byID, analysisID)
	return nil
}

// fakePublisher records published analysis jobs.
type fakePublisher struct {
	mu        sync.Mutex
	published []uuid.UUID
	err       error
}

func (p *fakePublisher) PublishAnalysisJob(_ context.Context, analysisID uuid.UUID, _ string) error {
	if p.err != nil {
		return p.err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, analysisID)
	return nil
}

// fakeParser returns a minimal parse tree, or a configured error.
type fakeParser struct {
	err   error
	calls int
}

func (p *fakeParser) Parse(
	_ context.Context,
	language valueobject.Language,
	source string,
) (*valueobject.ParseTree, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	root := &valueobject.ParseNode{Kind: "program", EndByte: uint32(len(source))}
	return valueobject.NewParseTree(language, root, []byte(source), valueobject.ParseMetadata{NodeCount: 1, MaxDepth: 1})
}

func (p *fakeParser) SupportedLanguages() []valueobject.Language {
	return []valueobject.Language{valueobject.LanguageJavaScript}
}

// fakeAnalyzer returns a fixed result, or a configured error.
type fakeAnalyzer struct {
	result *valueobject.AnalysisResult
	err    error
}

func (a *fakeAnalyzer) Analyze(
	_ context.Context,
	_ *valueobject.ParseTree,
) (*valueobject.AnalysisResult, error) {
	if a.err != nil {
		return nil, a.err
	}
	return a.result, nil
}

// fakeSynthesizer returns canned descriptors and records the framework used.
type fakeSynthesizer struct {
	descriptors []valueobject.TestCaseDescriptor
	err         error
	frameworks  []string
}

func (s *fakeSynthesizer) Synthesize(
	_ context.Context,
	_ *valueobject.AnalysisResult,
	framework string,
) ([]valueobject.TestCaseDescriptor, error) {
	s.frameworks = append(s.frameworks, framework)
	if s.err != nil {
		return nil, s.err
	}
	return s.descriptors, nil
}

// analysisResultFixture builds a valid single-function inventory.
func analysisResultFixture() *valueobject.AnalysisResult {
	return &valueobject.AnalysisResult{
		LanguageName: "JavaScript",
		Functions: []valueobject.FunctionInfo{
			{Name: "add", Kind: valueobject.FunctionKindDeclaration, LocalComplexity: 1},
		},
		Metrics: valueobject.ComplexityMetrics{
			CyclomaticComplexity: 1,
			FunctionsCount:       1,
			LinesOfCode:          1,
		},
	}
}

// descriptorFixture builds one valid descriptor.
func descriptorFixture(owner string) valueobject.TestCaseDescriptor {
	return valueobject.TestCaseDescriptor{
		OwnerName:      owner,
		Kind:           valueobject.TestKindUnit,
		Description:    fmt.Sprintf("%s handles a basic invocation", owner),
		InputData:      map[string]any{},
		ExpectedOutput: "null",
		Priority:       valueobject.TestPriorityLow,
		Status:         valueobject.TestStatusGenerated,
	}
}
