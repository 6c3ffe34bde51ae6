// Package worker processes queued analysis jobs: it loads the persisted
// analysis, runs the parse/analyze/synthesize pipeline, and stores the
// outcome.
package worker

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"testsmith/internal/application/common"
	"testsmith/internal/application/common/slogger"
	"testsmith/internal/domain/analysiserrors"
	"testsmith/internal/domain/entity"
	"testsmith/internal/domain/messaging"
	"testsmith/internal/domain/valueobject"
	"testsmith/internal/port/outbound"
)

// JobProcessor implements the inbound JobProcessor port.
type JobProcessor struct {
	analysisRepo outbound.AnalysisRepository
	testCaseRepo outbound.TestCaseRepository
	parser       outbound.SourceParser
	analyzer     outbound.StructuralAnalyzer
	synthesizer  outbound.TestCaseSynthesizer

	processedJobs atomic.Int64
	failedJobs    atomic.Int64
	activeJobs    atomic.Int32
}

// NewJobProcessor creates a job processor. All dependencies are required.
func NewJobProcessor(
	analysisRepo outbound.AnalysisRepository,
	testCaseRepo outbound.TestCaseRepository,
	parser outbound.SourceParser,
	analyzer outbound.StructuralAnalyzer,
	synthesizer outbound.TestCaseSynthesizer,
) *JobProcessor {
	if analysisRepo == nil {
		panic("NewJobProcessor: analysisRepo cannot be nil")
	}
	if testCaseRepo == nil {
		panic("NewJobProcessor: testCaseRepo cannot be nil")
	}
	if parser == nil {
		panic("NewJobProcessor: parser cannot be nil")
	}
	if analyzer == nil {
		panic("NewJobProcessor: analyzer cannot be nil")
	}
	if synthesizer == nil {
		panic("NewJobProcessor: synthesizer cannot be nil")
	}
	return &JobProcessor{
		analysisRepo: analysisRepo,
		testCaseRepo: testCaseRepo,
		parser:       parser,
		analyzer:     analyzer,
		synthesizer:  synthesizer,
	}
}

// ProcessJob runs one queued analysis to a terminal state. A non-nil return
// signals the message layer to redeliver; domain failures are recorded on the
// analysis instead, since retrying cannot make invalid source parse.
func (p *JobProcessor) ProcessJob(ctx context.Context, message messaging.AnalysisJobMessage) error {
	p.activeJobs.Add(1)
	defer p.activeJobs.Add(-1)

	analysis, err := p.analysisRepo.FindByID(ctx, message.AnalysisID)
	if err != nil {
		return common.WrapServiceError(common.OpRetrieveAnalysis, err)
	}
	if analysis == nil {
		slogger.Warn(ctx, "skipping job for missing analysis", slogger.Fields{
			"analysis_id": message.AnalysisID.String(),
		})
		return nil
	}
	if analysis.IsTerminal() {
		slogger.Warn(ctx, "skipping job for already finished analysis", slogger.Fields{
			"analysis_id": analysis.ID().String(),
			"status":      analysis.Status().String(),
		})
		return nil
	}

	if err := analysis.Start(); err != nil {
		return common.WrapServiceError(common.OpProcessAnalysisJob, err)
	}
	if err := p.analysisRepo.Update(ctx, analysis); err != nil {
		return common.WrapServiceError(common.OpUpdateAnalysis, err)
	}

	result, descriptors, pipelineErr := p.runPipeline(ctx, analysis)
	if pipelineErr != nil {
		var analysisErr *analysiserrors.AnalysisError
		if errors.As(pipelineErr, &analysisErr) {
			return p.failAnalysis(ctx, analysis, analysisErr)
		}
		// Infrastructure faults recover on redelivery; put the job back.
		p.failedJobs.Add(1)
		return pipelineErr
	}

	if err := analysis.Complete(result); err != nil {
		return common.WrapServiceError(common.OpProcessAnalysisJob, err)
	}

	testCases := make([]*entity.TestCase, 0, len(descriptors))
	for _, descriptor := range descriptors {
		testCases = append(testCases, entity.NewTestCase(analysis.ID(), descriptor))
	}
	if err := p.testCaseRepo.SaveAll(ctx, testCases); err != nil {
		return common.WrapServiceError(common.OpSaveTestCases, err)
	}
	if err := p.analysisRepo.Update(ctx, analysis); err != nil {
		return common.WrapServiceError(common.OpUpdateAnalysis, err)
	}

	p.processedJobs.Add(1)
	slogger.Info(ctx, "analysis job completed", slogger.Fields{
		"analysis_id": analysis.ID().String(),
		"functions":   result.Metrics.FunctionsCount,
		"test_cases":  len(testCases),
	})
	return nil
}

func (p *JobProcessor) runPipeline(
	ctx context.Context,
	analysis *entity.Analysis,
) (*valueobject.AnalysisResult, []valueobject.TestCaseDescriptor, error) {
	tree, err := p.parser.Parse(ctx, analysis.Language(), analysis.Source())
	if err != nil {
		return nil, nil, err
	}

	result, err := p.analyzer.Analyze(ctx, tree)
	if err != nil {
		return nil, nil, common.WrapServiceError(common.OpAnalyzeSource, err)
	}

	descriptors, err := p.synthesizer.Synthesize(ctx, result, analysis.Framework())
	if err != nil {
		return nil, nil, common.WrapServiceError(common.OpSynthesizeTests, err)
	}

	return result, descriptors, nil
}

// failAnalysis records a terminal domain failure on the analysis. The message
// is acked; redelivering invalid source would fail identically.
func (p *JobProcessor) failAnalysis(
	ctx context.Context,
	analysis *entity.Analysis,
	analysisErr *analysiserrors.AnalysisError,
) error {
	p.failedJobs.Add(1)

	if err := analysis.Fail(analysisErr.Error()); err != nil {
		return common.WrapServiceError(common.OpProcessAnalysisJob, err)
	}
	if err := p.analysisRepo.Update(ctx, analysis); err != nil {
		return common.WrapServiceError(common.OpUpdateAnalysis, err)
	}

	slogger.Info(ctx, "analysis job failed on invalid source", slogger.Fields{
		"analysis_id": analysis.ID().String(),
		"category":    string(analysisErr.Category),
		"error":       analysisErr.Error(),
	})
	return nil
}

// Stats returns the processor's job counters.
func (p *JobProcessor) Stats() (processed, failed int64, active int) {
	return p.processedJobs.Load(), p.failedJobs.Load(), int(p.activeJobs.Load())
}

// String identifies the processor in logs.
func (p *JobProcessor) String() string {
	processed, failed, active := p.Stats()
	return fmt.Sprintf("JobProcessor{processed=%d, failed=%d, active=%d}", processed, failed, active)
}
