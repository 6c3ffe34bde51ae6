package entity

import (
	"time"

	"testsmith/internal/domain/valueobject"

	"github.com/google/uuid"
)

// Analysis represents one submitted source analysis job. Synchronous requests
// run it to completion in-process; asynchronous requests persist it pending
// and let a worker drive the status transitions.
type Analysis struct {
	id           uuid.UUID
	language     valueobject.Language
	sourceName   string
	source       string
	framework    string
	status       valueobject.AnalysisStatus
	result       *valueobject.AnalysisResult
	startedAt    *time.Time
	completedAt  *time.Time
	errorMessage *string
	createdAt    time.Time
	updatedAt    time.Time
	deletedAt    *time.Time
}

// NewAnalysis creates a new pending Analysis entity.
func NewAnalysis(language valueobject.Language, sourceName, source, framework string) *Analysis {
	now := time.Now()
	return &Analysis{
		id:         uuid.New(),
		language:   language,
		sourceName: sourceName,
		source:     source,
		framework:  framework,
		status:     valueobject.AnalysisStatusPending,
		createdAt:  now,
		updatedAt:  now,
	}
}

// RestoreAnalysis creates an Analysis entity from stored data.
func RestoreAnalysis(
	id uuid.UUID,
	language valueobject.Language,
	sourceName string,
	source string,
	framework string,
	status valueobject.AnalysisStatus,
	result *valueobject.AnalysisResult,
	startedAt *time.Time,
	completedAt *time.Time,
	errorMessage *string,
	createdAt time.Time,
	updatedAt time.Time,
	deletedAt *time.Time,
) *Analysis {
	return &Analysis{
		id:           id,
		language:     language,
		sourceName:   sourceName,
		source:       source,
		framework:    framework,
		status:       status,
		result:       result,
		startedAt:    startedAt,
		completedAt:  completedAt,
		errorMessage: errorMessage,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
		deletedAt:    deletedAt,
	}
}

// ID returns the analysis ID.
func (a *Analysis) ID() uuid.UUID {
	return a.id
}

// Language returns the source language.
func (a *Analysis) Language() valueobject.Language {
	return a.language
}

// SourceName returns the caller-supplied name for the analyzed source.
func (a *Analysis) SourceName() string {
	return a.sourceName
}

// Source returns the submitted source text.
func (a *Analysis) Source() string {
	return a.source
}

// Framework returns the target test framework for rendering.
func (a *Analysis) Framework() string {
	return a.framework
}

// Status returns the current analysis status.
func (a *Analysis) Status() valueobject.AnalysisStatus {
	return a.status
}

// Result returns the structural inventory, nil until the analysis completes.
func (a *Analysis) Result() *valueobject.AnalysisResult {
	return a.result
}

// StartedAt returns the processing start timestamp.
func (a *Analysis) StartedAt() *time.Time {
	return a.startedAt
}

// CompletedAt returns the completion timestamp.
func (a *Analysis) CompletedAt() *time.Time {
	return a.completedAt
}

// ErrorMessage returns the error message if the analysis failed.
func (a *Analysis) ErrorMessage() *string {
	return a.errorMessage
}

// CreatedAt returns the creation timestamp.
func (a *Analysis) CreatedAt() time.Time {
	return a.createdAt
}

// UpdatedAt returns the last update timestamp.
func (a *Analysis) UpdatedAt() time.Time {
	return a.updatedAt
}

// DeletedAt returns the deletion timestamp.
func (a *Analysis) DeletedAt() *time.Time {
	return a.deletedAt
}

// IsDeleted returns true if the analysis is soft-deleted.
func (a *Analysis) IsDeleted() bool {
	return a.deletedAt != nil
}

// IsTerminal returns true if the analysis is in a terminal state.
func (a *Analysis) IsTerminal() bool {
	return a.status.IsTerminal()
}

// Duration returns the processing duration if completed.
func (a *Analysis) Duration() *time.Duration {
	if a.startedAt == nil || a.completedAt == nil {
		return nil
	}
	duration := a.completedAt.Sub(*a.startedAt)
	return &duration
}

// Start marks the analysis as running.
func (a *Analysis) Start() error {
	if !a.status.CanTransitionTo(valueobject.AnalysisStatusRunning) {
		return NewDomainError("cannot start analysis in current status", "INVALID_STATUS_TRANSITION")
	}

	now := time.Now()
	a.status = valueobject.AnalysisStatusRunning
	a.startedAt = &now
	a.updatedAt = now
	return nil
}

// Complete marks the analysis as completed with its structural inventory.
func (a *Analysis) Complete(result *valueobject.AnalysisResult) error {
	if !a.status.CanTransitionTo(valueobject.AnalysisStatusCompleted) {
		return NewDomainError("cannot complete analysis in current status", "INVALID_STATUS_TRANSITION")
	}
	if result == nil {
		return NewDomainError("completed analysis requires a result", "MISSING_RESULT")
	}

	now := time.Now()
	a.status = valueobject.AnalysisStatusCompleted
	a.completedAt = &now
	a.result = result
	a.errorMessage = nil
	a.updatedAt = now
	return nil
}

// Fail marks the analysis as failed with an error message.
func (a *Analysis) Fail(errorMessage string) error {
	if !a.status.CanTransitionTo(valueobject.AnalysisStatusFailed) {
		return NewDomainError("cannot fail analysis in current status", "INVALID_STATUS_TRANSITION")
	}

	now := time.Now()
	a.status = valueobject.AnalysisStatusFailed
	a.completedAt = &now
	a.errorMessage = &errorMessage
	a.updatedAt = now
	return nil
}

// Cancel marks the analysis as cancelled.
func (a *Analysis) Cancel() error {
	if !a.status.CanTransitionTo(valueobject.AnalysisStatusCancelled) {
		return NewDomainError("cannot cancel analysis in current status", "INVALID_STATUS_TRANSITION")
	}

	now := time.Now()
	a.status = valueobject.AnalysisStatusCancelled
	a.completedAt = &now
	a.updatedAt = now
	return nil
}

// Archive soft-deletes the analysis.
func (a *Analysis) Archive() error {
	if a.IsDeleted() {
		return NewDomainError("analysis is already archived", "ALREADY_ARCHIVED")
	}

	now := time.Now()
	a.deletedAt = &now
	a.updatedAt = now
	return nil
}
