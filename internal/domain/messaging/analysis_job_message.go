// Package messaging provides the domain type for analysis job messages
// published to the queue and consumed by workers.
package messaging

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// DefaultMaxRetries is the retry budget a freshly published job carries.
const DefaultMaxRetries = 3

// AnalysisJobMessage is the payload published for each asynchronous analysis
// job. It identifies the persisted analysis; workers load source and
// configuration from storage rather than from the message.
type AnalysisJobMessage struct {
	MessageID    string    `json:"message_id"`
	AnalysisID   uuid.UUID `json:"analysis_id"`
	Language     string    `json:"language"`
	Timestamp    time.Time `json:"timestamp"`
	RetryAttempt int       `json:"retry_attempt"`
	MaxRetries   int       `json:"max_retries"`
}

// NewAnalysisJobMessage creates a message for a persisted analysis.
func NewAnalysisJobMessage(analysisID uuid.UUID, language string) AnalysisJobMessage {
	return AnalysisJobMessage{
		MessageID:  uuid.New().String(),
		AnalysisID: analysisID,
		Language:   language,
		Timestamp:  time.Now(),
		MaxRetries: DefaultMaxRetries,
	}
}

// Validate checks that the message carries everything a worker needs.
func (m AnalysisJobMessage) Validate() error {
	if m.MessageID == "" {
		return errors.New("message ID cannot be empty")
	}
	if m.AnalysisID == uuid.Nil {
		return errors.New("analysis ID cannot be empty")
	}
	if m.Language == "" {
		return errors.New("language cannot be empty")
	}
	if m.RetryAttempt < 0 || m.RetryAttempt > m.MaxRetries {
		return errors.New("retry attempt out of range")
	}
	return nil
}

// CanRetry reports whether the job has retry budget left.
func (m AnalysisJobMessage) CanRetry() bool {
	return m.RetryAttempt < m.MaxRetries
}

// NextRetry returns a copy of the message with the retry attempt advanced.
func (m AnalysisJobMessage) NextRetry() AnalysisJobMessage {
	next := m
	next.RetryAttempt++
	next.Timestamp = time.Now()
	return next
}
