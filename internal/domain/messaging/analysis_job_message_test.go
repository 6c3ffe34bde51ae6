package messaging

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewAnalysisJobMessage(t *testing.T) {
	analysisID := uuid.New()
	message := NewAnalysisJobMessage(analysisID, "javascript")

	if message.AnalysisID != analysisID {
		t.Error("Expected analysis ID to be set")
	}
	if message.MessageID == "" {
		t.Error("Expected a generated message ID")
	}
	if message.RetryAttempt != 0 {
		t.Errorf("Expected first attempt to be 0, got %d", message.RetryAttempt)
	}
	if message.MaxRetries != DefaultMaxRetries {
		t.Errorf("Expected max retries %d, got %d", DefaultMaxRetries, message.MaxRetries)
	}
	if err := message.Validate(); err != nil {
		t.Errorf("Expected fresh message to validate, got: %v", err)
	}
}

func TestAnalysisJobMessage_Validate(t *testing.T) {
	valid := NewAnalysisJobMessage(uuid.New(), "javascript")

	t.Run("missing message ID", func(t *testing.T) {
		message := valid
		message.MessageID = ""
		if err := message.Validate(); err == nil {
			t.Error("Expected error for missing message ID")
		}
	})

	t.Run("nil analysis ID", func(t *testing.T) {
		message := valid
		message.AnalysisID = uuid.Nil
		if err := message.Validate(); err == nil {
			t.Error("Expected error for nil analysis ID")
		}
	})

	t.Run("missing language", func(t *testing.T) {
		message := valid
		message.Language = ""
		if err := message.Validate(); err == nil {
			t.Error("Expected error for missing language")
		}
	})
}

func TestAnalysisJobMessage_RetryCycle(t *testing.T) {
	message := NewAnalysisJobMessage(uuid.New(), "javascript")

	retries := 0
	for message.CanRetry() {
		message = message.NextRetry()
		retries++
	}

	if retries != DefaultMaxRetries {
		t.Errorf("Expected %d retries, got %d", DefaultMaxRetries, retries)
	}
	if message.CanRetry() {
		t.Error("Expected exhausted message to not allow further retries")
	}
}
