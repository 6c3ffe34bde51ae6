package valueobject

import "fmt"

// AnalysisStatus represents the current status of an analysis job.
type AnalysisStatus string

// Analysis status constants.
const (
	AnalysisStatusPending   AnalysisStatus = "pending"
	AnalysisStatusRunning   AnalysisStatus = "running"
	AnalysisStatusCompleted AnalysisStatus = "completed"
	AnalysisStatusFailed    AnalysisStatus = "failed"
	AnalysisStatusCancelled AnalysisStatus = "cancelled"
)

// validAnalysisStatuses contains all valid analysis statuses.
var validAnalysisStatuses = map[AnalysisStatus]bool{
	AnalysisStatusPending:   true,
	AnalysisStatusRunning:   true,
	AnalysisStatusCompleted: true,
	AnalysisStatusFailed:    true,
	AnalysisStatusCancelled: true,
}

// NewAnalysisStatus creates a new AnalysisStatus with validation.
func NewAnalysisStatus(status string) (AnalysisStatus, error) {
	s := AnalysisStatus(status)
	if !validAnalysisStatuses[s] {
		return "", fmt.Errorf("invalid analysis status: %s", status)
	}
	return s, nil
}

// String returns the string representation of the status.
func (s AnalysisStatus) String() string {
	return string(s)
}

// IsTerminal returns true if this status represents a final state.
func (s AnalysisStatus) IsTerminal() bool {
	return s == AnalysisStatusCompleted || s == AnalysisStatusFailed || s == AnalysisStatusCancelled
}

// CanTransitionTo returns true if the status can transition to the target status.
func (s AnalysisStatus) CanTransitionTo(target AnalysisStatus) bool {
	transitions := map[AnalysisStatus][]AnalysisStatus{
		AnalysisStatusPending: {
			AnalysisStatusRunning,
			AnalysisStatusCancelled,
		},
		AnalysisStatusRunning: {
			AnalysisStatusCompleted,
			AnalysisStatusFailed,
			AnalysisStatusCancelled,
		},
		// Terminal states cannot transition
		AnalysisStatusCompleted: {},
		AnalysisStatusFailed:    {},
		AnalysisStatusCancelled: {},
	}

	validTransitions, exists := transitions[s]
	if !exists {
		return false
	}

	for _, validTarget := range validTransitions {
		if target == validTarget {
			return true
		}
	}
	return false
}
