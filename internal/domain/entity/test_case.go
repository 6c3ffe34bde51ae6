package entity

import (
	"time"

	"testsmith/internal/domain/valueobject"

	"github.com/google/uuid"
)

// TestCase is a persisted synthesized test case, tied to the analysis that
// produced it. The descriptor itself stays a plain value object; the entity
// adds identity and timestamps for storage.
type TestCase struct {
	id         uuid.UUID
	analysisID uuid.UUID
	descriptor valueobject.TestCaseDescriptor
	createdAt  time.Time
}

// NewTestCase creates a new TestCase entity for a synthesized descriptor.
func NewTestCase(analysisID uuid.UUID, descriptor valueobject.TestCaseDescriptor) *TestCase {
	return &TestCase{
		id:         uuid.New(),
		analysisID: analysisID,
		descriptor: descriptor,
		createdAt:  time.Now(),
	}
}

// RestoreTestCase creates a TestCase entity from stored data.
func RestoreTestCase(
	id uuid.UUID,
	analysisID uuid.UUID,
	descriptor valueobject.TestCaseDescriptor,
	createdAt time.Time,
) *TestCase {
	return &TestCase{
		id:         id,
		analysisID: analysisID,
		descriptor: descriptor,
		createdAt:  createdAt,
	}
}

// ID returns the test case ID.
func (t *TestCase) ID() uuid.UUID {
	return t.id
}

// AnalysisID returns the owning analysis ID.
func (t *TestCase) AnalysisID() uuid.UUID {
	return t.analysisID
}

// Descriptor returns the synthesized descriptor.
func (t *TestCase) Descriptor() valueobject.TestCaseDescriptor {
	return t.descriptor
}

// CreatedAt returns the creation timestamp.
func (t *TestCase) CreatedAt() time.Time {
	return t.createdAt
}
