package outbound

import (
	"context"

	"testsmith/internal/domain/entity"
	"testsmith/internal/domain/valueobject"

	"github.com/google/uuid"
)

// AnalysisRepository defines the outbound port for analysis persistence.
type AnalysisRepository interface {
	Save(ctx context.Context, analysis *entity.Analysis) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Analysis, error)
	FindAll(ctx context.Context, filters AnalysisFilters) ([]*entity.Analysis, int, error)
	Update(ctx context.Context, analysis *entity.Analysis) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TestCaseRepository defines the outbound port for test case persistence.
type TestCaseRepository interface {
	SaveAll(ctx context.Context, testCases []*entity.TestCase) error
	FindByAnalysisID(ctx context.Context, analysisID uuid.UUID) ([]*entity.TestCase, error)
	DeleteByAnalysisID(ctx context.Context, analysisID uuid.UUID) error
}

// AnalysisFilters represents filters for analysis queries.
type AnalysisFilters struct {
	Status *valueobject.AnalysisStatus
	Limit  int
	Offset int
	Sort   string
}

// MessagePublisher defines the outbound port for publishing analysis jobs to
// the queue.
type MessagePublisher interface {
	PublishAnalysisJob(ctx context.Context, analysisID uuid.UUID, language string) error
}
