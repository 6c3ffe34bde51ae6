package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"testsmith/internal/domain/entity"
	"testsmith/internal/domain/valueobject"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgreSQLTestCaseRepository implements the TestCaseRepository interface.
type PostgreSQLTestCaseRepository struct {
	pool *pgxpool.Pool
}

// NewPostgreSQLTestCaseRepository creates a new PostgreSQL test case repository.
func NewPostgreSQLTestCaseRepository(pool *pgxpool.Pool) *PostgreSQLTestCaseRepository {
	return &PostgreSQLTestCaseRepository{
		pool: pool,
	}
}

// SaveAll persists a batch of test cases in a single round trip.
func (r *PostgreSQLTestCaseRepository) SaveAll(ctx context.Context, testCases []*entity.TestCase) error {
	if len(testCases) == 0 {
		return nil
	}

	query := `
		INSERT INTO testsmith.test_cases (
			id, analysis_id, owner_name, kind, description, input_data,
			expected_output, rendered_code, priority, status, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)`

	batch := &pgx.Batch{}
	for _, testCase := range testCases {
		if testCase == nil {
			return ErrInvalidArgument
		}
		descriptor := testCase.Descriptor()
		inputJSON, err := marshalInputData(descriptor.InputData)
		if err != nil {
			return err
		}
		batch.Queue(query,
			testCase.ID(),
			testCase.AnalysisID(),
			descriptor.OwnerName,
			string(descriptor.Kind),
			descriptor.Description,
			inputJSON,
			descriptor.ExpectedOutput,
			descriptor.RenderedCode,
			string(descriptor.Priority),
			descriptor.Status,
			testCase.CreatedAt(),
		)
	}

	qi := GetQueryInterface(ctx, r.pool)
	results := qi.SendBatch(ctx, batch)
	defer results.Close()

	for range testCases {
		if _, err := results.Exec(); err != nil {
			return WrapError(err, "save test cases")
		}
	}

	return nil
}

// FindByAnalysisID returns all test cases of one analysis in insertion order.
func (r *PostgreSQLTestCaseRepository) FindByAnalysisID(
	ctx context.Context,
	analysisID uuid.UUID,
) ([]*entity.TestCase, error) {
	if analysisID == uuid.Nil {
		return nil, ErrInvalidArgument
	}

	query := `
		SELECT id, analysis_id, owner_name, kind, description, input_data,
			   expected_output, rendered_code, priority, status, created_at
		FROM testsmith.test_cases
		WHERE analysis_id = $1
		ORDER BY created_at, id`

	qi := GetQueryInterface(ctx, r.pool)
	rows, err := qi.Query(ctx, query, analysisID)
	if err != nil {
		return nil, WrapError(err, "find test cases")
	}
	defer rows.Close()

	testCases := make([]*entity.TestCase, 0)
	for rows.Next() {
		testCase, scanErr := scanTestCase(rows)
		if scanErr != nil {
			return nil, WrapError(scanErr, "scan test case")
		}
		testCases = append(testCases, testCase)
	}
	if err := rows.Err(); err != nil {
		return nil, WrapError(err, "iterate test cases")
	}

	return testCases, nil
}

// DeleteByAnalysisID removes all test cases belonging to an analysis.
func (r *PostgreSQLTestCaseRepository) DeleteByAnalysisID(ctx context.Context, analysisID uuid.UUID) error {
	if analysisID == uuid.Nil {
		return ErrInvalidArgument
	}

	query := `DELETE FROM testsmith.test_cases WHERE analysis_id = $1`

	qi := GetQueryInterface(ctx, r.pool)
	if _, err := qi.Exec(ctx, query, analysisID); err != nil {
		return WrapError(err, "delete test cases")
	}
	return nil
}

func scanTestCase(row rowScanner) (*entity.TestCase, error) {
	var (
		id, analysisID uuid.UUID
		ownerName      string
		kind           string
		description    string
		inputJSON      []byte
		expected       string
		renderedCode   string
		priority       string
		status         string
		createdAt      time.Time
	)

	err := row.Scan(
		&id, &analysisID, &ownerName, &kind, &description, &inputJSON,
		&expected, &renderedCode, &priority, &status, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	var inputData map[string]any
	if len(inputJSON) > 0 {
		if err := json.Unmarshal(inputJSON, &inputData); err != nil {
			return nil, fmt.Errorf("failed to decode test case input: %w", err)
		}
	}

	descriptor := valueobject.TestCaseDescriptor{
		OwnerName:      ownerName,
		Kind:           valueobject.TestKind(kind),
		Description:    description,
		InputData:      inputData,
		ExpectedOutput: expected,
		RenderedCode:   renderedCode,
		Priority:       valueobject.TestPriority(priority),
		Status:         status,
	}

	return entity.RestoreTestCase(id, analysisID, descriptor, createdAt), nil
}

// marshalInputData encodes input values as JSON. JSON cannot express NaN, so
// it is stored as its literal name.
func marshalInputData(inputData map[string]any) ([]byte, error) {
	if inputData == nil {
		return []byte("{}"), nil
	}
	data, err := json.Marshal(valueobject.JSONSafeValue(inputData))
	if err != nil {
		return nil, fmt.Errorf("failed to encode test case input: %w", err)
	}
	return data, nil
}
