package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"testsmith/internal/domain/entity"
	"testsmith/internal/domain/valueobject"
	"testsmith/internal/port/outbound"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgreSQLAnalysisRepository implements the AnalysisRepository interface.
type PostgreSQLAnalysisRepository struct {
	pool *pgxpool.Pool
}

// NewPostgreSQLAnalysisRepository creates a new PostgreSQL analysis repository.
func NewPostgreSQLAnalysisRepository(pool *pgxpool.Pool) *PostgreSQLAnalysisRepository {
	return &PostgreSQLAnalysisRepository{
		pool: pool,
	}
}

// Save saves an analysis to the database.
func (r *PostgreSQLAnalysisRepository) Save(ctx context.Context, analysis *entity.Analysis) error {
	if analysis == nil {
		return ErrInvalidArgument
	}

	resultJSON, err := marshalResult(analysis.Result())
	if err != nil {
		return err
	}

	query := `
		INSERT INTO testsmith.analyses (
			id, language, source_name, source, framework, status, result,
			started_at, completed_at, error_message,
			created_at, updated_at, deleted_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)`

	qi := GetQueryInterface(ctx, r.pool)
	_, err = qi.Exec(ctx, query,
		analysis.ID(),
		analysis.Language().Name(),
		analysis.SourceName(),
		analysis.Source(),
		analysis.Framework(),
		analysis.Status().String(),
		resultJSON,
		analysis.StartedAt(),
		analysis.CompletedAt(),
		analysis.ErrorMessage(),
		analysis.CreatedAt(),
		analysis.UpdatedAt(),
		analysis.DeletedAt(),
	)
	if err != nil {
		return WrapError(err, "save analysis")
	}

	return nil
}

// FindByID finds an analysis by its ID. A missing row yields (nil, nil).
func (r *PostgreSQLAnalysisRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Analysis, error) {
	if id == uuid.Nil {
		return nil, ErrInvalidArgument
	}

	query := `
		SELECT id, language, source_name, source, framework, status, result,
			   started_at, completed_at, error_message,
			   created_at, updated_at, deleted_at
		FROM testsmith.analyses
		WHERE id = $1 AND deleted_at IS NULL`

	qi := GetQueryInterface(ctx, r.pool)
	row := qi.QueryRow(ctx, query, id)

	analysis, err := scanAnalysis(row)
	if err != nil {
		if IsNotFoundError(err) {
			return nil, nil
		}
		return nil, WrapError(err, "find analysis by ID")
	}
	return analysis, nil
}

// FindAll finds analyses matching the filters and returns the total count.
func (r *PostgreSQLAnalysisRepository) FindAll(
	ctx context.Context,
	filters outbound.AnalysisFilters,
) ([]*entity.Analysis, int, error) {
	if filters.Limit <= 0 || filters.Offset < 0 {
		return nil, 0, ErrInvalidArgument
	}

	whereClause := "WHERE deleted_at IS NULL"
	args := []any{}
	argIndex := 1

	if filters.Status != nil {
		whereClause += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, filters.Status.String())
		argIndex++
	}

	qi := GetQueryInterface(ctx, r.pool)

	var total int
	countQuery := "SELECT COUNT(*) FROM testsmith.analyses " + whereClause
	if err := qi.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, WrapError(err, "count analyses")
	}

	query := fmt.Sprintf(`
		SELECT id, language, source_name, source, framework, status, result,
			   started_at, completed_at, error_message,
			   created_at, updated_at, deleted_at
		FROM testsmith.analyses
		%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d`,
		whereClause, orderClause(filters.Sort), argIndex, argIndex+1)
	args = append(args, filters.Limit, filters.Offset)

	rows, err := qi.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, WrapError(err, "find analyses")
	}
	defer rows.Close()

	analyses := make([]*entity.Analysis, 0)
	for rows.Next() {
		analysis, scanErr := scanAnalysis(rows)
		if scanErr != nil {
			return nil, 0, WrapError(scanErr, "scan analysis")
		}
		analyses = append(analyses, analysis)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, WrapError(err, "iterate analyses")
	}

	return analyses, total, nil
}

// Update updates an existing analysis.
func (r *PostgreSQLAnalysisRepository) Update(ctx context.Context, analysis *entity.Analysis) error {
	if analysis == nil {
		return ErrInvalidArgument
	}

	resultJSON, err := marshalResult(analysis.Result())
	if err != nil {
		return err
	}

	query := `
		UPDATE testsmith.analyses
		SET status = $2, result = $3, started_at = $4, completed_at = $5,
			error_message = $6, updated_at = $7, deleted_at = $8
		WHERE id = $1`

	qi := GetQueryInterface(ctx, r.pool)
	tag, err := qi.Exec(ctx, query,
		analysis.ID(),
		analysis.Status().String(),
		resultJSON,
		analysis.StartedAt(),
		analysis.CompletedAt(),
		analysis.ErrorMessage(),
		analysis.UpdatedAt(),
		analysis.DeletedAt(),
	)
	if err != nil {
		return WrapError(err, "update analysis")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete soft-deletes an analysis.
func (r *PostgreSQLAnalysisRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrInvalidArgument
	}

	query := `
		UPDATE testsmith.analyses
		SET deleted_at = $2, updated_at = $2
		WHERE id = $1 AND deleted_at IS NULL`

	qi := GetQueryInterface(ctx, r.pool)
	tag, err := qi.Exec(ctx, query, id, time.Now())
	if err != nil {
		return WrapError(err, "delete analysis")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// rowScanner covers pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row rowScanner) (*entity.Analysis, error) {
	var (
		id                               uuid.UUID
		languageName                     string
		sourceName, source, framework    string
		statusStr                        string
		resultJSON                       []byte
		startedAt, completedAt, deleted  *time.Time
		errorMessage                     *string
		createdAt, updatedAt             time.Time
	)

	err := row.Scan(
		&id, &languageName, &sourceName, &source, &framework, &statusStr, &resultJSON,
		&startedAt, &completedAt, &errorMessage,
		&createdAt, &updatedAt, &deleted,
	)
	if err != nil {
		return nil, err
	}

	language, err := valueobject.NewLanguage(languageName)
	if err != nil {
		return nil, fmt.Errorf("stored language invalid: %w", err)
	}
	status, err := valueobject.NewAnalysisStatus(statusStr)
	if err != nil {
		return nil, fmt.Errorf("stored status invalid: %w", err)
	}
	result, err := unmarshalResult(resultJSON, language)
	if err != nil {
		return nil, err
	}

	return entity.RestoreAnalysis(
		id, language, sourceName, source, framework, status, result,
		startedAt, completedAt, errorMessage,
		createdAt, updatedAt, deleted,
	), nil
}

func marshalResult(result *valueobject.AnalysisResult) ([]byte, error) {
	if result == nil {
		return nil, nil
	}
	data, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode analysis result: %w", err)
	}
	return data, nil
}

func unmarshalResult(data []byte, language valueobject.Language) (*valueobject.AnalysisResult, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var result valueobject.AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode analysis result: %w", err)
	}
	result.Language = language
	return &result, nil
}

// orderClause maps a sort expression like "created_at:desc" to SQL, allowing
// only known columns and directions.
func orderClause(sort string) string {
	column, direction := "created_at", "DESC"
	if parts := strings.SplitN(sort, ":", 2); len(parts) == 2 {
		switch parts[0] {
		case "created_at", "updated_at":
			column = parts[0]
		}
		if strings.EqualFold(parts[1], "asc") {
			direction = "ASC"
		}
	}
	return column + " " + direction
}
