package repository

import (
	"context"

	"testsmith/internal/adapter/outbound/templates"
	"testsmith/internal/domain/valueobject"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgreSQLTemplateStore implements the TemplateStore port. Templates are
// operator-managed rows; the application only reads them.
type PostgreSQLTemplateStore struct {
	pool *pgxpool.Pool
}

// NewPostgreSQLTemplateStore creates a new PostgreSQL template store.
func NewPostgreSQLTemplateStore(pool *pgxpool.Pool) *PostgreSQLTemplateStore {
	return &PostgreSQLTemplateStore{
		pool: pool,
	}
}

// FindTemplate resolves a template by language, framework, and test kind.
func (s *PostgreSQLTemplateStore) FindTemplate(
	ctx context.Context,
	language, framework string,
	kind valueobject.TestKind,
) (string, error) {
	query := `
		SELECT template_text
		FROM testsmith.templates
		WHERE language = $1 AND framework = $2 AND kind = $3`

	qi := GetQueryInterface(ctx, s.pool)

	var templateText string
	err := qi.QueryRow(ctx, query, language, framework, string(kind)).Scan(&templateText)
	if err != nil {
		if IsNotFoundError(err) {
			return "", templates.ErrTemplateNotFound
		}
		return "", WrapError(err, "find template")
	}

	return templateText, nil
}
