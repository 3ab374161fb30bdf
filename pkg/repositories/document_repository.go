// Package repositories provides data access over the read-only legal
// corpus. All repositories share one pgx pool and never write.
package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/apperrors"
	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/database"
	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/models"
)

// DocumentField names a searchable text column of legal_documents.
type DocumentField string

const (
	FieldTitle        DocumentField = "title"
	FieldAbbreviation DocumentField = "abbreviation"
	FieldTitleEN      DocumentField = "title_en"
)

// DocumentRepository provides data access for legal documents.
type DocumentRepository interface {
	// Get fetches a document by canonical ID, case-insensitively.
	Get(ctx context.Context, id string) (*models.LegalDocument, error)
	// FindByNumericToken matches documents whose ID contains the
	// dash-normalized SR token or whose abbreviation contains the raw
	// dotted token.
	FindByNumericToken(ctx context.Context, dashToken, dottedToken string) (*models.LegalDocument, error)
	// FindBySubstring matches the given field by substring. The
	// caseSensitive pass is tried by the resolver before the
	// case-insensitive one. First row in the store's natural order
	// wins; no secondary ranking is applied.
	FindBySubstring(ctx context.Context, field DocumentField, fragment string, caseSensitive bool) (*models.LegalDocument, error)
	// Count returns the number of documents in the corpus.
	Count(ctx context.Context) (int64, error)
}

type documentRepository struct {
	db *database.DB
}

// NewDocumentRepository creates a new DocumentRepository.
func NewDocumentRepository(db *database.DB) DocumentRepository {
	return &documentRepository{db: db}
}

var _ DocumentRepository = (*documentRepository)(nil)

const documentColumns = `id, title, title_en, abbreviation, status, issued_date, in_force_date, source_url`

func scanDocument(row pgx.Row) (*models.LegalDocument, error) {
	var d models.LegalDocument
	err := row.Scan(
		&d.ID,
		&d.Title,
		&d.TitleEN,
		&d.Abbreviation,
		&d.Status,
		&d.IssuedDate,
		&d.InForceDate,
		&d.SourceURL,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan document: %w", err)
	}
	return &d, nil
}

func (r *documentRepository) Get(ctx context.Context, id string) (*models.LegalDocument, error) {
	query := `SELECT ` + documentColumns + `
		FROM legal_documents
		WHERE LOWER(id) = LOWER($1)`
	return scanDocument(r.db.QueryRow(ctx, query, id))
}

func (r *documentRepository) FindByNumericToken(ctx context.Context, dashToken, dottedToken string) (*models.LegalDocument, error) {
	query := `SELECT ` + documentColumns + `
		FROM legal_documents
		WHERE id ILIKE '%' || $1 || '%'
		   OR abbreviation ILIKE '%' || $2 || '%'
		LIMIT 1`
	return scanDocument(r.db.QueryRow(ctx, query, dashToken, dottedToken))
}

func (r *documentRepository) FindBySubstring(ctx context.Context, field DocumentField, fragment string, caseSensitive bool) (*models.LegalDocument, error) {
	var column string
	switch field {
	case FieldTitle:
		column = "title"
	case FieldAbbreviation:
		column = "abbreviation"
	case FieldTitleEN:
		column = "title_en"
	default:
		return nil, fmt.Errorf("unknown document field %q", field)
	}

	operator := "ILIKE"
	if caseSensitive {
		operator = "LIKE"
	}

	query := fmt.Sprintf(`SELECT %s
		FROM legal_documents
		WHERE %s %s '%%' || $1 || '%%'
		LIMIT 1`, documentColumns, column, operator)
	return scanDocument(r.db.QueryRow(ctx, query, fragment))
}

func (r *documentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM legal_documents`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return count, nil
}
