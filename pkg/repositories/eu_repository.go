package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/apperrors"
	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/citations"
	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/database"
	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/models"
)

// EUSearchFilter narrows a search over EU instruments.
type EUSearchFilter struct {
	Query                  string
	Type                   models.EUDocumentType
	YearFrom               int
	YearTo                 int
	HasSwissImplementation *bool
	Limit                  int
}

// EURepository provides data access for EU instruments and the
// cross-reference edges linking them to Swiss legislation.
type EURepository interface {
	// GetEUDocument resolves a parsed EU identifier to a stored
	// instrument. When the identifier carries no type, the year/number
	// pair must match exactly one instrument; an ambiguous pair is
	// reported as not found.
	GetEUDocument(ctx context.Context, id citations.EUIdentifier) (*models.EUDocument, error)
	// ReferencesForDocument returns the EU references of a Swiss
	// document. Provision-pinned rows are included only when
	// includeProvisions is set.
	ReferencesForDocument(ctx context.Context, documentID string, includeProvisions bool) ([]*models.EUReference, error)
	// ReferencesForProvision returns references pinned to exactly the
	// given provision.
	ReferencesForProvision(ctx context.Context, documentID, provisionRef string) ([]*models.EUReference, error)
	// Implementations returns the Swiss documents referencing an EU
	// instrument, optionally restricted to primary implementers
	// (reference_type = implements) and/or documents currently in
	// force.
	Implementations(ctx context.Context, euDocumentID string, primaryOnly, inForceOnly bool) ([]*models.LegalDocument, error)
	// SearchEUDocuments lists EU instruments matching the filter.
	SearchEUDocuments(ctx context.Context, filter EUSearchFilter) ([]*models.EUDocument, error)
}

type euRepository struct {
	db *database.DB
}

// NewEURepository creates a new EURepository.
func NewEURepository(db *database.DB) EURepository {
	return &euRepository{db: db}
}

var _ EURepository = (*euRepository)(nil)

const euDocumentColumns = `id, title, type, year, number`

func (r *euRepository) GetEUDocument(ctx context.Context, id citations.EUIdentifier) (*models.EUDocument, error) {
	var row pgx.Row
	if canonical := id.CanonicalID(); canonical != "" {
		row = r.db.QueryRow(ctx, `SELECT `+euDocumentColumns+`
			FROM eu_documents
			WHERE id = $1`, canonical)
	} else {
		// Type unknown: accept the year/number pair only when it is
		// unambiguous across directives and regulations.
		row = r.db.QueryRow(ctx, `SELECT `+euDocumentColumns+`
			FROM eu_documents
			WHERE year = $1 AND number = $2
			  AND (SELECT COUNT(*) FROM eu_documents WHERE year = $1 AND number = $2) = 1`,
			id.Year, id.Number)
	}

	var d models.EUDocument
	err := row.Scan(&d.ID, &d.Title, &d.Type, &d.Year, &d.Number)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan EU document: %w", err)
	}
	return &d, nil
}

const euReferenceSelect = `
	SELECT r.id, r.swiss_document_id, r.provision_ref, r.eu_document_id,
	       r.reference_type, r.detail,
	       d.id, d.title, d.type, d.year, d.number
	FROM eu_references r
	JOIN eu_documents d ON d.id = r.eu_document_id`

func (r *euRepository) ReferencesForDocument(ctx context.Context, documentID string, includeProvisions bool) ([]*models.EUReference, error) {
	query := euReferenceSelect + `
		WHERE r.swiss_document_id = $1
		  AND ($2 OR r.provision_ref IS NULL)
		ORDER BY r.id`
	rows, err := r.db.Query(ctx, query, documentID, includeProvisions)
	if err != nil {
		return nil, fmt.Errorf("failed to query EU references: %w", err)
	}
	defer rows.Close()
	return collectReferences(rows)
}

func (r *euRepository) ReferencesForProvision(ctx context.Context, documentID, provisionRef string) ([]*models.EUReference, error) {
	query := euReferenceSelect + `
		WHERE r.swiss_document_id = $1 AND LOWER(r.provision_ref) = LOWER($2)
		ORDER BY r.id`
	rows, err := r.db.Query(ctx, query, documentID, provisionRef)
	if err != nil {
		return nil, fmt.Errorf("failed to query provision EU references: %w", err)
	}
	defer rows.Close()
	return collectReferences(rows)
}

func collectReferences(rows pgx.Rows) ([]*models.EUReference, error) {
	var refs []*models.EUReference
	for rows.Next() {
		var ref models.EUReference
		var doc models.EUDocument
		if err := rows.Scan(
			&ref.ID, &ref.SwissDocumentID, &ref.ProvisionRef, &ref.EUDocumentID,
			&ref.ReferenceType, &ref.Detail,
			&doc.ID, &doc.Title, &doc.Type, &doc.Year, &doc.Number,
		); err != nil {
			return nil, fmt.Errorf("failed to scan EU reference: %w", err)
		}
		ref.EUDocument = &doc
		refs = append(refs, &ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating EU references: %w", err)
	}
	return refs, nil
}

func (r *euRepository) Implementations(ctx context.Context, euDocumentID string, primaryOnly, inForceOnly bool) ([]*models.LegalDocument, error) {
	query := `SELECT DISTINCT ` + qualifiedDocumentColumns("ld") + `
		FROM eu_references r
		JOIN legal_documents ld ON ld.id = r.swiss_document_id
		WHERE r.eu_document_id = $1
		  AND (NOT $2 OR r.reference_type = 'implements')
		  AND (NOT $3 OR ld.status = 'in_force')
		ORDER BY ld.id`
	rows, err := r.db.Query(ctx, query, euDocumentID, primaryOnly, inForceOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to query Swiss implementations: %w", err)
	}
	defer rows.Close()

	var docs []*models.LegalDocument
	for rows.Next() {
		var d models.LegalDocument
		if err := rows.Scan(&d.ID, &d.Title, &d.TitleEN, &d.Abbreviation, &d.Status, &d.IssuedDate, &d.InForceDate, &d.SourceURL); err != nil {
			return nil, fmt.Errorf("failed to scan implementation: %w", err)
		}
		docs = append(docs, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating implementations: %w", err)
	}
	return docs, nil
}

func qualifiedDocumentColumns(alias string) string {
	return fmt.Sprintf("%[1]s.id, %[1]s.title, %[1]s.title_en, %[1]s.abbreviation, %[1]s.status, %[1]s.issued_date, %[1]s.in_force_date, %[1]s.source_url", alias)
}

func (r *euRepository) SearchEUDocuments(ctx context.Context, filter EUSearchFilter) ([]*models.EUDocument, error) {
	query := `SELECT d.id, d.title, d.type, d.year, d.number
		FROM eu_documents d
		WHERE ($1 = '' OR d.title ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR d.type = $2)
		  AND ($3 = 0 OR d.year >= $3)
		  AND ($4 = 0 OR d.year <= $4)
		  AND ($5::boolean IS NULL
		       OR $5 = EXISTS (SELECT 1 FROM eu_references r WHERE r.eu_document_id = d.id))
		ORDER BY d.year DESC, d.number
		LIMIT $6`
	rows, err := r.db.Query(ctx, query,
		filter.Query, string(filter.Type), filter.YearFrom, filter.YearTo,
		filter.HasSwissImplementation, filter.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search EU documents: %w", err)
	}
	defer rows.Close()

	var docs []*models.EUDocument
	for rows.Next() {
		var d models.EUDocument
		if err := rows.Scan(&d.ID, &d.Title, &d.Type, &d.Year, &d.Number); err != nil {
			return nil, fmt.Errorf("failed to scan EU document: %w", err)
		}
		docs = append(docs, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating EU documents: %w", err)
	}
	return docs, nil
}
