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

// ProvisionRepository provides data access for provisions and
// extracted definitions.
type ProvisionRepository interface {
	// FindByRef looks up a provision by article token. The token
	// matches under three equivalent encodings: the stored reference
	// itself, the "art"-prefixed form of a bare number, and the
	// section label.
	FindByRef(ctx context.Context, documentID, token string) (*models.LegalProvision, error)
	// ListByDocument returns the provisions of a document in stored
	// order, capped at limit.
	ListByDocument(ctx context.Context, documentID string, limit int) ([]*models.LegalProvision, error)
	// ListBySection returns the provisions under a chapter/section
	// label.
	ListBySection(ctx context.Context, documentID, section string) ([]*models.LegalProvision, error)
	// Definitions returns extracted term definitions for a document,
	// optionally filtered by term substring.
	Definitions(ctx context.Context, documentID, term string) ([]*models.Definition, error)
	// Count returns the number of provisions in the corpus.
	Count(ctx context.Context) (int64, error)
}

type provisionRepository struct {
	db *database.DB
}

// NewProvisionRepository creates a new ProvisionRepository.
func NewProvisionRepository(db *database.DB) ProvisionRepository {
	return &provisionRepository{db: db}
}

var _ ProvisionRepository = (*provisionRepository)(nil)

const provisionColumns = `id, document_id, provision_ref, section, title, content`

func scanProvision(row pgx.Row) (*models.LegalProvision, error) {
	var p models.LegalProvision
	err := row.Scan(
		&p.ID,
		&p.DocumentID,
		&p.ProvisionRef,
		&p.Section,
		&p.Title,
		&p.Content,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan provision: %w", err)
	}
	return &p, nil
}

func (r *provisionRepository) FindByRef(ctx context.Context, documentID, token string) (*models.LegalProvision, error) {
	query := `SELECT ` + provisionColumns + `
		FROM legal_provisions
		WHERE document_id = $1
		  AND (
			LOWER(provision_ref) = LOWER($2)
			OR LOWER(provision_ref) = 'art' || LOWER($2)
			OR LOWER(section) = LOWER($2)
		  )
		LIMIT 1`
	return scanProvision(r.db.QueryRow(ctx, query, documentID, token))
}

func (r *provisionRepository) ListByDocument(ctx context.Context, documentID string, limit int) ([]*models.LegalProvision, error) {
	query := `SELECT ` + provisionColumns + `
		FROM legal_provisions
		WHERE document_id = $1
		ORDER BY id
		LIMIT $2`
	rows, err := r.db.Query(ctx, query, documentID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list provisions: %w", err)
	}
	defer rows.Close()
	return collectProvisions(rows)
}

func (r *provisionRepository) ListBySection(ctx context.Context, documentID, section string) ([]*models.LegalProvision, error) {
	query := `SELECT ` + provisionColumns + `
		FROM legal_provisions
		WHERE document_id = $1 AND LOWER(section) = LOWER($2)
		ORDER BY id`
	rows, err := r.db.Query(ctx, query, documentID, section)
	if err != nil {
		return nil, fmt.Errorf("failed to list provisions by section: %w", err)
	}
	defer rows.Close()
	return collectProvisions(rows)
}

func collectProvisions(rows pgx.Rows) ([]*models.LegalProvision, error) {
	var provisions []*models.LegalProvision
	for rows.Next() {
		var p models.LegalProvision
		if err := rows.Scan(&p.ID, &p.DocumentID, &p.ProvisionRef, &p.Section, &p.Title, &p.Content); err != nil {
			return nil, fmt.Errorf("failed to scan provision: %w", err)
		}
		provisions = append(provisions, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating provisions: %w", err)
	}
	return provisions, nil
}

func (r *provisionRepository) Definitions(ctx context.Context, documentID, term string) ([]*models.Definition, error) {
	query := `SELECT id, document_id, term, definition, source_provision_ref
		FROM definitions
		WHERE document_id = $1
		  AND ($2 = '' OR term ILIKE '%' || $2 || '%')
		ORDER BY term`
	rows, err := r.db.Query(ctx, query, documentID, term)
	if err != nil {
		return nil, fmt.Errorf("failed to list definitions: %w", err)
	}
	defer rows.Close()

	var defs []*models.Definition
	for rows.Next() {
		var d models.Definition
		if err := rows.Scan(&d.ID, &d.DocumentID, &d.Term, &d.Definition, &d.SourceProvisionRef); err != nil {
			return nil, fmt.Errorf("failed to scan definition: %w", err)
		}
		defs = append(defs, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating definitions: %w", err)
	}
	return defs, nil
}

func (r *provisionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM legal_provisions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count provisions: %w", err)
	}
	return count, nil
}
