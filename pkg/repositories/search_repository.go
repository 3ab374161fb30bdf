package repositories

import (
	"context"
	"fmt"

	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/database"
	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/models"
)

// SearchMode selects the text-search query strategy.
type SearchMode string

const (
	// ModeWeb uses websearch_to_tsquery: quoted phrases, OR, minus.
	ModeWeb SearchMode = "web"
	// ModePrefix is the relaxed fallback: every token matched as a
	// prefix, AND-combined. Used only when the primary strategy finds
	// nothing, to distinguish a syntax mismatch from a true miss.
	ModePrefix SearchMode = "prefix"
)

// SearchParams is one full-text query against provision text. Query is
// already sanitized by the service layer; DocumentID and Status are
// optional pre-filters.
type SearchParams struct {
	Query      string
	Mode       SearchMode
	DocumentID string
	Status     models.DocumentStatus
	Limit      int
}

// SearchRepository runs ranked, snippeted full-text queries over
// provision content.
type SearchRepository interface {
	SearchProvisions(ctx context.Context, params SearchParams) ([]*models.SearchResult, error)
}

type searchRepository struct {
	db *database.DB
}

// NewSearchRepository creates a new SearchRepository.
func NewSearchRepository(db *database.DB) SearchRepository {
	return &searchRepository{db: db}
}

var _ SearchRepository = (*searchRepository)(nil)

// tsQueryExpr returns the SQL expression building the tsquery for the
// given mode. The corpus is German-dominant, so the german
// configuration handles stemming and compound stop words.
func tsQueryExpr(mode SearchMode) string {
	if mode == ModePrefix {
		return `to_tsquery('german', $1)`
	}
	return `websearch_to_tsquery('german', $1)`
}

func (r *searchRepository) SearchProvisions(ctx context.Context, params SearchParams) ([]*models.SearchResult, error) {
	query := fmt.Sprintf(`
		SELECT
			d.id,
			d.title,
			d.abbreviation,
			d.status,
			p.provision_ref,
			p.title,
			p.section,
			ts_headline('german', p.content, q,
				'StartSel=>>>, StopSel=<<<, MaxWords=40, MinWords=15') AS snippet,
			ts_rank(p.search_vector, q) AS rank
		FROM legal_provisions p
		JOIN legal_documents d ON d.id = p.document_id
		CROSS JOIN %s q
		WHERE p.search_vector @@ q
		  AND ($2 = '' OR p.document_id = $2)
		  AND ($3 = '' OR d.status = $3)
		ORDER BY rank DESC, p.id
		LIMIT $4`, tsQueryExpr(params.Mode))

	rows, err := r.db.Query(ctx, query,
		params.Query, params.DocumentID, string(params.Status), params.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search provisions: %w", err)
	}
	defer rows.Close()

	var results []*models.SearchResult
	for rows.Next() {
		var res models.SearchResult
		if err := rows.Scan(
			&res.DocumentID,
			&res.DocumentTitle,
			&res.Abbreviation,
			&res.Status,
			&res.ProvisionRef,
			&res.ProvisionTitle,
			&res.Section,
			&res.Snippet,
			&res.Rank,
		); err != nil {
			return nil, fmt.Errorf("failed to scan search result: %w", err)
		}
		results = append(results, &res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating search results: %w", err)
	}
	return results, nil
}
