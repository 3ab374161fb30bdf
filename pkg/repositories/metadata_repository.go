package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/apperrors"
	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/database"
)

// MetadataKeyBuiltAt is the corpus build timestamp written by the
// ingestion pipeline (RFC 3339).
const MetadataKeyBuiltAt = "built_at"

// MetadataRepository reads the single build-time metadata record.
type MetadataRepository interface {
	Get(ctx context.Context, key string) (string, error)
}

type metadataRepository struct {
	db *database.DB
}

// NewMetadataRepository creates a new MetadataRepository.
func NewMetadataRepository(db *database.DB) MetadataRepository {
	return &metadataRepository{db: db}
}

var _ MetadataRepository = (*metadataRepository)(nil)

func (r *metadataRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRow(ctx, `SELECT value FROM corpus_metadata WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", fmt.Errorf("failed to read corpus metadata: %w", err)
	}
	return value, nil
}
