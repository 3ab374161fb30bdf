package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/models"
	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/repositories"
)

// MetadataService hands out the process-wide response metadata block.
// Freshness is read once at startup; the cached struct is immutable
// afterwards and safe to read from concurrent tool invocations.
type MetadataService interface {
	ResponseMetadata() models.ResponseMetadata
}

type metadataService struct {
	metadata models.ResponseMetadata
}

// NewMetadataService reads the corpus build timestamp and caches the
// metadata block. A failed freshness read is not fatal: the field is
// simply absent, which is a valid state of the response envelope.
func NewMetadataService(ctx context.Context, repo repositories.MetadataRepository, logger *zap.Logger) MetadataService {
	var freshness *string
	builtAt, err := repo.Get(ctx, repositories.MetadataKeyBuiltAt)
	if err != nil {
		logger.Warn("Corpus build timestamp unavailable; responses will omit freshness", zap.Error(err))
	} else {
		freshness = &builtAt
	}
	return &metadataService{metadata: models.NewResponseMetadata(freshness)}
}

var _ MetadataService = (*metadataService)(nil)

func (s *metadataService) ResponseMetadata() models.ResponseMetadata {
	return s.metadata
}
