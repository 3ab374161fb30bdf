// Package services implements the citation resolution, validation and
// cross-referencing logic over the repository layer. All services are
// stateless and read-only; domain absence is expressed in results, not
// raised as errors.
package services

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/apperrors"
	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/citations"
	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/models"
	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/repositories"
)

// ResolverService maps a fuzzy document reference (free text, SR
// number, abbreviation, title fragment) to exactly one document.
type ResolverService interface {
	// Resolve returns the matched document or apperrors.ErrNotFound.
	// Ties go to the first row in the store's natural order; there is
	// deliberately no secondary ranking.
	Resolve(ctx context.Context, reference string) (*models.LegalDocument, error)
}

type resolverService struct {
	docs   repositories.DocumentRepository
	logger *zap.Logger
}

// NewResolverService creates a new ResolverService.
func NewResolverService(docs repositories.DocumentRepository, logger *zap.Logger) ResolverService {
	return &resolverService{docs: docs, logger: logger}
}

var _ ResolverService = (*resolverService)(nil)

// substringFields is the priority order for title-fragment matching.
var substringFields = []repositories.DocumentField{
	repositories.FieldTitle,
	repositories.FieldAbbreviation,
	repositories.FieldTitleEN,
}

func (s *resolverService) Resolve(ctx context.Context, reference string) (*models.LegalDocument, error) {
	ref := strings.TrimSpace(reference)
	if ref == "" {
		return nil, apperrors.ErrNotFound
	}

	// 1. Exact canonical ID.
	doc, err := s.docs.Get(ctx, ref)
	if err == nil {
		return doc, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	// 2. SR numbering token.
	if dotted, ok := citations.ExtractSRNumber(ref); ok {
		doc, err := s.docs.FindByNumericToken(ctx, citations.NormalizeSRNumber(dotted), dotted)
		if err == nil {
			return doc, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}

	// 3. Substring match against title, abbreviation, English title,
	// case-sensitive first, then 4. the same pass case-insensitively.
	for _, caseSensitive := range []bool{true, false} {
		for _, field := range substringFields {
			doc, err := s.docs.FindBySubstring(ctx, field, ref, caseSensitive)
			if err == nil {
				return doc, nil
			}
			if !errors.Is(err, apperrors.ErrNotFound) {
				return nil, err
			}
		}
	}

	s.logger.Debug("Reference did not resolve to any document", zap.String("reference", ref))
	return nil, apperrors.ErrNotFound
}
