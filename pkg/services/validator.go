package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/apperrors"
	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/citations"
	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/models"
	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/repositories"
)

// ValidatorService checks a free-form citation against the corpus.
// Malformed or non-existent input never produces a Go error; absence
// is carried in the Valid flag and Warnings.
type ValidatorService interface {
	Validate(ctx context.Context, citation string) (*models.ValidationResult, error)
}

type validatorService struct {
	resolver   ResolverService
	provisions repositories.ProvisionRepository
	logger     *zap.Logger
}

// NewValidatorService creates a new ValidatorService.
func NewValidatorService(resolver ResolverService, provisions repositories.ProvisionRepository, logger *zap.Logger) ValidatorService {
	return &validatorService{resolver: resolver, provisions: provisions, logger: logger}
}

var _ ValidatorService = (*validatorService)(nil)

func (s *validatorService) Validate(ctx context.Context, citation string) (*models.ValidationResult, error) {
	result := &models.ValidationResult{
		Citation: citation,
		Warnings: []string{},
	}

	parsed, err := citations.Parse(citation)
	if err != nil {
		result.Warnings = append(result.Warnings, "Could not parse citation format")
		return result, nil
	}

	doc, err := s.resolver.Resolve(ctx, parsed.DocumentRef)
	if errors.Is(err, apperrors.ErrNotFound) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Document not found: %q", parsed.DocumentRef))
		return result, nil
	}
	if err != nil {
		return nil, err
	}

	result.DocumentID = &doc.ID
	result.DocumentTitle = &doc.Title
	result.Status = &doc.Status

	switch doc.Status {
	case models.StatusRepealed:
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%s has been repealed and is no longer in force", doc.DisplayName()))
	case models.StatusAmended:
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%s has been amended; verify the cited provision is current", doc.DisplayName()))
	}

	if parsed.ArticleRef != "" {
		provision, err := s.provisions.FindByRef(ctx, doc.ID, parsed.ArticleRef)
		if errors.Is(err, apperrors.ErrNotFound) {
			// Partial success: the document resolved, so keep its
			// identity in the result rather than dropping it.
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Provision not found: Art. %s in %s", parsed.ArticleRef, doc.DisplayName()))
			return result, nil
		}
		if err != nil {
			return nil, err
		}

		result.ProvisionRef = &provision.ProvisionRef
		normalized := citations.FormatCitation(doc, citations.DisplayArticleRef(provision.ProvisionRef), citations.FormatFull)
		result.Normalized = &normalized
		result.Valid = true
		return result, nil
	}

	normalized := citations.FormatCitation(doc, "", citations.FormatFull)
	result.Normalized = &normalized
	result.Valid = true
	return result, nil
}
