package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/apperrors"
	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/models"
	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/repositories"
)

// CurrencyService reports the legislative status and key dates of a
// resolved document, with warnings for anything not plainly in force.
type CurrencyService interface {
	// CheckCurrency resolves documentRef and reports its lifecycle
	// state. A missing document is apperrors.ErrNotFound; a missing
	// provision is reported inside the result, distinctly.
	CheckCurrency(ctx context.Context, documentRef, provisionRef string) (*models.CurrencyResult, error)
}

type currencyService struct {
	resolver   ResolverService
	provisions repositories.ProvisionRepository
	logger     *zap.Logger
}

// NewCurrencyService creates a new CurrencyService.
func NewCurrencyService(resolver ResolverService, provisions repositories.ProvisionRepository, logger *zap.Logger) CurrencyService {
	return &currencyService{resolver: resolver, provisions: provisions, logger: logger}
}

var _ CurrencyService = (*currencyService)(nil)

// statusWarnings returns the advisory text for a lifecycle state.
// in_force produces none.
func statusWarnings(doc *models.LegalDocument) []string {
	switch doc.Status {
	case models.StatusRepealed:
		return []string{fmt.Sprintf("%s has been repealed and is no longer in force", doc.DisplayName())}
	case models.StatusNotYetInForce:
		return []string{fmt.Sprintf("%s is not yet in force", doc.DisplayName())}
	case models.StatusAmended:
		return []string{fmt.Sprintf("%s has been amended; verify the cited provision is current", doc.DisplayName())}
	}
	return nil
}

func (s *currencyService) CheckCurrency(ctx context.Context, documentRef, provisionRef string) (*models.CurrencyResult, error) {
	doc, err := s.resolver.Resolve(ctx, documentRef)
	if err != nil {
		return nil, err
	}

	result := &models.CurrencyResult{
		DocumentID:    doc.ID,
		DocumentTitle: doc.Title,
		Status:        doc.Status,
		IssuedDate:    doc.IssuedDate,
		InForceDate:   doc.InForceDate,
		Warnings:      []string{},
	}
	result.Warnings = append(result.Warnings, statusWarnings(doc)...)

	if provisionRef != "" {
		result.ProvisionRef = &provisionRef
		found := true
		_, err := s.provisions.FindByRef(ctx, doc.ID, provisionRef)
		if errors.Is(err, apperrors.ErrNotFound) {
			found = false
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Provision %q not found in %s", provisionRef, doc.DisplayName()))
		} else if err != nil {
			return nil, err
		}
		result.ProvisionFound = &found
	}

	return result, nil
}
