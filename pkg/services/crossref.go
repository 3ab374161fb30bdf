package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/apperrors"
	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/citations"
	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/models"
	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/repositories"
)

// CrossRefService links Swiss legislation to EU instruments in both
// directions and classifies EU alignment.
type CrossRefService interface {
	// EUBasis returns the EU references of a resolved Swiss document,
	// optionally including provision-pinned detail rows.
	EUBasis(ctx context.Context, documentRef string, includeArticles bool) (*models.LegalDocument, []*models.EUReference, error)
	// ProvisionEUBasis narrows to references pinned to exactly the
	// given provision.
	ProvisionEUBasis(ctx context.Context, documentRef, provisionRef string) (*models.LegalDocument, []*models.EUReference, error)
	// SwissImplementations is the reverse lookup from an EU
	// instrument to its Swiss implementers.
	SwissImplementations(ctx context.Context, euReference string, primaryOnly, inForceOnly bool) (*models.EUDocument, []*models.LegalDocument, error)
	// SearchEUDocuments lists EU instruments matching a filter.
	SearchEUDocuments(ctx context.Context, filter repositories.EUSearchFilter) ([]*models.EUDocument, error)
	// ValidateCompliance classifies the EU alignment of a document or
	// provision, composed with the currency check so lifecycle
	// warnings ride along.
	ValidateCompliance(ctx context.Context, documentRef, provisionRef, euReference string) (*models.ComplianceResult, error)
}

type crossRefService struct {
	resolver ResolverService
	eu       repositories.EURepository
	logger   *zap.Logger
}

// NewCrossRefService creates a new CrossRefService.
func NewCrossRefService(resolver ResolverService, eu repositories.EURepository, logger *zap.Logger) CrossRefService {
	return &crossRefService{resolver: resolver, eu: eu, logger: logger}
}

var _ CrossRefService = (*crossRefService)(nil)

func (s *crossRefService) EUBasis(ctx context.Context, documentRef string, includeArticles bool) (*models.LegalDocument, []*models.EUReference, error) {
	doc, err := s.resolver.Resolve(ctx, documentRef)
	if err != nil {
		return nil, nil, err
	}
	refs, err := s.eu.ReferencesForDocument(ctx, doc.ID, includeArticles)
	if err != nil {
		return nil, nil, err
	}
	return doc, refs, nil
}

func (s *crossRefService) ProvisionEUBasis(ctx context.Context, documentRef, provisionRef string) (*models.LegalDocument, []*models.EUReference, error) {
	doc, err := s.resolver.Resolve(ctx, documentRef)
	if err != nil {
		return nil, nil, err
	}
	refs, err := s.eu.ReferencesForProvision(ctx, doc.ID, citations.StorageArticleRef(provisionRef))
	if err != nil {
		return nil, nil, err
	}
	return doc, refs, nil
}

func (s *crossRefService) SwissImplementations(ctx context.Context, euReference string, primaryOnly, inForceOnly bool) (*models.EUDocument, []*models.LegalDocument, error) {
	id, err := citations.ParseEUIdentifier(euReference)
	if err != nil {
		return nil, nil, apperrors.ErrNotFound
	}
	euDoc, err := s.eu.GetEUDocument(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	docs, err := s.eu.Implementations(ctx, euDoc.ID, primaryOnly, inForceOnly)
	if err != nil {
		return nil, nil, err
	}
	return euDoc, docs, nil
}

func (s *crossRefService) SearchEUDocuments(ctx context.Context, filter repositories.EUSearchFilter) ([]*models.EUDocument, error) {
	return s.eu.SearchEUDocuments(ctx, filter)
}

// ValidateCompliance applies the classification rule:
//
//   - not_applicable: the scope carries no EU references at all;
//   - unclear: references exist but none carries a definite type
//     (implements, aligns_with, partially_implements);
//   - partial: at least one definite reference, but some references
//     are indefinite or any is partially_implements;
//   - compliant: every reference is definite and none is
//     partially_implements.
func (s *crossRefService) ValidateCompliance(ctx context.Context, documentRef, provisionRef, euReference string) (*models.ComplianceResult, error) {
	doc, err := s.resolver.Resolve(ctx, documentRef)
	if err != nil {
		return nil, err
	}

	var refs []*models.EUReference
	if provisionRef != "" {
		refs, err = s.eu.ReferencesForProvision(ctx, doc.ID, citations.StorageArticleRef(provisionRef))
	} else {
		refs, err = s.eu.ReferencesForDocument(ctx, doc.ID, true)
	}
	if err != nil {
		return nil, err
	}

	// Optional narrowing to a single EU instrument.
	if euReference != "" {
		id, perr := citations.ParseEUIdentifier(euReference)
		if perr != nil {
			return nil, apperrors.ErrNotFound
		}
		euDoc, gerr := s.eu.GetEUDocument(ctx, id)
		if gerr != nil {
			if errors.Is(gerr, apperrors.ErrNotFound) {
				return nil, apperrors.ErrNotFound
			}
			return nil, gerr
		}
		var narrowed []*models.EUReference
		for _, ref := range refs {
			if ref.EUDocumentID == euDoc.ID {
				narrowed = append(narrowed, ref)
			}
		}
		refs = narrowed
	}

	result := &models.ComplianceResult{
		DocumentID: doc.ID,
		References: refs,
		Warnings:   []string{},
	}
	if provisionRef != "" {
		result.ProvisionRef = &provisionRef
	}
	result.Warnings = append(result.Warnings, statusWarnings(doc)...)
	result.Level = classifyCompliance(refs)
	return result, nil
}

func classifyCompliance(refs []*models.EUReference) models.ComplianceLevel {
	if len(refs) == 0 {
		return models.ComplianceNotApplicable
	}

	definite := 0
	partialClaim := false
	for _, ref := range refs {
		if ref.ReferenceType.IsDefinite() {
			definite++
		}
		if ref.ReferenceType == models.EURefPartiallyImplements {
			partialClaim = true
		}
	}

	switch {
	case definite == 0:
		return models.ComplianceUnclear
	case partialClaim || definite < len(refs):
		return models.CompliancePartial
	default:
		return models.ComplianceCompliant
	}
}
