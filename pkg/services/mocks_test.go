package services

import (
	"context"
	"strings"

	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/apperrors"
	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/citations"
	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/models"
	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/repositories"
)

func strPtr(s string) *string { return &s }

// mockDocumentRepository mirrors the SQL matching semantics of the real
// repository over an in-memory slice. Slice order stands in for the
// store's natural row order, so first-match behavior is observable.
type mockDocumentRepository struct {
	docs []*models.LegalDocument
}

var _ repositories.DocumentRepository = (*mockDocumentRepository)(nil)

func (m *mockDocumentRepository) Get(_ context.Context, id string) (*models.LegalDocument, error) {
	for _, d := range m.docs {
		if strings.EqualFold(d.ID, id) {
			return d, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockDocumentRepository) FindByNumericToken(_ context.Context, dashToken, dottedToken string) (*models.LegalDocument, error) {
	for _, d := range m.docs {
		if strings.Contains(strings.ToLower(d.ID), strings.ToLower(dashToken)) {
			return d, nil
		}
		if d.Abbreviation != nil && strings.Contains(strings.ToLower(*d.Abbreviation), strings.ToLower(dottedToken)) {
			return d, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockDocumentRepository) FindBySubstring(_ context.Context, field repositories.DocumentField, fragment string, caseSensitive bool) (*models.LegalDocument, error) {
	for _, d := range m.docs {
		var value string
		switch field {
		case repositories.FieldTitle:
			value = d.Title
		case repositories.FieldAbbreviation:
			if d.Abbreviation == nil {
				continue
			}
			value = *d.Abbreviation
		case repositories.FieldTitleEN:
			if d.TitleEN == nil {
				continue
			}
			value = *d.TitleEN
		}

		if caseSensitive {
			if strings.Contains(value, fragment) {
				return d, nil
			}
		} else if strings.Contains(strings.ToLower(value), strings.ToLower(fragment)) {
			return d, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockDocumentRepository) Count(_ context.Context) (int64, error) {
	return int64(len(m.docs)), nil
}

type mockProvisionRepository struct {
	provisions []*models.LegalProvision
	defs       []*models.Definition
}

var _ repositories.ProvisionRepository = (*mockProvisionRepository)(nil)

func (m *mockProvisionRepository) FindByRef(_ context.Context, documentID, token string) (*models.LegalProvision, error) {
	lower := strings.ToLower(token)
	for _, p := range m.provisions {
		if p.DocumentID != documentID {
			continue
		}
		ref := strings.ToLower(p.ProvisionRef)
		if ref == lower || ref == "art"+lower {
			return p, nil
		}
		if p.Section != nil && strings.EqualFold(*p.Section, token) {
			return p, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockProvisionRepository) ListByDocument(_ context.Context, documentID string, limit int) ([]*models.LegalProvision, error) {
	var out []*models.LegalProvision
	for _, p := range m.provisions {
		if p.DocumentID == documentID {
			out = append(out, p)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (m *mockProvisionRepository) ListBySection(_ context.Context, documentID, section string) ([]*models.LegalProvision, error) {
	var out []*models.LegalProvision
	for _, p := range m.provisions {
		if p.DocumentID == documentID && p.Section != nil && strings.EqualFold(*p.Section, section) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockProvisionRepository) Definitions(_ context.Context, documentID, term string) ([]*models.Definition, error) {
	var out []*models.Definition
	for _, d := range m.defs {
		if d.DocumentID != documentID {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(d.Term), strings.ToLower(term)) {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (m *mockProvisionRepository) Count(_ context.Context) (int64, error) {
	return int64(len(m.provisions)), nil
}

type mockEURepository struct {
	euDocs []*models.EUDocument
	refs   []*models.EUReference
	// swissDocs backs Implementations; keyed by document ID.
	swissDocs map[string]*models.LegalDocument
}

var _ repositories.EURepository = (*mockEURepository)(nil)

func (m *mockEURepository) GetEUDocument(_ context.Context, id citations.EUIdentifier) (*models.EUDocument, error) {
	if canonical := id.CanonicalID(); canonical != "" {
		for _, d := range m.euDocs {
			if d.ID == canonical {
				return d, nil
			}
		}
		return nil, apperrors.ErrNotFound
	}

	var matches []*models.EUDocument
	for _, d := range m.euDocs {
		if d.Year == id.Year && d.Number == id.Number {
			matches = append(matches, d)
		}
	}
	if len(matches) != 1 {
		return nil, apperrors.ErrNotFound
	}
	return matches[0], nil
}

func (m *mockEURepository) attach(ref *models.EUReference) *models.EUReference {
	out := *ref
	for _, d := range m.euDocs {
		if d.ID == ref.EUDocumentID {
			out.EUDocument = d
		}
	}
	return &out
}

func (m *mockEURepository) ReferencesForDocument(_ context.Context, documentID string, includeProvisions bool) ([]*models.EUReference, error) {
	var out []*models.EUReference
	for _, ref := range m.refs {
		if ref.SwissDocumentID != documentID {
			continue
		}
		if !includeProvisions && ref.ProvisionRef != nil {
			continue
		}
		out = append(out, m.attach(ref))
	}
	return out, nil
}

func (m *mockEURepository) ReferencesForProvision(_ context.Context, documentID, provisionRef string) ([]*models.EUReference, error) {
	var out []*models.EUReference
	for _, ref := range m.refs {
		if ref.SwissDocumentID != documentID || ref.ProvisionRef == nil {
			continue
		}
		if !strings.EqualFold(*ref.ProvisionRef, provisionRef) {
			continue
		}
		out = append(out, m.attach(ref))
	}
	return out, nil
}

func (m *mockEURepository) Implementations(_ context.Context, euDocumentID string, primaryOnly, inForceOnly bool) ([]*models.LegalDocument, error) {
	seen := map[string]bool{}
	var out []*models.LegalDocument
	for _, ref := range m.refs {
		if ref.EUDocumentID != euDocumentID {
			continue
		}
		if primaryOnly && ref.ReferenceType != models.EURefImplements {
			continue
		}
		doc, ok := m.swissDocs[ref.SwissDocumentID]
		if !ok || seen[doc.ID] {
			continue
		}
		if inForceOnly && doc.Status != models.StatusInForce {
			continue
		}
		seen[doc.ID] = true
		out = append(out, doc)
	}
	return out, nil
}

func (m *mockEURepository) SearchEUDocuments(_ context.Context, filter repositories.EUSearchFilter) ([]*models.EUDocument, error) {
	var out []*models.EUDocument
	for _, d := range m.euDocs {
		if filter.Query != "" && !strings.Contains(strings.ToLower(d.Title), strings.ToLower(filter.Query)) {
			continue
		}
		if filter.Type != "" && d.Type != filter.Type {
			continue
		}
		if filter.YearFrom != 0 && d.Year < filter.YearFrom {
			continue
		}
		if filter.YearTo != 0 && d.Year > filter.YearTo {
			continue
		}
		if filter.HasSwissImplementation != nil {
			has := false
			for _, ref := range m.refs {
				if ref.EUDocumentID == d.ID {
					has = true
					break
				}
			}
			if has != *filter.HasSwissImplementation {
				continue
			}
		}
		out = append(out, d)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

// mockSearchRepository is scripted per mode and records the parameters
// of every call so tests can assert the fallback sequence.
type mockSearchRepository struct {
	byMode map[repositories.SearchMode][]*models.SearchResult
	calls  []repositories.SearchParams
}

var _ repositories.SearchRepository = (*mockSearchRepository)(nil)

func (m *mockSearchRepository) SearchProvisions(_ context.Context, params repositories.SearchParams) ([]*models.SearchResult, error) {
	m.calls = append(m.calls, params)
	results := m.byMode[params.Mode]
	if params.Limit > 0 && len(results) > params.Limit {
		results = results[:params.Limit]
	}
	return results, nil
}

type mockMetadataRepository struct {
	values map[string]string
}

var _ repositories.MetadataRepository = (*mockMetadataRepository)(nil)

func (m *mockMetadataRepository) Get(_ context.Context, key string) (string, error) {
	value, ok := m.values[key]
	if !ok {
		return "", apperrors.ErrNotFound
	}
	return value, nil
}

// corpus fixtures shared across the service tests.

func fixtureDSG() *models.LegalDocument {
	return &models.LegalDocument{
		ID:           "sr-235-1",
		Title:        "Bundesgesetz über den Datenschutz",
		TitleEN:      strPtr("Federal Act on Data Protection"),
		Abbreviation: strPtr("DSG"),
		Status:       models.StatusInForce,
		IssuedDate:   strPtr("2020-09-25"),
		InForceDate:  strPtr("2023-09-01"),
	}
}

func fixtureOR() *models.LegalDocument {
	return &models.LegalDocument{
		ID:           "sr-220",
		Title:        "Obligationenrecht",
		TitleEN:      strPtr("Code of Obligations"),
		Abbreviation: strPtr("OR"),
		Status:       models.StatusAmended,
	}
}

func fixtureOldDSG() *models.LegalDocument {
	return &models.LegalDocument{
		ID:           "sr-235-1-1992",
		Title:        "Bundesgesetz über den Datenschutz (1992)",
		Abbreviation: strPtr("aDSG"),
		Status:       models.StatusRepealed,
	}
}
