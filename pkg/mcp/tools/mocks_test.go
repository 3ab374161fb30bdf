package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/require"

	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/apperrors"
	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/models"
	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/repositories"
	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/services"
)

func strPtr(s string) *string { return &s }

type mockMetadataService struct {
	freshness *string
}

var _ services.MetadataService = (*mockMetadataService)(nil)

func (m *mockMetadataService) ResponseMetadata() models.ResponseMetadata {
	return models.NewResponseMetadata(m.freshness)
}

// mockResolverService resolves from a fixed reference table.
type mockResolverService struct {
	docs map[string]*models.LegalDocument
}

var _ services.ResolverService = (*mockResolverService)(nil)

func (m *mockResolverService) Resolve(_ context.Context, reference string) (*models.LegalDocument, error) {
	if doc, ok := m.docs[reference]; ok {
		return doc, nil
	}
	return nil, apperrors.ErrNotFound
}

type mockValidatorService struct {
	result *models.ValidationResult
	err    error
}

var _ services.ValidatorService = (*mockValidatorService)(nil)

func (m *mockValidatorService) Validate(_ context.Context, citation string) (*models.ValidationResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := *m.result
	out.Citation = citation
	return &out, nil
}

type mockCurrencyService struct {
	result *models.CurrencyResult
	err    error
}

var _ services.CurrencyService = (*mockCurrencyService)(nil)

func (m *mockCurrencyService) CheckCurrency(_ context.Context, _, _ string) (*models.CurrencyResult, error) {
	return m.result, m.err
}

type mockSearchService struct {
	results []*models.SearchResult
	groups  []*models.StanceGroup
	err     error

	lastRequest services.SearchRequest
}

var _ services.SearchService = (*mockSearchService)(nil)

func (m *mockSearchService) Search(_ context.Context, req services.SearchRequest) ([]*models.SearchResult, error) {
	m.lastRequest = req
	if m.err != nil {
		return nil, m.err
	}
	return m.results, nil
}

func (m *mockSearchService) BuildStance(_ context.Context, query, documentRef string, limit int) ([]*models.StanceGroup, error) {
	m.lastRequest = services.SearchRequest{Query: query, DocumentRef: documentRef, Limit: limit}
	if m.err != nil {
		return nil, m.err
	}
	return m.groups, nil
}

type mockCrossRefService struct {
	doc        *models.LegalDocument
	euDoc      *models.EUDocument
	refs       []*models.EUReference
	impls      []*models.LegalDocument
	euDocs     []*models.EUDocument
	compliance *models.ComplianceResult
	err        error
}

var _ services.CrossRefService = (*mockCrossRefService)(nil)

func (m *mockCrossRefService) EUBasis(_ context.Context, _ string, _ bool) (*models.LegalDocument, []*models.EUReference, error) {
	return m.doc, m.refs, m.err
}

func (m *mockCrossRefService) ProvisionEUBasis(_ context.Context, _, _ string) (*models.LegalDocument, []*models.EUReference, error) {
	return m.doc, m.refs, m.err
}

func (m *mockCrossRefService) SwissImplementations(_ context.Context, _ string, _, _ bool) (*models.EUDocument, []*models.LegalDocument, error) {
	return m.euDoc, m.impls, m.err
}

func (m *mockCrossRefService) SearchEUDocuments(_ context.Context, _ repositories.EUSearchFilter) ([]*models.EUDocument, error) {
	return m.euDocs, m.err
}

func (m *mockCrossRefService) ValidateCompliance(_ context.Context, _, _, _ string) (*models.ComplianceResult, error) {
	return m.compliance, m.err
}

// mockProvisionRepository serves the provision tools from a slice.
type mockProvisionRepository struct {
	provisions []*models.LegalProvision
	defs       []*models.Definition
}

var _ repositories.ProvisionRepository = (*mockProvisionRepository)(nil)

func (m *mockProvisionRepository) FindByRef(_ context.Context, documentID, token string) (*models.LegalProvision, error) {
	for _, p := range m.provisions {
		if p.DocumentID == documentID && (p.ProvisionRef == token || p.ProvisionRef == "art"+token) {
			return p, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockProvisionRepository) ListByDocument(_ context.Context, documentID string, limit int) ([]*models.LegalProvision, error) {
	var out []*models.LegalProvision
	for _, p := range m.provisions {
		if p.DocumentID == documentID && len(out) < limit {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockProvisionRepository) ListBySection(_ context.Context, documentID, section string) ([]*models.LegalProvision, error) {
	var out []*models.LegalProvision
	for _, p := range m.provisions {
		if p.DocumentID == documentID && p.Section != nil && *p.Section == section {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockProvisionRepository) Definitions(_ context.Context, documentID, _ string) ([]*models.Definition, error) {
	var out []*models.Definition
	for _, d := range m.defs {
		if d.DocumentID == documentID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *mockProvisionRepository) Count(_ context.Context) (int64, error) {
	return int64(len(m.provisions)), nil
}

type mockDocumentRepository struct {
	count int64
}

var _ repositories.DocumentRepository = (*mockDocumentRepository)(nil)

func (m *mockDocumentRepository) Get(_ context.Context, _ string) (*models.LegalDocument, error) {
	return nil, apperrors.ErrNotFound
}

func (m *mockDocumentRepository) FindByNumericToken(_ context.Context, _, _ string) (*models.LegalDocument, error) {
	return nil, apperrors.ErrNotFound
}

func (m *mockDocumentRepository) FindBySubstring(_ context.Context, _ repositories.DocumentField, _ string, _ bool) (*models.LegalDocument, error) {
	return nil, apperrors.ErrNotFound
}

func (m *mockDocumentRepository) Count(_ context.Context) (int64, error) {
	return m.count, nil
}

func testDSG() *models.LegalDocument {
	return &models.LegalDocument{
		ID:           "sr-235-1",
		Title:        "Bundesgesetz über den Datenschutz",
		Abbreviation: strPtr("DSG"),
		Status:       models.StatusInForce,
	}
}

// callTool drives a registered tool through the JSON-RPC surface the
// way a connected agent would.
func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) (text string, isError bool) {
	t.Helper()

	payload, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "tools/call",
		"params": map[string]any{
			"name":      name,
			"arguments": args,
		},
	})
	require.NoError(t, err)

	raw := s.HandleMessage(context.Background(), payload)
	resultBytes, err := json.Marshal(raw)
	require.NoError(t, err)

	var response struct {
		Result struct {
			Content []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
			IsError bool `json:"isError"`
		} `json:"result"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(resultBytes, &response))
	require.Nil(t, response.Error, "unexpected protocol error")
	require.NotEmpty(t, response.Result.Content)
	return response.Result.Content[0].Text, response.Result.IsError
}

// listTools returns the registered tool names.
func listTools(t *testing.T, s *server.MCPServer) map[string]bool {
	t.Helper()

	raw := s.HandleMessage(context.Background(), []byte(`{"jsonrpc":"2.0","method":"tools/list","id":1}`))
	resultBytes, err := json.Marshal(raw)
	require.NoError(t, err)

	var response struct {
		Result struct {
			Tools []struct {
				Name string `json:"name"`
			} `json:"tools"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(resultBytes, &response))

	names := make(map[string]bool, len(response.Result.Tools))
	for _, tool := range response.Result.Tools {
		names[tool.Name] = true
	}
	return names
}

// newToolRequest builds a direct CallToolRequest for handler-level
// helpers that never cross the JSON-RPC boundary.
func newToolRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}
