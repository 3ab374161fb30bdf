package tools

import (
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/apperrors"
	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/models"
)

func newEUServer(crossRef *mockCrossRefService) *server.MCPServer {
	s := server.NewMCPServer("test", "1.0.0", server.WithToolCapabilities(true))
	RegisterEUTools(s, &EUToolDeps{
		BaseToolDeps: BaseToolDeps{Logger: zap.NewNop(), Metadata: &mockMetadataService{}},
		CrossRef:     crossRef,
	})
	return s
}

func TestGetEUBasisTool(t *testing.T) {
	gdpr := &models.EUDocument{ID: "regulation-2016-679", Title: "GDPR", Type: models.EUTypeRegulation, Year: 2016, Number: "679"}
	s := newEUServer(&mockCrossRefService{
		doc: testDSG(),
		refs: []*models.EUReference{
			{ID: 1, SwissDocumentID: "sr-235-1", EUDocumentID: gdpr.ID, ReferenceType: models.EURefAlignsWith, EUDocument: gdpr},
		},
	})

	text, isError := callTool(t, s, "get_eu_basis", map[string]any{"document_id": "DSG"})
	assert.False(t, isError)

	var payload struct {
		Results struct {
			DocumentID string                `json:"document_id"`
			References []*models.EUReference `json:"references"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(text), &payload))
	assert.Equal(t, "sr-235-1", payload.Results.DocumentID)
	require.Len(t, payload.Results.References, 1)
	require.NotNil(t, payload.Results.References[0].EUDocument)
	assert.Equal(t, "GDPR", payload.Results.References[0].EUDocument.Title)
}

func TestGetEUBasisTool_EmptyReferences(t *testing.T) {
	s := newEUServer(&mockCrossRefService{doc: testDSG()})

	text, isError := callTool(t, s, "get_eu_basis", map[string]any{"document_id": "DSG"})
	assert.False(t, isError)
	// Absence of references is data, not an error.
	assert.Contains(t, text, `"references":[]`)
}

func TestGetSwissImplementationsTool_NotFound(t *testing.T) {
	s := newEUServer(&mockCrossRefService{err: apperrors.ErrNotFound})

	text, isError := callTool(t, s, "get_swiss_implementations", map[string]any{"eu_document_id": "GDPR"})
	assert.True(t, isError)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal([]byte(text), &resp))
	assert.Equal(t, "eu_document_not_found", resp.Code)
}

func TestSearchEUImplementationsTool_InvalidType(t *testing.T) {
	s := newEUServer(&mockCrossRefService{})

	text, isError := callTool(t, s, "search_eu_implementations", map[string]any{"type": "treaty"})
	assert.True(t, isError)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal([]byte(text), &resp))
	assert.Equal(t, "invalid_parameters", resp.Code)
	assert.Contains(t, resp.Message, "treaty")
}

func TestValidateEUComplianceTool(t *testing.T) {
	s := newEUServer(&mockCrossRefService{compliance: &models.ComplianceResult{
		DocumentID: "sr-235-1",
		Level:      models.CompliancePartial,
		Warnings:   []string{},
	}})

	text, isError := callTool(t, s, "validate_eu_compliance", map[string]any{"document_id": "DSG"})
	assert.False(t, isError)

	var payload struct {
		Results models.ComplianceResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(text), &payload))
	assert.Equal(t, models.CompliancePartial, payload.Results.Level)
}
