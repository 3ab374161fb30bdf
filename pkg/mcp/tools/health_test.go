package tools

import (
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/database"
	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/models"
)

func TestHealthTool(t *testing.T) {
	s := server.NewMCPServer("test", "1.0.0", server.WithToolCapabilities(true))
	RegisterHealthTool(s, &HealthToolDeps{
		BaseToolDeps: BaseToolDeps{Logger: zap.NewNop(), Metadata: &mockMetadataService{}},
		Version:      "1.2.3",
		Capabilities: database.Capabilities{EUReferences: true},
		Documents:    &mockDocumentRepository{count: 42},
		Provisions: &mockProvisionRepository{provisions: []*models.LegalProvision{
			{ID: 1, DocumentID: "sr-235-1", ProvisionRef: "art6"},
		}},
	})

	text, isError := callTool(t, s, "health", map[string]any{})
	assert.False(t, isError)

	var payload struct {
		Results struct {
			Status       string          `json:"status"`
			Version      string          `json:"version"`
			Documents    int64           `json:"documents"`
			Provisions   int64           `json:"provisions"`
			Capabilities map[string]bool `json:"capabilities"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(text), &payload))
	assert.Equal(t, "ok", payload.Results.Status)
	assert.Equal(t, "1.2.3", payload.Results.Version)
	assert.Equal(t, int64(42), payload.Results.Documents)
	assert.Equal(t, int64(1), payload.Results.Provisions)
	assert.True(t, payload.Results.Capabilities["eu_references"])
	assert.False(t, payload.Results.Capabilities["definitions"])
}
