package tools

import (
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/database"
	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/repositories"
	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/services"
)

// Registry bundles everything needed to register the full tool
// surface. The available tool set is a pure function of the store
// capabilities detected at startup.
type Registry struct {
	Logger       *zap.Logger
	Version      string
	Capabilities database.Capabilities

	Metadata  services.MetadataService
	Resolver  services.ResolverService
	Validator services.ValidatorService
	Currency  services.CurrencyService
	Search    services.SearchService
	CrossRef  services.CrossRefService

	Documents  repositories.DocumentRepository
	Provisions repositories.ProvisionRepository
}

// RegisterAll wires every available tool into the MCP server.
func (r *Registry) RegisterAll(s *server.MCPServer) {
	base := BaseToolDeps{Logger: r.Logger, Metadata: r.Metadata}

	RegisterSearchTools(s, &SearchToolDeps{BaseToolDeps: base, Search: r.Search})
	RegisterCitationTools(s, &CitationToolDeps{BaseToolDeps: base, Validator: r.Validator, Resolver: r.Resolver})
	RegisterCurrencyTools(s, &CurrencyToolDeps{BaseToolDeps: base, Currency: r.Currency})
	RegisterProvisionTools(s, &ProvisionToolDeps{
		BaseToolDeps:         base,
		Resolver:             r.Resolver,
		Provisions:           r.Provisions,
		DefinitionsAvailable: r.Capabilities.Definitions,
	})
	if r.Capabilities.EUReferences {
		RegisterEUTools(s, &EUToolDeps{BaseToolDeps: base, CrossRef: r.CrossRef})
	}
	RegisterHealthTool(s, &HealthToolDeps{
		BaseToolDeps: base,
		Version:      r.Version,
		Capabilities: r.Capabilities,
		Documents:    r.Documents,
		Provisions:   r.Provisions,
	})
}
