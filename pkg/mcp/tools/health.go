package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/database"
	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/repositories"
)

// HealthToolDeps contains dependencies for the health tool.
type HealthToolDeps struct {
	BaseToolDeps
	Version      string
	Capabilities database.Capabilities
	Documents    repositories.DocumentRepository
	Provisions   repositories.ProvisionRepository
}

// RegisterHealthTool registers a diagnostic tool reporting server
// version, corpus size and detected store capabilities.
func RegisterHealthTool(s *server.MCPServer, deps *HealthToolDeps) {
	tool := mcp.NewTool(
		"health",
		mcp.WithDescription("Report server version, corpus size and available capabilities."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		status := map[string]any{
			"status":  "ok",
			"version": deps.Version,
			"capabilities": map[string]bool{
				"eu_references": deps.Capabilities.EUReferences,
				"definitions":   deps.Capabilities.Definitions,
			},
		}

		// Corpus counts are advisory; a failed count degrades the
		// report, not the tool.
		if deps.Documents != nil {
			if count, err := deps.Documents.Count(ctx); err != nil {
				deps.Logger.Warn("health: document count failed", zap.Error(err))
			} else {
				status["documents"] = count
			}
		}
		if deps.Provisions != nil {
			if count, err := deps.Provisions.Count(ctx); err != nil {
				deps.Logger.Warn("health: provision count failed", zap.Error(err))
			} else {
				status["provisions"] = count
			}
		}

		return deps.NewDataResult(status)
	})
}
