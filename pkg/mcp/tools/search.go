package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/apperrors"
	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/models"
	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/services"
)

// SearchToolDeps contains dependencies for the search tools.
type SearchToolDeps struct {
	BaseToolDeps
	Search services.SearchService
}

// RegisterSearchTools registers the full-text search MCP tools.
func RegisterSearchTools(s *server.MCPServer, deps *SearchToolDeps) {
	registerSearchLegislationTool(s, deps)
	registerBuildLegalStanceTool(s, deps)
}

func registerSearchLegislationTool(s *server.MCPServer, deps *SearchToolDeps) {
	tool := mcp.NewTool(
		"search_legislation",
		mcp.WithDescription(
			"Full-text search across Swiss federal legislation. "+
				"Returns ranked provisions with snippets and parent-statute context. "+
				"Supports quoted phrases, OR and -exclusion in the query. "+
				"Example: search_legislation(query='Einwilligung Datenbearbeitung') returns "+
				"provisions about consent to data processing.",
		),
		mcp.WithString(
			"query",
			mcp.Required(),
			mcp.Description("Search query text (German corpus; e.g. 'Personendaten', '\"besonders schützenswerte\"')"),
		),
		mcp.WithString(
			"document_id",
			mcp.Description("Restrict to one statute: SR number, abbreviation or title fragment (e.g. 'SR 235.1', 'DSG')"),
		),
		mcp.WithString(
			"status",
			mcp.Description("Restrict by legislative status: in_force, amended, repealed or not_yet_in_force"),
		),
		mcp.WithNumber(
			"limit",
			mcp.Description(fmt.Sprintf("Maximum number of results (default %d, max %d)", services.DefaultSearchLimit, services.MaxSearchLimit)),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := req.RequireString("query")
		if err != nil {
			return nil, err
		}
		if services.SanitizeQuery(query) == "" {
			return NewErrorResult("invalid_parameters", "query parameter cannot be empty"), nil
		}
		if result := guardFreeText("query", query); result != nil {
			return result, nil
		}

		status := models.DocumentStatus(optionalString(req, "status"))
		if status != "" && !status.IsValid() {
			return NewErrorResult("invalid_parameters",
				fmt.Sprintf("unknown status %q", status)), nil
		}

		results, err := deps.Search.Search(ctx, services.SearchRequest{
			Query:       query,
			DocumentRef: optionalString(req, "document_id"),
			Status:      status,
			Limit:       optionalInt(req, "limit", services.DefaultSearchLimit),
		})
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return NewErrorResult("document_not_found",
					fmt.Sprintf("document_id %q did not match any statute", optionalString(req, "document_id"))), nil
			}
			if result := NewSQLErrorResult(err); result != nil {
				return result, nil
			}
			deps.Logger.Error("search_legislation failed", zap.Error(err))
			return nil, err
		}

		return deps.NewDataResult(results)
	})
}

func registerBuildLegalStanceTool(s *server.MCPServer, deps *SearchToolDeps) {
	tool := mcp.NewTool(
		"build_legal_stance",
		mcp.WithDescription(
			"Research a legal topic across statutes. Fans the query out over the "+
				"corpus and groups the best-ranked provisions by statute, so the result "+
				"covers breadth across legislation rather than depth within one act.",
		),
		mcp.WithString(
			"query",
			mcp.Required(),
			mcp.Description("Topic to research (e.g. 'Auskunftsrecht betroffene Person')"),
		),
		mcp.WithString(
			"document_id",
			mcp.Description("Optional statute scope: SR number, abbreviation or title fragment"),
		),
		mcp.WithNumber(
			"limit",
			mcp.Description(fmt.Sprintf("Maximum number of statute groups (default %d)", services.DefaultStanceLimit)),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := req.RequireString("query")
		if err != nil {
			return nil, err
		}
		if services.SanitizeQuery(query) == "" {
			return NewErrorResult("invalid_parameters", "query parameter cannot be empty"), nil
		}
		if result := guardFreeText("query", query); result != nil {
			return result, nil
		}

		groups, err := deps.Search.BuildStance(ctx, query,
			optionalString(req, "document_id"),
			optionalInt(req, "limit", services.DefaultStanceLimit))
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return NewErrorResult("document_not_found",
					fmt.Sprintf("document_id %q did not match any statute", optionalString(req, "document_id"))), nil
			}
			if result := NewSQLErrorResult(err); result != nil {
				return result, nil
			}
			deps.Logger.Error("build_legal_stance failed", zap.Error(err))
			return nil, err
		}

		return deps.NewDataResult(groups)
	})
}
