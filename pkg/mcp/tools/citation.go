package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/apperrors"
	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/citations"
	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/services"
)

// CitationToolDeps contains dependencies for the citation tools.
type CitationToolDeps struct {
	BaseToolDeps
	Validator services.ValidatorService
	Resolver  services.ResolverService
}

// RegisterCitationTools registers the citation MCP tools.
func RegisterCitationTools(s *server.MCPServer, deps *CitationToolDeps) {
	registerValidateCitationTool(s, deps)
	registerFormatCitationTool(s, deps)
}

func registerValidateCitationTool(s *server.MCPServer, deps *CitationToolDeps) {
	tool := mcp.NewTool(
		"validate_citation",
		mcp.WithDescription(
			"Validate a Swiss legal citation against the corpus. Accepts the common "+
				"surface forms ('Art. 6 DSG', 'DSG, Art. 6', 'SR 235.1 Art. 6', bare 'DSG'). "+
				"Returns valid=true/false with a normalized citation, the resolved statute, "+
				"and warnings for repealed or amended legislation. A citation that resolves "+
				"to a statute but names a missing article keeps the statute in the result.",
		),
		mcp.WithString(
			"citation",
			mcp.Required(),
			mcp.Description("The citation to validate (e.g. 'Art. 6 DSG')"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		citation, err := req.RequireString("citation")
		if err != nil {
			return nil, err
		}

		result, err := deps.Validator.Validate(ctx, citation)
		if err != nil {
			deps.Logger.Error("validate_citation failed", zap.Error(err))
			return nil, err
		}
		return deps.NewDataResult(result)
	})
}

func registerFormatCitationTool(s *server.MCPServer, deps *CitationToolDeps) {
	tool := mcp.NewTool(
		"format_citation",
		mcp.WithDescription(
			"Format a citation into a canonical rendering. format='full' produces "+
				"'Art. <N> <official title>' (identical to the normalized string from "+
				"validate_citation); format='short' uses the statute abbreviation.",
		),
		mcp.WithString(
			"citation",
			mcp.Required(),
			mcp.Description("The citation to format (any accepted surface form)"),
		),
		mcp.WithString(
			"format",
			mcp.Description("Output format: full (default) or short"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		citation, err := req.RequireString("citation")
		if err != nil {
			return nil, err
		}

		format := citations.CitationFormat(optionalString(req, "format"))
		if format == "" {
			format = citations.FormatFull
		}
		if !citations.ValidFormat(format) {
			return NewErrorResult("invalid_parameters",
				fmt.Sprintf("unknown format %q: must be full or short", format)), nil
		}

		parsed, err := citations.Parse(citation)
		if err != nil {
			return NewErrorResult("unparseable_citation", "Could not parse citation format"), nil
		}

		doc, err := deps.Resolver.Resolve(ctx, parsed.DocumentRef)
		if errors.Is(err, apperrors.ErrNotFound) {
			return NewErrorResult("document_not_found",
				fmt.Sprintf("document not found: %q", parsed.DocumentRef)), nil
		}
		if err != nil {
			deps.Logger.Error("format_citation failed", zap.Error(err))
			return nil, err
		}

		formatted := citations.FormatCitation(doc, parsed.ArticleRef, format)
		return deps.NewDataResult(map[string]any{
			"citation":    citation,
			"formatted":   formatted,
			"format":      string(format),
			"document_id": doc.ID,
		})
	})
}
