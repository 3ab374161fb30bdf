package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/apperrors"
	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/services"
)

// CurrencyToolDeps contains dependencies for the currency tool.
type CurrencyToolDeps struct {
	BaseToolDeps
	Currency services.CurrencyService
}

// RegisterCurrencyTools registers the check_currency MCP tool.
func RegisterCurrencyTools(s *server.MCPServer, deps *CurrencyToolDeps) {
	tool := mcp.NewTool(
		"check_currency",
		mcp.WithDescription(
			"Check whether a statute (and optionally one of its provisions) is "+
				"current law. Reports legislative status, issued and in-force dates, "+
				"and warnings for repealed, amended or not-yet-in-force legislation.",
		),
		mcp.WithString(
			"document_id",
			mcp.Required(),
			mcp.Description("Statute reference: SR number, abbreviation or title fragment"),
		),
		mcp.WithString(
			"provision_ref",
			mcp.Description("Optional article reference to confirm exists (e.g. '6')"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		documentRef, err := req.RequireString("document_id")
		if err != nil {
			return nil, err
		}

		result, err := deps.Currency.CheckCurrency(ctx, documentRef, optionalString(req, "provision_ref"))
		if errors.Is(err, apperrors.ErrNotFound) {
			return NewErrorResult("document_not_found",
				fmt.Sprintf("document not found: %q", documentRef)), nil
		}
		if err != nil {
			deps.Logger.Error("check_currency failed", zap.Error(err))
			return nil, err
		}
		return deps.NewDataResult(result)
	})
}
