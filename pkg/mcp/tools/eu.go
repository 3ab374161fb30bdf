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
	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/repositories"
	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/services"
)

// defaultEUSearchLimit bounds search_eu_implementations results.
const defaultEUSearchLimit = 20

// EUToolDeps contains dependencies for the EU cross-reference tools.
type EUToolDeps struct {
	BaseToolDeps
	CrossRef services.CrossRefService
}

// RegisterEUTools registers the EU cross-reference MCP tools. The
// caller gates registration on the eu_references store capability.
func RegisterEUTools(s *server.MCPServer, deps *EUToolDeps) {
	registerGetEUBasisTool(s, deps)
	registerGetProvisionEUBasisTool(s, deps)
	registerGetSwissImplementationsTool(s, deps)
	registerSearchEUImplementationsTool(s, deps)
	registerValidateEUComplianceTool(s, deps)
}

func registerGetEUBasisTool(s *server.MCPServer, deps *EUToolDeps) {
	tool := mcp.NewTool(
		"get_eu_basis",
		mcp.WithDescription(
			"List the EU directives and regulations a Swiss statute implements or "+
				"aligns with. Set include_articles=true to also return references "+
				"pinned to individual provisions.",
		),
		mcp.WithString(
			"document_id",
			mcp.Required(),
			mcp.Description("Statute reference: SR number, abbreviation or title fragment"),
		),
		mcp.WithBoolean(
			"include_articles",
			mcp.Description("Include provision-pinned reference rows (default false)"),
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

		doc, refs, err := deps.CrossRef.EUBasis(ctx, documentRef, optionalBool(req, "include_articles", false))
		if errors.Is(err, apperrors.ErrNotFound) {
			return NewErrorResult("document_not_found",
				fmt.Sprintf("document not found: %q", documentRef)), nil
		}
		if err != nil {
			deps.Logger.Error("get_eu_basis failed", zap.Error(err))
			return nil, err
		}
		if refs == nil {
			refs = []*models.EUReference{}
		}
		return deps.NewDataResult(map[string]any{
			"document_id": doc.ID,
			"references":  refs,
		})
	})
}

func registerGetProvisionEUBasisTool(s *server.MCPServer, deps *EUToolDeps) {
	tool := mcp.NewTool(
		"get_provision_eu_basis",
		mcp.WithDescription(
			"List EU references pinned to one specific provision of a Swiss statute. "+
				"Example: get_provision_eu_basis(document_id='DSG', provision_ref='6').",
		),
		mcp.WithString(
			"document_id",
			mcp.Required(),
			mcp.Description("Statute reference: SR number, abbreviation or title fragment"),
		),
		mcp.WithString(
			"provision_ref",
			mcp.Required(),
			mcp.Description("Article reference (e.g. '6', 'art6')"),
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
		provisionRef, err := req.RequireString("provision_ref")
		if err != nil {
			return nil, err
		}

		doc, refs, err := deps.CrossRef.ProvisionEUBasis(ctx, documentRef, provisionRef)
		if errors.Is(err, apperrors.ErrNotFound) {
			return NewErrorResult("document_not_found",
				fmt.Sprintf("document not found: %q", documentRef)), nil
		}
		if err != nil {
			deps.Logger.Error("get_provision_eu_basis failed", zap.Error(err))
			return nil, err
		}
		if refs == nil {
			refs = []*models.EUReference{}
		}
		return deps.NewDataResult(map[string]any{
			"document_id":   doc.ID,
			"provision_ref": provisionRef,
			"references":    refs,
		})
	})
}

func registerGetSwissImplementationsTool(s *server.MCPServer, deps *EUToolDeps) {
	tool := mcp.NewTool(
		"get_swiss_implementations",
		mcp.WithDescription(
			"Reverse lookup: find the Swiss statutes implementing or aligning with "+
				"an EU instrument. Accepts 'regulation-2016-679', 'Regulation (EU) "+
				"2016/679', 'Directive 95/46/EC' or a bare '2016/679' when unambiguous.",
		),
		mcp.WithString(
			"eu_document_id",
			mcp.Required(),
			mcp.Description("EU instrument reference"),
		),
		mcp.WithBoolean(
			"primary_only",
			mcp.Description("Only statutes whose reference type is 'implements' (default false)"),
		),
		mcp.WithBoolean(
			"in_force_only",
			mcp.Description("Only statutes currently in force (default false)"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		euRef, err := req.RequireString("eu_document_id")
		if err != nil {
			return nil, err
		}

		euDoc, docs, err := deps.CrossRef.SwissImplementations(ctx, euRef,
			optionalBool(req, "primary_only", false),
			optionalBool(req, "in_force_only", false))
		if errors.Is(err, apperrors.ErrNotFound) {
			return NewErrorResult("eu_document_not_found",
				fmt.Sprintf("EU instrument not found: %q", euRef)), nil
		}
		if err != nil {
			deps.Logger.Error("get_swiss_implementations failed", zap.Error(err))
			return nil, err
		}
		if docs == nil {
			docs = []*models.LegalDocument{}
		}
		return deps.NewDataResult(map[string]any{
			"eu_document":     euDoc,
			"implementations": docs,
		})
	})
}

func registerSearchEUImplementationsTool(s *server.MCPServer, deps *EUToolDeps) {
	tool := mcp.NewTool(
		"search_eu_implementations",
		mcp.WithDescription(
			"Search the EU instruments known to the corpus by title, type and year, "+
				"optionally filtered to those with (or without) Swiss implementing "+
				"legislation.",
		),
		mcp.WithString(
			"query",
			mcp.Description("Title fragment (e.g. 'data protection')"),
		),
		mcp.WithString(
			"type",
			mcp.Description("Instrument type: directive or regulation"),
		),
		mcp.WithNumber(
			"year_from",
			mcp.Description("Earliest year, inclusive"),
		),
		mcp.WithNumber(
			"year_to",
			mcp.Description("Latest year, inclusive"),
		),
		mcp.WithBoolean(
			"has_swiss_implementation",
			mcp.Description("true: only instruments with Swiss references; false: only those without"),
		),
		mcp.WithNumber(
			"limit",
			mcp.Description(fmt.Sprintf("Maximum number of results (default %d, max %d)", defaultEUSearchLimit, services.MaxSearchLimit)),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		docType := models.EUDocumentType(optionalString(req, "type"))
		if docType != "" && docType != models.EUTypeDirective && docType != models.EUTypeRegulation {
			return NewErrorResult("invalid_parameters",
				fmt.Sprintf("unknown type %q: must be directive or regulation", docType)), nil
		}

		query := optionalString(req, "query")
		if result := guardFreeText("query", query); result != nil {
			return result, nil
		}

		limit := optionalInt(req, "limit", defaultEUSearchLimit)
		if limit <= 0 {
			limit = defaultEUSearchLimit
		}
		if limit > services.MaxSearchLimit {
			limit = services.MaxSearchLimit
		}

		filter := repositories.EUSearchFilter{
			Query:    query,
			Type:     docType,
			YearFrom: optionalInt(req, "year_from", 0),
			YearTo:   optionalInt(req, "year_to", 0),
			Limit:    limit,
		}
		if args, ok := req.Params.Arguments.(map[string]any); ok {
			if v, ok := args["has_swiss_implementation"].(bool); ok {
				filter.HasSwissImplementation = &v
			}
		}

		docs, err := deps.CrossRef.SearchEUDocuments(ctx, filter)
		if err != nil {
			deps.Logger.Error("search_eu_implementations failed", zap.Error(err))
			return nil, err
		}
		if docs == nil {
			docs = []*models.EUDocument{}
		}
		return deps.NewDataResult(docs)
	})
}

func registerValidateEUComplianceTool(s *server.MCPServer, deps *EUToolDeps) {
	tool := mcp.NewTool(
		"validate_eu_compliance",
		mcp.WithDescription(
			"Classify how a Swiss statute (or a single provision) tracks its EU "+
				"basis: compliant, partial, unclear, or not_applicable when no EU "+
				"references exist. Optionally narrowed to one EU instrument.",
		),
		mcp.WithString(
			"document_id",
			mcp.Required(),
			mcp.Description("Statute reference: SR number, abbreviation or title fragment"),
		),
		mcp.WithString(
			"provision_ref",
			mcp.Description("Optional article reference to narrow the check"),
		),
		mcp.WithString(
			"eu_document_id",
			mcp.Description("Optional EU instrument reference to narrow the check"),
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

		result, err := deps.CrossRef.ValidateCompliance(ctx, documentRef,
			optionalString(req, "provision_ref"),
			optionalString(req, "eu_document_id"))
		if errors.Is(err, apperrors.ErrNotFound) {
			return NewErrorResult("not_found",
				"document or EU instrument could not be resolved"), nil
		}
		if err != nil {
			deps.Logger.Error("validate_eu_compliance failed", zap.Error(err))
			return nil, err
		}
		return deps.NewDataResult(result)
	})
}
