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

// listProvisionsCap bounds a whole-document provision listing.
const listProvisionsCap = 200

// ProvisionToolDeps contains dependencies for the provision tools.
type ProvisionToolDeps struct {
	BaseToolDeps
	Resolver   services.ResolverService
	Provisions repositories.ProvisionRepository

	// DefinitionsAvailable gates the get_definitions tool on the
	// optional definitions table.
	DefinitionsAvailable bool
}

// RegisterProvisionTools registers the provision MCP tools.
func RegisterProvisionTools(s *server.MCPServer, deps *ProvisionToolDeps) {
	registerGetProvisionTool(s, deps)
	if deps.DefinitionsAvailable {
		registerGetDefinitionsTool(s, deps)
	}
}

// provisionListing is the get_provision result shape.
type provisionListing struct {
	Document   *models.LegalDocument    `json:"document"`
	Provisions []*models.LegalProvision `json:"provisions"`
	Warnings   []string                 `json:"warnings"`
}

func registerGetProvisionTool(s *server.MCPServer, deps *ProvisionToolDeps) {
	tool := mcp.NewTool(
		"get_provision",
		mcp.WithDescription(
			"Fetch provision text from a statute. With provision_ref, returns that "+
				"single article; with section, all provisions under that chapter/section "+
				"label; with neither, the statute's provisions up to a cap. "+
				"Example: get_provision(document_id='DSG', provision_ref='6').",
		),
		mcp.WithString(
			"document_id",
			mcp.Required(),
			mcp.Description("Statute reference: SR number, abbreviation or title fragment"),
		),
		mcp.WithString(
			"provision_ref",
			mcp.Description("Article reference (e.g. '6', 'art6', '16bis')"),
		),
		mcp.WithString(
			"section",
			mcp.Description("Chapter/section label to list provisions under"),
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

		doc, err := deps.Resolver.Resolve(ctx, documentRef)
		if errors.Is(err, apperrors.ErrNotFound) {
			return NewErrorResult("document_not_found",
				fmt.Sprintf("document not found: %q", documentRef)), nil
		}
		if err != nil {
			deps.Logger.Error("get_provision failed to resolve document", zap.Error(err))
			return nil, err
		}

		listing := &provisionListing{Document: doc, Warnings: []string{}}

		provisionRef := optionalString(req, "provision_ref")
		section := optionalString(req, "section")
		switch {
		case provisionRef != "":
			provision, err := deps.Provisions.FindByRef(ctx, doc.ID, provisionRef)
			if errors.Is(err, apperrors.ErrNotFound) {
				return NewErrorResultWithDetails("provision_not_found",
					fmt.Sprintf("provision %q not found in %s", provisionRef, doc.DisplayName()),
					map[string]any{"document_id": doc.ID}), nil
			}
			if err != nil {
				deps.Logger.Error("get_provision failed", zap.Error(err))
				return nil, err
			}
			listing.Provisions = []*models.LegalProvision{provision}
		case section != "":
			provisions, err := deps.Provisions.ListBySection(ctx, doc.ID, section)
			if err != nil {
				deps.Logger.Error("get_provision failed", zap.Error(err))
				return nil, err
			}
			listing.Provisions = provisions
		default:
			provisions, err := deps.Provisions.ListByDocument(ctx, doc.ID, listProvisionsCap)
			if err != nil {
				deps.Logger.Error("get_provision failed", zap.Error(err))
				return nil, err
			}
			listing.Provisions = provisions
		}

		if listing.Provisions == nil {
			listing.Provisions = []*models.LegalProvision{}
		}
		switch doc.Status {
		case models.StatusRepealed:
			listing.Warnings = append(listing.Warnings,
				fmt.Sprintf("%s has been repealed and is no longer in force", doc.DisplayName()))
		case models.StatusAmended:
			listing.Warnings = append(listing.Warnings,
				fmt.Sprintf("%s has been amended; verify the cited provision is current", doc.DisplayName()))
		}

		return deps.NewDataResult(listing)
	})
}

func registerGetDefinitionsTool(s *server.MCPServer, deps *ProvisionToolDeps) {
	tool := mcp.NewTool(
		"get_definitions",
		mcp.WithDescription(
			"List legal term definitions extracted from a statute, optionally "+
				"filtered by term. Example: get_definitions(document_id='DSG', "+
				"term='Personendaten').",
		),
		mcp.WithString(
			"document_id",
			mcp.Required(),
			mcp.Description("Statute reference: SR number, abbreviation or title fragment"),
		),
		mcp.WithString(
			"term",
			mcp.Description("Optional term filter (substring, case-insensitive)"),
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

		doc, err := deps.Resolver.Resolve(ctx, documentRef)
		if errors.Is(err, apperrors.ErrNotFound) {
			return NewErrorResult("document_not_found",
				fmt.Sprintf("document not found: %q", documentRef)), nil
		}
		if err != nil {
			deps.Logger.Error("get_definitions failed to resolve document", zap.Error(err))
			return nil, err
		}

		term := optionalString(req, "term")
		if result := guardFreeText("term", term); result != nil {
			return result, nil
		}

		definitions, err := deps.Provisions.Definitions(ctx, doc.ID, term)
		if err != nil {
			deps.Logger.Error("get_definitions failed", zap.Error(err))
			return nil, err
		}
		if definitions == nil {
			definitions = []*models.Definition{}
		}
		return deps.NewDataResult(map[string]any{
			"document_id": doc.ID,
			"definitions": definitions,
		})
	})
}
