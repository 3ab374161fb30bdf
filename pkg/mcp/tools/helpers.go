// Package tools provides the MCP tool implementations for
// switzerland-law-mcp.
package tools

import (
	"encoding/json"
	"fmt"
	"strings"

	libinjection "github.com/corazawaf/libinjection-go"
	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/models"
	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/services"
)

// BaseToolDeps carries the dependencies every tool needs.
type BaseToolDeps struct {
	Logger   *zap.Logger
	Metadata services.MetadataService
}

// envelope is the uniform response shape for data-returning tools:
// the payload plus the provenance metadata block, present on success
// and domain failure alike.
type envelope struct {
	Results  any                     `json:"results"`
	Metadata models.ResponseMetadata `json:"_metadata"`
}

// NewDataResult wraps results in the response envelope and marshals it
// into a tool result.
func (d *BaseToolDeps) NewDataResult(results any) (*mcp.CallToolResult, error) {
	payload := envelope{
		Results:  results,
		Metadata: d.Metadata.ResponseMetadata(),
	}
	jsonBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

// optionalString extracts an optional string argument, trimmed.
func optionalString(req mcp.CallToolRequest, key string) string {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return ""
	}
	if v, ok := args[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// optionalInt extracts an optional numeric argument. JSON numbers
// arrive as float64.
func optionalInt(req mcp.CallToolRequest, key string, fallback int) int {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return fallback
	}
	if v, ok := args[key].(float64); ok {
		return int(v)
	}
	return fallback
}

// optionalBool extracts an optional boolean argument.
func optionalBool(req mcp.CallToolRequest, key string, fallback bool) bool {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return fallback
	}
	if v, ok := args[key].(bool); ok {
		return v
	}
	return fallback
}

// guardFreeText rejects free-text parameters carrying SQL injection
// patterns. The repositories only ever bind parameters, so this is a
// reporting aid for hostile agent input, not the actual defense.
func guardFreeText(paramName, value string) *mcp.CallToolResult {
	if value == "" {
		return nil
	}
	if isSQLi, _ := libinjection.IsSQLi(value); isSQLi {
		return NewErrorResult("invalid_parameters",
			fmt.Sprintf("parameter %q contains disallowed SQL syntax", paramName))
	}
	return nil
}
