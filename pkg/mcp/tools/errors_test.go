package tools

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// getTextContent extracts the text string from the first content item.
func getTextContent(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)

	jsonBytes, err := json.Marshal(result.Content[0])
	require.NoError(t, err)
	var textContent struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}
	require.NoError(t, json.Unmarshal(jsonBytes, &textContent))
	return textContent.Text
}

func TestNewErrorResult(t *testing.T) {
	result := NewErrorResult("document_not_found", "no such statute")

	require.NotNil(t, result)
	assert.True(t, result.IsError)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal([]byte(getTextContent(t, result)), &resp))
	assert.True(t, resp.Error)
	assert.Equal(t, "document_not_found", resp.Code)
	assert.Equal(t, "no such statute", resp.Message)
	assert.Nil(t, resp.Details)
}

func TestNewErrorResultWithDetails(t *testing.T) {
	result := NewErrorResultWithDetails("provision_not_found", "no such article",
		map[string]any{"document_id": "sr-235-1"})

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal([]byte(getTextContent(t, result)), &resp))
	assert.Equal(t, "provision_not_found", resp.Code)

	details, ok := resp.Details.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "sr-235-1", details["document_id"])
}

func TestIsSQLUserError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "tsquery syntax", err: &pgconn.PgError{Code: "42601", Message: "syntax error in tsquery"}, want: true},
		{name: "invalid text representation", err: &pgconn.PgError{Code: "22P02"}, want: true},
		{name: "connection failure", err: &pgconn.PgError{Code: "08006"}, want: false},
		{name: "wrapped message with sqlstate", err: errors.New(`failed to search provisions: ERROR: syntax error in tsquery: "&" (SQLSTATE 42601)`), want: true},
		{name: "plain error", err: errors.New("dial tcp: connection refused"), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSQLUserError(tt.err))
		})
	}
}

func TestExtractSQLErrorMessage(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "42601", Message: `syntax error in tsquery: "&"`}
	assert.Equal(t, `syntax error in tsquery: "&"`, ExtractSQLErrorMessage(pgErr))

	wrapped := errors.New(`failed to search provisions: ERROR: syntax error in tsquery: "&" (SQLSTATE 42601)`)
	assert.Equal(t, `syntax error in tsquery: "&"`, ExtractSQLErrorMessage(wrapped))

	assert.Equal(t, "", ExtractSQLErrorMessage(nil))
}

func TestNewSQLErrorResult(t *testing.T) {
	result := NewSQLErrorResult(&pgconn.PgError{Code: "42601", Message: "syntax error"})
	require.NotNil(t, result)
	assert.True(t, result.IsError)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal([]byte(getTextContent(t, result)), &resp))
	assert.Equal(t, "invalid_query", resp.Code)

	// Server-side failures stay Go errors.
	assert.Nil(t, NewSQLErrorResult(&pgconn.PgError{Code: "08006"}))
	assert.Nil(t, NewSQLErrorResult(errors.New("context deadline exceeded")))
}
