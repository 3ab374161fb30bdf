package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/apperrors"
	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/models"
)

func newTestCurrency() CurrencyService {
	pending := &models.LegalDocument{
		ID:     "sr-999-1",
		Title:  "Bundesgesetz über elektronische Identifizierungsdienste",
		Status: models.StatusNotYetInForce,
	}
	docs := &mockDocumentRepository{docs: []*models.LegalDocument{
		fixtureDSG(), fixtureOR(), fixtureOldDSG(), pending,
	}}
	provisions := &mockProvisionRepository{provisions: []*models.LegalProvision{
		{ID: 1, DocumentID: "sr-235-1", ProvisionRef: "art6", Content: "Grundsätze"},
	}}
	resolver := NewResolverService(docs, zap.NewNop())
	return NewCurrencyService(resolver, provisions, zap.NewNop())
}

func TestCheckCurrency_InForce(t *testing.T) {
	svc := newTestCurrency()

	result, err := svc.CheckCurrency(context.Background(), "DSG", "")
	require.NoError(t, err)

	assert.Equal(t, "sr-235-1", result.DocumentID)
	assert.Equal(t, models.StatusInForce, result.Status)
	require.NotNil(t, result.InForceDate)
	assert.Equal(t, "2023-09-01", *result.InForceDate)
	assert.Empty(t, result.Warnings)
	assert.Nil(t, result.ProvisionFound)
}

func TestCheckCurrency_StatusWarnings(t *testing.T) {
	svc := newTestCurrency()

	tests := []struct {
		ref     string
		status  models.DocumentStatus
		warning string
	}{
		{ref: "aDSG", status: models.StatusRepealed, warning: "repealed"},
		{ref: "OR", status: models.StatusAmended, warning: "amended"},
		{ref: "sr-999-1", status: models.StatusNotYetInForce, warning: "not yet in force"},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			result, err := svc.CheckCurrency(context.Background(), tt.ref, "")
			require.NoError(t, err)
			assert.Equal(t, tt.status, result.Status)
			require.Len(t, result.Warnings, 1)
			assert.Contains(t, result.Warnings[0], tt.warning)
		})
	}
}

func TestCheckCurrency_ProvisionFound(t *testing.T) {
	svc := newTestCurrency()

	result, err := svc.CheckCurrency(context.Background(), "DSG", "6")
	require.NoError(t, err)
	require.NotNil(t, result.ProvisionFound)
	assert.True(t, *result.ProvisionFound)
	assert.Empty(t, result.Warnings)
}

func TestCheckCurrency_ProvisionMissing(t *testing.T) {
	svc := newTestCurrency()

	// The document resolves, so a missing article is reported in the
	// result rather than as an error.
	result, err := svc.CheckCurrency(context.Background(), "DSG", "99")
	require.NoError(t, err)
	require.NotNil(t, result.ProvisionFound)
	assert.False(t, *result.ProvisionFound)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "not found")
}

func TestCheckCurrency_DocumentNotFound(t *testing.T) {
	svc := newTestCurrency()

	_, err := svc.CheckCurrency(context.Background(), "Raumfahrtgesetz", "")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
