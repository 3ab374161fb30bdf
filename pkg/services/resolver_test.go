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

func newTestResolver(docs ...*models.LegalDocument) ResolverService {
	return NewResolverService(&mockDocumentRepository{docs: docs}, zap.NewNop())
}

func TestResolver_ExactID(t *testing.T) {
	resolver := newTestResolver(fixtureDSG(), fixtureOR())

	doc, err := resolver.Resolve(context.Background(), "sr-235-1")
	require.NoError(t, err)
	assert.Equal(t, "sr-235-1", doc.ID)

	// ID matching is case-insensitive.
	doc, err = resolver.Resolve(context.Background(), "SR-235-1")
	require.NoError(t, err)
	assert.Equal(t, "sr-235-1", doc.ID)
}

func TestResolver_SRNumber(t *testing.T) {
	resolver := newTestResolver(fixtureDSG(), fixtureOR())

	for _, ref := range []string{"SR 235.1", "sr 235.1", "235.1"} {
		doc, err := resolver.Resolve(context.Background(), ref)
		require.NoError(t, err, "reference %q", ref)
		assert.Equal(t, "sr-235-1", doc.ID, "reference %q", ref)
	}
}

func TestResolver_Abbreviation(t *testing.T) {
	resolver := newTestResolver(fixtureDSG(), fixtureOR(), fixtureOldDSG())

	doc, err := resolver.Resolve(context.Background(), "DSG")
	require.NoError(t, err)
	assert.Equal(t, "sr-235-1", doc.ID)

	doc, err = resolver.Resolve(context.Background(), "OR")
	require.NoError(t, err)
	assert.Equal(t, "sr-220", doc.ID)
}

func TestResolver_TitleFragment(t *testing.T) {
	resolver := newTestResolver(fixtureDSG(), fixtureOR())

	doc, err := resolver.Resolve(context.Background(), "Datenschutz")
	require.NoError(t, err)
	assert.Equal(t, "sr-235-1", doc.ID)
}

func TestResolver_CaseInsensitiveFallback(t *testing.T) {
	resolver := newTestResolver(fixtureDSG(), fixtureOR())

	// "federal act" matches nothing case-sensitively; the second pass
	// finds it in the English title.
	doc, err := resolver.Resolve(context.Background(), "federal act")
	require.NoError(t, err)
	assert.Equal(t, "sr-235-1", doc.ID)
}

func TestResolver_FirstMatchWins(t *testing.T) {
	// Both documents contain "Bundesgesetz" in the title; the first row
	// in store order wins and no ranking reorders the outcome.
	resolver := newTestResolver(fixtureDSG(), fixtureOldDSG())
	doc, err := resolver.Resolve(context.Background(), "Bundesgesetz")
	require.NoError(t, err)
	assert.Equal(t, "sr-235-1", doc.ID)

	flipped := newTestResolver(fixtureOldDSG(), fixtureDSG())
	doc, err = flipped.Resolve(context.Background(), "Bundesgesetz")
	require.NoError(t, err)
	assert.Equal(t, "sr-235-1-1992", doc.ID)
}

func TestResolver_NotFound(t *testing.T) {
	resolver := newTestResolver(fixtureDSG())

	for _, ref := range []string{"", "   ", "Quantum Computing Act", "SR 999.99"} {
		_, err := resolver.Resolve(context.Background(), ref)
		assert.ErrorIs(t, err, apperrors.ErrNotFound, "reference %q", ref)
	}
}
