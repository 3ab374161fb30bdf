package citations

import (
	"strings"

	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/models"
)

// CitationFormat selects the rendering of a formatted citation.
type CitationFormat string

const (
	// FormatFull renders "Art. <ref> <official title>", or the bare
	// title when no article is targeted. This is byte-identical to the
	// normalized string produced by citation validation, so formatting
	// a normalized citation round-trips.
	FormatFull CitationFormat = "full"

	// FormatShort renders "Art. <ref> <abbreviation>", falling back
	// to the official title for statutes without a short name.
	FormatShort CitationFormat = "short"
)

// ValidFormat reports whether f is a supported citation format.
func ValidFormat(f CitationFormat) bool {
	return f == FormatFull || f == FormatShort
}

// FormatCitation renders a resolved citation. articleRef is the
// display form of the article number ("6", "5a", "16bis"); pass empty
// for a document-only citation.
func FormatCitation(doc *models.LegalDocument, articleRef string, format CitationFormat) string {
	name := doc.Title
	if format == FormatShort {
		name = doc.DisplayName()
	}
	if articleRef == "" {
		return name
	}
	return "Art. " + articleRef + " " + name
}

// DisplayArticleRef converts a stored provision reference back to its
// display form: "art6" -> "6", "art16bis" -> "16bis". References
// without the prefix pass through unchanged.
func DisplayArticleRef(provisionRef string) string {
	return strings.TrimPrefix(strings.ToLower(provisionRef), "art")
}

// StorageArticleRef converts a parsed article token to the normalized
// stored form: "6" -> "art6".
func StorageArticleRef(articleRef string) string {
	lower := strings.ToLower(strings.TrimSpace(articleRef))
	if strings.HasPrefix(lower, "art") {
		return lower
	}
	return "art" + lower
}
