// Package citations parses and formats Swiss legal citations. The
// grammars are intentionally permissive pattern rules evaluated in a
// fixed priority order, not a full parser: legal citations in the wild
// are loosely formatted and multilingual, and validity is decided
// downstream against the corpus, not here.
package citations

import (
	"regexp"
	"strings"
)

// srNumberPattern matches a Swiss systematic collection (SR) number: a
// dotted numeric sequence, optionally prefixed with the "SR"
// jurisdiction marker. Example inputs: "SR 235.1", "235.1", "0.235.1".
var srNumberPattern = regexp.MustCompile(`(?i)(?:\bSR\s*)?(\d+(?:\.\d+)+)`)

// ExtractSRNumber pulls the first SR numbering token out of free text.
// Returns the dotted number ("235.1") and true, or "" and false when
// the text carries no dotted numeric sequence.
func ExtractSRNumber(text string) (string, bool) {
	m := srNumberPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// NormalizeSRNumber converts a dotted SR number to the dash form used
// in canonical document IDs: "235.1" -> "235-1".
func NormalizeSRNumber(number string) string {
	return strings.ReplaceAll(number, ".", "-")
}

// DocumentIDForSRNumber returns the canonical document ID for a dotted
// SR number: "235.1" -> "sr-235-1".
func DocumentIDForSRNumber(number string) string {
	return "sr-" + NormalizeSRNumber(number)
}
