package citations

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/apperrors"
	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/models"
)

// EUIdentifier is a parsed reference to an EU instrument. Type is
// empty when the input carried only a year/number pair and the
// instrument type has to come from the store.
type EUIdentifier struct {
	Type   models.EUDocumentType
	Year   int
	Number string
}

// CanonicalID returns the composite document ID, or empty string when
// the type is unknown.
func (id EUIdentifier) CanonicalID() string {
	if id.Type == "" {
		return ""
	}
	return string(id.Type) + "-" + strconv.Itoa(id.Year) + "-" + id.Number
}

var (
	// "regulation-2016-679" / "directive-1995-46"
	euCanonicalPattern = regexp.MustCompile(`(?i)^(regulation|directive)-(\d{4})-(\d+)$`)

	// "Regulation (EU) 2016/679", "Directive 95/46/EC",
	// "directive 2016/680"
	euCitationPattern = regexp.MustCompile(`(?i)^(regulation|directive)(?:\s*\((?:EU|EC|EEC)\))?\s+(\d{2,4})/(\d+)(?:/(?:EU|EC|EEC))?$`)

	// Bare "2016/679" — type unknown.
	euBarePattern = regexp.MustCompile(`^(\d{2,4})/(\d+)$`)
)

// ParseEUIdentifier parses the accepted surface forms of an EU
// instrument reference. Two-digit years are pre-2000 instruments
// ("95/46" -> 1995). Returns ErrUnparseable for anything else.
func ParseEUIdentifier(reference string) (EUIdentifier, error) {
	trimmed := strings.TrimSpace(reference)
	if trimmed == "" {
		return EUIdentifier{}, apperrors.ErrUnparseable
	}

	if m := euCanonicalPattern.FindStringSubmatch(trimmed); m != nil {
		year, _ := strconv.Atoi(m[2])
		return EUIdentifier{
			Type:   models.EUDocumentType(strings.ToLower(m[1])),
			Year:   year,
			Number: strings.TrimLeft(m[3], "0"),
		}, nil
	}

	if m := euCitationPattern.FindStringSubmatch(trimmed); m != nil {
		return EUIdentifier{
			Type:   models.EUDocumentType(strings.ToLower(m[1])),
			Year:   expandYear(m[2]),
			Number: strings.TrimLeft(m[3], "0"),
		}, nil
	}

	if m := euBarePattern.FindStringSubmatch(trimmed); m != nil {
		return EUIdentifier{
			Year:   expandYear(m[1]),
			Number: strings.TrimLeft(m[2], "0"),
		}, nil
	}

	return EUIdentifier{}, apperrors.ErrUnparseable
}

// expandYear widens two-digit years. EU instruments predate 2000 only
// in the two-digit convention ("95/46"), so anything below 100 maps to
// the 1900s.
func expandYear(s string) int {
	year, _ := strconv.Atoi(s)
	if year < 100 {
		return 1900 + year
	}
	return year
}
