package citations

import (
	"regexp"
	"strings"

	"github.com/Ansvar-Systems/switzerland-law-mcp/pkg/apperrors"
)

// Form tags which surface syntax a citation matched.
type Form string

const (
	FormArticleFirst Form = "article_first" // "Art. 6 DSG"
	FormArticleLast  Form = "article_last"  // "DSG, Art. 6"
	FormSRExplicit   Form = "sr_explicit"   // "SR 235.1 Art. 6"
	FormBareDocument Form = "bare_document" // "DSG"
)

// ParsedCitation is the (document reference, article reference) pair
// extracted from a citation string. ArticleRef is empty for bare
// document references. Whether DocumentRef resolves to anything is the
// resolver's business, not the parser's.
type ParsedCitation struct {
	DocumentRef string
	ArticleRef  string
	Form        Form
}

// articleToken is the article-number grammar: a positive integer, an
// optional Latin ordinal extension, and optional trailing lowercase
// letters ("6", "5a", "16bis", "22quater a" is not valid).
const articleToken = `(\d+(?:bis|ter|quater|quinquies|sexies|septies|octies|novies|decies)?[a-z]*)`

// citationRule is one surface syntax. Rules are tried in order and the
// first structural match wins; adding a syntax means adding a rule, not
// rewriting the parser.
type citationRule struct {
	form    Form
	pattern *regexp.Regexp
	extract func(m []string) ParsedCitation
}

var citationRules = []citationRule{
	{
		form:    FormArticleFirst,
		pattern: regexp.MustCompile(`(?i)^art\.?\s*` + articleToken + `\s+(.+)$`),
		extract: func(m []string) ParsedCitation {
			return ParsedCitation{
				DocumentRef: strings.TrimSpace(m[2]),
				ArticleRef:  strings.ToLower(m[1]),
				Form:        FormArticleFirst,
			}
		},
	},
	{
		form:    FormArticleLast,
		pattern: regexp.MustCompile(`(?i)^(.+?)[,;]?\s+art\.?\s*` + articleToken + `\s*$`),
		extract: func(m []string) ParsedCitation {
			return ParsedCitation{
				DocumentRef: strings.TrimSpace(strings.TrimRight(strings.TrimSpace(m[1]), ",;")),
				ArticleRef:  strings.ToLower(m[2]),
				Form:        FormArticleLast,
			}
		},
	},
	{
		form:    FormSRExplicit,
		pattern: regexp.MustCompile(`(?i)^sr\s+(\d+(?:\.\d+)+)[,;]?\s+art\.?\s*` + articleToken + `\s*$`),
		extract: func(m []string) ParsedCitation {
			return ParsedCitation{
				DocumentRef: "SR " + m[1],
				ArticleRef:  strings.ToLower(m[2]),
				Form:        FormSRExplicit,
			}
		},
	},
}

// Parse extracts a document/article reference pair from a free-form
// citation. The only rejected input is the empty string (after
// trimming); everything else falls through to the bare-document rule.
func Parse(citation string) (ParsedCitation, error) {
	trimmed := strings.TrimSpace(citation)
	if trimmed == "" {
		return ParsedCitation{}, apperrors.ErrUnparseable
	}

	for _, rule := range citationRules {
		if m := rule.pattern.FindStringSubmatch(trimmed); m != nil {
			return rule.extract(m), nil
		}
	}

	return ParsedCitation{
		DocumentRef: trimmed,
		Form:        FormBareDocument,
	}, nil
}
