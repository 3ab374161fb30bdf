package logging

import "regexp"

const (
	// MaxTextLogLength caps provision text and snippets in log fields.
	// Full article text belongs in responses, not in the log stream.
	MaxTextLogLength = 120

	// RedactedText is the replacement text for sensitive data.
	RedactedText = "[REDACTED]"
)

var (
	// Matches password values in connection strings:
	// password=xxx, pwd=xxx, pass=xxx (until next delimiter).
	passwordPattern = regexp.MustCompile(`(?i)(password|pwd|pass)=[^;&\s]+`)

	// Matches connection string credentials (user:pass@host format).
	connStringPattern = regexp.MustCompile(`://[^:]+:[^@]+@[^/\s]+`)
)

// SanitizeConnectionString removes credentials from a connection
// string before it is logged.
func SanitizeConnectionString(connStr string) string {
	if connStr == "" {
		return ""
	}
	sanitized := passwordPattern.ReplaceAllString(connStr, "${1}="+RedactedText)
	return connStringPattern.ReplaceAllString(sanitized, "://"+RedactedText+"@"+RedactedText)
}

// TruncateText shortens long legal text for log fields, marking the
// cut with an ellipsis.
func TruncateText(text string) string {
	if len(text) <= MaxTextLogLength {
		return text
	}
	return text[:MaxTextLogLength] + "..."
}
