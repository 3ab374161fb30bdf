package models

// ResponseMetadata is attached to every tool result so consumers can
// always see provenance regardless of outcome. It is built once at
// startup and read-only afterwards.
type ResponseMetadata struct {
	DataSource   string  `json:"data_source"`
	Jurisdiction string  `json:"jurisdiction"`
	Disclaimer   string  `json:"disclaimer"`
	Freshness    *string `json:"freshness,omitempty"`
}

const (
	// DataSourceFedlex labels the origin of the corpus.
	DataSourceFedlex = "Fedlex (Swiss federal law platform)"

	// JurisdictionCH is the ISO country code attached to every result.
	JurisdictionCH = "CH"

	// DisclaimerText states language authority. Only the German,
	// French and Italian texts published by the Federal Chancellery
	// are authoritative; English translations are informational.
	DisclaimerText = "Swiss law is authoritative only in its official German, French and Italian versions. English content is provided for information purposes."
)

// NewResponseMetadata builds the process-wide metadata block. freshness
// may be nil when the corpus build timestamp could not be read; that is
// a valid, representable state, not an error.
func NewResponseMetadata(freshness *string) ResponseMetadata {
	return ResponseMetadata{
		DataSource:   DataSourceFedlex,
		Jurisdiction: JurisdictionCH,
		Disclaimer:   DisclaimerText,
		Freshness:    freshness,
	}
}
