package models

// LegalProvision is a single article or section within a statute.
// provision_ref is normalized by ingestion to "art<N><suffix>"
// lowercase and is unique within its parent document.
type LegalProvision struct {
	ID           int64   `json:"id"`
	DocumentID   string  `json:"document_id"`
	ProvisionRef string  `json:"provision_ref"`
	Section      *string `json:"section,omitempty"`
	Title        *string `json:"title,omitempty"`
	Content      string  `json:"content"`
}

// Definition is a term/definition pair extracted from a statute. The
// link to the source provision is a lookup aid, not an ownership
// relation; the provision may have been renumbered since extraction.
type Definition struct {
	ID                 int64   `json:"id"`
	DocumentID         string  `json:"document_id"`
	Term               string  `json:"term"`
	Definition         string  `json:"definition"`
	SourceProvisionRef *string `json:"source_provision_ref,omitempty"`
}
