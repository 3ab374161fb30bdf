package models

// SearchResult is one ranked full-text hit over provision text, with
// enough parent-document context to cite it.
type SearchResult struct {
	DocumentID     string         `json:"document_id"`
	DocumentTitle  string         `json:"document_title"`
	Abbreviation   *string        `json:"abbreviation,omitempty"`
	Status         DocumentStatus `json:"status"`
	ProvisionRef   string         `json:"provision_ref"`
	ProvisionTitle *string        `json:"provision_title,omitempty"`
	Section        *string        `json:"section,omitempty"`
	Snippet        string         `json:"snippet"`
	Rank           float64        `json:"rank"`
}

// StanceGroup is the per-document grouping produced when a topic query
// is fanned out across the corpus: one statute, its best-ranked
// provisions, ordered so a caller gets breadth across statutes rather
// than depth within one.
type StanceGroup struct {
	DocumentID    string         `json:"document_id"`
	DocumentTitle string         `json:"document_title"`
	Abbreviation  *string        `json:"abbreviation,omitempty"`
	Status        DocumentStatus `json:"status"`
	BestRank      float64        `json:"best_rank"`
	Provisions    []SearchResult `json:"provisions"`
}
