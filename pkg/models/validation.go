package models

// ValidationResult is the outcome of checking a citation against the
// corpus. Absence (unknown document, missing provision) is expressed
// through Valid and Warnings, never through errors; partial resolution
// keeps whatever was found.
type ValidationResult struct {
	Valid         bool            `json:"valid"`
	Citation      string          `json:"citation"`
	Normalized    *string         `json:"normalized,omitempty"`
	DocumentID    *string         `json:"document_id,omitempty"`
	DocumentTitle *string         `json:"document_title,omitempty"`
	ProvisionRef  *string         `json:"provision_ref,omitempty"`
	Status        *DocumentStatus `json:"status,omitempty"`
	Warnings      []string        `json:"warnings"`
}

// CurrencyResult reports the lifecycle state and dates of a document,
// with advisory warnings for anything that is not plainly in force.
type CurrencyResult struct {
	DocumentID     string         `json:"document_id"`
	DocumentTitle  string         `json:"document_title"`
	Status         DocumentStatus `json:"status"`
	IssuedDate     *string        `json:"issued_date,omitempty"`
	InForceDate    *string        `json:"in_force_date,omitempty"`
	ProvisionRef   *string        `json:"provision_ref,omitempty"`
	ProvisionFound *bool          `json:"provision_found,omitempty"`
	Warnings       []string       `json:"warnings"`
}

// ComplianceResult classifies a document's (or provision's) alignment
// with its EU basis.
type ComplianceResult struct {
	DocumentID   string          `json:"document_id"`
	ProvisionRef *string         `json:"provision_ref,omitempty"`
	Level        ComplianceLevel `json:"level"`
	References   []*EUReference  `json:"references"`
	Warnings     []string        `json:"warnings"`
}
