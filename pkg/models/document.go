package models

import "strings"

// DocumentStatus is the legislative lifecycle state of a statute.
// The values form a total order over the lifecycle: a document is
// announced, enters force, may be amended, and may be repealed.
type DocumentStatus string

const (
	StatusNotYetInForce DocumentStatus = "not_yet_in_force"
	StatusInForce       DocumentStatus = "in_force"
	StatusAmended       DocumentStatus = "amended"
	StatusRepealed      DocumentStatus = "repealed"
)

// statusOrder maps each status to its position in the lifecycle.
var statusOrder = map[DocumentStatus]int{
	StatusNotYetInForce: 0,
	StatusInForce:       1,
	StatusAmended:       2,
	StatusRepealed:      3,
}

// IsValid reports whether s is one of the known lifecycle states.
func (s DocumentStatus) IsValid() bool {
	_, ok := statusOrder[s]
	return ok
}

// Before reports whether s precedes other in the document lifecycle.
// Unknown statuses compare as earliest.
func (s DocumentStatus) Before(other DocumentStatus) bool {
	return statusOrder[s] < statusOrder[other]
}

// LegalDocument is a Swiss federal statute or ordinance. The ID is the
// dash-normalized SR number (e.g. "sr-235-1") and is immutable once
// assigned by the ingestion pipeline.
type LegalDocument struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	TitleEN      *string        `json:"title_en,omitempty"`
	Abbreviation *string        `json:"abbreviation,omitempty"`
	Status       DocumentStatus `json:"status"`
	IssuedDate   *string        `json:"issued_date,omitempty"`
	InForceDate  *string        `json:"in_force_date,omitempty"`
	SourceURL    *string        `json:"source_url,omitempty"`
}

// SRNumber returns the dotted SR number derived from the document ID,
// e.g. "sr-235-1" -> "235.1". Returns empty string for IDs that do not
// carry the "sr-" prefix.
func (d *LegalDocument) SRNumber() string {
	num, ok := strings.CutPrefix(d.ID, "sr-")
	if !ok || num == "" {
		return ""
	}
	return strings.ReplaceAll(num, "-", ".")
}

// DisplayName returns the short name when the document has one, else
// the official title.
func (d *LegalDocument) DisplayName() string {
	if d.Abbreviation != nil && *d.Abbreviation != "" {
		return *d.Abbreviation
	}
	return d.Title
}
