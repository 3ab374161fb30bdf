package models

import "fmt"

// EUDocumentType distinguishes EU directives from regulations.
type EUDocumentType string

const (
	EUTypeDirective  EUDocumentType = "directive"
	EUTypeRegulation EUDocumentType = "regulation"
)

// EUDocument is an EU instrument referenced by Swiss legislation. The
// ID is the composite "<type>-<year>-<number>", e.g.
// "regulation-2016-679".
type EUDocument struct {
	ID     string         `json:"id"`
	Title  string         `json:"title"`
	Type   EUDocumentType `json:"type"`
	Year   int            `json:"year"`
	Number string         `json:"number"`
}

// CelexStyle returns the human-readable citation form of the
// instrument, e.g. "Regulation (EU) 2016/679".
func (d *EUDocument) CelexStyle() string {
	switch d.Type {
	case EUTypeRegulation:
		return fmt.Sprintf("Regulation (EU) %d/%s", d.Year, d.Number)
	case EUTypeDirective:
		return fmt.Sprintf("Directive %d/%s/EC", d.Year, d.Number)
	}
	return d.ID
}

// EUReferenceType classifies how a Swiss document relates to an EU
// instrument. An empty type means the relationship was scraped but not
// classified.
type EUReferenceType string

const (
	EURefImplements          EUReferenceType = "implements"
	EURefAlignsWith          EUReferenceType = "aligns_with"
	EURefPartiallyImplements EUReferenceType = "partially_implements"
	EURefRelated             EUReferenceType = "related"
)

// IsDefinite reports whether the reference type makes a concrete
// claim about implementation, as opposed to a vague or missing
// classification.
func (t EUReferenceType) IsDefinite() bool {
	switch t {
	case EURefImplements, EURefAlignsWith, EURefPartiallyImplements:
		return true
	}
	return false
}

// EUReference is an edge between a Swiss document (optionally pinned
// to one of its provisions) and an EU instrument.
type EUReference struct {
	ID              int64           `json:"id"`
	SwissDocumentID string          `json:"swiss_document_id"`
	ProvisionRef    *string         `json:"provision_ref,omitempty"`
	EUDocumentID    string          `json:"eu_document_id"`
	ReferenceType   EUReferenceType `json:"reference_type"`
	Detail          *string         `json:"detail,omitempty"`
	EUDocument      *EUDocument     `json:"eu_document,omitempty"`
}

// ComplianceLevel classifies how completely a Swiss document tracks
// its EU basis.
type ComplianceLevel string

const (
	ComplianceCompliant     ComplianceLevel = "compliant"
	CompliancePartial       ComplianceLevel = "partial"
	ComplianceUnclear       ComplianceLevel = "unclear"
	ComplianceNotApplicable ComplianceLevel = "not_applicable"
)
