package models

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// ReviewState classifies how an extraction sidecar should be handled.
// It is derived from match confidence and is never set independently.
type ReviewState string

const (
	// ReviewAutoAccepted means every entity match cleared the auto-accept gate.
	ReviewAutoAccepted ReviewState = "AUTO_ACCEPTED"
	// ReviewNeedsReview means at least one match needs human confirmation.
	ReviewNeedsReview ReviewState = "NEEDS_REVIEW"
	// ReviewUnassigned means no match (or no usable match) exists.
	ReviewUnassigned ReviewState = "UNASSIGNED"
)

// Valid reports whether the review state is one of the known values.
func (s ReviewState) Valid() bool {
	return s == ReviewAutoAccepted || s == ReviewNeedsReview || s == ReviewUnassigned
}

// DocMeta describes the source document of an extraction sidecar.
type DocMeta struct {
	DocumentType string     `json:"document_type"`
	Filename     string     `json:"filename,omitempty"`
	IssuedAt     *time.Time `json:"issued_at,omitempty"`
}

// ExtractedField is one data point pulled out of a document, with the
// extractor's confidence and the text span it was read from.
type ExtractedField struct {
	Key          string          `json:"dp_key"`
	Value        json.RawMessage `json:"value"`
	Confidence   float64         `json:"confidence"`
	EvidenceSpan string          `json:"evidence_span,omitempty"`
}

// EntityMatch links a document to one platform entity with a confidence.
type EntityMatch struct {
	ID         string  `json:"id"`
	Confidence float64 `json:"confidence"`
}

// EntityMatches holds the optional entity links of a sidecar. Absent
// pointers mean the extractor proposed no match for that entity kind.
type EntityMatches struct {
	Property *EntityMatch `json:"property,omitempty"`
	Unit     *EntityMatch `json:"unit,omitempty"`
	Tenancy  *EntityMatch `json:"tenancy,omitempty"`
	Loan     *EntityMatch `json:"loan,omitempty"`
}

// PostingSuggestion is a proposed ledger posting derived from the document.
type PostingSuggestion struct {
	AccountCode string  `json:"account_code"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description,omitempty"`
}

// DocumentSidecar is the immutable result of one extraction run over a
// document. A re-extraction produces a new sidecar version, never an update.
type DocumentSidecar struct {
	DocMeta            DocMeta             `json:"doc_meta"`
	ExtractedFields    []ExtractedField    `json:"extracted_fields"`
	EntityMatches      EntityMatches       `json:"entity_matches"`
	PostingSuggestions []PostingSuggestion `json:"posting_suggestions,omitempty"`
	ReviewState        ReviewState         `json:"review_state,omitempty"`
	SchemaVersion      int                 `json:"schema_version"`
}

// ParseSidecar decodes and validates a sidecar payload. Malformed payloads
// are rejected at this boundary rather than coerced into partial values.
// Any review state present in the payload is ignored; the caller derives it.
func ParseSidecar(data []byte) (*DocumentSidecar, error) {
	var sc DocumentSidecar
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to decode sidecar payload: %w", err)
	}
	sc.ReviewState = ""
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks structural invariants of the sidecar.
func (sc *DocumentSidecar) Validate() error {
	if sc.DocMeta.DocumentType == "" {
		return fmt.Errorf("doc_meta.document_type is required")
	}
	if sc.SchemaVersion < 1 {
		return fmt.Errorf("schema_version must be at least 1, got %d", sc.SchemaVersion)
	}
	for i, f := range sc.ExtractedFields {
		if f.Key == "" {
			return fmt.Errorf("extracted_fields[%d]: dp_key is required", i)
		}
		if !inUnitInterval(f.Confidence) {
			return fmt.Errorf("extracted_fields[%d] (%s): confidence %v outside [0,1]", i, f.Key, f.Confidence)
		}
	}
	for kind, m := range map[string]*EntityMatch{
		"property": sc.EntityMatches.Property,
		"unit":     sc.EntityMatches.Unit,
		"tenancy":  sc.EntityMatches.Tenancy,
		"loan":     sc.EntityMatches.Loan,
	} {
		if m == nil {
			continue
		}
		if m.ID == "" {
			return fmt.Errorf("entity_matches.%s: id is required", kind)
		}
		if !inUnitInterval(m.Confidence) {
			return fmt.Errorf("entity_matches.%s: confidence %v outside [0,1]", kind, m.Confidence)
		}
	}
	return nil
}

func inUnitInterval(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 1
}
