package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSidecar_Valid(t *testing.T) {
	payload := []byte(`{
		"doc_meta": {"document_type": "hausgeldabrechnung", "filename": "abrechnung-2024.pdf"},
		"extracted_fields": [
			{"dp_key": "total_amount", "value": 3840.50, "confidence": 0.97, "evidence_span": "Gesamtbetrag 3.840,50 EUR"},
			{"dp_key": "billing_year", "value": "2024", "confidence": 0.99}
		],
		"entity_matches": {
			"property": {"id": "c7a9e8d0-0000-0000-0000-000000000001", "confidence": 0.93},
			"unit": {"id": "c7a9e8d0-0000-0000-0000-000000000002", "confidence": 0.88}
		},
		"posting_suggestions": [{"account_code": "4100", "amount": 3840.50}],
		"review_state": "AUTO_ACCEPTED",
		"schema_version": 1
	}`)

	sc, err := ParseSidecar(payload)
	require.NoError(t, err)

	assert.Equal(t, "hausgeldabrechnung", sc.DocMeta.DocumentType)
	assert.Len(t, sc.ExtractedFields, 2)
	assert.Equal(t, "total_amount", sc.ExtractedFields[0].Key)
	require.NotNil(t, sc.EntityMatches.Unit)
	assert.Equal(t, 0.88, sc.EntityMatches.Unit.Confidence)
	// Review state in the payload is ignored; it is always derived.
	assert.Empty(t, sc.ReviewState)
}

func TestParseSidecar_RejectsMalformedJSON(t *testing.T) {
	_, err := ParseSidecar([]byte(`{"doc_meta":`))
	assert.Error(t, err)
}

func TestParseSidecar_RejectsMissingDocumentType(t *testing.T) {
	_, err := ParseSidecar([]byte(`{"doc_meta": {}, "schema_version": 1}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "document_type")
}

func TestParseSidecar_RejectsMissingSchemaVersion(t *testing.T) {
	_, err := ParseSidecar([]byte(`{"doc_meta": {"document_type": "invoice"}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema_version")
}

func TestParseSidecar_RejectsFieldConfidenceOutOfRange(t *testing.T) {
	_, err := ParseSidecar([]byte(`{
		"doc_meta": {"document_type": "invoice"},
		"extracted_fields": [{"dp_key": "amount", "value": 12, "confidence": 1.2}],
		"schema_version": 1
	}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "confidence")
}

func TestParseSidecar_RejectsMatchWithoutID(t *testing.T) {
	_, err := ParseSidecar([]byte(`{
		"doc_meta": {"document_type": "invoice"},
		"entity_matches": {"loan": {"confidence": 0.8}},
		"schema_version": 1
	}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id is required")
}

func TestReviewState_Valid(t *testing.T) {
	assert.True(t, ReviewAutoAccepted.Valid())
	assert.True(t, ReviewNeedsReview.Valid())
	assert.True(t, ReviewUnassigned.Valid())
	assert.False(t, ReviewState("APPROVED").Valid())
}

func TestAssessmentType_Valid(t *testing.T) {
	assert.True(t, AssessmentSingle.Valid())
	assert.True(t, AssessmentSplitting.Valid())
	assert.False(t, AssessmentType("JOINT").Valid())
}
