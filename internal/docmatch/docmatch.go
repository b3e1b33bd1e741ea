// Package docmatch classifies document-to-entity match confidence against
// the fixed review gates. Matching itself happens in the external extraction
// pipeline; this package only gates its confidence output.
package docmatch

import (
	"errors"
	"fmt"
	"math"

	"github.com/thomasstelzl1981/town-square-platform-sub021/internal/models"
)

// Confidence gates, inclusive lower bounds.
const (
	// AutoAcceptThreshold: at or above, a match needs no human confirmation.
	AutoAcceptThreshold = 0.90
	// ReviewThreshold: at or above (but below auto-accept), a match goes to
	// the review queue.
	ReviewThreshold = 0.70
)

// ErrConfidenceOutOfRange is returned for confidence values outside [0,1]
// or NaN. Clamping would let a garbage confidence slip through the
// auto-accept gate, so out-of-range input is rejected.
var ErrConfidenceOutOfRange = errors.New("confidence outside [0,1]")

// Classify maps a match confidence to a review state.
func Classify(confidence float64) (models.ReviewState, error) {
	if math.IsNaN(confidence) || confidence < 0 || confidence > 1 {
		return "", fmt.Errorf("%w: got %v", ErrConfidenceOutOfRange, confidence)
	}
	switch {
	case confidence >= AutoAcceptThreshold:
		return models.ReviewAutoAccepted, nil
	case confidence >= ReviewThreshold:
		return models.ReviewNeedsReview, nil
	default:
		return models.ReviewUnassigned, nil
	}
}

// DeriveReviewState derives a sidecar's review state from its entity
// matches. The weakest present match decides: a sidecar is only
// auto-acceptable when every entity link clears the gate. A sidecar without
// any matches is unassigned.
func DeriveReviewState(matches models.EntityMatches) (models.ReviewState, error) {
	lowest := math.Inf(1)
	for _, m := range []*models.EntityMatch{matches.Property, matches.Unit, matches.Tenancy, matches.Loan} {
		if m != nil && m.Confidence < lowest {
			lowest = m.Confidence
		}
	}
	if math.IsInf(lowest, 1) {
		return models.ReviewUnassigned, nil
	}
	return Classify(lowest)
}
