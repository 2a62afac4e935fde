// Package normalize turns an arbitrarily shaped parts-search response into a
// ranked list of canonical parts.
//
// The pipeline is scan → extract → merge → rank. Every stage is pure and
// works on its own copy of the data, so concurrent calls need no locking.
// Objects that only resemble a part, and offers with nothing actionable, are
// dropped silently; only an unparseable body is an error.
package normalize

import (
	"fmt"

	"github.com/aha-designer/backend/internal/domain"
	"github.com/aha-designer/backend/internal/jsontree"
)

// Run parses a response body and returns at most ClampResultCap(maxResults)
// ranked parts. A body that is not valid JSON yields ErrMalformedResponse.
func Run(body []byte, maxResults *int) ([]domain.PartHit, error) {
	root, err := jsontree.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	return Rank(Extract(root), ClampResultCap(maxResults)), nil
}

// Extract returns every distinct part found in root, fully ranked and
// without a result cap
func Extract(root jsontree.Value) []domain.PartHit {
	merger := NewMerger()
	for _, candidate := range ScanCandidates(root) {
		if part, ok := ExtractPart(candidate); ok {
			merger.Add(part)
		}
	}

	parts := merger.Parts()
	sortParts(parts)
	return parts
}

// APIErrorMessage pulls a human readable message out of an error body such
// as {"error": "rate limited"}. It reports false for non-JSON bodies and
// bodies without a message/error/detail/details member.
func APIErrorMessage(body []byte) (string, bool) {
	root, err := jsontree.Parse(body)
	if err != nil || !root.IsObject() {
		return "", false
	}
	v, ok := jsontree.Lookup(root, errorMessageKeys...)
	if !ok {
		return "", false
	}
	return jsontree.AsString(v)
}
