package normalize

import "github.com/aha-designer/backend/internal/jsontree"

// ScanCandidates walks the whole response tree in pre-order and returns a
// deep copy of every object that looks like a part record. Children of a
// collected object are scanned too, so nested offers that happen to carry
// part-like keys are returned as separate candidates.
func ScanCandidates(root jsontree.Value) []jsontree.Value {
	candidates := []jsontree.Value{}
	collectCandidates(root, &candidates)
	return candidates
}

func collectCandidates(v jsontree.Value, out *[]jsontree.Value) {
	switch v.Kind() {
	case jsontree.Object:
		if looksLikePart(v) {
			*out = append(*out, v.Clone())
		}
		for _, m := range v.Members() {
			collectCandidates(m.Value, out)
		}
	case jsontree.Array:
		for _, item := range v.Elements() {
			collectCandidates(item, out)
		}
	}
}

// looksLikePart requires an MPN-like key and at least one key that places
// the object in a part context
func looksLikePart(obj jsontree.Value) bool {
	return jsontree.Has(obj, mpnKeys...) && jsontree.Has(obj, partContextKeys...)
}
