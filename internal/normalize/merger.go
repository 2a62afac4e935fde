package normalize

import "github.com/aha-designer/backend/internal/domain"

// Merger folds extracted parts into one record per identity key
// (manufacturer + MPN, case-insensitive). It is not safe for concurrent use;
// each search owns its own Merger.
type Merger struct {
	parts map[string]*domain.PartHit
	order []string
}

// NewMerger creates an empty merger
func NewMerger() *Merger {
	return &Merger{parts: make(map[string]*domain.PartHit)}
}

// Add inserts part, or merges it into the record already holding its key.
// Merging appends offers whose offer key is new and backfills a missing
// description or lifecycle status; values already present are kept.
func (m *Merger) Add(part domain.PartHit) {
	key := part.Key()

	existing, ok := m.parts[key]
	if !ok {
		stored := part
		stored.Offers = append([]domain.Offer{}, part.Offers...)
		m.parts[key] = &stored
		m.order = append(m.order, key)
		return
	}

	mergeOffers(existing, part.Offers)
	if existing.Description == nil {
		existing.Description = part.Description
	}
	if existing.LifecycleStatus == nil {
		existing.LifecycleStatus = part.LifecycleStatus
	}
}

// Len returns the number of distinct parts
func (m *Merger) Len() int {
	return len(m.order)
}

// Parts returns the merged parts in first-seen order
func (m *Merger) Parts() []domain.PartHit {
	out := make([]domain.PartHit, 0, len(m.order))
	for _, key := range m.order {
		out = append(out, *m.parts[key])
	}
	return out
}

func mergeOffers(existing *domain.PartHit, incoming []domain.Offer) {
	known := make(map[string]struct{}, len(existing.Offers)+len(incoming))
	for i := range existing.Offers {
		known[existing.Offers[i].Key()] = struct{}{}
	}

	for _, offer := range incoming {
		key := offer.Key()
		if _, dup := known[key]; dup {
			continue
		}
		existing.Offers = append(existing.Offers, offer)
		known[key] = struct{}{}
	}

	sortOffers(existing.Offers)
}
