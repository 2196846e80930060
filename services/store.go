package services

import "realestate-aggregator/models"

// KeyFunc derives the identity used to collapse duplicate listings.
type KeyFunc func(*models.Listing) string

// IdentityKey is the listing URL, or title, price text and location joined
// by "-" when the URL is empty.
func IdentityKey(l *models.Listing) string {
	if l.URL != "" {
		return l.URL
	}
	return l.Title + "-" + l.Price + "-" + l.Location
}

// Store is the ordered accumulation of normalised listings. It is only ever
// mutated by Append and Compact, and each mutation bumps Version.
//
// Store has no internal locking; callers serialise access.
type Store struct {
	listings []models.Listing
	version  int
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{listings: make([]models.Listing, 0)}
}

// Append adds listings to the end of the store in the order given.
func (s *Store) Append(listings ...models.Listing) {
	if len(listings) == 0 {
		return
	}
	s.listings = append(s.listings, listings...)
	s.version++
}

// Compact keeps the first listing for every key and drops the rest, in place.
// It returns the number of listings removed.
func (s *Store) Compact(key KeyFunc) int {
	seen := make(map[string]struct{}, len(s.listings))
	kept := s.listings[:0]

	for i := range s.listings {
		k := key(&s.listings[i])
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		kept = append(kept, s.listings[i])
	}

	removed := len(s.listings) - len(kept)
	// clear the tail so dropped listings can be collected
	for i := len(kept); i < len(s.listings); i++ {
		s.listings[i] = models.Listing{}
	}
	s.listings = kept

	if removed > 0 {
		s.version++
	}
	return removed
}

// Len returns the number of listings currently held.
func (s *Store) Len() int {
	return len(s.listings)
}

// Version counts the mutations applied so far.
func (s *Store) Version() int {
	return s.version
}

// Snapshot returns deep copies of the listings in store order.
func (s *Store) Snapshot() []models.Listing {
	out := make([]models.Listing, len(s.listings))
	for i := range s.listings {
		out[i] = s.listings[i].Clone()
	}
	return out
}

// each calls fn for every listing without copying. fn must not retain l.
func (s *Store) each(fn func(l *models.Listing)) {
	for i := range s.listings {
		fn(&s.listings[i])
	}
}
