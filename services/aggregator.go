package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"realestate-aggregator/models"
)

// Fetcher produces the complete set of raw listings for one source target.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context, target string) ([]models.RawListing, error)
}

// ListingWriter persists a set of listings.
type ListingWriter interface {
	Write(listings []models.Listing) error
}

// Aggregator owns one Store and runs ingestion, deduplication, queries and
// export against it. It is not safe for concurrent use.
type Aggregator struct {
	id       string
	store    *Store
	observer Observer
}

// NewAggregator creates an Aggregator with an empty store. A nil observer
// discards events.
func NewAggregator(observer Observer) *Aggregator {
	if observer == nil {
		observer = func(Event) {}
	}
	return &Aggregator{
		id:       uuid.NewString(),
		store:    NewStore(),
		observer: observer,
	}
}

// PipelineID identifies this aggregator in emitted events.
func (a *Aggregator) PipelineID() string {
	return a.id
}

// Ingest normalises raws under source and appends them in order. It always
// returns len(raws).
func (a *Aggregator) Ingest(source string, raws []models.RawListing) int {
	a.emit(StageIngest, PhaseStart, source, len(raws), nil)

	normalized := make([]models.Listing, 0, len(raws))
	for _, r := range raws {
		normalized = append(normalized, Normalize(r, source))
	}
	a.store.Append(normalized...)

	a.emit(StageIngest, PhaseEnd, source, len(normalized), nil)
	return len(normalized)
}

// IngestFrom fetches target through f and ingests the result under f.Name().
// If the fetch fails nothing is appended.
func (a *Aggregator) IngestFrom(ctx context.Context, f Fetcher, target string) (int, error) {
	raws, err := f.Fetch(ctx, target)
	if err != nil {
		err = fmt.Errorf("ingest %s: %w", f.Name(), err)
		a.emit(StageIngest, PhaseEnd, f.Name(), 0, err)
		return 0, err
	}
	return a.Ingest(f.Name(), raws), nil
}

// Deduplicate collapses the store to the first listing per identity key and
// returns how many were dropped. Running it again is a no-op.
func (a *Aggregator) Deduplicate() int {
	a.emit(StageDedup, PhaseStart, "", a.store.Len(), nil)
	removed := a.store.Compact(IdentityKey)
	a.emit(StageDedup, PhaseEnd, "", a.store.Len(), nil)
	return removed
}

// Export deduplicates the store, then hands the result to w. The store stays
// deduplicated even if w fails.
func (a *Aggregator) Export(w ListingWriter) error {
	a.Deduplicate()

	listings := a.store.Snapshot()
	a.emit(StageExport, PhaseStart, "", len(listings), nil)
	if err := w.Write(listings); err != nil {
		a.emit(StageExport, PhaseEnd, "", 0, err)
		return err
	}
	a.emit(StageExport, PhaseEnd, "", len(listings), nil)
	return nil
}

// Listings returns a copy of the store contents.
func (a *Aggregator) Listings() []models.Listing {
	return a.store.Snapshot()
}

// Len returns the number of listings in the store.
func (a *Aggregator) Len() int {
	return a.store.Len()
}

// Version returns the store mutation counter.
func (a *Aggregator) Version() int {
	return a.store.Version()
}

// Query returns copies of the stored listings matching every predicate. It
// does not deduplicate first.
func (a *Aggregator) Query(preds ...Predicate) []models.Listing {
	result := make([]models.Listing, 0)
	a.store.each(func(l *models.Listing) {
		if matchAll(l, preds) {
			result = append(result, l.Clone())
		}
	})
	return result
}

func (a *Aggregator) FilterByPrice(min, max int) []models.Listing {
	return a.Query(ByPrice(min, max))
}

func (a *Aggregator) FilterByLocation(sub string) []models.Listing {
	return a.Query(ByLocation(sub))
}

func (a *Aggregator) FilterByPropertyType(sub string) []models.Listing {
	return a.Query(ByPropertyType(sub))
}

func (a *Aggregator) emit(stage Stage, phase Phase, source string, count int, err error) {
	a.observer(Event{
		PipelineID: a.id,
		Stage:      stage,
		Phase:      phase,
		Source:     source,
		Count:      count,
		Err:        err,
	})
}
