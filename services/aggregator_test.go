package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"realestate-aggregator/models"
	"realestate-aggregator/utils"
)

type stubFetcher struct {
	name     string
	listings []models.RawListing
	err      error
}

func (f *stubFetcher) Name() string { return f.name }

func (f *stubFetcher) Fetch(_ context.Context, _ string) ([]models.RawListing, error) {
	return f.listings, f.err
}

type stubWriter struct {
	got []models.Listing
	err error
}

func (w *stubWriter) Write(listings []models.Listing) error {
	w.got = listings
	return w.err
}

func TestAggregatorIngestReturnsCount(t *testing.T) {
	a := NewAggregator(nil)

	if n := a.Ingest("Hipflat", []models.RawListing{{Title: "a"}, {Title: "a"}}); n != 2 {
		t.Errorf("Ingest returned %d; want 2", n)
	}
	if n := a.Ingest("Hipflat", nil); n != 0 {
		t.Errorf("Ingest(nil) returned %d; want 0", n)
	}
	if a.Len() != 2 {
		t.Errorf("Len = %d; want 2", a.Len())
	}
}

func TestAggregatorLaterIngestKeepsEarlier(t *testing.T) {
	a := NewAggregator(nil)
	a.Ingest("Hipflat", []models.RawListing{{Title: "first", URL: "u1"}})
	a.Ingest("DDProperty", []models.RawListing{{Title: "second", URL: "u1"}})

	got := a.Listings()
	if len(got) != 2 || got[0].Source != "Hipflat" || got[0].Title != "first" {
		t.Errorf("earlier ingestion altered: %+v", got)
	}
}

func TestAggregatorFirstOccurrenceWins(t *testing.T) {
	a := NewAggregator(nil)
	a.Ingest("A", []models.RawListing{{Title: "from A", URL: "https://x/1"}})
	a.Ingest("B", []models.RawListing{{Title: "from B", URL: "https://x/1"}})

	a.Deduplicate()

	got := a.Listings()
	if len(got) != 1 {
		t.Fatalf("len = %d; want 1", len(got))
	}
	if got[0].Source != "A" || got[0].Title != "from A" {
		t.Errorf("kept %s/%q; want the listing from A", got[0].Source, got[0].Title)
	}
}

func TestAggregatorScenario(t *testing.T) {
	hipflat := []models.RawListing{
		{Title: "Loft", Price: "฿2,000,000", Location: "Ari", URL: "https://hipflat/1"},
		{Title: "Studio", Price: "฿900,000", Location: "Bang Na", URL: ""},
		{Title: "Studio", Price: "฿900,000", Location: "Bang Na", URL: ""},
	}
	ddproperty := []models.RawListing{
		{Title: "Loft (mirror)", Price: "2,000,000", Location: "Ari", URL: "https://hipflat/1"},
		{Title: "House", Price: "฿5,500,000", Location: "Nonthaburi", URL: "https://ddproperty/9"},
	}

	a := NewAggregator(nil)
	a.Ingest("Hipflat", hipflat)
	a.Ingest("DDProperty", ddproperty)
	removed := a.Deduplicate()

	// keys: https://hipflat/1, Studio-฿900,000-Bang Na, https://ddproperty/9
	if a.Len() != 3 || removed != 2 {
		t.Fatalf("Len = %d, removed = %d; want 3 and 2", a.Len(), removed)
	}

	seen := make(map[string]bool)
	for _, l := range a.Listings() {
		k := IdentityKey(&l)
		if seen[k] {
			t.Errorf("duplicate identity key %q after Deduplicate", k)
		}
		seen[k] = true
		if k == "https://hipflat/1" && l.Source != "Hipflat" {
			t.Errorf("shared URL kept from %s; want Hipflat", l.Source)
		}
	}

	if again := a.Deduplicate(); again != 0 {
		t.Errorf("second Deduplicate removed %d; want 0", again)
	}
}

func TestAggregatorIngestFromFailureLeavesStore(t *testing.T) {
	a := NewAggregator(nil)
	a.Ingest("Hipflat", []models.RawListing{{URL: "u1"}})
	version := a.Version()

	boom := errors.New("navigation timeout")
	f := &stubFetcher{
		name:     "DDProperty",
		listings: []models.RawListing{{URL: "partial"}},
		err:      boom,
	}

	n, err := a.IngestFrom(context.Background(), f, "https://example.com")
	if !errors.Is(err, boom) {
		t.Fatalf("IngestFrom error = %v; want %v", err, boom)
	}
	if !strings.Contains(err.Error(), "DDProperty") {
		t.Errorf("error %q does not name the source", err)
	}
	if n != 0 || a.Len() != 1 || a.Version() != version {
		t.Errorf("failed fetch changed the store: n=%d len=%d version=%d", n, a.Len(), a.Version())
	}
}

func TestAggregatorIngestFromSuccess(t *testing.T) {
	a := NewAggregator(nil)
	f := &stubFetcher{name: "Hipflat", listings: []models.RawListing{{URL: "u1"}, {URL: "u2"}}}

	n, err := a.IngestFrom(context.Background(), f, "https://example.com")
	if err != nil {
		t.Fatalf("IngestFrom: %v", err)
	}
	if n != 2 {
		t.Errorf("IngestFrom returned %d; want 2", n)
	}
	for _, l := range a.Listings() {
		if l.Source != "Hipflat" {
			t.Errorf("Source = %q; want Hipflat", l.Source)
		}
	}
}

func TestAggregatorFiltersDoNotDeduplicate(t *testing.T) {
	a := NewAggregator(nil)
	a.Ingest("A", []models.RawListing{
		{URL: "u1", Location: "Bangkok", Price: "100"},
		{URL: "u1", Location: "Bangkok", Price: "100"},
	})

	if got := a.FilterByLocation("bangkok"); len(got) != 2 {
		t.Errorf("FilterByLocation returned %d; want 2 (no implicit dedup)", len(got))
	}
	if got := a.FilterByPrice(50, 150); len(got) != 2 {
		t.Errorf("FilterByPrice returned %d; want 2", len(got))
	}
	if got := a.FilterByPropertyType(""); len(got) != 2 {
		t.Errorf("FilterByPropertyType returned %d; want 2", len(got))
	}
	if a.Len() != 2 {
		t.Errorf("filtering changed the store to %d listings", a.Len())
	}
}

func TestAggregatorExportDeduplicatesFirst(t *testing.T) {
	a := NewAggregator(nil)
	a.Ingest("A", []models.RawListing{{URL: "u1"}, {URL: "u1"}, {URL: "u2"}})

	w := &stubWriter{}
	if err := a.Export(w); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(w.got) != 2 {
		t.Errorf("writer got %d listings; want 2", len(w.got))
	}
	if a.Len() != 2 {
		t.Errorf("store has %d listings after export; want 2", a.Len())
	}
}

func TestAggregatorExportWriteFailure(t *testing.T) {
	a := NewAggregator(nil)
	a.Ingest("A", []models.RawListing{{URL: "u1"}})

	boom := errors.New("disk full")
	if err := a.Export(&stubWriter{err: boom}); !errors.Is(err, boom) {
		t.Fatalf("Export error = %v; want %v", err, boom)
	}
	if a.Len() != 1 {
		t.Errorf("failed export changed the store to %d listings", a.Len())
	}
}

func TestAggregatorEmitsStageEvents(t *testing.T) {
	var events []Event
	a := NewAggregator(func(e Event) { events = append(events, e) })

	a.Ingest("Hipflat", []models.RawListing{{URL: "u1"}, {URL: "u1"}})
	_ = a.Export(&stubWriter{})

	want := []struct {
		stage Stage
		phase Phase
		count int
	}{
		{StageIngest, PhaseStart, 2},
		{StageIngest, PhaseEnd, 2},
		{StageDedup, PhaseStart, 2},
		{StageDedup, PhaseEnd, 1},
		{StageExport, PhaseStart, 1},
		{StageExport, PhaseEnd, 1},
	}
	if len(events) != len(want) {
		t.Fatalf("got %d events; want %d: %+v", len(events), len(want), events)
	}
	for i, w := range want {
		e := events[i]
		if e.Stage != w.stage || e.Phase != w.phase || e.Count != w.count {
			t.Errorf("event %d = %s/%s/%d; want %s/%s/%d", i, e.Stage, e.Phase, e.Count, w.stage, w.phase, w.count)
		}
		if e.PipelineID != a.PipelineID() {
			t.Errorf("event %d PipelineID = %q; want %q", i, e.PipelineID, a.PipelineID())
		}
	}
}

func TestLogObserver(t *testing.T) {
	var buf bytes.Buffer
	obs := LogObserver(utils.NewLoggerTo(&buf))

	obs(Event{Stage: StageIngest, Phase: PhaseEnd, Source: "Hipflat", Count: 3})
	obs(Event{Stage: StageExport, Phase: PhaseEnd, Err: errors.New("disk full")})

	out := buf.String()
	if !strings.Contains(out, "[ingest:Hipflat] done: 3 listings") {
		t.Errorf("missing ingest line in %q", out)
	}
	if !strings.Contains(out, "disk full") {
		t.Errorf("missing export error in %q", out)
	}
}
