package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"coincorr/internal/application/port"
	"coincorr/internal/domain"
)

type fakeStore struct {
	entries map[domain.SourceID][]byte
}

func newFakeStore() *fakeStore {
	return &fakeStore{entries: make(map[domain.SourceID][]byte)}
}

func (s *fakeStore) Get(_ context.Context, id domain.SourceID) ([]byte, error) {
	b, ok := s.entries[id]
	if !ok {
		return nil, port.ErrCacheMiss
	}
	return b, nil
}

func (s *fakeStore) Put(_ context.Context, id domain.SourceID, blob []byte) error {
	s.entries[id] = blob
	return nil
}

func (s *fakeStore) Close() error { return nil }

type fakeSource struct {
	frame *domain.Frame
	err   error
	calls int
}

func (s *fakeSource) Name() string { return "fake" }

func (s *fakeSource) Fetch(_ context.Context, _ port.SourceRequest) (*domain.Frame, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.frame, nil
}

func testFrame(t *testing.T) *domain.Frame {
	t.Helper()
	f, err := domain.NewFrame(
		[]time.Time{day(1), day(2)},
		[]string{"Weighted Price"},
		[][]domain.Value{{domain.Float(450)}, {domain.Float(455)}},
	)
	if err != nil {
		t.Fatalf("NewFrame failed: %v", err)
	}
	return f
}

func TestFetcherCachesFirstFetch(t *testing.T) {
	store := newFakeStore()
	src := &fakeSource{frame: testFrame(t)}
	f := NewFetcher(store, false)
	ctx := context.Background()
	req := port.SourceRequest{Pair: "BCHARTS/KRAKENUSD"}

	first, err := f.Fetch(ctx, src, "BCHARTS-KRAKENUSD", req)
	if err != nil {
		t.Fatalf("first Fetch failed: %v", err)
	}
	second, err := f.Fetch(ctx, src, "BCHARTS-KRAKENUSD", req)
	if err != nil {
		t.Fatalf("second Fetch failed: %v", err)
	}

	if src.calls != 1 {
		t.Errorf("expected 1 remote call, got %d", src.calls)
	}
	if first.Len() != second.Len() {
		t.Errorf("cached frame differs: %d vs %d rows", first.Len(), second.Len())
	}
}

func TestFetcherSourceUnavailable(t *testing.T) {
	store := newFakeStore()
	src := &fakeSource{err: errors.New("connection refused")}
	f := NewFetcher(store, false)

	_, err := f.Fetch(context.Background(), src, "BCHARTS-KRAKENUSD", port.SourceRequest{})
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
	if len(store.entries) != 0 {
		t.Errorf("failed fetch must not write a cache entry")
	}
}

func TestFetcherCacheHitSkipsFailingSource(t *testing.T) {
	store := newFakeStore()
	blob, err := testFrame(t).Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	store.entries["BCHARTS-KRAKENUSD"] = blob

	src := &fakeSource{err: errors.New("rate limited")}
	f := NewFetcher(store, false)

	fr, err := f.Fetch(context.Background(), src, "BCHARTS-KRAKENUSD", port.SourceRequest{})
	if err != nil {
		t.Fatalf("Fetch failed despite cache: %v", err)
	}
	if src.calls != 0 {
		t.Errorf("cache hit must not contact the source, got %d calls", src.calls)
	}
	if fr.Len() != 2 {
		t.Errorf("expected 2 rows, got %d", fr.Len())
	}
}

func TestFetcherCorruptEntryRefetches(t *testing.T) {
	store := newFakeStore()
	store.entries["BTC_ETH"] = []byte("not json{")

	src := &fakeSource{frame: testFrame(t)}
	f := NewFetcher(store, false)

	fr, err := f.Fetch(context.Background(), src, "BTC_ETH", port.SourceRequest{})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if src.calls != 1 {
		t.Errorf("corrupt entry must trigger a re-fetch, got %d calls", src.calls)
	}
	if fr.Len() != 2 {
		t.Errorf("expected 2 rows, got %d", fr.Len())
	}

	// entry is repaired
	if _, derr := domain.DecodeFrame(store.entries["BTC_ETH"]); derr != nil {
		t.Errorf("cache entry not overwritten with a valid frame: %v", derr)
	}
}

func TestFetcherRefreshOverwrites(t *testing.T) {
	store := newFakeStore()
	stale, err := domain.NewFrame(
		[]time.Time{day(1)},
		[]string{"Weighted Price"},
		[][]domain.Value{{domain.Float(1)}},
	)
	if err != nil {
		t.Fatalf("NewFrame failed: %v", err)
	}
	blob, err := stale.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	store.entries["BTC_ETH"] = blob

	src := &fakeSource{frame: testFrame(t)}
	f := NewFetcher(store, true)

	fr, err := f.Fetch(context.Background(), src, "BTC_ETH", port.SourceRequest{})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if src.calls != 1 {
		t.Errorf("refresh must contact the source, got %d calls", src.calls)
	}
	if fr.Len() != 2 {
		t.Errorf("expected fresh frame with 2 rows, got %d", fr.Len())
	}
	refreshed, err := domain.DecodeFrame(store.entries["BTC_ETH"])
	if err != nil {
		t.Fatalf("DecodeFrame failed: %v", err)
	}
	if refreshed.Len() != 2 {
		t.Errorf("cache entry not overwritten, still %d rows", refreshed.Len())
	}
}
