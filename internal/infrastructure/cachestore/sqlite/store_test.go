package sqlite

import (
	"context"
	"errors"
	"os"
	"testing"

	"coincorr/internal/application/port"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	dbPath := "test.db"
	defer os.Remove(dbPath)

	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.Put(ctx, "BCHARTS-KRAKENUSD", []byte(`{"columns":["Weighted Price"]}`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	blob, err := store.Get(ctx, "BCHARTS-KRAKENUSD")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(blob) != `{"columns":["Weighted Price"]}` {
		t.Errorf("unexpected blob: %s", blob)
	}
}

func TestSQLiteStoreMiss(t *testing.T) {
	dbPath := "test_miss.db"
	defer os.Remove(dbPath)

	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer store.Close()

	_, err = store.Get(context.Background(), "BTC_XMR")
	if !errors.Is(err, port.ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss, got %v", err)
	}
}

func TestSQLiteStoreOverwrite(t *testing.T) {
	dbPath := "test_overwrite.db"
	defer os.Remove(dbPath)

	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	store.Put(ctx, "BTC_ETH", []byte("old"))
	store.Put(ctx, "BTC_ETH", []byte("new"))

	blob, err := store.Get(ctx, "BTC_ETH")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(blob) != "new" {
		t.Errorf("expected overwrite, got %s", blob)
	}
}
