package store

import (
	"context"
	"testing"
	"time"

	"github.com/caseworks/intake/internal/schema"
)

func newNATSStore(t *testing.T) *NATSStore {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s, err := NewNATSStore(ctx, t.TempDir())
	if err != nil {
		t.Fatalf("Failed to start NATS store: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	})
	return s
}

func TestNATSStoreLoadEmpty(t *testing.T) {
	s := newNATSStore(t)

	rec, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !rec.Empty() {
		t.Errorf("fresh bucket should yield a default record, got %+v", rec)
	}
}

func TestNATSStoreSaveAndLoad(t *testing.T) {
	s := newNATSStore(t)

	rec := &Record{
		Values: schema.Values{
			schema.FieldName:       "Alex",
			schema.FieldNationalID: "123456789012345",
		},
		Step: 3,
	}

	if err := s.Save(rec); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Step != 3 {
		t.Errorf("loaded step = %d, want 3", loaded.Step)
	}
	if loaded.Values[schema.FieldName] != "Alex" {
		t.Errorf("loaded name = %q, want Alex", loaded.Values[schema.FieldName])
	}
}

func TestNATSStoreClear(t *testing.T) {
	s := newNATSStore(t)

	// Clearing a missing key is not an error
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear on empty bucket failed: %v", err)
	}

	rec := &Record{Values: schema.Values{schema.FieldName: "Alex"}, Step: 2}
	if err := s.Save(rec); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !loaded.Empty() {
		t.Errorf("bucket should be empty after Clear, got %+v", loaded)
	}
}

func TestNATSStoreSaveEmptyClears(t *testing.T) {
	s := newNATSStore(t)

	rec := &Record{Values: schema.Values{schema.FieldName: "Alex"}, Step: 2}
	if err := s.Save(rec); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := s.Save(DefaultRecord()); err != nil {
		t.Fatalf("Save(empty) failed: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !loaded.Empty() {
		t.Errorf("empty save should clear the bucket, got %+v", loaded)
	}
}
