package main

import (
	"path/filepath"
	"reflect"
	"testing"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "nested", "babytick.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_SaveLoadRoundTrip(t *testing.T) {
	store := newTestSQLiteStore(t)
	child := fullChild()

	if err := store.Save(child); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := store.Load(child.ID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(child, loaded) {
		t.Fatalf("round trip mismatch\nsaved:  %+v\nloaded: %+v", child, loaded)
	}
}

func TestSQLiteStore_SaveUpserts(t *testing.T) {
	store := newTestSQLiteStore(t)
	child := NewChild("Ava", date(2023, 1, 1), "", "")
	if err := store.Save(child); err != nil {
		t.Fatalf("Save: %v", err)
	}
	child.Name = "Ava Rose"
	if err := store.Save(child); err != nil {
		t.Fatalf("Save: %v", err)
	}

	children, err := store.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(children) != 1 || children[0].Name != "Ava Rose" {
		t.Fatalf("expected one updated child, got %+v", children)
	}
}

func TestSQLiteStore_LoadAllSkipsBadRows(t *testing.T) {
	store := newTestSQLiteStore(t)
	if err := store.Save(NewChild("Zoe", date(2023, 1, 1), "", "")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save(NewChild("Ava", date(2023, 1, 1), "", "")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := store.db.Exec(upsertChildSQL, "broken", "Broken", "{", "2024-01-01"); err != nil {
		t.Fatalf("insert broken row: %v", err)
	}

	children, err := store.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(children))
	}
	if children[0].Name != "Ava" || children[1].Name != "Zoe" {
		t.Fatalf("unexpected order: %s, %s", children[0].Name, children[1].Name)
	}
}

func TestSQLiteStore_LoadMissingAndDelete(t *testing.T) {
	store := newTestSQLiteStore(t)

	child, err := store.Load("missing")
	if err != nil || child != nil {
		t.Fatalf("expected nil, nil for missing child, got %+v, %v", child, err)
	}

	saved := NewChild("Ava", date(2023, 1, 1), "", "")
	if err := store.Save(saved); err != nil {
		t.Fatalf("Save: %v", err)
	}

	existed, err := store.Delete(saved.ID)
	if err != nil || !existed {
		t.Fatalf("expected first delete to succeed, got %v, %v", existed, err)
	}
	existed, err = store.Delete(saved.ID)
	if err != nil || existed {
		t.Fatalf("expected second delete to report false, got %v, %v", existed, err)
	}
}
