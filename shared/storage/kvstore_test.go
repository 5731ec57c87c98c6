package storage

import (
	"testing"
)

func TestStoreSetGet(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	if _, ok := store.Get(KeyAPIBaseOverride); ok {
		t.Error("fresh store should not contain values")
	}

	if err := store.Set(KeyAPIBaseOverride, "https://example.net"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	value, ok := store.Get(KeyAPIBaseOverride)
	if !ok || value != "https://example.net" {
		t.Errorf("Get = (%q, %v), want stored value", value, ok)
	}
}

func TestStoreIntRoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	if _, ok := store.GetInt(KeyCreditsRemaining); ok {
		t.Error("GetInt on missing key should report absent")
	}

	if err := store.SetInt(KeyCreditsRemaining, 42); err != nil {
		t.Fatalf("SetInt failed: %v", err)
	}

	n, ok := store.GetInt(KeyCreditsRemaining)
	if !ok || n != 42 {
		t.Errorf("GetInt = (%d, %v), want 42", n, ok)
	}

	if err := store.Set(KeyCreditsRemaining, "not a number"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, ok := store.GetInt(KeyCreditsRemaining); ok {
		t.Error("GetInt on non-numeric value should report absent")
	}
}

func TestStoreDelete(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	if err := store.Set(KeyCachedToken, "abc123"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Delete(KeyCachedToken); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok := store.Get(KeyCachedToken); ok {
		t.Error("value survived Delete")
	}

	// Deleting a missing key is fine.
	if err := store.Delete(KeyCachedToken); err != nil {
		t.Errorf("Delete on missing key failed: %v", err)
	}
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if err := store.SetInt(KeyCreditsRemaining, 7); err != nil {
		t.Fatalf("SetInt failed: %v", err)
	}
	if err := store.Set(KeyAPIBaseOverride, "https://staging.example.net"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	reopened, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore after reopen failed: %v", err)
	}

	if n, ok := reopened.GetInt(KeyCreditsRemaining); !ok || n != 7 {
		t.Errorf("GetInt after reopen = (%d, %v), want 7", n, ok)
	}
	if value, ok := reopened.Get(KeyAPIBaseOverride); !ok || value != "https://staging.example.net" {
		t.Errorf("Get after reopen = (%q, %v), want stored value", value, ok)
	}
}
