package kvstore

import (
	"errors"
	"testing"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemory()

	if err := store.Set("k", payload{Name: "a", Count: 2}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var got payload
	if err := store.Get("k", &got); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "a" || got.Count != 2 {
		t.Errorf("got %+v", got)
	}

	// Set replaces the prior value.
	if err := store.Set("k", payload{Name: "b"}); err != nil {
		t.Fatalf("Set replace: %v", err)
	}
	if err := store.Get("k", &got); err != nil {
		t.Fatalf("Get after replace: %v", err)
	}
	if got.Name != "b" || got.Count != 0 {
		t.Errorf("got %+v after replace", got)
	}
}

func TestMemoryStoreMissingKey(t *testing.T) {
	store := NewMemory()

	var got payload
	if err := store.Get("missing", &got); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreRemove(t *testing.T) {
	store := NewMemory()

	if err := store.Set("k", payload{Name: "a"}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.Remove("k"); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	var got payload
	if err := store.Get("k", &got); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound after remove", err)
	}

	// Removing an absent key is a no-op.
	if err := store.Remove("k"); err != nil {
		t.Errorf("Remove absent key: %v", err)
	}
}
