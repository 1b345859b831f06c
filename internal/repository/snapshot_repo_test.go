package repository

import (
	"testing"
	"time"

	"go-stockbill/internal/model"
	"go-stockbill/pkg/kvstore"
)

func TestGetProductsSeedsOnFirstRead(t *testing.T) {
	store := kvstore.NewMemory()
	repo := NewSnapshotRepo(store)

	products, err := repo.GetProducts()
	if err != nil {
		t.Fatalf("GetProducts: %v", err)
	}
	if len(products) != 3 {
		t.Fatalf("seeded %d products, want 3", len(products))
	}

	// The seed must have been persisted, not just returned.
	var stored []model.Product
	if err := store.Get("stock_products", &stored); err != nil {
		t.Fatalf("seed not persisted: %v", err)
	}
	if len(stored) != len(products) {
		t.Errorf("persisted %d products, want %d", len(stored), len(products))
	}

	// Second read returns the stored catalog without reseeding.
	again, err := repo.GetProducts()
	if err != nil {
		t.Fatalf("GetProducts second read: %v", err)
	}
	if len(again) != 3 || again[0].Name != products[0].Name {
		t.Error("second read diverged from seed")
	}
}

func TestSetProductsReplacesCatalog(t *testing.T) {
	repo := NewSnapshotRepo(kvstore.NewMemory())

	if err := repo.SetProducts([]model.Product{{ID: "X", Name: "Only", Type: "T", Status: model.ProductActive}}); err != nil {
		t.Fatalf("SetProducts: %v", err)
	}
	products, err := repo.GetProducts()
	if err != nil {
		t.Fatalf("GetProducts: %v", err)
	}
	if len(products) != 1 || products[0].ID != "X" {
		t.Errorf("products = %+v, want the stored catalog, not the seed", products)
	}
}

func TestBillsAndTransactionsDefaultEmpty(t *testing.T) {
	repo := NewSnapshotRepo(kvstore.NewMemory())

	bills, err := repo.GetBills()
	if err != nil {
		t.Fatalf("GetBills: %v", err)
	}
	if len(bills) != 0 {
		t.Errorf("bills = %d, want 0", len(bills))
	}

	txs, err := repo.GetTransactions()
	if err != nil {
		t.Fatalf("GetTransactions: %v", err)
	}
	if len(txs) != 0 {
		t.Errorf("transactions = %d, want 0", len(txs))
	}

	want := []model.StockTransaction{{
		ID: "t1", ProductID: "1", ProductName: "iPhone 15 Pro",
		Type: model.TxOut, Quantity: 2, CreatedAt: time.Now(), CreatedBy: "1",
	}}
	if err := repo.SetTransactions(want); err != nil {
		t.Fatalf("SetTransactions: %v", err)
	}
	txs, err = repo.GetTransactions()
	if err != nil {
		t.Fatalf("GetTransactions: %v", err)
	}
	if len(txs) != 1 || txs[0].Type != model.TxOut {
		t.Errorf("transactions = %+v", txs)
	}
}

func TestGenerateID(t *testing.T) {
	repo := NewSnapshotRepo(kvstore.NewMemory())

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		id := repo.GenerateID()
		if id == "" {
			t.Fatal("empty id")
		}
		if seen[id] {
			t.Fatalf("duplicate id %q within one batch", id)
		}
		seen[id] = true
	}
}
