package repository

import (
	"errors"
	"math/rand"
	"strconv"
	"time"

	"go-stockbill/internal/model"
	"go-stockbill/pkg/kvstore"
)

// Key-value slots for the snapshot collections.
const (
	keyProducts     = "stock_products"
	keyBills        = "stock_bills"
	keyTransactions = "stock_transactions"
)

// SnapshotRepository is the key-value-backed fallback data source used by
// reporting and the legacy dashboard when the remote API is unreachable.
// It is never the system of record while the API answers.
type SnapshotRepository interface {
	GetProducts() ([]model.Product, error)
	SetProducts(products []model.Product) error
	GetBills() ([]model.Bill, error)
	SetBills(bills []model.Bill) error
	GetTransactions() ([]model.StockTransaction, error)
	SetTransactions(txs []model.StockTransaction) error
	GenerateID() string
}

type snapshotRepo struct {
	store kvstore.Store
}

func NewSnapshotRepo(store kvstore.Store) SnapshotRepository {
	return &snapshotRepo{store: store}
}

// GetProducts returns the stored catalog, seeding the demonstration catalog
// on first read when nothing has been stored yet.
func (r *snapshotRepo) GetProducts() ([]model.Product, error) {
	var products []model.Product
	err := r.store.Get(keyProducts, &products)
	if errors.Is(err, kvstore.ErrNotFound) {
		products = model.DefaultProducts()
		if err := r.SetProducts(products); err != nil {
			return nil, err
		}
		return products, nil
	}
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *snapshotRepo) SetProducts(products []model.Product) error {
	return r.store.Set(keyProducts, products)
}

func (r *snapshotRepo) GetBills() ([]model.Bill, error) {
	var bills []model.Bill
	err := r.store.Get(keyBills, &bills)
	if errors.Is(err, kvstore.ErrNotFound) {
		return []model.Bill{}, nil
	}
	if err != nil {
		return nil, err
	}
	return bills, nil
}

func (r *snapshotRepo) SetBills(bills []model.Bill) error {
	return r.store.Set(keyBills, bills)
}

func (r *snapshotRepo) GetTransactions() ([]model.StockTransaction, error) {
	var txs []model.StockTransaction
	err := r.store.Get(keyTransactions, &txs)
	if errors.Is(err, kvstore.ErrNotFound) {
		return []model.StockTransaction{}, nil
	}
	if err != nil {
		return nil, err
	}
	return txs, nil
}

func (r *snapshotRepo) SetTransactions(txs []model.StockTransaction) error {
	return r.store.Set(keyTransactions, txs)
}

// GenerateID produces a local identifier from the current time plus a random
// suffix. Collision probability is acceptable for a local fallback only;
// authoritative identifiers come from the remote API.
func (r *snapshotRepo) GenerateID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 36) + strconv.FormatInt(rand.Int63n(1<<40), 36)
}
