package model

import "time"

type TransactionType string

const (
	TxIn         TransactionType = "in"
	TxOut        TransactionType = "out"
	TxAdjustment TransactionType = "adjustment"
)

// Valid reports whether t is one of the known movement types.
func (t TransactionType) Valid() bool {
	switch t {
	case TxIn, TxOut, TxAdjustment:
		return true
	}
	return false
}

// StockTransaction records one inventory movement. Owned by the remote API;
// read-only from this layer.
type StockTransaction struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Type        TransactionType `json:"type"`
	Quantity    int             `json:"quantity"`
	Reason      string          `json:"reason"`
	BillID      string          `json:"billId,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	CreatedBy   string          `json:"createdBy"`
}
