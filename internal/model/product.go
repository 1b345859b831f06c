package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductStatus string

const (
	ProductActive     ProductStatus = "active"
	ProductInactive   ProductStatus = "inactive"
	ProductOutOfStock ProductStatus = "out_of_stock"
)

// Valid reports whether s is one of the known product statuses.
func (s ProductStatus) Valid() bool {
	switch s {
	case ProductActive, ProductInactive, ProductOutOfStock:
		return true
	}
	return false
}

type Product struct {
	ID             string          `json:"id" validate:"required"`
	Name           string          `json:"name" validate:"required"`
	Type           string          `json:"type" validate:"required"`
	Quantity       int             `json:"quantity" validate:"gte=0"`
	Price          decimal.Decimal `json:"price"`
	Cost           decimal.Decimal `json:"cost"`
	Profit         decimal.Decimal `json:"profit"`
	Status         ProductStatus   `json:"status" validate:"required,oneof=active inactive out_of_stock"`
	ExpirationDate *time.Time      `json:"expirationDate,omitempty"`
	Image          string          `json:"image,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// DisplayStatus applies the display-only rule: a product with nothing on hand
// reads as out_of_stock regardless of its stored status. The stored status is
// authoritative in the remote API and is not rewritten here.
func (p *Product) DisplayStatus() ProductStatus {
	if p.Quantity == 0 {
		return ProductOutOfStock
	}
	return p.Status
}

// Sellable reports whether the product can be added to a bill.
func (p *Product) Sellable() bool {
	return p.Status == ProductActive && p.Quantity > 0
}
