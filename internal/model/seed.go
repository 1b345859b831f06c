package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultProducts is the demonstration catalog seeded into the snapshot store
// on first read when no products have been stored yet.
func DefaultProducts() []Product {
	now := time.Now()
	return []Product{
		{
			ID:        "1",
			Name:      "iPhone 15 Pro",
			Type:      "Electronics",
			Quantity:  25,
			Price:     decimal.NewFromInt(45000),
			Cost:      decimal.NewFromInt(40000),
			Profit:    decimal.NewFromInt(5000),
			Status:    ProductActive,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:        "2",
			Name:      "Samsung Galaxy S24",
			Type:      "Electronics",
			Quantity:  15,
			Price:     decimal.NewFromInt(35000),
			Cost:      decimal.NewFromInt(30000),
			Profit:    decimal.NewFromInt(5000),
			Status:    ProductActive,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:        "3",
			Name:      "MacBook Air M2",
			Type:      "Computer",
			Quantity:  0,
			Price:     decimal.NewFromInt(55000),
			Cost:      decimal.NewFromInt(50000),
			Profit:    decimal.NewFromInt(5000),
			Status:    ProductOutOfStock,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}
