package model

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"go-stockbill/pkg/money"
)

var (
	ErrStockExceeded = errors.New("requested quantity exceeds available stock")
	ErrEmptyDraft    = errors.New("bill has no items")
)

type BillStatus string

const (
	BillDraft     BillStatus = "draft"
	BillCompleted BillStatus = "completed"
	BillCancelled BillStatus = "cancelled"
)

// Valid reports whether s is one of the known bill statuses.
func (s BillStatus) Valid() bool {
	switch s {
	case BillDraft, BillCompleted, BillCancelled:
		return true
	}
	return false
}

// BillItem is one line within a bill. Name and Price are snapshots taken when
// the product was added; later catalog edits do not reach into an open draft.
type BillItem struct {
	ProductID   string          `json:"productId" validate:"required"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity" validate:"required,gt=0"`
	Price       decimal.Decimal `json:"price"`
	Total       decimal.Decimal `json:"total"`
}

// Bill is the persisted record as returned by the remote API.
type Bill struct {
	ID         string          `json:"id"`
	BillNumber string          `json:"billNumber"`
	Items      []BillItem      `json:"items"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Tax        decimal.Decimal `json:"tax"`
	Total      decimal.Decimal `json:"total"`
	Status     BillStatus      `json:"status"`
	CreatedBy  string          `json:"createdBy"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// BillCreate is the creation payload sent to the remote API. Computed totals
// are deliberately absent; the API recomputes authoritative amounts itself.
type BillCreate struct {
	Items     []BillCreateItem `json:"items" validate:"required,min=1,dive"`
	Status    BillStatus       `json:"status" validate:"required,oneof=draft completed cancelled"`
	CreatedBy string           `json:"createdBy" validate:"required"`
}

type BillCreateItem struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// Draft is an unsaved bill being assembled. Items keep insertion order;
// Subtotal/Tax/Total are derivations recomputed on every mutation.
type Draft struct {
	Items    []BillItem      `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

func NewDraft() *Draft {
	return &Draft{
		Items:    []BillItem{},
		Subtotal: decimal.Zero,
		Tax:      decimal.Zero,
		Total:    decimal.Zero,
	}
}

// AddItem merges quantity into an existing line for the product, or appends a
// new line with name/price snapshots. The combined quantity must not exceed
// the product's on-hand quantity; on ErrStockExceeded the draft is unchanged.
func (d *Draft) AddItem(product *Product, quantity int) error {
	for i := range d.Items {
		if d.Items[i].ProductID == product.ID {
			combined := d.Items[i].Quantity + quantity
			if combined > product.Quantity {
				return ErrStockExceeded
			}
			d.Items[i].Quantity = combined
			d.Items[i].Total = money.LineTotal(combined, d.Items[i].Price)
			d.recompute()
			return nil
		}
	}

	if quantity > product.Quantity {
		return ErrStockExceeded
	}

	d.Items = append(d.Items, BillItem{
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    quantity,
		Price:       product.Price,
		Total:       money.LineTotal(quantity, product.Price),
	})
	d.recompute()
	return nil
}

// UpdateQuantity replaces a line's quantity. A quantity of zero or less is
// equivalent to RemoveItem. Stock is checked against the product's current
// on-hand quantity.
func (d *Draft) UpdateQuantity(product *Product, newQuantity int) error {
	if newQuantity <= 0 {
		d.RemoveItem(product.ID)
		return nil
	}
	if newQuantity > product.Quantity {
		return ErrStockExceeded
	}
	for i := range d.Items {
		if d.Items[i].ProductID == product.ID {
			d.Items[i].Quantity = newQuantity
			d.Items[i].Total = money.LineTotal(newQuantity, d.Items[i].Price)
			d.recompute()
			return nil
		}
	}
	return nil
}

// RemoveItem deletes the matching line. Removing an absent line is a no-op.
func (d *Draft) RemoveItem(productID string) {
	for i := range d.Items {
		if d.Items[i].ProductID == productID {
			d.Items = append(d.Items[:i], d.Items[i+1:]...)
			d.recompute()
			return
		}
	}
}

// Snapshot returns a value copy of the draft with its own Items slice. The
// draft service hands these out so callers can read and serialize them after
// the service lock is released.
func (d *Draft) Snapshot() *Draft {
	items := make([]BillItem, len(d.Items))
	copy(items, d.Items)
	return &Draft{
		Items:    items,
		Subtotal: d.Subtotal,
		Tax:      d.Tax,
		Total:    d.Total,
	}
}

// ToCreate builds the API creation payload from the draft.
func (d *Draft) ToCreate(status BillStatus, createdBy string) (*BillCreate, error) {
	if len(d.Items) == 0 {
		return nil, ErrEmptyDraft
	}
	items := make([]BillCreateItem, len(d.Items))
	for i, it := range d.Items {
		items[i] = BillCreateItem{ProductID: it.ProductID, Quantity: it.Quantity}
	}
	return &BillCreate{Items: items, Status: status, CreatedBy: createdBy}, nil
}

func (d *Draft) recompute() {
	totals := make([]decimal.Decimal, len(d.Items))
	for i, it := range d.Items {
		totals[i] = it.Total
	}
	d.Subtotal = money.Subtotal(totals)
	d.Tax = money.Tax(d.Subtotal)
	d.Total = money.Total(d.Subtotal, d.Tax)
}

// GenerateBillNumber produces a human-readable bill number from the current
// date plus a 3-digit random suffix, e.g. BIL260828042. Not globally unique;
// the remote API resolves duplicate-key conflicts.
func GenerateBillNumber() string {
	now := time.Now()
	return fmt.Sprintf("BIL%s%03d", now.Format("060102"), rand.Intn(1000))
}
