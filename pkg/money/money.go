package money

import "github.com/shopspring/decimal"

// TaxRate is the fixed VAT rate applied to every bill (7%).
var TaxRate = decimal.New(7, -2)

// LineTotal returns quantity * unitPrice. Inputs are assumed non-negative.
func LineTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// Subtotal sums a sequence of line totals.
func Subtotal(lineTotals []decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range lineTotals {
		sum = sum.Add(t)
	}
	return sum
}

// Tax returns the VAT amount for a subtotal, rounded to 2 decimal places.
func Tax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(TaxRate).Round(2)
}

// Total returns subtotal + tax.
func Total(subtotal, tax decimal.Decimal) decimal.Decimal {
	return subtotal.Add(tax)
}
