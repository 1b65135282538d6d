package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/oakhollow/orderdesk-backend/pkg/db/models"
	pkgerrors "github.com/oakhollow/orderdesk-backend/pkg/errors"
)

// Line is one (product, quantity) entry in the ledger. The product is a
// snapshot taken at add time; totals still price against the live catalog
// (see Ledger.Total).
type Line struct {
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// PriceLookup resolves the current catalog price for a product. The boolean
// reports whether the product still exists; when it does not, the line's
// snapshot price is used instead.
type PriceLookup func(productID uuid.UUID) (decimal.Decimal, bool)

// Ledger is the in-memory multiset of cart lines, keyed by product id with
// insertion order preserved. All operations are synchronous and touch no I/O.
type Ledger struct {
	lines []Line
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// FromLines rebuilds a ledger from a stored snapshot, dropping lines whose
// quantity is not positive.
func FromLines(lines []Line) *Ledger {
	ledger := NewLedger()
	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		ledger.lines = append(ledger.lines, line)
	}
	return ledger
}

// Add appends a new line or increments an existing one. Non-positive
// quantities are rejected without mutating the ledger.
func (l *Ledger) Add(product models.Product, qty int) error {
	if qty <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be a positive integer")
	}
	if idx := l.find(product.ID); idx >= 0 {
		l.lines[idx].Quantity += qty
		return nil
	}
	l.lines = append(l.lines, Line{Product: product, Quantity: qty})
	return nil
}

// Adjust adds delta to the line's quantity. A result at or below zero removes
// the line; an unknown product id is a no-op.
func (l *Ledger) Adjust(productID uuid.UUID, delta int) {
	idx := l.find(productID)
	if idx < 0 {
		return
	}
	l.lines[idx].Quantity += delta
	if l.lines[idx].Quantity <= 0 {
		l.removeAt(idx)
	}
}

// Remove unconditionally deletes the line if present.
func (l *Ledger) Remove(productID uuid.UUID) {
	if idx := l.find(productID); idx >= 0 {
		l.removeAt(idx)
	}
}

// Total sums quantity × current price across all lines. Prices are read live
// through the lookup at compute time, so catalog edits reprice an open cart;
// the snapshot price only backstops products that no longer resolve.
func (l *Ledger) Total(current PriceLookup) decimal.Decimal {
	total := decimal.Zero
	for _, line := range l.lines {
		price := line.Product.Price
		if current != nil {
			if live, ok := current(line.Product.ID); ok {
				price = live
			}
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

// Lines returns a copy of the ledger contents in insertion order.
func (l *Ledger) Lines() []Line {
	out := make([]Line, len(l.lines))
	copy(out, l.lines)
	return out
}

// Len returns the number of distinct product lines.
func (l *Ledger) Len() int {
	return len(l.lines)
}

func (l *Ledger) find(productID uuid.UUID) int {
	for i, line := range l.lines {
		if line.Product.ID == productID {
			return i
		}
	}
	return -1
}

func (l *Ledger) removeAt(idx int) {
	l.lines = append(l.lines[:idx], l.lines[idx+1:]...)
}
