package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/oakhollow/orderdesk-backend/pkg/db/models"
	pkgerrors "github.com/oakhollow/orderdesk-backend/pkg/errors"
)

func fixtureProduct(name, price string) models.Product {
	return models.Product{ID: uuid.New(), Name: name, Price: decimal.RequireFromString(price)}
}

func TestAddMergesSameProduct(t *testing.T) {
	widget := fixtureProduct("widget", "10.00")
	ledger := NewLedger()

	if err := ledger.Add(widget, 2); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := ledger.Add(widget, 3); err != nil {
		t.Fatalf("Add: %v", err)
	}

	lines := ledger.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected one merged line, got %d", len(lines))
	}
	if lines[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", lines[0].Quantity)
	}
}

func TestAddRejectsNonPositiveQuantity(t *testing.T) {
	ledger := NewLedger()
	for _, qty := range []int{0, -1} {
		err := ledger.Add(fixtureProduct("widget", "1.00"), qty)
		coded := pkgerrors.As(err)
		if coded == nil || coded.Code() != pkgerrors.CodeValidation {
			t.Fatalf("qty %d: expected validation error, got %v", qty, err)
		}
	}
	if ledger.Len() != 0 {
		t.Fatal("rejected adds must not mutate the ledger")
	}
}

func TestAdjustRemovesAtZero(t *testing.T) {
	widget := fixtureProduct("widget", "10.00")
	ledger := NewLedger()
	if err := ledger.Add(widget, 2); err != nil {
		t.Fatalf("Add: %v", err)
	}

	ledger.Adjust(widget.ID, -1)
	if ledger.Lines()[0].Quantity != 1 {
		t.Fatal("expected quantity 1 after decrement")
	}

	ledger.Adjust(widget.ID, -1)
	if ledger.Len() != 0 {
		t.Fatal("expected line removal at zero quantity")
	}

	// Unknown ids are a no-op.
	ledger.Adjust(uuid.New(), 5)
	if ledger.Len() != 0 {
		t.Fatal("adjusting an absent line must not create one")
	}
}

func TestTotalPricesAgainstLiveLookup(t *testing.T) {
	widget := fixtureProduct("widget", "10.00")
	gadget := fixtureProduct("gadget", "2.50")

	ledger := NewLedger()
	if err := ledger.Add(widget, 2); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := ledger.Add(gadget, 4); err != nil {
		t.Fatalf("Add: %v", err)
	}

	// Snapshot pricing when no lookup is supplied.
	if got := ledger.Total(nil); !got.Equal(decimal.RequireFromString("30.00")) {
		t.Fatalf("expected snapshot total 30.00, got %s", got)
	}

	// Live repricing: widget moved to 12.00, gadget no longer resolves.
	lookup := func(id uuid.UUID) (decimal.Decimal, bool) {
		if id == widget.ID {
			return decimal.RequireFromString("12.00"), true
		}
		return decimal.Zero, false
	}
	if got := ledger.Total(lookup); !got.Equal(decimal.RequireFromString("34.00")) {
		t.Fatalf("expected live total 34.00, got %s", got)
	}
}

func TestFromLinesDropsNonPositive(t *testing.T) {
	widget := fixtureProduct("widget", "1.00")
	ledger := FromLines([]Line{
		{Product: widget, Quantity: 2},
		{Product: fixtureProduct("ghost", "1.00"), Quantity: 0},
		{Product: fixtureProduct("anti", "1.00"), Quantity: -3},
	})
	if ledger.Len() != 1 {
		t.Fatalf("expected only the positive line, got %d", ledger.Len())
	}
}

func TestConservationAcrossOperations(t *testing.T) {
	widget := fixtureProduct("widget", "3.00")
	gadget := fixtureProduct("gadget", "7.00")

	ledger := NewLedger()
	if err := ledger.Add(widget, 3); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := ledger.Add(gadget, 1); err != nil {
		t.Fatalf("Add: %v", err)
	}
	ledger.Adjust(widget.ID, 2)
	ledger.Remove(gadget.ID)

	// 5 widgets at 3.00 is all that remains.
	if got := ledger.Total(nil); !got.Equal(decimal.RequireFromString("15.00")) {
		t.Fatalf("expected total 15.00, got %s", got)
	}
	if ledger.Len() != 1 {
		t.Fatalf("expected 1 line, got %d", ledger.Len())
	}
}
