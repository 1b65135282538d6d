package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/oakhollow/orderdesk-backend/pkg/db/models"
	"github.com/oakhollow/orderdesk-backend/pkg/enums"
	pkgerrors "github.com/oakhollow/orderdesk-backend/pkg/errors"
)

type stubProducts struct {
	rows map[uuid.UUID]models.Product
}

func (s *stubProducts) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	if row, ok := s.rows[id]; ok {
		return &row, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

func (s *stubProducts) FindByIDs(_ context.Context, ids []uuid.UUID) ([]models.Product, error) {
	out := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		if row, ok := s.rows[id]; ok {
			out = append(out, row)
		}
	}
	return out, nil
}

func catalogRow(name, price string, status enums.ProductStatus) models.Product {
	return models.Product{
		ID:     uuid.New(),
		Name:   name,
		Price:  decimal.RequireFromString(price),
		Status: status,
	}
}

func newTestService(t *testing.T, reader ProductReader) *Service {
	t.Helper()
	store, err := NewStore(newFakeSlots())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	svc, err := NewService(store, reader)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestServiceReplaceSwapsWholeCart(t *testing.T) {
	widget := catalogRow("widget", "10.00", enums.ProductStatusActive)
	gadget := catalogRow("gadget", "2.50", enums.ProductStatusActive)
	reader := &stubProducts{rows: map[uuid.UUID]models.Product{widget.ID: widget, gadget.ID: gadget}}
	svc := newTestService(t, reader)
	userID := uuid.New()

	if _, err := svc.Add(context.Background(), userID, widget.ID, 5); err != nil {
		t.Fatalf("Add: %v", err)
	}

	view, err := svc.Replace(context.Background(), userID, []ReplaceItem{
		{ProductID: gadget.ID, Quantity: 2},
	})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if len(view.Lines) != 1 {
		t.Fatalf("expected 1 line after replace, got %d", len(view.Lines))
	}
	if view.Lines[0].Product.ID != gadget.ID || view.Lines[0].Quantity != 2 {
		t.Fatalf("unexpected line: %+v", view.Lines[0])
	}
	if !view.Total.Equal(decimal.RequireFromString("5.00")) {
		t.Fatalf("expected total 5.00, got %s", view.Total)
	}

	reloaded, err := svc.Get(context.Background(), userID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(reloaded.Lines) != 1 || reloaded.Lines[0].Product.ID != gadget.ID {
		t.Fatalf("replace did not persist: %+v", reloaded.Lines)
	}
}

func TestServiceReplaceWithNoItemsEmptiesCart(t *testing.T) {
	widget := catalogRow("widget", "10.00", enums.ProductStatusActive)
	reader := &stubProducts{rows: map[uuid.UUID]models.Product{widget.ID: widget}}
	svc := newTestService(t, reader)
	userID := uuid.New()

	if _, err := svc.Add(context.Background(), userID, widget.ID, 1); err != nil {
		t.Fatalf("Add: %v", err)
	}

	view, err := svc.Replace(context.Background(), userID, nil)
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if len(view.Lines) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(view.Lines))
	}
}

func TestServiceReplaceRejectsUnknownAndDiscontinued(t *testing.T) {
	widget := catalogRow("widget", "10.00", enums.ProductStatusActive)
	retired := catalogRow("retired", "4.00", enums.ProductStatusDiscontinued)
	reader := &stubProducts{rows: map[uuid.UUID]models.Product{widget.ID: widget, retired.ID: retired}}
	svc := newTestService(t, reader)
	userID := uuid.New()

	_, err := svc.Replace(context.Background(), userID, []ReplaceItem{{ProductID: uuid.New(), Quantity: 1}})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for unknown product, got %v", err)
	}

	_, err = svc.Replace(context.Background(), userID, []ReplaceItem{{ProductID: retired.ID, Quantity: 1}})
	coded = pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for discontinued product, got %v", err)
	}

	reloaded, err := svc.Get(context.Background(), userID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(reloaded.Lines) != 0 {
		t.Fatalf("rejected replace must not touch the slot, got %d lines", len(reloaded.Lines))
	}
}
