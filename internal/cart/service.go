package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/oakhollow/orderdesk-backend/pkg/db/models"
	"github.com/oakhollow/orderdesk-backend/pkg/enums"
	pkgerrors "github.com/oakhollow/orderdesk-backend/pkg/errors"
)

// ProductReader resolves catalog rows for adding lines and live pricing.
type ProductReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
}

// View is the priced cart returned to clients. Each line carries its live
// unit price; Total is the sum over lines at current prices.
type View struct {
	Lines []ViewLine      `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

// ViewLine is one priced cart entry.
type ViewLine struct {
	Product   models.Product  `json:"product"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// AddRequest is the HTTP payload for adding a product to the cart.
type AddRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

// AdjustRequest is the HTTP payload for changing a line's quantity.
type AdjustRequest struct {
	Delta int `json:"delta" validate:"required"`
}

// ReplaceItem is one line of a wholesale cart replacement.
type ReplaceItem struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

// ReplaceRequest is the HTTP payload for swapping the entire cart.
type ReplaceRequest struct {
	Items []ReplaceItem `json:"items" validate:"dive"`
}

// Service exposes the cart operations. Every mutation loads the slot,
// applies the change and writes the whole snapshot back.
type Service struct {
	store    *Store
	products ProductReader
}

// NewService builds the cart service.
func NewService(store *Store, products ProductReader) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if products == nil {
		return nil, fmt.Errorf("product reader required")
	}
	return &Service{store: store, products: products}, nil
}

// Get returns the priced cart view.
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*View, error) {
	ledger, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, ledger)
}

// Add puts quantity units of the product into the cart. Discontinued
// products cannot be added.
func (s *Service) Add(ctx context.Context, userID, productID uuid.UUID, quantity int) (*View, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.Status == enums.ProductStatusDiscontinued {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product is discontinued")
	}

	ledger, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := ledger.Add(*product, quantity); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, userID, ledger); err != nil {
		return nil, err
	}
	return s.view(ctx, ledger)
}

// Adjust applies delta to the product's line; at or below zero the line is
// removed. Adjusting an absent line is a no-op.
func (s *Service) Adjust(ctx context.Context, userID, productID uuid.UUID, delta int) (*View, error) {
	ledger, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	ledger.Adjust(productID, delta)
	if err := s.store.Save(ctx, userID, ledger); err != nil {
		return nil, err
	}
	return s.view(ctx, ledger)
}

// Remove deletes the product's line.
func (s *Service) Remove(ctx context.Context, userID, productID uuid.UUID) (*View, error) {
	ledger, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	ledger.Remove(productID)
	if err := s.store.Save(ctx, userID, ledger); err != nil {
		return nil, err
	}
	return s.view(ctx, ledger)
}

// Replace swaps the whole cart for the given lines. Unknown products fail
// the call; discontinued products are rejected the same way Add rejects
// them. An empty item list empties the cart.
func (s *Service) Replace(ctx context.Context, userID uuid.UUID, items []ReplaceItem) (*View, error) {
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	rows, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve catalog rows")
	}
	byID := make(map[uuid.UUID]models.Product, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}

	ledger := NewLedger()
	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product not found")
		}
		if product.Status == enums.ProductStatusDiscontinued {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product is discontinued")
		}
		if err := ledger.Add(product, item.Quantity); err != nil {
			return nil, err
		}
	}

	if err := s.store.Save(ctx, userID, ledger); err != nil {
		return nil, err
	}
	return s.view(ctx, ledger)
}

// Clear empties the cart.
func (s *Service) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.store.Clear(ctx, userID)
}

func (s *Service) view(ctx context.Context, ledger *Ledger) (*View, error) {
	lines := ledger.Lines()
	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.Product.ID)
	}
	live, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve catalog prices")
	}
	priceByID := make(map[uuid.UUID]decimal.Decimal, len(live))
	for _, p := range live {
		priceByID[p.ID] = p.Price
	}

	view := &View{Lines: make([]ViewLine, 0, len(lines)), Total: decimal.Zero}
	for _, line := range lines {
		price := line.Product.Price
		if current, ok := priceByID[line.Product.ID]; ok {
			price = current
		}
		subtotal := price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		view.Lines = append(view.Lines, ViewLine{
			Product:   line.Product,
			Quantity:  line.Quantity,
			UnitPrice: price,
			Subtotal:  subtotal,
		})
		view.Total = view.Total.Add(subtotal)
	}
	return view, nil
}
