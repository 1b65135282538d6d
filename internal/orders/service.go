package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/oakhollow/orderdesk-backend/internal/cart"
	"github.com/oakhollow/orderdesk-backend/pkg/db/models"
	"github.com/oakhollow/orderdesk-backend/pkg/enums"
	pkgerrors "github.com/oakhollow/orderdesk-backend/pkg/errors"
	"github.com/oakhollow/orderdesk-backend/pkg/logger"
	"github.com/oakhollow/orderdesk-backend/pkg/metrics"
	"github.com/oakhollow/orderdesk-backend/pkg/pagination"
)

// OrderFormDocID is the autosave slot backing the order form. A successful
// submission clears it together with the cart.
const OrderFormDocID = "order-form"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines the order submission and review operations.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*models.Order, error)
	Get(ctx context.Context, actorID uuid.UUID, isAdmin bool, orderID uuid.UUID) (*models.Order, error)
	ListMine(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.Order, string, error)
	ListAll(ctx context.Context, filter ListFilter, params pagination.Params) ([]models.Order, string, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) (*models.Order, error)
}

type service struct {
	repo     Repository
	tx       txRunner
	carts    CartStore
	drafts   DraftDeleter
	products ProductReader
	logg     *logger.Logger
	stats    *metrics.OrderMetrics
}

// NewService builds the order service with its required dependencies.
func NewService(repo Repository, tx txRunner, carts CartStore, drafts DraftDeleter, products ProductReader, logg *logger.Logger, stats *metrics.OrderMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if drafts == nil {
		return nil, fmt.Errorf("draft deleter required")
	}
	if products == nil {
		return nil, fmt.Errorf("product reader required")
	}
	return &service{
		repo:     repo,
		tx:       tx,
		carts:    carts,
		drafts:   drafts,
		products: products,
		logg:     logg,
		stats:    stats,
	}, nil
}

// Submit turns the user's open cart into a pending order. The header and all
// line items are written in one transaction, so a failure anywhere leaves no
// partial order behind. The cart and the order-form draft are only cleared
// after the transaction commits.
func (s *service) Submit(ctx context.Context, input SubmitInput) (*models.Order, error) {
	started := time.Now()
	order, err := s.submit(ctx, input)
	if err != nil {
		code := string(pkgerrors.CodeInternal)
		if coded := pkgerrors.As(err); coded != nil {
			code = string(coded.Code())
		}
		s.stats.IncFailure(code)
		s.stats.ObserveDuration("failure", time.Since(started))
		return nil, err
	}
	s.stats.IncSuccess()
	s.stats.ObserveDuration("success", time.Since(started))
	return order, nil
}

func (s *service) submit(ctx context.Context, input SubmitInput) (*models.Order, error) {
	ledger, err := s.carts.Load(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if ledger.Len() == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	if input.StoreID == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "a customer must be selected before submitting")
	}

	lines := ledger.Lines()
	priceByID, err := s.livePrices(ctx, lines)
	if err != nil {
		return nil, err
	}

	items := make([]models.OrderItem, 0, len(lines))
	total := decimal.Zero
	for _, line := range lines {
		price := line.Product.Price
		if live, ok := priceByID[line.Product.ID]; ok {
			price = live
		}
		subtotal := price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(subtotal)

		productID := line.Product.ID
		items = append(items, models.OrderItem{
			ProductID:   &productID,
			ProductName: line.Product.Name,
			Quantity:    line.Quantity,
			UnitPrice:   price,
			Subtotal:    subtotal,
		})
	}

	order := &models.Order{
		UserID:      input.UserID,
		StoreID:     input.StoreID,
		Status:      enums.OrderStatusPending,
		TotalAmount: total,
		Notes:       input.Notes,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := repo.CreateItems(ctx, items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order items")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	order.Items = items

	// Slot cleanup is best effort once the order is durable.
	if err := s.carts.Clear(ctx, input.UserID); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "clearing cart after submit failed")
	}
	if err := s.drafts.Delete(ctx, input.UserID, OrderFormDocID); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "clearing order draft after submit failed")
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithFields(ctx, map[string]any{
			"orderId":   order.ID.String(),
			"itemCount": len(items),
			"total":     total.StringFixed(2),
		}), "order submitted")
	}
	return order, nil
}

func (s *service) livePrices(ctx context.Context, lines []cart.Line) (map[uuid.UUID]decimal.Decimal, error) {
	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.Product.ID)
	}
	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve catalog prices")
	}
	out := make(map[uuid.UUID]decimal.Decimal, len(products))
	for _, p := range products {
		out[p.ID] = p.Price
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, actorID uuid.UUID, isAdmin bool, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && order.UserID != actorID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another user")
	}
	return order, nil
}

func (s *service) ListMine(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.Order, string, error) {
	return s.repo.ListByUser(ctx, userID, params)
}

func (s *service) ListAll(ctx context.Context, filter ListFilter, params pagination.Params) ([]models.Order, string, error) {
	return s.repo.List(ctx, filter, params)
}

// UpdateStatus moves the order to the requested status. Any transition
// between the defined statuses is allowed.
func (s *service) UpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) (*models.Order, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status")
	}
	return s.repo.UpdateStatus(ctx, orderID, status)
}
