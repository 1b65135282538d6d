package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oakhollow/orderdesk-backend/internal/cart"
	"github.com/oakhollow/orderdesk-backend/pkg/db/models"
	"github.com/oakhollow/orderdesk-backend/pkg/enums"
	"github.com/oakhollow/orderdesk-backend/pkg/pagination"
)

// Repository defines order persistence operations.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	CreateItems(ctx context.Context, items []models.OrderItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.Order, string, error)
	List(ctx context.Context, filter ListFilter, params pagination.Params) ([]models.Order, string, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) (*models.Order, error)
}

// CartStore is the slice of the cart layer the submission pipeline touches.
type CartStore interface {
	Load(ctx context.Context, userID uuid.UUID) (*cart.Ledger, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

// DraftDeleter clears autosave slots once their order is submitted.
type DraftDeleter interface {
	Delete(ctx context.Context, userID uuid.UUID, docID string) error
}

// ProductReader resolves live catalog rows for pricing at submit time.
type ProductReader interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
}
