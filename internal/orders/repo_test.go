package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/oakhollow/orderdesk-backend/pkg/db/models"
	"github.com/oakhollow/orderdesk-backend/pkg/enums"
	pkgerrors "github.com/oakhollow/orderdesk-backend/pkg/errors"
	"github.com/oakhollow/orderdesk-backend/pkg/pagination"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  store_id TEXT,
  status TEXT NOT NULL DEFAULT 'pending',
  total_amount NUMERIC NOT NULL,
  notes TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	items := `
CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT,
  product_name TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  unit_price NUMERIC NOT NULL,
  subtotal NUMERIC NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(orders).Error)
	require.NoError(t, db.Exec(items).Error)
	return db
}

func seedOrder(t *testing.T, db *gorm.DB, userID uuid.UUID, createdAt time.Time) models.Order {
	t.Helper()
	order := models.Order{
		ID:          uuid.New(),
		UserID:      userID,
		Status:      enums.OrderStatusPending,
		TotalAmount: decimal.RequireFromString("35.00"),
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

func TestRepositoryCreateAndFind(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := seedOrder(t, db, uuid.New(), time.Now().UTC())
	productID := uuid.New()
	require.NoError(t, repo.CreateItems(ctx, []models.OrderItem{
		{ID: uuid.New(), OrderID: order.ID, ProductID: &productID, ProductName: "widget", Quantity: 3, UnitPrice: decimal.RequireFromString("10.00"), Subtotal: decimal.RequireFromString("30.00")},
		{ID: uuid.New(), OrderID: order.ID, ProductName: "gadget", Quantity: 2, UnitPrice: decimal.RequireFromString("2.50"), Subtotal: decimal.RequireFromString("5.00")},
	}))

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)
	assert.Len(t, found.Items, 2)
}

func TestRepositoryFindMissing(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeNotFound, coded.Code())
}

func TestRepositoryListByUserPaginates(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		seedOrder(t, db, userID, base.Add(time.Duration(i)*time.Minute))
	}
	seedOrder(t, db, uuid.New(), base)

	first, next, err := repo.ListByUser(ctx, userID, pagination.Params{Limit: 3})
	require.NoError(t, err)
	require.Len(t, first, 3)
	require.NotEmpty(t, next)
	assert.True(t, first[0].CreatedAt.After(first[2].CreatedAt))

	second, next, err := repo.ListByUser(ctx, userID, pagination.Params{Limit: 3, Cursor: next})
	require.NoError(t, err)
	assert.Len(t, second, 2)
	assert.Empty(t, next)
}

func TestRepositoryListFilters(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	storeID := uuid.New()
	order := models.Order{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		StoreID:     &storeID,
		Status:      enums.OrderStatusConfirmed,
		TotalAmount: decimal.RequireFromString("1.00"),
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, db.Create(&order).Error)
	seedOrder(t, db, uuid.New(), time.Now().UTC())

	status := enums.OrderStatusConfirmed
	rows, _, err := repo.List(ctx, ListFilter{StoreID: &storeID, Status: &status}, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, order.ID, rows[0].ID)
}

func TestRepositoryUpdateStatus(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := seedOrder(t, db, uuid.New(), time.Now().UTC())
	updated, err := repo.UpdateStatus(ctx, order.ID, enums.OrderStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusCompleted, updated.Status)

	_, err = repo.UpdateStatus(ctx, uuid.New(), enums.OrderStatusCancelled)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeNotFound, coded.Code())
}
