package products

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/oakhollow/orderdesk-backend/pkg/db/models"
	"github.com/oakhollow/orderdesk-backend/pkg/enums"
	pkgerrors "github.com/oakhollow/orderdesk-backend/pkg/errors"
	"github.com/oakhollow/orderdesk-backend/pkg/logger"
	"github.com/oakhollow/orderdesk-backend/pkg/pagination"
)

// defaultUnit backfills the unit column when a request leaves it blank.
const defaultUnit = "piece"

// CacheInvalidator drops the shared catalog snapshot after a write.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// Service exposes admin product management operations.
type Service interface {
	Create(ctx context.Context, input CreateProductInput) (*models.Product, error)
	Update(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*models.Product, error)
	Duplicate(ctx context.Context, productID uuid.UUID) (*models.Product, error)
	ChangeStatus(ctx context.Context, productID uuid.UUID, status enums.ProductStatus) (*models.Product, error)
	Delete(ctx context.Context, productID uuid.UUID) error
	Get(ctx context.Context, productID uuid.UUID) (*models.Product, error)
	List(ctx context.Context, filter ListFilter, params pagination.Params) ([]models.Product, string, error)
}

type service struct {
	repo  Repository
	cache CacheInvalidator
	logg  *logger.Logger
}

// NewService builds the product admin service.
func NewService(repo Repository, cache CacheInvalidator, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	return &service{repo: repo, cache: cache, logg: logg}, nil
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}
	if input.Stock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock must not be negative")
	}
	status := input.Status
	if status == "" {
		status = enums.ProductStatusActive
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown product status")
	}
	unit := strings.TrimSpace(input.Unit)
	if unit == "" {
		unit = defaultUnit
	}

	product := &models.Product{
		Name:          strings.TrimSpace(input.Name),
		Brand:         input.Brand,
		Series:        input.Series,
		Model:         input.Model,
		Color:         input.Color,
		Barcode:       input.Barcode,
		Description:   input.Description,
		Price:         input.Price,
		RetailPrice:   input.RetailPrice,
		DealerPrice:   input.DealerPrice,
		Unit:          unit,
		Stock:         input.Stock,
		Status:        status,
		Category:      input.Category,
		TableSettings: input.TableSettings,
	}
	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	s.invalidate(ctx)
	return created, nil
}

func (s *service) Update(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
		}
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Brand != nil {
		product.Brand = input.Brand
	}
	if input.Series != nil {
		product.Series = input.Series
	}
	if input.Model != nil {
		product.Model = input.Model
	}
	if input.Color != nil {
		product.Color = input.Color
	}
	if input.Barcode != nil {
		product.Barcode = input.Barcode
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
		}
		product.Price = *input.Price
	}
	if input.RetailPrice != nil {
		product.RetailPrice = input.RetailPrice
	}
	if input.DealerPrice != nil {
		product.DealerPrice = input.DealerPrice
	}
	if input.Unit != nil && strings.TrimSpace(*input.Unit) != "" {
		product.Unit = strings.TrimSpace(*input.Unit)
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock must not be negative")
		}
		product.Stock = *input.Stock
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown product status")
		}
		product.Status = *input.Status
	}
	if input.Category != nil {
		product.Category = input.Category
	}
	if input.TableSettings != nil {
		product.TableSettings = *input.TableSettings
	}

	updated, err := s.repo.Save(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	s.invalidate(ctx)
	return updated, nil
}

// Duplicate creates a fresh product carrying every field of the source
// except identity, barcode and timestamps. The copy always starts active.
func (s *service) Duplicate(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	source, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	copyRow := *source
	copyRow.ID = uuid.Nil
	copyRow.Barcode = nil
	copyRow.Status = enums.ProductStatusActive
	copyRow.CreatedAt = time.Time{}
	copyRow.UpdatedAt = time.Time{}

	created, err := s.repo.Create(ctx, &copyRow)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "duplicate product")
	}
	s.invalidate(ctx)
	return created, nil
}

func (s *service) ChangeStatus(ctx context.Context, productID uuid.UUID, status enums.ProductStatus) (*models.Product, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown product status")
	}
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	product.Status = status
	updated, err := s.repo.Save(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "change product status")
	}
	s.invalidate(ctx)
	return updated, nil
}

// Delete removes the product permanently. Historical order items keep their
// snapshot and lose only the product reference.
func (s *service) Delete(ctx context.Context, productID uuid.UUID) error {
	if err := s.repo.Delete(ctx, productID); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *service) Get(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	return s.repo.FindByID(ctx, productID)
}

func (s *service) List(ctx context.Context, filter ListFilter, params pagination.Params) ([]models.Product, string, error) {
	return s.repo.List(ctx, filter, params)
}

func (s *service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "catalog cache invalidation failed")
	}
}

// ParsePrice converts an optional request string into a decimal, guarding
// against malformed input at the boundary.
func ParsePrice(value string) (decimal.Decimal, error) {
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "invalid price")
	}
	return parsed, nil
}
