package stores

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/oakhollow/orderdesk-backend/pkg/db/models"
	"github.com/oakhollow/orderdesk-backend/pkg/enums"
	pkgerrors "github.com/oakhollow/orderdesk-backend/pkg/errors"
)

// CreateStoreInput holds the validated payload to create a store.
type CreateStoreInput struct {
	Name          string
	ParentStoreID *uuid.UUID
	Address       *string
	Phone         *string
}

// UpdateStoreInput holds optional mutation values; nil fields stay put.
type UpdateStoreInput struct {
	Name    *string
	Address *string
	Phone   *string
	Status  *enums.StoreStatus
}

// Node is one store with its direct children attached.
type Node struct {
	models.Store
	Children []Node `json:"children,omitempty"`
}

// CreateStoreRequest is the HTTP payload for creating a store.
type CreateStoreRequest struct {
	Name          string     `json:"name" validate:"required,max=255"`
	ParentStoreID *uuid.UUID `json:"parent_store_id"`
	Address       *string    `json:"address" validate:"omitempty,max=500"`
	Phone         *string    `json:"phone" validate:"omitempty,max=32"`
}

// UpdateStoreRequest is the HTTP payload for partial store updates.
type UpdateStoreRequest struct {
	Name    *string `json:"name" validate:"omitempty,max=255"`
	Address *string `json:"address" validate:"omitempty,max=500"`
	Phone   *string `json:"phone" validate:"omitempty,max=32"`
	Status  *string `json:"status"`
}

// Service exposes store management operations.
type Service interface {
	Create(ctx context.Context, input CreateStoreInput) (*models.Store, error)
	Update(ctx context.Context, storeID uuid.UUID, input UpdateStoreInput) (*models.Store, error)
	Get(ctx context.Context, storeID uuid.UUID) (*models.Store, error)
	Tree(ctx context.Context) ([]Node, error)
	Delete(ctx context.Context, storeID uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService builds the store service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("stores repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateStoreInput) (*models.Store, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store name is required")
	}
	if input.ParentStoreID != nil {
		parent, err := s.repo.FindByID(ctx, *input.ParentStoreID)
		if err != nil {
			return nil, err
		}
		// One level of nesting: a child cannot become a parent.
		if parent.ParentStoreID != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "stores nest at most one level")
		}
	}

	store := &models.Store{
		Name:          name,
		ParentStoreID: input.ParentStoreID,
		Address:       input.Address,
		Phone:         input.Phone,
		Status:        enums.StoreStatusActive,
	}
	created, err := s.repo.Create(ctx, store)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create store")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, storeID uuid.UUID, input UpdateStoreInput) (*models.Store, error) {
	store, err := s.repo.FindByID(ctx, storeID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "store name is required")
		}
		store.Name = strings.TrimSpace(*input.Name)
	}
	if input.Address != nil {
		store.Address = input.Address
	}
	if input.Phone != nil {
		store.Phone = input.Phone
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown store status")
		}
		store.Status = *input.Status
	}

	updated, err := s.repo.Save(ctx, store)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update store")
	}
	return updated, nil
}

func (s *service) Get(ctx context.Context, storeID uuid.UUID) (*models.Store, error) {
	return s.repo.FindByID(ctx, storeID)
}

// Tree returns the store hierarchy: root stores in creation order, each with
// its children attached. Orphans whose parent is missing surface as roots.
func (s *service) Tree(ctx context.Context) ([]Node, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	known := make(map[uuid.UUID]bool, len(rows))
	for _, row := range rows {
		known[row.ID] = true
	}

	childrenOf := map[uuid.UUID][]Node{}
	roots := []Node{}
	for _, row := range rows {
		node := Node{Store: row}
		if row.ParentStoreID != nil && known[*row.ParentStoreID] {
			childrenOf[*row.ParentStoreID] = append(childrenOf[*row.ParentStoreID], node)
			continue
		}
		roots = append(roots, node)
	}
	for i := range roots {
		roots[i].Children = childrenOf[roots[i].ID]
	}
	return roots, nil
}

// Delete removes the store. Stores with children cannot be deleted.
func (s *service) Delete(ctx context.Context, storeID uuid.UUID) error {
	count, err := s.repo.CountChildren(ctx, storeID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count child stores")
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "store has child stores")
	}
	return s.repo.Delete(ctx, storeID)
}
