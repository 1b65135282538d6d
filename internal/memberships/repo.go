package memberships

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oakhollow/orderdesk-backend/pkg/db/models"
	pkgerrors "github.com/oakhollow/orderdesk-backend/pkg/errors"
)

// Repository defines membership persistence operations.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, membership *models.StoreUser) (*models.StoreUser, error)
	Save(ctx context.Context, membership *models.StoreUser) (*models.StoreUser, error)
	Find(ctx context.Context, storeID, userID uuid.UUID) (*models.StoreUser, error)
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]models.StoreUser, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.StoreUser, error)
	Delete(ctx context.Context, storeID, userID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a memberships repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, membership *models.StoreUser) (*models.StoreUser, error) {
	if err := r.db.WithContext(ctx).Create(membership).Error; err != nil {
		return nil, err
	}
	return membership, nil
}

func (r *repository) Save(ctx context.Context, membership *models.StoreUser) (*models.StoreUser, error) {
	if err := r.db.WithContext(ctx).Save(membership).Error; err != nil {
		return nil, err
	}
	return membership, nil
}

func (r *repository) Find(ctx context.Context, storeID, userID uuid.UUID) (*models.StoreUser, error) {
	var membership models.StoreUser
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND user_id = ?", storeID, userID).
		First(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "membership not found")
		}
		return nil, err
	}
	return &membership, nil
}

func (r *repository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]models.StoreUser, error) {
	var rows []models.StoreUser
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.StoreUser, error) {
	var rows []models.StoreUser
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) Delete(ctx context.Context, storeID, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("store_id = ? AND user_id = ?", storeID, userID).
		Delete(&models.StoreUser{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "membership not found")
	}
	return nil
}
