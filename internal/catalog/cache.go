package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/oakhollow/orderdesk-backend/pkg/config"
	"github.com/oakhollow/orderdesk-backend/pkg/db/models"
	pkgerrors "github.com/oakhollow/orderdesk-backend/pkg/errors"
)

type cacheSlots interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	CatalogKey() string
}

// Cache holds one shared snapshot of the full product list in Redis. The
// snapshot is replaced wholesale and expires on its own; writes to the
// catalog drop it early through Invalidate.
type Cache struct {
	slots cacheSlots
	ttl   time.Duration
}

// NewCache builds the catalog snapshot cache.
func NewCache(slots cacheSlots, cfg config.CatalogConfig) (*Cache, error) {
	if slots == nil {
		return nil, errors.New("redis client is required")
	}
	return &Cache{slots: slots, ttl: cfg.CacheTTL}, nil
}

// Load returns the cached product list. The boolean reports a hit; a corrupt
// snapshot is dropped and counts as a miss.
func (c *Cache) Load(ctx context.Context) ([]models.Product, bool, error) {
	raw, err := c.slots.Get(ctx, c.slots.CatalogKey())
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, false, nil
		}
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load catalog cache")
	}
	var rows []models.Product
	if err := json.Unmarshal([]byte(raw), &rows); err != nil {
		_ = c.slots.Del(ctx, c.slots.CatalogKey())
		return nil, false, nil
	}
	return rows, true, nil
}

// Store replaces the snapshot with the provided rows.
func (c *Cache) Store(ctx context.Context, rows []models.Product) error {
	payload, err := json.Marshal(rows)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode catalog cache")
	}
	if err := c.slots.Set(ctx, c.slots.CatalogKey(), string(payload), c.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store catalog cache")
	}
	return nil
}

// Invalidate drops the snapshot so the next read refills from the database.
func (c *Cache) Invalidate(ctx context.Context) error {
	if err := c.slots.Del(ctx, c.slots.CatalogKey()); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "invalidate catalog cache")
	}
	return nil
}
