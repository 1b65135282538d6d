package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"

	pkgerrors "github.com/oakhollow/orderdesk-backend/pkg/errors"
)

// cartTTL bounds how long an untouched open cart survives.
const cartTTL = 7 * 24 * time.Hour

type slotStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	CartKey(userID string) string
}

// Store persists whole-cart snapshots in Redis, one slot per user. Snapshots
// are only ever replaced wholesale, never merged.
type Store struct {
	slots slotStore
}

// NewStore builds a cart store backed by the provided Redis client.
func NewStore(slots slotStore) (*Store, error) {
	if slots == nil {
		return nil, errors.New("redis client is required")
	}
	return &Store{slots: slots}, nil
}

// Load returns the user's open cart, or an empty ledger when no slot exists.
// A corrupt snapshot is dropped and treated as a miss.
func (s *Store) Load(ctx context.Context, userID uuid.UUID) (*Ledger, error) {
	raw, err := s.slots.Get(ctx, s.slots.CartKey(userID.String()))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return NewLedger(), nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	var lines []Line
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		_ = s.slots.Del(ctx, s.slots.CartKey(userID.String()))
		return NewLedger(), nil
	}
	return FromLines(lines), nil
}

// Save replaces the user's cart slot with the ledger's current lines.
func (s *Store) Save(ctx context.Context, userID uuid.UUID, ledger *Ledger) error {
	payload, err := json.Marshal(ledger.Lines())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart")
	}
	if err := s.slots.Set(ctx, s.slots.CartKey(userID.String()), string(payload), cartTTL); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return nil
}

// Clear deletes the user's cart slot.
func (s *Store) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.slots.Del(ctx, s.slots.CartKey(userID.String())); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}
