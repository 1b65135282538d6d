package drafts

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"

	"github.com/oakhollow/orderdesk-backend/pkg/config"
	pkgerrors "github.com/oakhollow/orderdesk-backend/pkg/errors"
)

// Draft is one autosaved working document. The payload is opaque to the
// server: whatever form state the client snapshots is stored verbatim and
// returned verbatim.
type Draft struct {
	DocID   string          `json:"docId"`
	Payload json.RawMessage `json:"payload"`
	SavedAt time.Time       `json:"savedAt"`
}

type slotStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	Keys(ctx context.Context, pattern string) ([]string, error)
	DraftKey(userID, docID string) string
	DraftPattern(userID string) string
}

// Service persists per-user draft slots in Redis. Each save replaces the
// whole slot; there is no merging of concurrent edits, last writer wins.
type Service struct {
	slots slotStore
	ttl   time.Duration
}

// NewService builds the draft service.
func NewService(slots slotStore, cfg config.DraftsConfig) (*Service, error) {
	if slots == nil {
		return nil, errors.New("redis client is required")
	}
	return &Service{slots: slots, ttl: cfg.TTL}, nil
}

// Save stores the payload under the user's slot for docID, stamping SavedAt.
func (s *Service) Save(ctx context.Context, userID uuid.UUID, docID string, payload json.RawMessage) (*Draft, error) {
	if docID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "draft document id is required")
	}
	if len(payload) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "draft payload is required")
	}
	draft := Draft{
		DocID:   docID,
		Payload: payload,
		SavedAt: time.Now().UTC(),
	}
	encoded, err := json.Marshal(draft)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode draft")
	}
	if err := s.slots.Set(ctx, s.slots.DraftKey(userID.String(), docID), string(encoded), s.ttl); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save draft")
	}
	return &draft, nil
}

// Get returns the draft stored for docID. A missing slot returns a nil draft
// with no error; a corrupt slot is deleted and treated as missing.
func (s *Service) Get(ctx context.Context, userID uuid.UUID, docID string) (*Draft, error) {
	key := s.slots.DraftKey(userID.String(), docID)
	raw, err := s.slots.Get(ctx, key)
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load draft")
	}
	var draft Draft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		_ = s.slots.Del(ctx, key)
		return nil, nil
	}
	return &draft, nil
}

// List returns every live draft the user owns, most recently saved first.
// Corrupt slots are dropped along the way.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]Draft, error) {
	keys, err := s.slots.Keys(ctx, s.slots.DraftPattern(userID.String()))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list drafts")
	}

	out := make([]Draft, 0, len(keys))
	for _, key := range keys {
		raw, err := s.slots.Get(ctx, key)
		if err != nil {
			if errors.Is(err, redislib.Nil) {
				continue
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list drafts")
		}
		var draft Draft
		if err := json.Unmarshal([]byte(raw), &draft); err != nil {
			_ = s.slots.Del(ctx, key)
			continue
		}
		out = append(out, draft)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SavedAt.After(out[j].SavedAt) })
	return out, nil
}

// Delete removes the draft slot, if any. Deleting an absent slot is a no-op.
func (s *Service) Delete(ctx context.Context, userID uuid.UUID, docID string) error {
	if err := s.slots.Del(ctx, s.slots.DraftKey(userID.String(), docID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete draft")
	}
	return nil
}
