package cart

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
)

type fakeSlots struct {
	data map[string]string
}

func newFakeSlots() *fakeSlots {
	return &fakeSlots{data: map[string]string{}}
}

func (f *fakeSlots) Set(_ context.Context, key string, value any, _ time.Duration) error {
	f.data[key] = value.(string)
	return nil
}

func (f *fakeSlots) Get(_ context.Context, key string) (string, error) {
	v, ok := f.data[key]
	if !ok {
		return "", redislib.Nil
	}
	return v, nil
}

func (f *fakeSlots) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}

func (f *fakeSlots) CartKey(userID string) string {
	return "od:cart:" + userID
}

func TestStoreRoundTrip(t *testing.T) {
	slots := newFakeSlots()
	store, err := NewStore(slots)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	userID := uuid.New()

	ledger := NewLedger()
	if err := ledger.Add(fixtureProduct("widget", "10.00"), 2); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := store.Save(context.Background(), userID, ledger); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := store.Load(context.Background(), userID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Len() != 1 || loaded.Lines()[0].Quantity != 2 {
		t.Fatalf("round trip lost data: %+v", loaded.Lines())
	}
}

func TestStoreMissingSlotIsEmptyCart(t *testing.T) {
	store, err := NewStore(newFakeSlots())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	loaded, err := store.Load(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Len() != 0 {
		t.Fatal("expected empty ledger for missing slot")
	}
}

func TestStoreCorruptSlotIsDropped(t *testing.T) {
	slots := newFakeSlots()
	store, err := NewStore(slots)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	userID := uuid.New()
	key := slots.CartKey(userID.String())
	slots.data[key] = "{corrupt"

	loaded, err := store.Load(context.Background(), userID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Len() != 0 {
		t.Fatal("corrupt slot must read as empty")
	}
	if _, ok := slots.data[key]; ok {
		t.Fatal("corrupt slot must be deleted")
	}
}

func TestStoreSaveDropsNonPositiveLines(t *testing.T) {
	slots := newFakeSlots()
	store, err := NewStore(slots)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	userID := uuid.New()

	// A snapshot written by an older client can carry zero-quantity lines.
	raw, _ := json.Marshal([]Line{{Product: fixtureProduct("ghost", "1.00"), Quantity: 0}})
	slots.data[slots.CartKey(userID.String())] = string(raw)

	loaded, err := store.Load(context.Background(), userID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Len() != 0 {
		t.Fatal("non-positive lines must be dropped on load")
	}
}
