package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
)

type cartStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

type cartKeyer interface {
	CartKey(userID string) string
}

// Item is the persisted cart line. Only the product reference and quantity
// are stored; prices are resolved against the catalog on every read.
type Item struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}

// Store persists per-user carts in Redis under a TTL.
type Store struct {
	store cartStore
	keyer cartKeyer
	ttl   time.Duration
}

// NewStore builds a Redis-backed cart store.
func NewStore(store cartStore, keyer cartKeyer, ttl time.Duration) (*Store, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store backend required")
	}
	if keyer == nil {
		return nil, fmt.Errorf("cart keyer required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("cart ttl must be positive")
	}
	return &Store{store: store, keyer: keyer, ttl: ttl}, nil
}

// Load returns the user's cart items. A missing key is an empty cart.
func (s *Store) Load(ctx context.Context, userID uuid.UUID) ([]Item, error) {
	raw, err := s.store.Get(ctx, s.keyer.CartKey(userID.String()))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading cart: %w", err)
	}

	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decoding cart: %w", err)
	}
	return items, nil
}

// Save replaces the user's cart, refreshing the TTL. Saving an empty cart
// deletes the key instead.
func (s *Store) Save(ctx context.Context, userID uuid.UUID, items []Item) error {
	key := s.keyer.CartKey(userID.String())
	if len(items) == 0 {
		return s.store.Del(ctx, key)
	}

	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding cart: %w", err)
	}
	if err := s.store.Set(ctx, key, string(payload), s.ttl); err != nil {
		return fmt.Errorf("saving cart: %w", err)
	}
	return nil
}

// Clear drops the user's cart entirely.
func (s *Store) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.store.Del(ctx, s.keyer.CartKey(userID.String()))
}
