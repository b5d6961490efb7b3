package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	pkgerrors "github.com/rlipkart/storefront-backend/pkg/errors"
	"github.com/rlipkart/storefront-backend/pkg/redis"
)

// keyValueStore is the slice of the redis client the cart store needs.
type keyValueStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	CartKey(ownerID string) string
}

// Store persists per-owner cart snapshots as JSON in Redis. Owners are
// either user ids or guest tokens; the caller decides which.
type Store struct {
	kv  keyValueStore
	ttl time.Duration
}

// NewStore builds a cart store. ttl bounds how long an untouched cart
// survives.
func NewStore(kv keyValueStore, ttl time.Duration) (*Store, error) {
	if kv == nil {
		return nil, fmt.Errorf("cart store requires a redis client")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("cart ttl must be positive")
	}
	return &Store{kv: kv, ttl: ttl}, nil
}

// Load returns the owner's cart, or an empty cart when none is stored.
func (s *Store) Load(ctx context.Context, ownerID string) (*Cart, error) {
	raw, err := s.kv.Get(ctx, s.kv.CartKey(ownerID))
	if err != nil {
		if redis.IsNil(err) {
			return &Cart{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis: load cart")
	}
	var c Cart
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode cart snapshot")
	}
	return &c, nil
}

// Save overwrites the owner's cart snapshot and refreshes its TTL.
func (s *Store) Save(ctx context.Context, ownerID string, c *Cart) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart snapshot")
	}
	if err := s.kv.Set(ctx, s.kv.CartKey(ownerID), payload, s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis: save cart")
	}
	return nil
}

// Delete removes the owner's cart snapshot.
func (s *Store) Delete(ctx context.Context, ownerID string) error {
	if err := s.kv.Del(ctx, s.kv.CartKey(ownerID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis: delete cart")
	}
	return nil
}
