// Package localstore persists per-session state snapshots as JSON documents.
// It is deliberately forgiving: a missing or corrupt snapshot rehydrates to
// nothing instead of failing the caller.
package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"time"

	"github.com/novamart/storefront-backend/pkg/redis"
)

type kv interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

// Store reads and writes JSON snapshots keyed by session.
type Store struct {
	kv  kv
	ttl time.Duration
}

// New builds a snapshot store over the provided key/value client.
func New(kv kv, ttl time.Duration) *Store {
	return &Store{kv: kv, ttl: ttl}
}

// Save marshals value and writes it under key with the configured TTL.
func (s *Store) Save(ctx context.Context, key string, value any) error {
	if s == nil || s.kv == nil {
		return errors.New("localstore not initialized")
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, key, string(payload), s.ttl)
}

// Load unmarshals the snapshot at key into dest, which must be a non-nil
// pointer. It reports false when no usable snapshot exists; an unparsable or
// wrong-shaped payload is dropped whole, so dest never holds the well-formed
// prefix of a corrupt document.
func (s *Store) Load(ctx context.Context, key string, dest any) (bool, error) {
	if s == nil || s.kv == nil {
		return false, errors.New("localstore not initialized")
	}
	target := reflect.ValueOf(dest)
	if target.Kind() != reflect.Pointer || target.IsNil() {
		return false, errors.New("localstore: dest must be a non-nil pointer")
	}
	payload, err := s.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, redis.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	decoded := reflect.New(target.Elem().Type())
	if err := json.Unmarshal([]byte(payload), decoded.Interface()); err != nil {
		_ = s.kv.Del(ctx, key)
		return false, nil
	}
	target.Elem().Set(decoded.Elem())
	return true, nil
}

// Delete removes the snapshot at key.
func (s *Store) Delete(ctx context.Context, key string) error {
	if s == nil || s.kv == nil {
		return errors.New("localstore not initialized")
	}
	return s.kv.Del(ctx, key)
}
