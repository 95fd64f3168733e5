package cache

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by a FetchFn when the source of truth has no
	// record for the key. GetOrFetch never stores a value for it.
	ErrNotFound = errors.New("cache: record not found")

	// ErrInvalidResultType is returned when a cached payload cannot be decoded
	// into the requested type.
	ErrInvalidResultType = errors.New("cache: invalid result type")
)

// KeySerializer builds a cache key from a method name + arbitrary args.
// It is responsible for producing stable keys across calls.
type KeySerializer interface {
	SerializeKey(method string, args ...any) string
}

// Store is the byte level key value backend. A miss is reported with
// found == false and a nil error.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// FetchFn is the function signature GetOrFetch expects when fetching from the source of truth.
type FetchFn[T any] func(ctx context.Context) (T, error)

// CacheService exposes the typed cache operations used by the cache-aside services.
// Values are serialized with the configured Codec before reaching the Store.
type CacheService interface {
	GetValue(ctx context.Context, key string, dest any) (bool, error)
	SetValue(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}

type service struct {
	store Store
	codec Codec
}

// New wraps a Store with a Codec. A nil codec defaults to msgpack.
func New(store Store, codec Codec) CacheService {
	if codec == nil {
		codec = MsgpackCodec
	}
	return &service{store: store, codec: codec}
}

func (s *service) GetValue(ctx context.Context, key string, dest any) (bool, error) {
	data, found, err := s.store.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}
	if !found {
		return false, nil
	}
	if err := s.codec.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("%w: key %s: %v", ErrInvalidResultType, key, err)
	}
	return true, nil
}

func (s *service) SetValue(ctx context.Context, key string, value any) error {
	data, err := s.codec.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	if err := s.store.Set(ctx, key, data); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

func (s *service) Delete(ctx context.Context, key string) error {
	if err := s.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("cache delete %s: %w", key, err)
	}
	return nil
}

func (s *service) DeleteByPrefix(ctx context.Context, prefix string) error {
	if err := s.store.DeleteByPrefix(ctx, prefix); err != nil {
		return fmt.Errorf("cache delete prefix %s: %w", prefix, err)
	}
	return nil
}

// GetOrFetch is a type-safe read-through helper. On a miss it calls fetchFn and
// stores the result. Errors from fetchFn, ErrNotFound included, are returned
// without touching the cache.
func GetOrFetch[T any](ctx context.Context, service CacheService, key string, fetchFn FetchFn[T]) (T, error) {
	var cached T
	found, err := service.GetValue(ctx, key, &cached)
	if err != nil {
		var zero T
		return zero, err
	}
	if found {
		return cached, nil
	}
	return Refresh(ctx, service, key, fetchFn)
}

// Refresh skips the cache lookup, fetches from the source and stores the result.
func Refresh[T any](ctx context.Context, service CacheService, key string, fetchFn FetchFn[T]) (T, error) {
	var zero T
	value, err := fetchFn(ctx)
	if err != nil {
		return zero, err
	}
	if err := service.SetValue(ctx, key, value); err != nil {
		return zero, err
	}
	return value, nil
}
