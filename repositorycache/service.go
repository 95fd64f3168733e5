package repositorycache

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-progeny-cache/cache"
	"github.com/goliatone/go-progeny-cache/store"
)

const listSuffix = "_list"

// Service serves one entity kind through the cache-aside protocol: reads
// check the cache and fall back to the database, writes commit first and then
// evict the affected keys.
type Service[T any] struct {
	repo   store.Repository[T]
	cache  cache.CacheService
	keys   cache.KeySerializer
	def    Definition[T]
	views  map[string]ListView[T]
	logger zerolog.Logger
}

// Option configures a Service.
type Option func(*options)

type options struct {
	keys   cache.KeySerializer
	logger zerolog.Logger
}

// WithKeySerializer replaces the default key serializer.
func WithKeySerializer(keys cache.KeySerializer) Option {
	return func(o *options) {
		if keys != nil {
			o.keys = keys
		}
	}
}

// WithLogger sets the logger used for eviction and invalidation messages.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// New creates a Service for the repository. def.ID and def.IDColumn are required.
func New[T any](repo store.Repository[T], cacheService cache.CacheService, def Definition[T], opts ...Option) *Service[T] {
	o := options{
		keys:   cache.NewDefaultKeySerializer(),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	if def.Tag == "" {
		def.Tag = defaultTag[T]()
	}

	views := make(map[string]ListView[T], len(def.Views))
	for _, v := range def.Views {
		if len(v.Order) == 0 {
			v.Order = []store.SelectCriteria{store.OrderBy(def.IDColumn, false)}
		}
		views[v.Name] = v
	}

	return &Service[T]{
		repo:   repo,
		cache:  cacheService,
		keys:   o.keys,
		def:    def,
		views:  views,
		logger: o.logger.With().Str("entity", def.Tag).Logger(),
	}
}

// Tag returns the key namespace of the entity.
func (s *Service[T]) Tag() string {
	return s.def.Tag
}

// Get returns the record with the given id, or nil when there is none.
// Absent records are never cached.
func (s *Service[T]) Get(ctx context.Context, id int) (*T, error) {
	key := s.itemKey(id)
	fetch := func(ctx context.Context) (*T, error) {
		record, err := s.repo.Get(ctx, store.Where(s.def.IDColumn, id))
		if errors.Is(err, store.ErrNotFound) {
			return nil, cache.ErrNotFound
		}
		return record, err
	}

	record, err := read(ctx, s.cache, key, fetch)
	if errors.Is(err, cache.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s get %d: %w", s.def.Tag, id, err)
	}
	return record, nil
}

// GetList returns the records of the default view for owner. The result is
// never nil; an empty list is cached like any other.
func (s *Service[T]) GetList(ctx context.Context, owner any) ([]*T, error) {
	return s.GetListBy(ctx, DefaultView, owner)
}

// GetListBy returns the records of the named view for value.
func (s *Service[T]) GetListBy(ctx context.Context, view string, value any) ([]*T, error) {
	v, ok := s.views[view]
	if !ok {
		return nil, fmt.Errorf("%s: unknown list view %q", s.def.Tag, view)
	}
	value = v.normalize(value)

	key := s.listKey(v, value)
	fetch := func(ctx context.Context) ([]*T, error) {
		criteria := append([]store.SelectCriteria{v.Where(value)}, v.Order...)
		records, err := s.repo.List(ctx, criteria...)
		if err != nil {
			return nil, err
		}
		if v.Match == nil {
			return records, nil
		}
		matched := make([]*T, 0, len(records))
		for _, r := range records {
			if v.Match(r, value) {
				matched = append(matched, r)
			}
		}
		return matched, nil
	}

	records, err := read(ctx, s.cache, key, fetch)
	if err != nil {
		return nil, fmt.Errorf("%s list %s: %w", s.def.Tag, key, err)
	}
	if records == nil {
		records = []*T{}
	}
	return records, nil
}

// Add persists a new record and evicts the lists it joins. The record's
// own key is left for the next Get to populate.
func (s *Service[T]) Add(ctx context.Context, record *T) (*T, error) {
	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("%s add: %w", s.def.Tag, err)
	}
	return created, s.evict(ctx, "", s.listKeys(created))
}

// Update persists record and evicts its key together with the lists of both
// the stored and the new version. An eviction error is returned alongside the
// committed record.
func (s *Service[T]) Update(ctx context.Context, record *T) (*T, error) {
	id := s.def.ID(record)

	previous, err := s.repo.Get(ctx, store.Where(s.def.IDColumn, id))
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%s update %d: %w", s.def.Tag, id, err)
	}

	updated, err := s.repo.Update(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("%s update %d: %w", s.def.Tag, id, err)
	}

	keys := s.listKeys(updated)
	if previous != nil {
		keys = append(keys, s.listKeys(previous)...)
	}
	return updated, s.evict(ctx, s.itemKey(id), keys)
}

// Delete removes record and evicts its key and lists.
func (s *Service[T]) Delete(ctx context.Context, record *T) error {
	id := s.def.ID(record)
	if err := s.repo.Delete(ctx, record); err != nil {
		return fmt.Errorf("%s delete %d: %w", s.def.Tag, id, err)
	}
	return s.evict(ctx, s.itemKey(id), s.listKeys(record))
}

// Invalidate drops every cached key of the entity.
func (s *Service[T]) Invalidate(ctx context.Context) error {
	for _, prefix := range []string{s.def.Tag + cache.KeySeparator, s.def.Tag + listSuffix} {
		if err := s.cache.DeleteByPrefix(ctx, prefix); err != nil {
			return fmt.Errorf("%s invalidate: %w", s.def.Tag, err)
		}
	}
	s.logger.Debug().Msg("cache invalidated")
	return nil
}

func read[V any](ctx context.Context, svc cache.CacheService, key string, fetch cache.FetchFn[V]) (V, error) {
	if cacheBypassed(ctx) {
		return cache.Refresh(ctx, svc, key, fetch)
	}
	return cache.GetOrFetch(ctx, svc, key, fetch)
}

func (s *Service[T]) itemKey(id int) string {
	return s.keys.SerializeKey(s.def.Tag, id)
}

func (s *Service[T]) listKey(v ListView[T], value any) string {
	prefix := s.def.Tag + listSuffix
	if v.Name != DefaultView {
		prefix += "_" + v.Name
	}
	return s.keys.SerializeKey(prefix, value)
}

// listKeys returns the key of every list record belongs to.
func (s *Service[T]) listKeys(record *T) []string {
	var keys []string
	for _, v := range s.views {
		if v.Values == nil {
			continue
		}
		for _, value := range v.Values(record) {
			keys = append(keys, s.listKey(v, v.normalize(value)))
		}
	}
	return keys
}

func (s *Service[T]) evict(ctx context.Context, itemKey string, listKeys []string) error {
	keys := listKeys
	if itemKey != "" {
		keys = append([]string{itemKey}, listKeys...)
	}

	seen := make(map[string]struct{}, len(keys))
	var errs []error
	for _, key := range keys {
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		if err := s.cache.Delete(ctx, key); err != nil {
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		s.logger.Error().Err(err).Strs("keys", keys).Msg("cache eviction failed")
		return fmt.Errorf("%s evict: %w", s.def.Tag, err)
	}
	s.logger.Debug().Strs("keys", keys).Msg("cache evicted")
	return nil
}
