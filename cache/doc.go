// Package cache provides the key value cache port used by the cache-aside services.
//
// # Overview
//
// The package exports three pieces:
//
//   - Store: a byte level backend (in-process sturdyc or redis)
//   - CacheService: typed Get/Set on top of a Store through a Codec
//   - KeySerializer: builds stable keys such as "calendar_item::42"
//
// GetOrFetch and Refresh implement the read-through half of cache-aside.
// Writers never update cached values; they evict keys after the database
// commit and the next reader repopulates them.
//
// # Basic Usage
//
//	svc, err := cache.NewCacheService(cache.DefaultConfig())
//	keys := cache.NewDefaultKeySerializer()
//
//	item, err := cache.GetOrFetch(ctx, svc, keys.SerializeKey("friend", 12),
//		func(ctx context.Context) (*models.Friend, error) {
//			return repo.Get(ctx, store.Where("id", 12))
//		})
//
// # Absent records
//
// A FetchFn reports a missing record with ErrNotFound. Nothing is stored for
// it, so a record created later is visible on the next read. Empty lists are
// ordinary values and are cached.
//
// # Key Serialization
//
// Segments are joined with KeySeparator. Strings and numbers are written
// verbatim, time values as UTC RFC3339, fmt.Stringer values through String,
// slices element by element. A segment longer than the configured maximum or
// containing whitespace is replaced by its xxhash digest so keys stay safe for
// redis.
package cache
