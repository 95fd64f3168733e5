// Package repositorycache implements the cache-aside protocol shared by every
// entity service.
//
// # Overview
//
// Service[T] wraps a store.Repository[T] and a cache.CacheService. A
// Definition[T] tells it how the entity is keyed (tag and id column) and which
// cached lists a record appears in (ListView).
//
//	friends := repositorycache.New[models.Friend](repo, cacheService, repositorycache.Definition[models.Friend]{
//		ID:       func(f *models.Friend) int { return f.FriendId },
//		IDColumn: "friend_id",
//		Views: []repositorycache.ListView[models.Friend]{{
//			Values: func(f *models.Friend) []any { return []any{f.ProgenyId} },
//			Where:  func(v any) store.SelectCriteria { return store.Where("progeny_id", v) },
//		}},
//	})
//
// # Keys
//
// Items live under "{tag}::{id}", lists under "{tag}_list::{value}" and named
// views under "{tag}_list_{view}::{value}". The tag defaults to the snake cased
// type name, so distinct entity kinds never share keys.
//
// # Reads
//
//  1. Look up the key
//  2. On a hit, decode and return
//  3. On a miss, query the database and store the result
//
// A missing record is returned as nil and nothing is stored, so a record
// created later is seen by the next Get. Empty lists are stored.
//
// # Writes
//
// Add, Update and Delete commit through the repository first and evict keys
// afterwards:
//
//   - Add evicts the lists the new record belongs to
//   - Update evicts the item key and the lists of the stored and new versions
//   - Delete evicts the item key and the record's lists
//
// Eviction failures are returned to the caller. The database write has already
// happened at that point; the record is returned together with the error.
//
// # Repair passes
//
// WithoutCache marks a context so reads go to the database and overwrite the
// cached value. Invalidate drops every key of the entity.
package repositorycache
