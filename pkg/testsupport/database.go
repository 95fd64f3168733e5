package testsupport

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-progeny-cache/cache"
	"github.com/goliatone/go-progeny-cache/models"
	"github.com/goliatone/go-progeny-cache/store"
)

var dbCounter atomic.Int64

// NewTestDB opens a private in-memory sqlite database with every model table
// created. The database is closed when the test finishes.
func NewTestDB(t *testing.T) *bun.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb_%d?mode=memory&cache=shared", dbCounter.Add(1))

	db, err := store.Open(store.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := store.CreateTables(context.Background(), db, models.All()...); err != nil {
		t.Fatalf("failed to create tables: %v", err)
	}
	return db
}

// NewTestCache returns an in-process cache service with default settings.
func NewTestCache(t *testing.T) cache.CacheService {
	t.Helper()

	svc, err := cache.NewCacheService(cache.DefaultConfig())
	if err != nil {
		t.Fatalf("failed to create cache service: %v", err)
	}
	return svc
}

// Seed inserts records straight into the database, bypassing any cache.
func Seed[T any](t *testing.T, db bun.IDB, records ...*T) {
	t.Helper()

	repo := store.New[T](db)
	for _, r := range records {
		if _, err := repo.Create(context.Background(), r); err != nil {
			t.Fatalf("failed to seed %T: %v", r, err)
		}
	}
}

// CountRows returns the number of rows in the table mapped by T.
func CountRows[T any](t *testing.T, db bun.IDB, criteria ...store.SelectCriteria) int {
	t.Helper()

	n, err := store.New[T](db).Count(context.Background(), criteria...)
	if err != nil {
		t.Fatalf("failed to count %T: %v", (*T)(nil), err)
	}
	return n
}
