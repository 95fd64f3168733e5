package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

// ErrNotFound is returned when no row matches the criteria.
var ErrNotFound = errors.New("store: record not found")

// SelectCriteria narrows a select query.
type SelectCriteria func(*bun.SelectQuery) *bun.SelectQuery

// Repository is the persistence port for one table. Every mutating call is
// committed before it returns.
type Repository[T any] interface {
	Get(ctx context.Context, criteria ...SelectCriteria) (*T, error)
	List(ctx context.Context, criteria ...SelectCriteria) ([]*T, error)
	Count(ctx context.Context, criteria ...SelectCriteria) (int, error)
	Create(ctx context.Context, record *T) (*T, error)
	Update(ctx context.Context, record *T) (*T, error)
	Delete(ctx context.Context, record *T) error
}

var _ Repository[struct{}] = (*BunRepository[struct{}])(nil)

// BunRepository implements Repository on top of a bun connection.
type BunRepository[T any] struct {
	db bun.IDB
}

// New returns a repository for the table mapped by T.
func New[T any](db bun.IDB) *BunRepository[T] {
	return &BunRepository[T]{db: db}
}

func (r *BunRepository[T]) Get(ctx context.Context, criteria ...SelectCriteria) (*T, error) {
	record := new(T)
	q := r.db.NewSelect().Model(record)
	for _, c := range criteria {
		q = c(q)
	}

	if err := q.Limit(1).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store get %T: %w", record, err)
	}
	return record, nil
}

// List never returns a nil slice.
func (r *BunRepository[T]) List(ctx context.Context, criteria ...SelectCriteria) ([]*T, error) {
	records := make([]*T, 0)
	q := r.db.NewSelect().Model(&records)
	for _, c := range criteria {
		q = c(q)
	}

	if err := q.Scan(ctx); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("store list %T: %w", (*T)(nil), err)
	}
	return records, nil
}

func (r *BunRepository[T]) Count(ctx context.Context, criteria ...SelectCriteria) (int, error) {
	q := r.db.NewSelect().Model((*T)(nil))
	for _, c := range criteria {
		q = c(q)
	}

	total, err := q.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("store count %T: %w", (*T)(nil), err)
	}
	return total, nil
}

// Create inserts the record and fills its database assigned primary key.
func (r *BunRepository[T]) Create(ctx context.Context, record *T) (*T, error) {
	if _, err := r.db.NewInsert().Model(record).Exec(ctx); err != nil {
		return nil, fmt.Errorf("store create %T: %w", record, err)
	}
	return record, nil
}

// Update writes every column of the row matched by the record's primary key.
func (r *BunRepository[T]) Update(ctx context.Context, record *T) (*T, error) {
	res, err := r.db.NewUpdate().Model(record).WherePK().Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("store update %T: %w", record, err)
	}
	if err := expectRows(res); err != nil {
		return nil, err
	}
	return record, nil
}

func (r *BunRepository[T]) Delete(ctx context.Context, record *T) error {
	res, err := r.db.NewDelete().Model(record).WherePK().Exec(ctx)
	if err != nil {
		return fmt.Errorf("store delete %T: %w", record, err)
	}
	return expectRows(res)
}

func expectRows(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return nil
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
