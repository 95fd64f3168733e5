package repositorycache

import (
	"reflect"

	"github.com/goliatone/go-progeny-cache/store"
)

// DefaultView is the name of the list view GetList reads.
const DefaultView = ""

// Definition describes how one entity kind is keyed and listed.
type Definition[T any] struct {
	// Tag namespaces every key of the entity. Defaults to the snake cased
	// type name.
	Tag string

	// ID returns the database identity of a record.
	ID func(*T) int

	// IDColumn is the primary key column.
	IDColumn string

	// Views are the cached lists a record can appear in. A view named
	// DefaultView backs GetList.
	Views []ListView[T]
}

// ListView is one cached list, keyed by a single value such as an owner id.
type ListView[T any] struct {
	Name string

	// Values returns every list value the record belongs to. The matching
	// list keys are evicted when the record changes.
	Values func(*T) []any

	// Where selects the rows of the list for value.
	Where func(value any) store.SelectCriteria

	// Match optionally drops rows Where over-selects.
	Match func(record *T, value any) bool

	// Normalize optionally maps a value to its canonical form before it is
	// used in a key, for example lower casing e-mails.
	Normalize func(value any) any

	// Order defaults to ascending IDColumn.
	Order []store.SelectCriteria
}

func (v ListView[T]) normalize(value any) any {
	if v.Normalize == nil {
		return value
	}
	return v.Normalize(value)
}

func defaultTag[T any]() string {
	return toSnake(reflect.TypeOf((*T)(nil)).Elem().Name())
}
