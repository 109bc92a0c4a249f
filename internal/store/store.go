/*
Package store persists records behind a typed repository interface.

Callers read and write through Repository[T]; nothing is shared
implicitly. Two implementations exist:

  - Memory: process-local, for tests and single-run CLI use.
  - SQLite: records serialized as JSON rows, one table shared by every
    record kind.

List returns records in the order they were first stored. Put on an
existing ID replaces the record in place without moving it.
*/
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no record is stored under the requested ID.
var ErrNotFound = errors.New("store: record not found")

// Repository stores values of type T keyed by an opaque ID.
type Repository[T any] interface {
	// Get returns the record stored under id or ErrNotFound.
	Get(ctx context.Context, id string) (T, error)

	// Put creates or replaces the record stored under id.
	Put(ctx context.Context, id string, item T) error

	// Delete removes the record stored under id or returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// List returns every record in insertion order.
	List(ctx context.Context) ([]T, error)
}
