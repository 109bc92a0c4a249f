package store

import (
	"context"
	"sync"
)

// Memory is an in-memory Repository.
type Memory[T any] struct {
	mu    sync.RWMutex
	items map[string]T
	order []string
}

// NewMemory creates an empty in-memory repository.
func NewMemory[T any]() *Memory[T] {
	return &Memory[T]{items: make(map[string]T)}
}

func (m *Memory[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, ok := m.items[id]
	if !ok {
		return zero, ErrNotFound
	}
	return item, nil
}

func (m *Memory[T]) Put(ctx context.Context, id string, item T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.items[id]; !exists {
		m.order = append(m.order, id)
	}
	m.items[id] = item
	return nil
}

func (m *Memory[T]) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.items[id]; !exists {
		return ErrNotFound
	}
	delete(m.items, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *Memory[T]) List(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]T, 0, len(m.order))
	for _, id := range m.order {
		result = append(result, m.items[id])
	}
	return result, nil
}
