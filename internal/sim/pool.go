package sim

import "iter"

// Pool is an ordered list of entities with stable in-place removal.
// Games keep bullets, enemies, coins and particles in pools and cull them
// once per step, so iteration never observes a half-removed list.
type Pool[T any] struct {
	items []T
}

// NewPool creates a pool with room for capacity entities.
func NewPool[T any](capacity int) *Pool[T] {
	return &Pool[T]{items: make([]T, 0, capacity)}
}

// Add appends an entity.
func (p *Pool[T]) Add(item T) {
	p.items = append(p.items, item)
}

// Len returns the number of live entities.
func (p *Pool[T]) Len() int { return len(p.items) }

// All yields index and pointer for each entity.
func (p *Pool[T]) All() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for i := range p.items {
			if !yield(i, &p.items[i]) {
				return
			}
		}
	}
}

// Each calls fn for every entity.
func (p *Pool[T]) Each(fn func(*T)) {
	for i := range p.items {
		fn(&p.items[i])
	}
}

// RemoveIf drops every entity for which drop returns true, preserving order.
// It returns the number of removed entities.
func (p *Pool[T]) RemoveIf(drop func(*T) bool) int {
	kept := p.items[:0]
	for i := range p.items {
		if !drop(&p.items[i]) {
			kept = append(kept, p.items[i])
		}
	}
	removed := len(p.items) - len(kept)
	var zero T
	for i := len(kept); i < len(p.items); i++ {
		p.items[i] = zero
	}
	p.items = kept
	return removed
}

// Clear removes every entity, keeping capacity.
func (p *Pool[T]) Clear() {
	clear(p.items)
	p.items = p.items[:0]
}

// Replace swaps the pool contents for items.
func (p *Pool[T]) Replace(items []T) {
	p.items = append(p.items[:0], items...)
}
