// Package registry provides the ordered element collections the grid
// components register into, for consumers such as hit-testing.
package registry

import "slices"

// Well-known registry names.
const (
	GridRows      = "chart-timeline-grid-rows"
	GridRowBlocks = "chart-timeline-grid-row-blocks"
)

// Registry is an insertion-ordered collection of live items compared by
// identity. It is not safe for concurrent use; all access happens on the
// UI goroutine.
type Registry[T comparable] struct {
	name  string
	items []T
}

// New creates an empty registry.
func New[T comparable](name string) *Registry[T] {
	return &Registry[T]{name: name}
}

// Name returns the registry name.
func (r *Registry[T]) Name() string {
	return r.name
}

// Add appends item. Adding an item twice stores it twice, matching
// append semantics; Remove drops every copy.
func (r *Registry[T]) Add(item T) {
	r.items = append(r.items, item)
}

// Remove drops every occurrence of item and reports whether any was found.
func (r *Registry[T]) Remove(item T) bool {
	n := len(r.items)
	r.items = slices.DeleteFunc(r.items, func(v T) bool { return v == item })
	return len(r.items) != n
}

// Contains reports whether item is registered.
func (r *Registry[T]) Contains(item T) bool {
	return slices.Contains(r.items, item)
}

// Items returns a copy of the registered items in insertion order.
func (r *Registry[T]) Items() []T {
	return slices.Clone(r.items)
}

// Len returns the number of registered items.
func (r *Registry[T]) Len() int {
	return len(r.items)
}
