package registry

import (
	"fmt"
	"sort"

	"github.com/vk/chainforge/internal/componentid"
)

type entry[T any] struct {
	id    componentid.ID
	value T
}

// Builder collects registrations for one generation. It is not safe for
// concurrent use; the build step is single threaded.
type Builder[T any] struct {
	entries map[string]entry[T]
	frozen  bool
}

// NewBuilder creates an empty registry builder.
func NewBuilder[T any]() *Builder[T] {
	return &Builder[T]{entries: make(map[string]entry[T])}
}

// Register adds value under id. Registering the same id twice, or writing
// to a frozen builder, is an error.
func (b *Builder[T]) Register(id componentid.ID, value T) error {
	if b.frozen {
		return fmt.Errorf("cannot register '%s': registry is frozen", id)
	}
	key := id.Key()
	if _, exists := b.entries[key]; exists {
		return fmt.Errorf("'%s' is already registered", id)
	}
	b.entries[key] = entry[T]{id: id, value: value}
	return nil
}

// Contains reports whether id is already registered.
func (b *Builder[T]) Contains(id componentid.ID) bool {
	_, exists := b.entries[id.Key()]
	return exists
}

// Frozen reports whether Freeze has been called.
func (b *Builder[T]) Frozen() bool {
	return b.frozen
}

// Len returns the number of registrations so far.
func (b *Builder[T]) Len() int {
	return len(b.entries)
}

// Freeze returns the immutable registry. The builder rejects writes afterwards.
func (b *Builder[T]) Freeze() *Registry[T] {
	b.frozen = true

	ordered := make([]entry[T], 0, len(b.entries))
	index := make(map[string]int, len(b.entries))
	for _, e := range b.entries {
		ordered = append(ordered, e)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].id.Compare(ordered[j].id) < 0
	})
	for i, e := range ordered {
		index[e.id.Key()] = i
	}

	return &Registry[T]{entries: ordered, index: index}
}

// Registry is an immutable id -> value mapping, sorted by id.
type Registry[T any] struct {
	entries []entry[T]
	index   map[string]int
}

// Empty returns a registry with no entries.
func Empty[T any]() *Registry[T] {
	return NewBuilder[T]().Freeze()
}

// Get returns the value registered under exactly id.
func (r *Registry[T]) Get(id componentid.ID) (T, bool) {
	i, ok := r.index[id.Key()]
	if !ok {
		var zero T
		return zero, false
	}
	return r.entries[i].value, true
}

// Resolve returns the value whose id matches spec with the highest version.
// It never fails; an unmatched spec yields false.
func (r *Registry[T]) Resolve(spec componentid.Specification) (T, bool) {
	_, value, ok := r.ResolveID(spec)
	return value, ok
}

// ResolveID is Resolve that also reports the id that was picked.
func (r *Registry[T]) ResolveID(spec componentid.Specification) (componentid.ID, T, bool) {
	best := -1
	for i := range r.entries {
		if !spec.Matches(r.entries[i].id) {
			continue
		}
		// Version ties keep the earlier entry in id order.
		if best < 0 || r.entries[i].id.Version.Compare(r.entries[best].id.Version) > 0 {
			best = i
		}
	}
	if best < 0 {
		var zero T
		return componentid.ID{}, zero, false
	}
	return r.entries[best].id, r.entries[best].value, true
}

// IDs returns every registered id in ascending order.
func (r *Registry[T]) IDs() []componentid.ID {
	ids := make([]componentid.ID, len(r.entries))
	for i, e := range r.entries {
		ids[i] = e.id
	}
	return ids
}

// All returns every registered value in id order.
func (r *Registry[T]) All() []T {
	values := make([]T, len(r.entries))
	for i, e := range r.entries {
		values[i] = e.value
	}
	return values
}

// Len returns the number of entries.
func (r *Registry[T]) Len() int {
	return len(r.entries)
}
