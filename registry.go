package petri

import (
	"fmt"

	"github.com/jt05610/petri-industry/signal"
)

// Registry assigns stable ids to entities and keeps them, deleted or not, for
// the registry's whole lifetime. Ids are never reused.
type Registry[T Object] struct {
	// Changed fires when a member is added or any member changes.
	Changed signal.Notifier
	// Added fires once per newly registered member.
	Added signal.Signal[T]

	objects map[ID]T
	order   []ID
	nextID  ID
}

func NewRegistry[T Object]() *Registry[T] {
	return &Registry[T]{
		objects: make(map[ID]T),
	}
}

// Add registers obj. An entity without an id gets the next free one; an
// entity that already has an id keeps it.
func (r *Registry[T]) Add(obj T) (ID, error) {
	e := obj.Base()
	if e.HasID() {
		return e.ID(), r.AddWithID(obj, e.ID())
	}
	id := r.nextID
	r.insert(obj, id)
	return id, nil
}

// AddWithID registers obj under an explicit id, as done when rebuilding from
// persisted data. The id counter moves past id.
func (r *Registry[T]) AddWithID(obj T, id ID) error {
	if id < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidID, id)
	}
	e := obj.Base()
	if e.HasID() && e.ID() != id {
		return fmt.Errorf("%w: entity already registered as %d, not %d", ErrDuplicateID, e.ID(), id)
	}
	if existing, ok := r.objects[id]; ok {
		if existing.Base() == e {
			return nil
		}
		return fmt.Errorf("%w: %d", ErrDuplicateID, id)
	}
	r.insert(obj, id)
	return nil
}

func (r *Registry[T]) insert(obj T, id ID) {
	e := obj.Base()
	e.assignID(id)
	if id >= r.nextID {
		r.nextID = id + 1
	}
	r.objects[id] = obj
	r.order = append(r.order, id)
	e.Changed.Relay(&r.Changed)
	r.Added.Emit(obj)
	r.Changed.Notify()
}

// Get returns the member with the given id, deleted members included.
func (r *Registry[T]) Get(id ID) (T, error) {
	obj, ok := r.objects[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return obj, nil
}

// Contains reports whether obj itself is registered here.
func (r *Registry[T]) Contains(obj T) bool {
	e := obj.Base()
	if !e.HasID() {
		return false
	}
	existing, ok := r.objects[e.ID()]
	return ok && existing.Base() == e
}

// All returns the active members in insertion order.
func (r *Registry[T]) All() []T {
	ret := make([]T, 0, len(r.order))
	for _, id := range r.order {
		obj := r.objects[id]
		if obj.Base().Active() {
			ret = append(ret, obj)
		}
	}
	return ret
}

// Members returns every member in insertion order, deleted ones included.
func (r *Registry[T]) Members() []T {
	ret := make([]T, 0, len(r.order))
	for _, id := range r.order {
		ret = append(ret, r.objects[id])
	}
	return ret
}

// Len returns the number of active members.
func (r *Registry[T]) Len() int {
	n := 0
	for _, obj := range r.objects {
		if obj.Base().Active() {
			n++
		}
	}
	return n
}

// NextID returns the id the next anonymous Add will hand out.
func (r *Registry[T]) NextID() ID {
	return r.nextID
}

// Merge adds every active member of other under the id it already has. It
// only works for registries with disjoint ids: two registries filled from
// scratch both start at 0 and fail with ErrDuplicateID.
func (r *Registry[T]) Merge(other *Registry[T]) error {
	for _, obj := range other.All() {
		if _, err := r.Add(obj); err != nil {
			return err
		}
	}
	return nil
}
