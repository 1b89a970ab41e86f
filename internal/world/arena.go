// Package world holds the live entity collections for one game session.
package world

// Arena is an indexed collection of one entity kind. Removals are recorded as
// tombstones and insertions are queued; both are applied by Flush, so indices
// stay valid for the whole tick.
type Arena[T any] struct {
	items   []T
	dead    []bool
	pending []T
	killed  int
}

// Spawn queues an entity; it becomes visible after the next Flush.
func (a *Arena[T]) Spawn(obj T) {
	a.pending = append(a.pending, obj)
}

// Len returns the number of slots, including ones killed this tick.
func (a *Arena[T]) Len() int {
	return len(a.items)
}

// Live returns the number of entities not killed this tick.
func (a *Arena[T]) Live() int {
	return len(a.items) - a.killed
}

// Pending returns the number of queued entities.
func (a *Arena[T]) Pending() int {
	return len(a.pending)
}

// Alive reports whether index i refers to an entity that has not been killed.
func (a *Arena[T]) Alive(i int) bool {
	return i >= 0 && i < len(a.items) && !a.dead[i]
}

// At returns a pointer to the entity at i, or nil if i is out of range or
// already killed. The pointer is valid until the next Flush.
func (a *Arena[T]) At(i int) *T {
	if !a.Alive(i) {
		return nil
	}
	return &a.items[i]
}

// Kill marks the entity at i for removal. Returns false if i is stale.
func (a *Arena[T]) Kill(i int) bool {
	if !a.Alive(i) {
		return false
	}
	a.dead[i] = true
	a.killed++
	return true
}

// Each calls fn for every live entity in order. Entities killed during the
// walk are skipped. If fn returns false, iteration stops early.
func (a *Arena[T]) Each(fn func(i int, obj *T) bool) {
	for i := range a.items {
		if a.dead[i] {
			continue
		}
		if !fn(i, &a.items[i]) {
			return
		}
	}
}

// Update calls fn for every live entity and kills those for which it
// returns true.
func (a *Arena[T]) Update(fn func(obj *T) (remove bool)) {
	for i := range a.items {
		if a.dead[i] {
			continue
		}
		if fn(&a.items[i]) {
			a.Kill(i)
		}
	}
}

// Flush compacts out killed entities, preserving order, then appends queued
// spawns.
func (a *Arena[T]) Flush() {
	if a.killed > 0 {
		kept := a.items[:0]
		for i := range a.items {
			if !a.dead[i] {
				kept = append(kept, a.items[i])
			}
		}
		var zero T
		for i := len(kept); i < len(a.items); i++ {
			a.items[i] = zero
		}
		a.items = kept
		a.killed = 0
	}

	a.items = append(a.items, a.pending...)
	clear(a.pending)
	a.pending = a.pending[:0]

	if cap(a.dead) < len(a.items) {
		a.dead = make([]bool, len(a.items), cap(a.items))
	} else {
		a.dead = a.dead[:len(a.items)]
		clear(a.dead)
	}
}

// Clear drops all entities, live and queued.
func (a *Arena[T]) Clear() {
	clear(a.items)
	a.items = a.items[:0]
	clear(a.pending)
	a.pending = a.pending[:0]
	a.dead = a.dead[:0]
	a.killed = 0
}

// AppendTo appends copies of the live entities to dst.
func (a *Arena[T]) AppendTo(dst []T) []T {
	for i := range a.items {
		if !a.dead[i] {
			dst = append(dst, a.items[i])
		}
	}
	return dst
}
