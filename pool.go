package voronoi

import (
	"fmt"

	assert "github.com/arl/assertgo"
)

// Key is a stable, generational reference into a Pool[T]. It remains valid
// across unrelated insertions and deletions in the same pool; once the slot
// it names is freed, the key is detectably stale (its generation no longer
// matches the slot's) rather than silently aliasing whatever entity is
// later allocated into that slot.
//
// This is the arena/stable-index pattern the teacher's NodePool/NodeIndex
// uses, generalized with generics and a generation counter so removal
// (which the teacher's arena never needed, since it only grew) is safe.
type Key[T any] struct {
	index uint32
	gen   uint32
}

// Valid reports whether k was ever issued by a Pool. A zero Key is never
// valid; it is the natural "unset" value for optional fields such as a
// half-edge's origin vertex.
func (k Key[T]) Valid() bool {
	return k.gen != 0
}

// String renders k as "index:generation", primarily for use as a map or
// graph-vertex key elsewhere in the module.
func (k Key[T]) String() string {
	return fmt.Sprintf("%d:%d", k.index, k.gen)
}

type slot[T any] struct {
	value    T
	gen      uint32
	occupied bool
}

// Pool is a generational arena of T, used for DCEL faces/vertices/
// half-edges, beachline tree nodes, and priority-queue slots. Entries are
// referenced by Key[T], never by direct pointer, so that cycles (twin/
// prev/next, parent/child, etc.) are expressible without reference
// counting.
type Pool[T any] struct {
	slots []slot[T]
	free  []uint32
}

// NewPool returns an empty pool.
func NewPool[T any]() *Pool[T] {
	return &Pool[T]{}
}

// Insert adds value to the pool and returns its key.
func (p *Pool[T]) Insert(value T) Key[T] {
	if n := len(p.free); n > 0 {
		idx := p.free[n-1]
		p.free = p.free[:n-1]
		s := &p.slots[idx]
		s.value = value
		s.occupied = true
		return Key[T]{index: idx, gen: s.gen}
	}
	idx := uint32(len(p.slots))
	p.slots = append(p.slots, slot[T]{value: value, gen: 1, occupied: true})
	return Key[T]{index: idx, gen: 1}
}

// Get returns the value at k and true, or the zero value and false if k is
// stale or out of range.
func (p *Pool[T]) Get(k Key[T]) (T, bool) {
	var zero T
	if !k.Valid() || int(k.index) >= len(p.slots) {
		return zero, false
	}
	s := &p.slots[k.index]
	if !s.occupied || s.gen != k.gen {
		return zero, false
	}
	return s.value, true
}

// MustGet returns the value at k, panicking if k is stale. Used internally
// where the DCEL/beachline's own invariants guarantee k is live; a panic
// here indicates a bug in this package, not malformed input.
func (p *Pool[T]) MustGet(k Key[T]) T {
	v, ok := p.Get(k)
	if !ok {
		panic("voronoi: stale or invalid pool key")
	}
	return v
}

// Set overwrites the value at k in place, preserving the key's identity.
// Reports false if k is stale.
func (p *Pool[T]) Set(k Key[T], value T) bool {
	if !k.Valid() || int(k.index) >= len(p.slots) {
		return false
	}
	s := &p.slots[k.index]
	if !s.occupied || s.gen != k.gen {
		return false
	}
	s.value = value
	return true
}

// MustSet overwrites the value at k, panicking if k is stale.
func (p *Pool[T]) MustSet(k Key[T], value T) {
	if !p.Set(k, value) {
		panic("voronoi: stale or invalid pool key")
	}
}

// Remove frees the slot at k, bumping its generation so outstanding copies
// of k become detectably stale. No-op if k is already stale.
func (p *Pool[T]) Remove(k Key[T]) {
	if !k.Valid() || int(k.index) >= len(p.slots) {
		return
	}
	s := &p.slots[k.index]
	if !s.occupied || s.gen != k.gen {
		return
	}
	var zero T
	s.value = zero
	s.occupied = false
	s.gen++
	assert.True(s.gen != 0, "pool: generation counter wrapped for slot %d", k.index)
	p.free = append(p.free, k.index)
}

// Len returns the number of live entries in the pool.
func (p *Pool[T]) Len() int {
	return len(p.slots) - len(p.free)
}

// Keys returns the keys of every live entry, in allocation order.
func (p *Pool[T]) Keys() []Key[T] {
	keys := make([]Key[T], 0, p.Len())
	for i := range p.slots {
		s := &p.slots[i]
		if s.occupied {
			keys = append(keys, Key[T]{index: uint32(i), gen: s.gen})
		}
	}
	return keys
}
