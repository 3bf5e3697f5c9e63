// Package arena provides region allocators whose memory is reclaimed as a
// unit. Nothing allocated here is ever freed individually.
package arena

import (
	"fmt"
	"math/bits"

	"fortio.org/safecast"
)

const (
	slabMinShift = 4
	slabMinLen   = 1 << slabMinShift
)

// Handle is a compressed reference to a value in an Arena.
// It equals one plus the number of values allocated before it, so the zero
// Handle is nil.
type Handle[T any] uint32

func (h Handle[T]) IsNil() bool { return h == 0 }

// In dereferences h in the arena that allocated it.
func (h Handle[T]) In(a *Arena[T]) *T { return a.At(h) }

// Arena stores values in slabs that never move, so pointers returned by At
// stay valid for the arena's lifetime. Slab n holds slabMinLen<<n values.
//
// The zero Arena is ready to use.
type Arena[T any] struct {
	slabs [][]T
	n     int
}

// New copies value into the arena and returns its handle.
func (a *Arena[T]) New(value T) Handle[T] {
	if len(a.slabs) == 0 {
		a.slabs = [][]T{make([]T, 0, slabMinLen)}
	}
	last := &a.slabs[len(a.slabs)-1]
	if len(*last) == cap(*last) {
		a.slabs = append(a.slabs, make([]T, 0, 2*cap(*last)))
		last = &a.slabs[len(a.slabs)-1]
	}
	*last = append(*last, value)
	a.n++
	h, err := safecast.Conv[uint32](a.n)
	if err != nil {
		panic(fmt.Errorf("arena: too many values: %w", err))
	}
	return Handle[T](h)
}

// At returns a stable pointer to the value behind h. A nil or foreign handle panics.
func (a *Arena[T]) At(h Handle[T]) *T {
	idx := int(h) - 1
	if idx < 0 || idx >= a.n {
		panic(fmt.Sprintf("arena: handle out of range: %d", h))
	}
	// slab k starts at (2^k - 1) * slabMinLen
	slab := bits.UintSize - bits.LeadingZeros(uint(idx)+slabMinLen) - (slabMinShift + 1)
	idx -= (slabMinLen << slab) - slabMinLen
	return &a.slabs[slab][idx]
}

// Len returns the number of values allocated so far.
func (a *Arena[T]) Len() int { return a.n }

// All calls yield for every value in allocation order.
func (a *Arena[T]) All(yield func(Handle[T], *T) bool) {
	h := Handle[T](0)
	for _, slab := range a.slabs {
		for i := range slab {
			h++
			if !yield(h, &slab[i]) {
				return
			}
		}
	}
}

// Reset drops every value at once.
func (a *Arena[T]) Reset() {
	a.slabs = nil
	a.n = 0
}
