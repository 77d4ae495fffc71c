package slab

// Interface is the thin standard-allocator shim spec §1 calls out as an
// external collaborator: a narrow new/delete pair that forwards to a
// single slot at a time, for callers written against an allocator
// interface rather than the concrete Pool type. *Pool[T] does not satisfy
// it itself; *Adapter[T] does.
type Interface[T any] interface {
	Alloc() (*T, error)
	Free(*T) error
}

// var _ Interface[int] = (*Pool[int])(nil) would require Pool.Alloc's
// signature to match exactly; Pool.Alloc takes a construct callback that
// Interface's callers don't have, so Adapter below is the actual
// conformance point.

// Adapter narrows a *Pool[T] down to Interface[T], dropping the
// construct-callback parameter Pool.Alloc exposes. Every allocation
// leaves T at its zero value, matching a standard allocator's
// "uninitialized storage" contract.
type Adapter[T any] struct {
	pool *Pool[T]
}

// NewAdapter wraps pool as a standard-allocator Interface.
func NewAdapter[T any](pool *Pool[T]) *Adapter[T] {
	return &Adapter[T]{pool: pool}
}

// Alloc reserves a zero-valued slot.
func (a *Adapter[T]) Alloc() (*T, error) {
	return a.pool.Alloc(nil)
}

// Free returns ptr's slot to the pool.
func (a *Adapter[T]) Free(ptr *T) error {
	return a.pool.Free(ptr)
}

var _ Interface[int] = (*Adapter[int])(nil)
