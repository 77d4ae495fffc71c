package slab

import "go.uber.org/atomic"

// Owned is a single-owner handle over a Pool-allocated value, restoring
// original_source/'s make_unique: a smart pointer whose deleter calls
// back into the pool that produced it. Close is idempotent — calling it
// twice is a no-op, not a double-free.
type Owned[T any] struct {
	ptr     *T
	release func(*T)
	closed  atomic.Bool
}

// NewOwned wraps ptr so that closing the handle calls release exactly
// once. Pool.Deleter is the usual release function.
func NewOwned[T any](ptr *T, release func(*T)) *Owned[T] {
	return &Owned[T]{ptr: ptr, release: release}
}

// Get returns the wrapped pointer, or nil if the handle has been closed.
func (o *Owned[T]) Get() *T {
	if o.closed.Load() {
		return nil
	}
	return o.ptr
}

// Close releases the underlying slot. Safe to call more than once; only
// the first call has any effect.
func (o *Owned[T]) Close() error {
	if !o.closed.CompareAndSwap(false, true) {
		return nil
	}
	o.release(o.ptr)
	return nil
}

// Shared is an atomic-refcounted handle over a Pool-allocated value,
// restoring original_source/'s make_shared. The underlying slot is freed
// when the last clone is released.
type Shared[T any] struct {
	ptr     *T
	release func(*T)
	refs    *atomic.Int64
}

// NewShared wraps ptr in a refcounted handle with an initial refcount of
// one. release is called exactly once, when the refcount reaches zero.
func NewShared[T any](ptr *T, release func(*T)) *Shared[T] {
	refs := atomic.NewInt64(1)
	return &Shared[T]{ptr: ptr, release: release, refs: refs}
}

// Get returns the wrapped pointer. Valid until the last Release.
func (s *Shared[T]) Get() *T { return s.ptr }

// Clone increments the refcount and returns a new handle referencing the
// same slot; both handles must be independently Release'd.
func (s *Shared[T]) Clone() *Shared[T] {
	s.refs.Inc()
	return &Shared[T]{ptr: s.ptr, release: s.release, refs: s.refs}
}

// Release decrements the refcount, freeing the underlying slot when it
// reaches zero. Calling Release on a handle more times than it was
// cloned (plus one) is a caller bug, mirroring a double-free.
func (s *Shared[T]) Release() error {
	if s.refs.Dec() == 0 {
		s.release(s.ptr)
	}
	return nil
}

// RefCount reports the current number of live handles sharing this slot.
func (s *Shared[T]) RefCount() int64 { return s.refs.Load() }
