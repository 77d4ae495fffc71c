package slab

import (
	"sync"
	"unsafe"
)

// debugAssertions gates the programmer-error checks spec §7 allows
// implementations to assert on in debug builds and leave unspecified in
// release builds. It mirrors hivekit/hive/alloc's debugAlloc: a
// compile-time const, not a runtime flag, so the checks disappear from
// release binaries entirely rather than costing a branch.
const debugAssertions = false

// Option configures a Pool at construction time.
type Option[T any] func(*poolConfig[T])

type poolConfig[T any] struct {
	destroy func(*T)
	provide storageProvider
	onClose func() error
}

// WithDestructor registers a destroy callback invoked once per live
// element, from Free, ReleaseIndex(idx, true), and Clear. It is the Go
// realization of spec §4.3's implicit destructor call: Go has no RAII, so
// the caller supplies the teardown logic explicitly, fixed for the life
// of the Pool.
func WithDestructor[T any](fn func(*T)) Option[T] {
	return func(c *poolConfig[T]) { c.destroy = fn }
}

// BackingStore lets a caller supply the pool's raw storage instead of the
// default Go-heap byte slice. provide is called once at construction with
// the exact (size, alignment) the layout requires and must return a slice
// of exactly that length. close, if non-nil, is invoked from Pool.Close
// after Clear runs, to release the storage — see slab/mmapstore for an
// anonymous-mmap-backed implementation.
func BackingStore[T any](provide func(size, align uintptr) ([]byte, error), closeFn func() error) Option[T] {
	return func(c *poolConfig[T]) {
		c.provide = provide
		c.onClose = closeFn
	}
}

// Pool is a fixed-capacity slab allocator for values of type T. Its
// exported concurrent-safe methods — Alloc, Free, AcquireIndex,
// ReleaseIndex, Get, IndexOf, Size, Capacity, Empty, Full — never block
// and never take a lock; they're linearizable with respect to each other
// through the control word's CAS. Clear and Close require exclusive
// caller access, per spec §5 — the Pool itself enforces nothing beyond
// what that section documents.
type Pool[T any] struct {
	mgr    *slotManager
	layout Layout

	destroy func(*T)
	onClose func() error

	bitmapPool sync.Pool
}

// New constructs a Pool sized for a total byte budget of s bytes,
// including its control header. It returns ErrInvalidLayout if s cannot
// host the header plus at least one user slot, or ErrCapacityTooLarge if
// the derived slot count would overflow the packed control word — see
// doc.go.
func New[T any](s uintptr, opts ...Option[T]) (*Pool[T], error) {
	layout, err := computeLayout[T](s)
	if err != nil {
		return nil, err
	}

	cfg := poolConfig[T]{}
	for _, opt := range opts {
		opt(&cfg)
	}

	var provide storageProvider
	if cfg.provide != nil {
		provide = func(n, align uintptr) ([]byte, error) { return cfg.provide(n, align) }
	}

	mgr, err := newSlotManager(layout, provide)
	if err != nil {
		return nil, err
	}

	p := &Pool[T]{
		mgr:     mgr,
		layout:  layout,
		destroy: cfg.destroy,
		onClose: cfg.onClose,
	}
	p.bitmapPool.New = func() any {
		return make([]bool, p.layout.SlotCount)
	}
	return p, nil
}

// MustNew is like New but panics on error, for callers who treat an
// invalid (T, S) pairing as a programming error rather than a runtime
// condition — the Go analogue of spec §4.1's "rejected at compile time".
func MustNew[T any](s uintptr, opts ...Option[T]) *Pool[T] {
	p, err := New[T](s, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// Layout reports the compile-time-derived shape of the pool.
func (p *Pool[T]) Layout() Layout { return p.layout }

func (p *Pool[T]) elemAt(i SlotIndex) *T {
	return (*T)(unsafe.Pointer(&p.mgr.data[uintptr(i)*p.layout.SlotSize]))
}

// Alloc reserves a slot and constructs a T in it. If construct is
// non-nil, it is called with a pointer to the zero-valued slot; if it
// returns an error, the slot is released before Alloc returns, leaving
// the pool's state equivalent to before the call (modulo the control
// word's tag) — per spec §4.3's construction-failure rollback.
func (p *Pool[T]) Alloc(construct func(*T) error) (*T, error) {
	idx, ok := p.mgr.acquireSlot()
	if !ok {
		return nil, ErrExhausted
	}
	p.mgr.clearSlot(idx, p.layout.ElemSize)
	elem := p.elemAt(idx)
	if construct != nil {
		if err := construct(elem); err != nil {
			p.mgr.releaseSlot(idx)
			return nil, err
		}
	}
	return elem, nil
}

// Free destroys the element at ptr and returns its slot to the pool.
// ptr must have come from a prior Alloc on this Pool; violating that is
// a caller bug (spec §4.3) reported as ErrBadPointer, or asserted when
// debugAssertions is enabled.
func (p *Pool[T]) Free(ptr *T) error {
	idx, ok := p.indexOf(ptr)
	if !ok {
		if debugAssertions {
			panic(ErrBadPointer)
		}
		return ErrBadPointer
	}
	if p.destroy != nil {
		p.destroy(ptr)
	}
	p.mgr.releaseSlot(idx)
	return nil
}

// AcquireIndex is the raw variant of Alloc: it reserves a slot without
// touching element bytes, for use by callers (such as the standard-
// allocator adapter) that manage construction themselves.
func (p *Pool[T]) AcquireIndex() (SlotIndex, error) {
	idx, ok := p.mgr.acquireSlot()
	if !ok {
		return NilSlot, ErrExhausted
	}
	return idx, nil
}

// ReleaseIndex is the raw variant of Free: it returns a slot to the pool
// without destroying anything. destroy, if true, additionally invokes the
// pool's registered destructor callback (if any) before the slot is
// released — for callers that constructed by hand via AcquireIndex but
// still want deterministic teardown.
func (p *Pool[T]) ReleaseIndex(idx SlotIndex, destroy bool) error {
	if !p.mgr.validIndex(idx) {
		if debugAssertions {
			panic(ErrBadIndex)
		}
		return ErrBadIndex
	}
	if destroy && p.destroy != nil {
		p.destroy(p.elemAt(idx))
	}
	p.mgr.releaseSlot(idx)
	return nil
}

// Get returns the pointer for a valid user slot index.
func (p *Pool[T]) Get(idx SlotIndex) (*T, error) {
	if !p.mgr.validIndex(idx) {
		if debugAssertions {
			panic(ErrBadIndex)
		}
		return nil, ErrBadIndex
	}
	return p.elemAt(idx), nil
}

// IndexOf returns the slot index for a pointer previously returned by
// Alloc or Get on this Pool.
func (p *Pool[T]) IndexOf(ptr *T) (SlotIndex, error) {
	idx, ok := p.indexOf(ptr)
	if !ok {
		if debugAssertions {
			panic(ErrBadPointer)
		}
		return NilSlot, ErrBadPointer
	}
	return idx, nil
}

func (p *Pool[T]) indexOf(ptr *T) (SlotIndex, bool) {
	base := uintptr(unsafe.Pointer(&p.mgr.data[0]))
	addr := uintptr(unsafe.Pointer(ptr))
	if addr < base {
		return NilSlot, false
	}
	off := addr - base
	if off%p.layout.SlotSize != 0 {
		return NilSlot, false
	}
	idx := SlotIndex(off / p.layout.SlotSize)
	if !p.mgr.validIndex(idx) {
		return NilSlot, false
	}
	return idx, true
}

// Size returns the number of currently live elements.
func (p *Pool[T]) Size() uint32 { return p.mgr.size() }

// Capacity returns the maximum number of simultaneously live elements.
func (p *Pool[T]) Capacity() uint32 { return p.mgr.capacity() }

// Empty reports whether Size() == 0.
func (p *Pool[T]) Empty() bool { return p.Size() == 0 }

// Full reports whether Size() == Capacity().
func (p *Pool[T]) Full() bool { return p.Size() == p.Capacity() }

// Clear destroys every live element exactly once and resets the pool to
// its initial empty state. Per spec §4.4 and §5, Clear requires exclusive
// access: no concurrent Alloc, Free, or Clear may run against the same
// Pool while this executes.
func (p *Pool[T]) Clear() {
	cur := p.mgr.header().Load()

	freeMark := p.bitmapPool.Get().([]bool)
	for i := range freeMark {
		freeMark[i] = false
	}
	defer p.bitmapPool.Put(freeMark)

	steps := uint32(0)
	for walk := SlotIndex(cur.Free); walk != NilSlot; walk = p.mgr.readLink(walk) {
		freeMark[walk] = true
		steps++
		if steps > p.layout.SlotCount {
			panic("slab: free-chain cycle detected during Clear")
		}
	}

	if p.destroy != nil {
		for i := p.layout.HeaderSlots; i < cur.Next; i++ {
			if !freeMark[i] {
				p.destroy(p.elemAt(SlotIndex(i)))
			}
		}
	}

	p.mgr.reset()
}

// Close tears the pool down, destroying any still-live elements via
// Clear, then releases the backing storage if it was supplied through
// BackingStore. It is safe to call at most once; per spec §5 it requires
// exclusive access, same as Clear.
func (p *Pool[T]) Close() error {
	p.Clear()
	if p.onClose != nil {
		return p.onClose()
	}
	return nil
}

// Push is a synonym for Alloc, restored from the original source's stack
// vocabulary (see SPEC_FULL.md's supplemented features).
func (p *Pool[T]) Push(construct func(*T) error) (*T, error) { return p.Alloc(construct) }

// Pop is a synonym for Free.
func (p *Pool[T]) Pop(ptr *T) error { return p.Free(ptr) }

// Deleter returns a bound callback equivalent to p.Free, suitable for use
// as a generic "give this back" function — e.g. by Owned and Shared
// handles, or any caller that wants a closure rather than a method value
// tied to the Pool's type parameter.
func (p *Pool[T]) Deleter() func(*T) {
	return func(ptr *T) { _ = p.Free(ptr) }
}
