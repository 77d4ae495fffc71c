// Package slab implements a fixed-capacity, lock-free slab allocator.
//
// # Overview
//
// A Pool[T] hands out and reclaims slots of a single element type from a
// contiguous, pre-sized byte region, without ever touching the general
// heap on its hot path. Free slots are threaded into a singly-linked LIFO
// list stored inside the slot memory itself; allocation and deallocation
// are lock-free, driven by a single compare-and-swap over a packed
// control word.
//
// # Layers
//
// Three layers compose a Pool, leaves first:
//
//   - Layout (layout.go): compile-time-style derivation of index width,
//     slot size, slot count, and reserved header slots from (T, S).
//   - Slot manager (control.go): the lock-free free-stack and bump
//     pointer over slot indices.
//   - Typed facade (pool.go): construction on alloc, destruction on free,
//     clear-all on teardown, index/pointer conversion.
//
// # Usage Example
//
//	p, err := slab.New[MyStruct](4096)
//	if err != nil {
//		return err
//	}
//	v, err := p.Alloc(func(v *MyStruct) error {
//		v.Name = "example"
//		return nil
//	})
//	if err != nil {
//		return err
//	}
//	defer p.Free(v)
//
// # Control Word Width
//
// The packed control word addresses at most 65535 slots; New returns
// ErrCapacityTooLarge for any (T, S) pairing that derives a slot count of
// 65536 or more. See internal/atomicword.
//
// # Thread Safety
//
// Alloc, Free, AcquireIndex, ReleaseIndex, Get, IndexOf, Size, Capacity,
// Empty, and Full are safe for concurrent use on the same Pool. Clear and
// Close require exclusive access — no concurrent caller may be inside any
// other Pool method while either runs.
//
// # Related Packages
//
// Package internal/atomicword implements the packed control word.
// Package slab/mmapstore provides an alternative, off-heap backing store
// for pools sized for very large S.
package slab
