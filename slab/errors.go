package slab

import "errors"

// ErrExhausted is returned by Alloc and AcquireIndex when the pool has no
// free slot: every slot is either live or already claimed by a concurrent
// allocator racing ahead of the caller.
var ErrExhausted = errors.New("slab: pool exhausted")

// ErrBadIndex is returned when an index passed to Get or ReleaseIndex
// falls outside [HeaderSlots, SlotCount). Per the protocol this
// is a caller bug, not a runtime condition; debug builds assert instead of
// returning it — see debugAssertions.
var ErrBadIndex = errors.New("slab: index out of range")

// ErrBadPointer is returned when a pointer passed to Free or IndexOf does
// not lie within this pool's backing storage, or is not aligned to a slot
// boundary.
var ErrBadPointer = errors.New("slab: pointer does not belong to this pool")

// ErrInvalidLayout is returned by New when the requested (T, S) pair
// cannot be laid out at all: S too small to fit even the header and one
// slot, or S not a whole multiple of the derived slot size.
var ErrInvalidLayout = errors.New("slab: invalid layout for requested element type and byte budget")

// ErrCapacityTooLarge is returned by New when the derived SlotCount would
// exceed what the packed control word can address. See doc.go and
// internal/atomicword for the 16-bit-per-field restriction this implies.
var ErrCapacityTooLarge = errors.New("slab: derived slot count exceeds the control word's addressable range")
