// Package atomicword packs several small counters into a single
// lock-free, CAS-able machine word.
//
// It exists because the slot manager in package slab needs to publish
// four related fields — a free-list head, a bump pointer, a live count,
// and an ABA-defeating tag — atomically as one unit. Go has no portable
// double-width CAS, so all four fields are packed into one uint64 and
// updated through a single atomic.Uint64 compare-and-swap.
package atomicword

import "go.uber.org/atomic"

// fieldBits is the width of each packed field. Four fields at 16 bits
// each exactly fill a uint64, which is the widest word sync/atomic (via
// go.uber.org/atomic) can compare-and-swap on every platform Go
// supports.
const (
	fieldBits = 16
	fieldMask = 1<<fieldBits - 1
	maxField  = fieldMask
)

// Fields is the unpacked view of a Word's four counters.
type Fields struct {
	Free  uint32 // free-list head slot index, or 0
	Next  uint32 // bump pointer: first never-used slot index
	Count uint32 // number of live slots
	Tag   uint32 // ABA-defeat counter, bumped on every publication; wraps modulo 2^16
}

func pack(f Fields) uint64 {
	return uint64(f.Free&fieldMask) |
		uint64(f.Next&fieldMask)<<fieldBits |
		uint64(f.Count&fieldMask)<<(2*fieldBits) |
		uint64(f.Tag&fieldMask)<<(3*fieldBits)
}

func unpack(v uint64) Fields {
	return Fields{
		Free:  uint32(v & fieldMask),
		Next:  uint32((v >> fieldBits) & fieldMask),
		Count: uint32((v >> (2 * fieldBits)) & fieldMask),
		Tag:   uint32((v >> (3 * fieldBits)) & fieldMask),
	}
}

// MaxField is the largest value any packed field can hold.
const MaxField = maxField

// Word is a packed (free, next, count, tag) tuple updated atomically.
// The zero Word holds all-zero fields, which matches the slot manager's
// required initial state once Next is set via Store.
type Word struct {
	v atomic.Uint64
}

// Load reads the current fields with acquire semantics, as required by
// acquireSlot's happens-before relationship with the writer that last
// released the returned slot.
func (w *Word) Load() Fields {
	return unpack(w.v.Load())
}

// Store unconditionally overwrites the word. Used only during
// construction and Clear, both of which require exclusive access.
func (w *Word) Store(f Fields) {
	w.v.Store(pack(f))
}

// CompareAndSwap attempts to publish next if the word still holds old.
// It has release semantics on success: a subsequent acquire Load by any
// goroutine observes every write this goroutine performed before the
// call.
func (w *Word) CompareAndSwap(old, next Fields) bool {
	return w.v.CompareAndSwap(pack(old), pack(next))
}
