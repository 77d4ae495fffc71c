package slab

import (
	"sync/atomic"
	"unsafe"

	"github.com/kallsten/slabpool/internal/atomicword"
	"github.com/kallsten/slabpool/internal/buf"
)

// linkWordBytes is the width of the atomic word every slot reserves at
// its front for the free-chain link. Every slot is at least 8 bytes and
// 8-byte aligned — slotAlign is always at least controlHeaderAlign — so
// this window is always valid regardless of T.
const linkWordBytes = 8

// alignedBuffer returns a []byte of exactly n bytes whose address is a
// multiple of align. make([]byte, n) gives no alignment guarantee beyond
// what the allocator happens to provide for the size class, so for
// correctness we over-allocate and slice to the first aligned offset —
// the same technique a raw mmap-backed arena uses when the mapping itself
// isn't guaranteed aligned to the caller's stricter requirement.
func alignedBuffer(n, align uintptr) []byte {
	if align <= 1 {
		return make([]byte, n)
	}
	buf := make([]byte, n+align-1)
	base := uintptr(unsafe.Pointer(&buf[0]))
	offset := (align - base%align) % align
	return buf[offset : offset+n : offset+n]
}

// slotManager is the raw, untyped half of a pool: the backing bytes, the
// derived layout, and the lock-free acquire/release protocol over the
// packed control word. It never interprets slot bytes as anything but a
// free-chain link or raw storage — that is the typed facade's job.
type slotManager struct {
	data   []byte
	layout Layout
}

// storageProvider supplies the backing bytes for a slotManager, sized and
// aligned by the caller. Pool.New's default provider wraps alignedBuffer;
// the BackingStore option lets a caller substitute e.g. an mmapstore.Region.
type storageProvider func(n, align uintptr) ([]byte, error)

func defaultStorageProvider(n, align uintptr) ([]byte, error) {
	return alignedBuffer(n, align), nil
}

func newSlotManager(layout Layout, provide storageProvider) (*slotManager, error) {
	if provide == nil {
		provide = defaultStorageProvider
	}
	data, err := provide(layout.TotalBytes, layout.SlotAlign)
	if err != nil {
		return nil, err
	}
	if uintptr(len(data)) != layout.TotalBytes {
		return nil, ErrInvalidLayout
	}
	m := &slotManager{data: data, layout: layout}
	m.reset()
	return m, nil
}

func (m *slotManager) header() *atomicword.Word {
	return (*atomicword.Word)(unsafe.Pointer(&m.data[0]))
}

func (m *slotManager) slotBytes(i SlotIndex) []byte {
	off, ok := buf.MulOverflowSafe(uintptr(i), m.layout.SlotSize)
	if !ok {
		panic(ErrBadIndex)
	}
	s, ok := buf.Slice(m.data, off, m.layout.SlotSize)
	if !ok {
		panic(ErrBadIndex)
	}
	return s
}

// readLink and writeLink access a slot's free-chain link through the
// same atomic primitive on both sides. acquireSlot's free-list path
// reads a slot's link speculatively from a cur snapshot that may already
// be stale by the time the read executes — another goroutine may have
// already popped that same slot via CAS and started reusing it. The
// stale reader's CAS is guaranteed to fail and retry, so the result is
// harmless, but the read itself still touches memory another goroutine
// may concurrently write; without matching atomics on both sides that is
// a data race regardless of the eventual outcome. IndexWidth governs
// only how compactly Layout reports the link width — the physical
// storage always reserves a full linkWordBytes-wide atomic word, since
// every slot already has the room for one.
func (m *slotManager) readLink(i SlotIndex) SlotIndex {
	b := m.slotBytes(i)
	return SlotIndex(atomic.LoadUint64((*uint64)(unsafe.Pointer(&b[0]))))
}

func (m *slotManager) writeLink(i SlotIndex, next SlotIndex) {
	b := m.slotBytes(i)
	atomic.StoreUint64((*uint64)(unsafe.Pointer(&b[0])), uint64(next))
}

// clearSlot zeroes a freshly acquired slot's bytes up to elemSize. The
// leading linkWordBytes go through writeLink's atomic store rather than
// a plain write, because acquireSlot's free-list path may still be
// mid-speculative-read of those same bytes from a stale snapshot (see
// readLink above); bytes beyond the link word are never read
// speculatively and are cleared with a plain loop.
func (m *slotManager) clearSlot(i SlotIndex, elemSize uintptr) {
	m.writeLink(i, NilSlot)
	if elemSize <= linkWordBytes {
		return
	}
	tail := m.slotBytes(i)[linkWordBytes:elemSize]
	for j := range tail {
		tail[j] = 0
	}
}

// reset re-initializes the control word to the empty container state
// described in spec §3: next = HeaderSlots, free = 0, count = 0. tag is
// bumped rather than zeroed so a reset pool is distinguishable, under CAS,
// from one that merely never allocated — matching Clear's "tag += 1"
// requirement.
func (m *slotManager) reset() {
	cur := m.header().Load()
	m.header().Store(atomicword.Fields{
		Free:  uint32(NilSlot),
		Next:  m.layout.HeaderSlots,
		Count: 0,
		Tag:   cur.Tag + 1,
	})
}

// acquireSlot implements spec §4.2's acquire_slot: try the free-list head
// first, fall back to the bump pointer, report exhaustion only once a
// CAS-consistent snapshot shows both are unavailable.
func (m *slotManager) acquireSlot() (SlotIndex, bool) {
	h := m.header()
	cur := h.Load() // acquire: pairs with the release publishing this state
	for {
		if cur.Free != uint32(NilSlot) {
			freeIdx := SlotIndex(cur.Free)
			next := cur
			next.Free = uint32(m.readLink(freeIdx))
			next.Count++
			next.Tag++
			if h.CompareAndSwap(cur, next) {
				return freeIdx, true
			}
			cur = h.Load()
			continue
		}
		if cur.Next < m.layout.SlotCount {
			idx := SlotIndex(cur.Next)
			next := cur
			next.Next++
			next.Count++
			next.Tag++
			if h.CompareAndSwap(cur, next) {
				return idx, true
			}
			cur = h.Load()
			continue
		}
		return NilSlot, false
	}
}

// releaseSlot implements spec §4.2's release_slot: splice index onto the
// head of the free list. The per-slot link write happens before the
// publishing CAS, satisfying the release-ordering requirement — a
// subsequent acquireSlot's acquire load observes this write.
func (m *slotManager) releaseSlot(index SlotIndex) {
	h := m.header()
	cur := h.Load()
	for {
		m.writeLink(index, SlotIndex(cur.Free))
		next := cur
		next.Free = uint32(index)
		next.Count--
		next.Tag++
		if h.CompareAndSwap(cur, next) {
			return
		}
		cur = h.Load()
	}
}

func (m *slotManager) size() uint32 {
	return m.header().Load().Count
}

func (m *slotManager) capacity() uint32 {
	return m.layout.Capacity
}

// validIndex reports whether i lies in the user-addressable slot range.
func (m *slotManager) validIndex(i SlotIndex) bool {
	return i >= m.layout.HeaderSlots && i < m.layout.SlotCount
}

