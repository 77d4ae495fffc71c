package slab

// SlotIndex identifies one slot within a Pool's backing storage. It is a
// uint32 regardless of the layout's derived IndexWidth; every index that
// can appear in the free chain or the control word fits in a 16-bit
// packed field.
type SlotIndex = uint32

// NilSlot is the sentinel index meaning "no slot": the empty free list,
// and an index no valid allocation ever returns. It is always slot 0,
// which HeaderSlots reserves for exactly this purpose.
const NilSlot SlotIndex = 0
