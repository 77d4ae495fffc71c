package slab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, s uintptr) *slotManager {
	t.Helper()
	layout, err := computeLayout[float64](s)
	require.NoError(t, err)
	m, err := newSlotManager(layout, nil)
	require.NoError(t, err)
	return m
}

func TestSlotManager_BumpPointerFillsThenExhausts(t *testing.T) {
	m := newTestManager(t, 80) // capacity 9

	seen := map[SlotIndex]bool{}
	for i := uint32(0); i < m.capacity(); i++ {
		idx, ok := m.acquireSlot()
		require.True(t, ok)
		assert.False(t, seen[idx], "must never hand out the same index twice")
		seen[idx] = true
	}

	_, ok := m.acquireSlot()
	assert.False(t, ok, "pool must report exhaustion once every slot is live")
}

func TestSlotManager_SingleThreadedLIFOReuse(t *testing.T) {
	m := newTestManager(t, 80)

	var acquired []SlotIndex
	for i := 0; i < 6; i++ {
		idx, ok := m.acquireSlot()
		require.True(t, ok)
		acquired = append(acquired, idx)
	}

	// Free #2 (index acquired[1]) then #4 (acquired[3]) — LIFO reuse must
	// hand back #4 first, then #2.
	m.releaseSlot(acquired[1])
	m.releaseSlot(acquired[3])

	next1, ok := m.acquireSlot()
	require.True(t, ok)
	assert.Equal(t, acquired[3], next1)

	next2, ok := m.acquireSlot()
	require.True(t, ok)
	assert.Equal(t, acquired[1], next2)
}

func TestSlotManager_TagStrictlyIncreasesAcrossAcquireRelease(t *testing.T) {
	m := newTestManager(t, 80)

	tagBefore := m.header().Load().Tag
	idx, ok := m.acquireSlot()
	require.True(t, ok)
	tagAfterAcquire := m.header().Load().Tag
	assert.NotEqual(t, tagBefore, tagAfterAcquire)

	m.releaseSlot(idx)
	tagAfterRelease := m.header().Load().Tag
	assert.NotEqual(t, tagAfterAcquire, tagAfterRelease)
}

func TestSlotManager_FreeChainTerminatesAtSentinel(t *testing.T) {
	m := newTestManager(t, 80)

	var acquired []SlotIndex
	for i := 0; i < 5; i++ {
		idx, ok := m.acquireSlot()
		require.True(t, ok)
		acquired = append(acquired, idx)
	}
	for _, idx := range acquired {
		m.releaseSlot(idx)
	}

	steps := 0
	for walk := SlotIndex(m.header().Load().Free); walk != NilSlot; walk = m.readLink(walk) {
		steps++
		require.LessOrEqual(t, steps, len(acquired))
	}
	assert.Equal(t, len(acquired), steps)
}

func TestSlotManager_ResetRestoresInitialState(t *testing.T) {
	m := newTestManager(t, 80)

	for i := 0; i < 3; i++ {
		_, ok := m.acquireSlot()
		require.True(t, ok)
	}
	m.reset()

	h := m.header().Load()
	assert.Equal(t, m.layout.HeaderSlots, h.Next)
	assert.EqualValues(t, NilSlot, h.Free)
	assert.Zero(t, h.Count)
}
