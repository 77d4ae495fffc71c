package slab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeLayout_RejectsBudgetSmallerThanHeader(t *testing.T) {
	_, err := computeLayout[int32](4)
	assert.ErrorIs(t, err, ErrInvalidLayout)
}

func TestComputeLayout_RejectsBudgetNotAMultipleOfSlotSize(t *testing.T) {
	_, err := computeLayout[int32](17)
	assert.ErrorIs(t, err, ErrInvalidLayout)
}

func TestComputeLayout_RejectsCapacityOverflow(t *testing.T) {
	// A slot size of the minimum possible (8, forced by the control
	// header's own alignment) times more than 2^16 slots overflows the
	// packed control word.
	_, err := computeLayout[byte](8 * (maxPackedSlotCount + 1))
	assert.ErrorIs(t, err, ErrCapacityTooLarge)
}

func TestComputeLayout_RejectsSlotCountAtPackedFieldLimit(t *testing.T) {
	// byte forces SlotSize to 8 (the control header's own alignment), so
	// S = 8 * maxPackedSlotCount derives exactly SlotCount == 65536 — one
	// past the largest value a 16-bit packed field can hold (65535) —
	// and must be rejected, not accepted as the last valid size.
	_, err := computeLayout[byte](8 * maxPackedSlotCount)
	assert.ErrorIs(t, err, ErrCapacityTooLarge)
}

func TestComputeLayout_AcceptsSlotCountOneBelowPackedFieldLimit(t *testing.T) {
	layout, err := computeLayout[byte](8 * (maxPackedSlotCount - 1))
	require.NoError(t, err)
	assert.EqualValues(t, maxPackedSlotCount-1, layout.SlotCount)
}

func TestComputeLayout_TotalBytesRoundTripsToS(t *testing.T) {
	layout, err := computeLayout[float64](80)
	require.NoError(t, err)
	assert.EqualValues(t, 80, layout.TotalBytes, "sizeof(container) must equal S")
}

func TestComputeLayout_HeaderReservesExactlyOneSlotWhenItFits(t *testing.T) {
	layout, err := computeLayout[int32](16)
	require.NoError(t, err)
	assert.EqualValues(t, 1, layout.HeaderSlots)
	assert.EqualValues(t, 1, layout.Capacity)
	assert.EqualValues(t, 2, layout.SlotCount)
}

func TestComputeLayout_NarrowElementGetsWiderIndexWidth(t *testing.T) {
	type oneByte struct {
		V uint8
	}
	layout, err := computeLayout[oneByte](512)
	require.NoError(t, err)
	assert.Less(t, layout.ElemSize, layout.IndexWidth,
		"sizeof(T) < IndexWidth must still lay out correctly")
	assert.EqualValues(t, 2, layout.IndexWidth)
}

func TestComputeLayout_NonPowerOfTwoElementSizesPackCorrectly(t *testing.T) {
	type size3 struct {
		A, B, C byte
	}
	type size7 struct {
		A [7]byte
	}
	type size15 struct {
		A [15]byte
	}

	for _, s := range []uintptr{64, 128, 256} {
		l3, err := computeLayout[size3](s)
		require.NoError(t, err)
		assertLayoutConsistent(t, l3, s)

		l7, err := computeLayout[size7](s)
		require.NoError(t, err)
		assertLayoutConsistent(t, l7, s)

		l15, err := computeLayout[size15](s * 2)
		require.NoError(t, err)
		assertLayoutConsistent(t, l15, s*2)
	}
}

func assertLayoutConsistent(t *testing.T, l Layout, s uintptr) {
	t.Helper()
	assert.EqualValues(t, s, l.TotalBytes)
	assert.Zero(t, l.SlotSize%l.SlotAlign, "slot size must be a multiple of the required alignment")
	assert.GreaterOrEqual(t, l.Capacity, uint32(1))
	assert.Equal(t, l.SlotCount, l.HeaderSlots+l.Capacity)
}
