package buf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMulOverflowSafe(t *testing.T) {
	p, ok := MulOverflowSafe(8, 10)
	require.True(t, ok)
	assert.EqualValues(t, 80, p)

	maxU := ^uintptr(0)
	_, ok = MulOverflowSafe(maxU, 2)
	assert.False(t, ok)

	p, ok = MulOverflowSafe(0, maxU)
	require.True(t, ok)
	assert.Zero(t, p)
}

func TestAddOverflowSafe(t *testing.T) {
	s, ok := AddOverflowSafe(5, 7)
	require.True(t, ok)
	assert.EqualValues(t, 12, s)

	maxU := ^uintptr(0)
	_, ok = AddOverflowSafe(maxU, 1)
	assert.False(t, ok)
}

func TestCheckRegionBounds(t *testing.T) {
	end, err := CheckRegionBounds(100, 10, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 30, end)

	_, err = CheckRegionBounds(100, 90, 20)
	assert.Error(t, err)

	maxU := ^uintptr(0)
	_, err = CheckRegionBounds(100, maxU, 1)
	assert.Error(t, err)
}

func TestSlice(t *testing.T) {
	b := []byte{1, 2, 3, 4, 5}

	s, ok := Slice(b, 1, 3)
	require.True(t, ok)
	assert.Equal(t, []byte{2, 3, 4}, s)

	_, ok = Slice(b, 3, 3)
	assert.False(t, ok)
}
