//go:build unix

package slab

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPool_WithMmapStorage(t *testing.T) {
	p, err := New[float64](80, WithMmapStorage[float64]())
	require.NoError(t, err)
	defer p.Close()

	v, err := p.Alloc(func(v *float64) error { *v = 3.5; return nil })
	require.NoError(t, err)
	require.Equal(t, 3.5, *v)

	require.NoError(t, p.Free(v))
}
