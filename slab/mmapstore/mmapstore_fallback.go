//go:build !unix

// Package mmapstore provides an alternative backing store for slab.Pool:
// an anonymous, process-private memory mapping instead of a Go-heap
// []byte, where the platform supports it. On platforms without an
// anonymous-mmap syscall this falls back to a plain heap allocation —
// the region loses the off-heap property but keeps the same interface.
package mmapstore

// Region is a plain heap-backed byte buffer on this platform.
type Region struct {
	data []byte
}

// New allocates n bytes on the heap.
func New(n int) (*Region, error) {
	return &Region{data: make([]byte, n)}, nil
}

// Bytes returns the backing region.
func (r *Region) Bytes() []byte { return r.data }

// Close releases the region. Safe to call once; a second call is a no-op.
func (r *Region) Close() error {
	r.data = nil
	return nil
}
