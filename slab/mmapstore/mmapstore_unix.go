//go:build unix

// Package mmapstore provides an alternative backing store for slab.Pool:
// an anonymous, process-private memory mapping instead of a Go-heap
// []byte. It is useful for very large pools where the caller wants the
// region off the GC-scanned heap. It does not make the region shareable
// across processes — that remains out of scope per spec's non-goals.
package mmapstore

import "golang.org/x/sys/unix"

// Region is an anonymously-mapped byte buffer. Close unmaps it; after
// Close, Bytes returns nil and must not be dereferenced.
type Region struct {
	data []byte
}

// New maps n bytes anonymously, private to this process.
func New(n int) (*Region, error) {
	if n == 0 {
		return &Region{}, nil
	}
	data, err := unix.Mmap(-1, 0, n, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, err
	}
	return &Region{data: data}, nil
}

// Bytes returns the mapped region.
func (r *Region) Bytes() []byte { return r.data }

// Close unmaps the region. Safe to call once; a second call is a no-op.
func (r *Region) Close() error {
	if r.data == nil {
		return nil
	}
	err := unix.Munmap(r.data)
	r.data = nil
	return err
}
