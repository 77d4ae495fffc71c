package slab

import "github.com/kallsten/slabpool/slab/mmapstore"

// WithMmapStorage backs the pool with an anonymous memory mapping instead
// of a Go-heap byte slice, via slab/mmapstore. Useful for large pools the
// caller wants off the GC-scanned heap. The mapping is released when
// Close is called.
func WithMmapStorage[T any]() Option[T] {
	var region *mmapstore.Region
	provide := func(size, align uintptr) ([]byte, error) {
		r, err := mmapstore.New(int(size))
		if err != nil {
			return nil, err
		}
		region = r
		return r.Bytes(), nil
	}
	closeFn := func() error {
		if region == nil {
			return nil
		}
		return region.Close()
	}
	return BackingStore[T](provide, closeFn)
}
