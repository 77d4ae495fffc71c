package buf

import "errors"

var (
	errOverflow    = errors.New("buf: offset+length overflows uintptr")
	errOutOfBounds = errors.New("buf: region exceeds buffer length")
)
