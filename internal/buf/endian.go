package buf

import "encoding/binary"

// ReadIndex decodes a little-endian slot index of the given byte width
// (1, 2, 4, or 8) from the front of b. Package slab's free-chain link does
// not go through this codec; it stores each link as an 8-byte atomic word.
func ReadIndex(b []byte, width uintptr) uint32 {
	switch width {
	case 1:
		return uint32(b[0])
	case 2:
		return uint32(binary.LittleEndian.Uint16(b))
	case 4:
		return binary.LittleEndian.Uint32(b)
	default: // 8: indices never exceed 32 bits in this implementation.
		return uint32(binary.LittleEndian.Uint64(b))
	}
}

// WriteIndex encodes v as a little-endian value of the given byte width
// into the front of b.
func WriteIndex(b []byte, width uintptr, v uint32) {
	switch width {
	case 1:
		b[0] = byte(v)
	case 2:
		binary.LittleEndian.PutUint16(b, uint16(v))
	case 4:
		binary.LittleEndian.PutUint32(b, v)
	default: // 8
		binary.LittleEndian.PutUint64(b, uint64(v))
	}
}
