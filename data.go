package vkc

import (
	"unsafe"
)

// Float32Slice uploads as tightly packed 32 bit floats, matching a std430 float array.
type Float32Slice []float32

func (f Float32Slice) Bytes() []byte {
	if len(f) == 0 {
		return nil
	}
	size := len(f) * int(unsafe.Sizeof(float32(1)))
	return ToBytes(unsafe.Pointer(&f[0]), size)
}

// Uint32Slice uploads as tightly packed 32 bit unsigned integers.
type Uint32Slice []uint32

func (u Uint32Slice) Bytes() []byte {
	if len(u) == 0 {
		return nil
	}
	size := len(u) * int(unsafe.Sizeof(uint32(1)))
	return ToBytes(unsafe.Pointer(&u[0]), size)
}

// BytesToFloat32 reinterprets downloaded bytes as floats. Trailing bytes which do not
// make up a whole float are ignored. The returned slice is a copy.
func BytesToFloat32(b []byte) []float32 {
	n := len(b) / 4
	if n == 0 {
		return nil
	}
	out := make([]float32, n)
	copy(Float32Slice(out).Bytes(), b[:n*4])
	return out
}
