// Package fnv is an inline, allocation free FNV-1a 64 used to key
// parameter sets.
package fnv

import "math"

const (
	offset64 = 14695981039346656037
	prime64  = 1099511628211
)

func NewHash() uint64 {
	return offset64
}

func AddString(h uint64, s string) uint64 {
	for i := 0; i < len(s); i++ {
		h = addByte(h, s[i])
	}
	return h
}

// AddUint64 hashes the 8 bytes of i, little endian.
func AddUint64(h, i uint64) uint64 {
	for shift := 0; shift < 64; shift += 8 {
		h = addByte(h, byte(i>>shift))
	}
	return h
}

// AddFloat64 hashes the IEEE 754 bits of f: 0 and -0 differ.
func AddFloat64(h uint64, f float64) uint64 {
	return AddUint64(h, math.Float64bits(f))
}

func addByte(h uint64, b byte) uint64 {
	h ^= uint64(b)
	h *= prime64
	return h
}
