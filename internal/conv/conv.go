// Package conv holds checked integer conversions used by the compiler and
// the tokenizer.
//
// A failed conversion means an internal limit was bypassed (the state
// ceiling should have rejected the pattern first), so the helpers panic
// instead of returning an error.
package conv

import "math"

// IntToUint32 converts n to uint32, panicking if it does not fit.
//
//go:inline
func IntToUint32(n int) uint32 {
	// uint comparison keeps this correct on 32-bit platforms
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}

// Uint64ToByte converts n to a byte, panicking if it does not fit.
//
//go:inline
func Uint64ToByte(n uint64) byte {
	if n > math.MaxUint8 {
		panic("integer overflow: uint64 value out of byte range")
	}
	return byte(n)
}

// IntToByte converts n to a byte, panicking if it does not fit.
//
//go:inline
func IntToByte(n int) byte {
	if n < 0 || n > math.MaxUint8 {
		panic("integer overflow: int value out of byte range")
	}
	return byte(n)
}
