package simd

import (
	"encoding/binary"
	"math/bits"
)

const (
	lsbs = 0x0101010101010101
	msbs = 0x8080808080808080
)

// zeroBytes sets the high bit of the lowest zero byte of w, and possibly of
// higher bytes; the lowest set bit is always exact.
func zeroBytes(w uint64) uint64 {
	return (w - lsbs) &^ w & msbs
}

// memchrWord scans eight bytes per step by XOR-ing each word with the
// needle broadcast to every lane: a matching lane becomes zero.
func memchrWord(haystack []byte, needle byte) int {
	splat := uint64(needle) * lsbs
	i := 0
	for ; i+8 <= len(haystack); i += 8 {
		w := binary.LittleEndian.Uint64(haystack[i:])
		if z := zeroBytes(w ^ splat); z != 0 {
			return i + bits.TrailingZeros64(z)>>3
		}
	}
	for ; i < len(haystack); i++ {
		if haystack[i] == needle {
			return i
		}
	}
	return -1
}

// memchrWordSet is memchrWord for up to a handful of needles. Each word is
// tested against every needle and the earliest hit wins.
func memchrWordSet(haystack []byte, needles []byte) int {
	var splats [4]uint64
	for k, n := range needles {
		splats[k] = uint64(n) * lsbs
	}
	i := 0
	for ; i+8 <= len(haystack); i += 8 {
		w := binary.LittleEndian.Uint64(haystack[i:])
		var hits uint64
		for k := range needles {
			hits |= zeroBytes(w ^ splats[k])
		}
		if hits != 0 {
			return i + bits.TrailingZeros64(hits)>>3
		}
	}
	for ; i < len(haystack); i++ {
		if isOneOf(haystack[i], needles) {
			return i
		}
	}
	return -1
}

func isOneOf(c byte, needles []byte) bool {
	for _, n := range needles {
		if c == n {
			return true
		}
	}
	return false
}
