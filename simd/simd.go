// Package simd provides fast byte and substring scanning used by the
// prefilters. Every routine returns the index of the first occurrence, or -1.
//
// On x86-64 CPUs with AVX2, single-byte scans over longer inputs are handed
// to the runtime's vectorized bytes.IndexByte. Everything else uses SWAR
// (SIMD Within A Register) loops that test eight bytes per uint64 word.
package simd

import (
	"bytes"

	"golang.org/x/sys/cpu"
)

// hasAVX2 reports whether the CPU has 256-bit integer vectors. It is false on
// every non-x86 platform.
var hasAVX2 = cpu.X86.HasAVX2

// wideThreshold is the input length below which vector setup costs more
// than a word-at-a-time loop.
const wideThreshold = 32

// Memchr returns the index of the first needle in haystack, or -1.
//
// Example:
//
//	pos := simd.Memchr([]byte("hello world"), 'o') // 4
func Memchr(haystack []byte, needle byte) int {
	if len(haystack) == 0 {
		return -1
	}
	if hasAVX2 && len(haystack) >= wideThreshold {
		return bytes.IndexByte(haystack, needle)
	}
	return memchrWord(haystack, needle)
}

// Memchr2 returns the index of the first byte equal to n1 or n2, or -1.
func Memchr2(haystack []byte, n1, n2 byte) int {
	if n1 == n2 {
		return Memchr(haystack, n1)
	}
	return memchrWordSet(haystack, []byte{n1, n2})
}

// Memchr3 returns the index of the first byte equal to n1, n2 or n3, or -1.
func Memchr3(haystack []byte, n1, n2, n3 byte) int {
	return memchrWordSet(haystack, []byte{n1, n2, n3})
}
