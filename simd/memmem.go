package simd

import "bytes"

// Memmem returns the index of the first needle in haystack, or -1. An empty
// needle matches at 0.
//
// The scan looks for the needle's rarest byte with Memchr and verifies the
// whole needle around each candidate.
//
// Example:
//
//	pos := simd.Memmem([]byte("aaaaaabaaaa"), []byte("aab")) // 4
func Memmem(haystack, needle []byte) int {
	switch {
	case len(needle) == 0:
		return 0
	case len(needle) > len(haystack):
		return -1
	case len(needle) == 1:
		return Memchr(haystack, needle[0])
	}

	rare := RareByteIndex(needle)
	c := needle[rare]
	// Candidates for the rare byte that leave room for the needle on both
	// sides lie in [rare, len(haystack)-len(needle)+rare].
	last := len(haystack) - len(needle) + rare
	for at := rare; at <= last; {
		i := Memchr(haystack[at:last+1], c)
		if i < 0 {
			return -1
		}
		start := at + i - rare
		if bytes.Equal(haystack[start:start+len(needle)], needle) {
			return start
		}
		at += i + 1
	}
	return -1
}

// RareByteIndex returns the index of the byte of needle least likely to
// occur in typical text, preferring later positions on ties. It panics on an
// empty needle.
func RareByteIndex(needle []byte) int {
	best := len(needle) - 1
	for i := len(needle) - 2; i >= 0; i-- {
		if ByteRank(needle[i]) < ByteRank(needle[best]) {
			best = i
		}
	}
	return best
}

// ByteRank estimates how common c is in text and source code, from 0
// (rare) to 255 (ubiquitous).
func ByteRank(c byte) byte {
	switch {
	case c == ' ':
		return 255
	case c == 'e' || c == 't' || c == 'a' || c == 'o' || c == 'i' || c == 'n':
		return 240
	case c == 's' || c == 'r' || c == 'h' || c == 'l' || c == 'd':
		return 225
	case c >= 'a' && c <= 'z':
		return 200
	case c == '\n' || c == '\t' || c == '\r':
		return 180
	case c >= '0' && c <= '9':
		return 160
	case c >= 'A' && c <= 'Z':
		return 150
	case c == '.' || c == ',' || c == '_' || c == '(' || c == ')' || c == '"' || c == '\'':
		return 130
	case c > ' ' && c < 0x7f:
		return 100
	case c == 0:
		return 40
	default:
		return 20
	}
}
