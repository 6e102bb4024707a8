package format

// Alignment utilities. All alignments are powers of two; callers validate that
// with IsPowerOfTwo before relying on the mask arithmetic below.

// IsPowerOfTwo reports whether n is a non-zero power of two.
func IsPowerOfTwo(n uintptr) bool {
	return n != 0 && n&(n-1) == 0
}

// AlignUp returns the smallest multiple of align that is >= n.
//
// Example:
//
//	AlignUp(1, 8)   = 8
//	AlignUp(8, 8)   = 8
//	AlignUp(100, 64) = 128
func AlignUp(n, align uintptr) uintptr {
	mask := align - 1
	return (n + mask) &^ mask
}

// AlignDown returns the largest multiple of align that is <= n.
func AlignDown(n, align uintptr) uintptr {
	return n &^ (align - 1)
}

// AlignWord rounds n up to the next word boundary.
func AlignWord(n uintptr) uintptr {
	return AlignUp(n, WordSize)
}
