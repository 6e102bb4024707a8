// Package buf contains overflow-safe address arithmetic used when checking
// that a block or word access stays inside a managed region.
package buf

import "fmt"

// AddOverflowSafe adds a and b, returning ok = false when the result would wrap.
func AddOverflowSafe(a, b uintptr) (uintptr, bool) {
	sum := a + b
	if sum < a {
		return 0, false
	}
	return sum, true
}

// End returns addr+n, or ok = false when the span wraps the address space.
func End(addr, n uintptr) (uintptr, bool) {
	return AddOverflowSafe(addr, n)
}

// Within reports whether [addr, addr+n) lies inside [base, base+length).
func Within(base, length, addr, n uintptr) bool {
	regionEnd, ok := End(base, length)
	if !ok {
		return false
	}
	spanEnd, ok := End(addr, n)
	if !ok {
		return false
	}
	return addr >= base && spanEnd <= regionEnd
}

// CheckSpan validates that [addr, addr+n) lies inside [base, base+length) and
// returns the offset of addr relative to base. The error describes which bound
// was violated.
//
//	off, err := buf.CheckSpan(base, length, addr, wordSize)
//	if err != nil {
//	    panic(err)
//	}
func CheckSpan(base, length, addr, n uintptr) (uintptr, error) {
	spanEnd, ok := End(addr, n)
	if !ok {
		return 0, fmt.Errorf("overflow: addr=%#x + n=%d", addr, n)
	}
	if addr < base {
		return 0, fmt.Errorf("bounds: addr=%#x < base=%#x", addr, base)
	}
	regionEnd, ok := End(base, length)
	if !ok {
		return 0, fmt.Errorf("overflow: base=%#x + len=%d", base, length)
	}
	if spanEnd > regionEnd {
		return 0, fmt.Errorf("bounds: end=%#x > region end=%#x", spanEnd, regionEnd)
	}
	return addr - base, nil
}
