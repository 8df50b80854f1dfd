package hashkernel

import "strings"

// LastPathSegment returns the suffix of s following the last '/', or s
// unchanged if there is none (last_chars_until_forward_slash). The
// original takes a SIMD fast path over 16-byte chunks; that is a
// non-functional optimization (spec §9), so this is the scalar
// reference semantics.
func LastPathSegment(s string) string {
	if i := strings.LastIndexByte(s, '/'); i >= 0 {
		return s[i+1:]
	}
	return s
}

// HasPrefixFold reports whether the lowercased s begins with the
// lowercased prefix (starts_with_prefix_simd's scalar semantics).
func HasPrefixFold(s, prefix string) bool {
	return strings.HasPrefix(strings.ToLower(s), strings.ToLower(prefix))
}
